package parser

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// NewUTF8Reader converts body to UTF-8, detecting the encoding from the
// <meta charset> tag, an XML declaration, a byte order mark or, failing
// those, from the content itself. UTF-8 input passes through unchanged.
func NewUTF8Reader(body io.Reader) (io.Reader, error) {
	return charset.NewReader(body, "")
}

// newDocument decodes body to UTF-8 and parses it.
func newDocument(body io.Reader) (*goquery.Document, error) {
	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(utf8Body)
}
