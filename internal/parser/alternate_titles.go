package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/Belphemur/filmed/internal/models"
)

// AlternateTitlesParser reads the name/label pairs of a title's "titles" page.
type AlternateTitlesParser struct{}

// NewAlternateTitlesParser creates a parser for source catalog alternate title pages
func NewAlternateTitlesParser() Parser[models.NamePair] {
	return &AlternateTitlesParser{}
}

// ParseHtml pairs each title with the description at the same position.
// Surplus titles or descriptions are ignored.
func (p *AlternateTitlesParser) ParseHtml(body io.Reader) ([]models.NamePair, error) {
	doc, err := newDocument(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	titles := doc.Find(".filmTitlesSection__title")
	descs := doc.Find(".filmTitlesSection__desc")
	n := min(titles.Length(), descs.Length())

	pairs := make([]models.NamePair, 0, n)
	for i := range n {
		pairs = append(pairs, models.NamePair{
			Name:  strings.TrimSpace(titles.Eq(i).Text()),
			Label: strings.TrimSpace(descs.Eq(i).Text()),
		})
	}
	return pairs, nil
}
