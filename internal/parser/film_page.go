package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Belphemur/filmed/internal/apperrors"
)

// FilmPageParser reads the runtime from a source catalog title page.
type FilmPageParser struct{}

// NewFilmPageParser creates a parser for source catalog title pages
func NewFilmPageParser() SingleResultParser[*int] {
	return &FilmPageParser{}
}

// ParseHtml returns the runtime in minutes, or nil when the page has none.
// A duration that is present but not a positive number of minutes is an
// *apperrors.InvalidRuntimeError.
func (p *FilmPageParser) ParseHtml(body io.Reader) (*int, error) {
	doc, err := newDocument(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	raw, ok := doc.Find(".filmCoverSection__duration").First().Attr("data-duration")
	if !ok {
		return nil, nil
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || minutes <= 0 {
		return nil, &apperrors.InvalidRuntimeError{Value: raw}
	}
	return &minutes, nil
}
