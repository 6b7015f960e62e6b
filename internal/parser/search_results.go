package parser

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/PuerkitoBio/goquery"
)

var titleIDPattern = regexp.MustCompile(`\d{7,8}`)

// ExtractTitleID pulls a search catalog title id ("tt0371257") out of markup or a link.
func ExtractTitleID(s string) (string, bool) {
	digits := titleIDPattern.FindString(s)
	if digits == "" {
		return "", false
	}
	return "tt" + digits, true
}

// StructuredResultParser reads the first hit of an advanced title search.
type StructuredResultParser struct{}

// NewStructuredResultParser creates a parser for advanced title search result pages
func NewStructuredResultParser() SingleResultParser[models.SearchHit] {
	return &StructuredResultParser{}
}

// ParseHtml returns the first result, or an ErrNotFound when the list is empty.
func (p *StructuredResultParser) ParseHtml(body io.Reader) (models.SearchHit, error) {
	doc, err := newDocument(body)
	if err != nil {
		return models.SearchHit{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	image := doc.Find("div.lister-item-image").First()
	if image.Length() == 0 {
		return models.SearchHit{}, apperrors.NewNotFoundError("search result", nil)
	}

	markup, _ := goquery.OuterHtml(image)
	id, ok := ExtractTitleID(markup)
	if !ok {
		return models.SearchHit{}, fmt.Errorf("search result has no title id")
	}

	name, _ := doc.Find("img.loadlate").First().Attr("alt")
	yearText := doc.Find(".lister-item-year").First().Text()
	year, err := models.ParseYear(yearText)
	if err != nil {
		return models.SearchHit{}, fmt.Errorf("search result %s: %w", id, err)
	}

	logger := config.GetLogger()
	logger.Debug().Str("id", id).Str("name", name).Str("year", year.String()).Msg("Parsed structured search hit")
	return models.SearchHit{
		ExternalID: id,
		Name:       strings.TrimSpace(name),
		Year:       year,
	}, nil
}

// FindResultParser reads the first hit of a free-text search.
type FindResultParser struct{}

// NewFindResultParser creates a parser for free-text search result pages
func NewFindResultParser() SingleResultParser[models.SearchHit] {
	return &FindResultParser{}
}

// ParseHtml returns the first result, or an ErrNotFound when nothing matched.
func (p *FindResultParser) ParseHtml(body io.Reader) (models.SearchHit, error) {
	doc, err := newDocument(body)
	if err != nil {
		return models.SearchHit{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	link := doc.Find(".ipc-metadata-list-summary-item__t").First()
	if link.Length() == 0 {
		return models.SearchHit{}, apperrors.NewNotFoundError("search result", nil)
	}

	href, _ := link.Attr("href")
	id, ok := ExtractTitleID(href)
	if !ok {
		return models.SearchHit{}, fmt.Errorf("search result link %q has no title id", href)
	}

	year, err := models.ParseYear(doc.Find(".ipc-metadata-list-summary-item__li").First().Text())
	if err != nil {
		return models.SearchHit{}, fmt.Errorf("search result %s: %w", id, err)
	}

	return models.SearchHit{
		ExternalID: id,
		Name:       strings.TrimSpace(link.Text()),
		Year:       year,
		Path:       href,
	}, nil
}
