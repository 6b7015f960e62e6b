package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/Belphemur/filmed/internal/taxonomy"
	"github.com/PuerkitoBio/goquery"
)

// TitleDetails is what the search catalog's title page adds to a search hit.
type TitleDetails struct {
	Categories []taxonomy.Category
	Runtime    int
	Kind       models.MediaKind
}

// The runtime is one of the inline list items following the title, its position
// depends on whether the page shows a certificate and episode count.
const (
	firstRuntimeItem = 4
	lastRuntimeItem  = 7
)

// TitlePageParser reads categories, runtime and kind from a title page.
type TitlePageParser struct{}

// NewTitlePageParser creates a parser for search catalog title pages
func NewTitlePageParser() SingleResultParser[TitleDetails] {
	return &TitlePageParser{}
}

// ParseHtml fails when the page carries no known category or no runtime.
func (p *TitlePageParser) ParseHtml(body io.Reader) (TitleDetails, error) {
	doc, err := newDocument(body)
	if err != nil {
		return TitleDetails{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var details TitleDetails
	doc.Find(".ipc-chip__text").Each(func(_ int, chip *goquery.Selection) {
		if c, ok := taxonomy.ParseCategory(chip.Text()); ok {
			details.Categories = append(details.Categories, c)
		}
	})
	if len(details.Categories) == 0 {
		return TitleDetails{}, fmt.Errorf("title page has no known genre")
	}

	items := doc.Find(".ipc-inline-list__item")
	var last string
	found := false
	for i := firstRuntimeItem; i <= lastRuntimeItem && i < items.Length(); i++ {
		last = strings.TrimSpace(items.Eq(i).Text())
		if !LooksLikeRuntime(last) {
			continue
		}
		details.Runtime, err = ParseRuntime(last)
		if err != nil {
			return TitleDetails{}, err
		}
		found = true
		break
	}
	if !found {
		return TitleDetails{}, &apperrors.InvalidRuntimeError{Value: last}
	}

	title := doc.Find("title").First().Text()
	if strings.Contains(title, "TV") && strings.Contains(title, "Series") {
		details.Kind = models.KindShow
	}
	return details, nil
}

// LooksLikeRuntime accepts text made of digits, spaces, 'h' and 'm' that is
// not a bare number ("1h 33m", "2h", "45m").
func LooksLikeRuntime(s string) bool {
	if s == "" || len(s) >= 20 {
		return false
	}
	digitsOnly := true
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == 'h' || r == 'm' || r == ' ':
			digitsOnly = false
		default:
			return false
		}
	}
	return !digitsOnly
}

// ParseRuntime converts "1h 33m", "2h" or "45m" into minutes.
func ParseRuntime(s string) (int, error) {
	s = strings.TrimSpace(s)
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, &apperrors.InvalidRuntimeError{Value: s}
	}

	total := 0
	seen := ""
	for _, f := range fields {
		unit := f[len(f)-1:]
		n, err := strconv.Atoi(f[:len(f)-1])
		if err != nil || n < 0 || strings.Contains(seen, unit) {
			return 0, &apperrors.InvalidRuntimeError{Value: s}
		}
		switch unit {
		case "h":
			if seen != "" {
				return 0, &apperrors.InvalidRuntimeError{Value: s}
			}
			total += n * 60
		case "m":
			total += n
		default:
			return 0, &apperrors.InvalidRuntimeError{Value: s}
		}
		seen += unit
	}
	return total, nil
}
