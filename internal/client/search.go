package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/cache"
	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/Belphemur/filmed/internal/parser"
)

// SearchClient queries the search catalog. It satisfies resolver.Searcher:
// each search returns the first hit enriched with its title page, or an error
// matching *apperrors.ErrNotFound when the catalog has no hit.
type SearchClient struct {
	httpClient *http.Client
	baseURL    string
	pages      *cache.Loader
	structured parser.SingleResultParser[models.SearchHit]
	find       parser.SingleResultParser[models.SearchHit]
	details    parser.SingleResultParser[parser.TitleDetails]
}

// NewSearchClient creates a search catalog client. pages may be nil to disable caching.
func NewSearchClient(cfg *config.Config, pages *cache.Loader) *SearchClient {
	return &SearchClient{
		httpClient: newHTTPClient(cfg, transportOptions{catalog: catalogSearch, rps: cfg.RateLimit.Search}),
		baseURL:    strings.TrimRight(cfg.SearchDomain, "/"),
		pages:      pages,
		structured: parser.NewStructuredResultParser(),
		find:       parser.NewFindResultParser(),
		details:    parser.NewTitlePageParser(),
	}
}

// StructuredSearch runs an advanced title search restricted to the release year range.
func (c *SearchClient) StructuredSearch(ctx context.Context, name string, yearStart, yearEnd int) (*models.MatchCandidate, error) {
	query := url.Values{}
	query.Set("title", name)
	query.Set("release_date", fmt.Sprintf("%d,%d", yearStart, yearEnd))
	query.Set("adult", "include")
	searchURL := c.baseURL + "/search/title/?" + query.Encode()

	return c.search(ctx, searchURL, fmt.Sprintf("%s (%d-%d)", name, yearStart, yearEnd), c.structured)
}

// FreeTextSearch runs a free-text search, typically "<name> <year>".
func (c *SearchClient) FreeTextSearch(ctx context.Context, query string) (*models.MatchCandidate, error) {
	searchURL := c.baseURL + "/find?" + url.Values{"q": {query}}.Encode()
	return c.search(ctx, searchURL, query, c.find)
}

func (c *SearchClient) search(ctx context.Context, searchURL, label string, p parser.SingleResultParser[models.SearchHit]) (*models.MatchCandidate, error) {
	logger := config.GetLogger()
	start := time.Now()

	body, err := c.page(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", label, err)
	}

	hit, err := p.ParseHtml(bytes.NewReader(body))
	if err != nil {
		if errors.Is(err, &apperrors.ErrNotFound{}) {
			return nil, apperrors.NewSearchNotFoundError(label)
		}
		return nil, fmt.Errorf("search %q: %w", label, err)
	}

	candidate, err := c.Details(ctx, hit)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("query", label).
		Str("id", candidate.ExternalID).
		Dur("elapsed", time.Since(start)).
		Msg("Search returned a candidate")
	return candidate, nil
}

// Details fetches the title page of a hit and builds the full candidate.
func (c *SearchClient) Details(ctx context.Context, hit models.SearchHit) (*models.MatchCandidate, error) {
	titleURL := c.TitleURL(hit.ExternalID)
	body, err := c.page(ctx, titleURL)
	if err != nil {
		return nil, fmt.Errorf("title %s: %w", hit.ExternalID, err)
	}

	details, err := c.details.ParseHtml(bytes.NewReader(body))
	if err != nil {
		var runtimeErr *apperrors.InvalidRuntimeError
		if errors.As(err, &runtimeErr) {
			runtimeErr.URL = titleURL
		}
		return nil, fmt.Errorf("title %s: %w", hit.ExternalID, err)
	}

	return &models.MatchCandidate{
		ExternalID: hit.ExternalID,
		Name:       hit.Name,
		Year:       hit.Year,
		Runtime:    details.Runtime,
		Categories: details.Categories,
		Kind:       details.Kind,
		URL:        titleURL,
	}, nil
}

// TitleURL returns the title page address of an external id.
func (c *SearchClient) TitleURL(externalID string) string {
	return fmt.Sprintf("%s/title/%s/", c.baseURL, externalID)
}

func (c *SearchClient) page(ctx context.Context, pageURL string) ([]byte, error) {
	return c.pages.Get(ctx, cache.PageKey(pageURL), func(ctx context.Context) ([]byte, error) {
		return fetch(ctx, c.httpClient, pageURL)
	})
}
