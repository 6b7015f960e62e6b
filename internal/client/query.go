package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/Belphemur/filmed/internal/ranking"
	"github.com/Belphemur/filmed/internal/taxonomy"
)

// Year bounds used when a query has no year.
const (
	earliestYear = 1890
	latestYear   = 2060
)

// CatalogQuery selects titles from the source catalog's search API by release
// year and genre. Genres are OR-ed.
type CatalogQuery struct {
	Year   *models.Year
	Genres []taxonomy.Genre
}

// URL returns the search API address of one result page.
func (q CatalogQuery) URL(baseURL string, page int) string {
	start, end := earliestYear, latestYear
	if q.Year != nil {
		start, end = q.Year.Start, q.Year.End
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/api/v1/films/search?startYear=%d&endYear=%d", baseURL, start, end)
	if len(q.Genres) > 0 {
		ids := make([]string, len(q.Genres))
		for i, g := range q.Genres {
			ids[i] = strconv.Itoa(int(g))
		}
		sb.WriteString("&genres=" + strings.Join(ids, ","))
	}
	fmt.Fprintf(&sb, "&connective=OR&page=%d", page)
	return sb.String()
}

// Query returns the films and shows on one page of a catalog query, each with
// its preview data and ranked alternate names. It needs no logged-in session.
// Hits that are neither films nor shows are skipped.
func (c *SourceClient) Query(ctx context.Context, q CatalogQuery, page int) ([]*models.TitleRecord, error) {
	logger := config.GetLogger()
	queryURL := q.URL(c.baseURL, page)

	body, err := fetch(ctx, c.sessions.Client(), queryURL)
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}
	var results models.CatalogSearchResults
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode catalog query: %w", err)
	}

	var records []*models.TitleRecord
	for _, hit := range results.SearchHits {
		var kind models.MediaKind
		switch hit.Type {
		case "film":
			kind = models.KindMovie
		case "serial":
			kind = models.KindShow
		default:
			continue
		}

		rec, err := c.preview(ctx, hit.ID, kind)
		if err != nil {
			return nil, fmt.Errorf("hit %d: %w", hit.ID, err)
		}
		records = append(records, rec)
	}

	logger.Info().Str("url", queryURL).Int("total", results.Total).Int("records", len(records)).Msg("Catalog query page processed")
	return records, nil
}

// preview builds a record from the JSON preview of a title. The preview
// endpoint lives under /film/ for shows too.
func (c *SourceClient) preview(ctx context.Context, id int64, kind models.MediaKind) (*models.TitleRecord, error) {
	body, err := c.page(ctx, fmt.Sprintf("%s/api/v1/film/%d/preview", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("fetch preview: %w", err)
	}
	var p models.CatalogPreview
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}

	genres := make([]taxonomy.Genre, 0, len(p.Genres))
	for _, g := range p.Genres {
		genre, ok := taxonomy.GenreByID(g.ID)
		if !ok {
			return nil, fmt.Errorf("unknown genre id %d", g.ID)
		}
		genres = append(genres, genre)
	}

	name := p.DisplayName()
	rec := &models.TitleRecord{
		ID:     id,
		URL:    fmt.Sprintf("%s/film/%s-%d-%d", c.baseURL, url.PathEscape(name), p.Year, id),
		Name:   name,
		Year:   models.SingleYear(p.Year),
		Genres: genres,
		Kind:   kind,
	}
	if p.Duration > 0 {
		d := p.Duration
		rec.Runtime = &d
	}

	// Alternate names are best effort here: a title without a "titles" page is
	// still searchable by its display name.
	pairs, err := c.AlternateNames(ctx, rec.URL)
	if err != nil {
		logger := config.GetLogger()
		logger.Debug().Err(err).Int64("id", id).Msg("No alternate titles for preview")
		pairs = nil
	}
	if len(pairs) == 0 {
		pairs = []models.NamePair{{Name: name}}
	}
	rec.AlternateNames = ranking.Rank(pairs)
	return rec, nil
}
