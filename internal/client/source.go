package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/cache"
	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/metrics"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/Belphemur/filmed/internal/parser"
	"github.com/Belphemur/filmed/internal/ranking"
	"github.com/Belphemur/filmed/internal/taxonomy"
	"golang.org/x/sync/errgroup"
)

// pageBatchSize bounds how many entries or pages are processed in parallel.
const pageBatchSize = 10

// SourceClient reads a logged-in user's lists from the source catalog and
// turns every entry into a TitleRecord ready for resolution.
type SourceClient struct {
	sessions  *SessionPool
	baseURL   string
	pages     *cache.Loader
	voteBoxes parser.Parser[models.VoteBox]
	titles    parser.Parser[models.NamePair]
	filmPage  parser.SingleResultParser[*int]
	settings  parser.SingleResultParser[string]
}

// NewSourceClient creates a source catalog client. Title pages and alternate
// title pages are cached through pages, which may be nil.
func NewSourceClient(cfg *config.Config, sessions *SessionPool, pages *cache.Loader) *SourceClient {
	return &SourceClient{
		sessions:  sessions,
		baseURL:   strings.TrimRight(cfg.SourceDomain, "/"),
		pages:     pages,
		voteBoxes: parser.NewVoteBoxParser(),
		titles:    parser.NewAlternateTitlesParser(),
		filmPage:  parser.NewFilmPageParser(),
		settings:  parser.NewUsernameParser(),
	}
}

// Username returns the name of the logged-in user, or ErrInvalidCredentials
// when the session cookies are missing or expired.
func (c *SourceClient) Username(ctx context.Context) (string, error) {
	body, err := fetch(ctx, c.sessions.Client(), c.baseURL+"/settings")
	if err != nil {
		return "", fmt.Errorf("fetch settings: %w", err)
	}
	name, err := c.settings.ParseHtml(bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	logger := config.GetLogger()
	logger.Info().Str("username", name).Msg("Logged in to source catalog")
	return name, nil
}

// Counts fetches how many films and shows the user rated and how many titles
// are on the watch-list. The four count endpoints are queried in parallel.
func (c *SourceClient) Counts(ctx context.Context, username string) (models.UserCounts, error) {
	var movies, shows, wantFilms, wantShows int

	g, gctx := errgroup.WithContext(ctx)
	for _, q := range []struct {
		list, kind string
		dst        *int
	}{
		{"votes", "film", &movies},
		{"votes", "serial", &shows},
		{"want2see", "film", &wantFilms},
		{"want2see", "serial", &wantShows},
	} {
		g.Go(func() error {
			n, err := c.count(gctx, username, q.list, q.kind)
			if err != nil {
				return err
			}
			*q.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.UserCounts{}, err
	}

	counts := models.UserCounts{Movies: movies, Shows: shows, Watchlist: wantFilms + wantShows}
	logger := config.GetLogger()
	logger.Info().
		Str("username", username).
		Int("movies", counts.Movies).
		Int("shows", counts.Shows).
		Int("watchlist", counts.Watchlist).
		Msg("Fetched user counts")
	return counts, nil
}

func (c *SourceClient) count(ctx context.Context, username, list, kind string) (int, error) {
	countURL := fmt.Sprintf("%s/api/v1/user/%s/%s/%s/count", c.baseURL, username, list, kind)
	body, err := fetch(ctx, c.sessions.Client(), countURL)
	if err != nil {
		return 0, fmt.Errorf("fetch %s %s count: %w", list, kind, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return 0, fmt.Errorf("parse %s %s count %q: %w", list, kind, body, err)
	}
	return n, nil
}

// PageURL returns the address of one page of a user's list.
func (c *SourceClient) PageURL(page models.UserPage) string {
	return fmt.Sprintf("%s/user/%s/%s?page=%d", c.baseURL, page.Username, page.List, page.Number)
}

// StreamUser streams the records of every page of the user's lists, films
// first. Pages are fetched in parallel batches; the channel is closed when
// every page was processed or ctx is cancelled.
func (c *SourceClient) StreamUser(ctx context.Context, username string, counts models.UserCounts) <-chan models.StreamResult[*models.TitleRecord] {
	ch := make(chan models.StreamResult[*models.TitleRecord])

	go func() {
		defer close(ch)
		pages := counts.PagesFor(username)
		logger := config.GetLogger()
		logger.Info().Str("username", username).Int("pages", len(pages)).Msg("Streaming user lists")

		var g errgroup.Group
		g.SetLimit(pageBatchSize)
		for _, page := range pages {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				for result := range c.StreamPage(ctx, page) {
					select {
					case ch <- result:
					case <-ctx.Done():
						return nil
					}
				}
				return nil
			})
		}
		_ = g.Wait()
	}()

	return ch
}

// StreamPage streams one record per entry of a user list page. Entries are
// built in parallel; an entry that cannot be built is sent as an error and
// the stream continues.
func (c *SourceClient) StreamPage(ctx context.Context, page models.UserPage) <-chan models.StreamResult[*models.TitleRecord] {
	ch := make(chan models.StreamResult[*models.TitleRecord])

	go func() {
		defer close(ch)
		logger := config.GetLogger()
		pageURL := c.PageURL(page)

		send := func(r models.StreamResult[*models.TitleRecord]) bool {
			select {
			case ch <- r:
				return true
			case <-ctx.Done():
				return false
			}
		}

		body, err := fetch(ctx, c.sessions.Client(), pageURL)
		if err != nil {
			send(models.StreamResult[*models.TitleRecord]{Err: fmt.Errorf("fetch %s: %w", pageURL, err)})
			return
		}
		boxes, err := c.voteBoxes.ParseHtml(bytes.NewReader(body))
		if err != nil {
			send(models.StreamResult[*models.TitleRecord]{Err: fmt.Errorf("parse %s: %w", pageURL, err)})
			return
		}
		logger.Debug().Str("url", pageURL).Int("entries", len(boxes)).Msg("Parsed user page")

		var g errgroup.Group
		g.SetLimit(pageBatchSize)
		for _, box := range boxes {
			g.Go(func() error {
				rec, err := c.record(ctx, box, page.List)
				if err != nil {
					metrics.SourceRecordsTotal.WithLabelValues("error").Inc()
					logger.Warn().Err(err).Int64("id", box.ID).Str("name", box.Name).Msg("Failed to build record")
					send(models.StreamResult[*models.TitleRecord]{Err: fmt.Errorf("record %d: %w", box.ID, err)})
					return nil
				}
				metrics.SourceRecordsTotal.WithLabelValues("ok").Inc()
				send(models.StreamResult[*models.TitleRecord]{Value: rec})
				return nil
			})
		}
		_ = g.Wait()
	}()

	return ch
}

// record builds a TitleRecord from a vote box: categories and year come from
// the box, alternate names and runtime from the title's pages, and the user's
// vote from the API for rated lists.
func (c *SourceClient) record(ctx context.Context, box models.VoteBox, list models.ListKind) (*models.TitleRecord, error) {
	genres, err := taxonomy.LookupLabels(box.GenreLabels)
	if err != nil {
		return nil, err
	}

	year, err := models.ParseYear(box.YearText)
	if err != nil {
		var yearErr *apperrors.InvalidYearError
		if errors.As(err, &yearErr) {
			yearErr.RecordID = box.ID
		}
		return nil, err
	}

	rec := &models.TitleRecord{
		ID:     box.ID,
		URL:    c.baseURL + box.Path,
		Name:   box.Name,
		Year:   year,
		Genres: genres,
		Kind:   kindOf(list, box.Path),
	}

	pairs, err := c.AlternateNames(ctx, rec.URL)
	if err != nil {
		return nil, err
	}
	rec.AlternateNames = ranking.Rank(pairs)

	if rec.Runtime, err = c.Runtime(ctx, rec.URL); err != nil {
		return nil, err
	}

	switch list {
	case models.ListWatchlist:
		rec.Watchlisted = true
	default:
		vote, err := c.VoteDetails(ctx, rec.Kind, rec.ID)
		if err != nil {
			return nil, err
		}
		rating := vote.Rate
		rec.Rating = &rating
		rec.Favorited = vote.Favorite
	}
	return rec, nil
}

// kindOf derives the media kind from the list, or from the title link for
// the mixed watch-list.
func kindOf(list models.ListKind, path string) models.MediaKind {
	switch list {
	case models.ListShows:
		return models.KindShow
	case models.ListWatchlist:
		if strings.Contains(path, "/serial/") {
			return models.KindShow
		}
	}
	return models.KindMovie
}

// AlternateNames reads the unranked name/label pairs from the title's "titles" page.
func (c *SourceClient) AlternateNames(ctx context.Context, titleURL string) ([]models.NamePair, error) {
	body, err := c.page(ctx, titleURL+"/titles")
	if err != nil {
		return nil, fmt.Errorf("fetch alternate titles: %w", err)
	}
	return c.titles.ParseHtml(bytes.NewReader(body))
}

// Runtime reads the runtime in minutes from the title page, nil when unknown.
func (c *SourceClient) Runtime(ctx context.Context, titleURL string) (*int, error) {
	body, err := c.page(ctx, titleURL)
	if err != nil {
		return nil, fmt.Errorf("fetch title page: %w", err)
	}
	runtime, err := c.filmPage.ParseHtml(bytes.NewReader(body))
	if err != nil {
		var runtimeErr *apperrors.InvalidRuntimeError
		if errors.As(err, &runtimeErr) {
			runtimeErr.URL = titleURL
		}
		return nil, err
	}
	return runtime, nil
}

// VoteDetails fetches the user's vote on a title. A payload that does not
// decode means the JWT expired, reported as ErrInvalidSession.
func (c *SourceClient) VoteDetails(ctx context.Context, kind models.MediaKind, id int64) (models.VoteDetails, error) {
	segment := "film"
	if kind == models.KindShow {
		segment = "serial"
	}
	detailsURL := fmt.Sprintf("%s/api/v1/logged/vote/%s/%d/details", c.baseURL, segment, id)

	body, err := fetch(ctx, c.sessions.Client(), detailsURL)
	if err != nil {
		return models.VoteDetails{}, fmt.Errorf("fetch vote details: %w", err)
	}

	var vote models.VoteDetails
	if err := json.Unmarshal(body, &vote); err != nil {
		logger := config.GetLogger()
		logger.Debug().Str("url", detailsURL).Bytes("body", body).Msg("Undecodable vote details")
		return models.VoteDetails{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidSession, err)
	}
	return vote, nil
}

func (c *SourceClient) page(ctx context.Context, pageURL string) ([]byte, error) {
	return c.pages.Get(ctx, cache.PageKey(pageURL), func(ctx context.Context) ([]byte, error) {
		return fetch(ctx, c.sessions.Client(), pageURL)
	})
}
