// Package resolver links source catalog records to search catalog titles by
// trying a record's alternate names, best first, until a search result passes
// validation.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/matching"
	"github.com/Belphemur/filmed/internal/metrics"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/rs/zerolog"
)

// Searcher queries the search catalog. A search with no result returns an error
// matching *apperrors.ErrNotFound; any other error is a transient failure.
type Searcher interface {
	StructuredSearch(ctx context.Context, name string, yearStart, yearEnd int) (*models.MatchCandidate, error)
	FreeTextSearch(ctx context.Context, query string) (*models.MatchCandidate, error)
}

// Strategy names one of the two search methods.
type Strategy string

const (
	StrategyStructured Strategy = "structured"
	StrategyFreeText   Strategy = "free_text"
)

// Outcome is the result of a single search attempt.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNotFound
	OutcomeError
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeError:
		return "error"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Attempt records one search call made while resolving a record.
type Attempt struct {
	Strategy  Strategy
	Name      models.AlternateName
	Query     string
	Outcome   Outcome
	Candidate *models.MatchCandidate // Set for Found and Rejected
	Err       error                  // Set for NotFound and Error
}

// Resolution is the terminal state of a record: resolved when Link is set.
type Resolution struct {
	RecordID int64
	Link     *models.ResolvedLink
	Attempts []Attempt
	err      error
}

// Resolved reports whether a link was accepted.
func (r Resolution) Resolved() bool {
	return r.Link != nil
}

// Err returns nil for a resolved record, a *apperrors.NoMatchFoundError when every
// name was tried, or the context error when resolution was cancelled.
func (r Resolution) Err() error {
	return r.err
}

// Resolver drives the search loop. It is safe for concurrent use as long as
// each record is resolved by one goroutine at a time.
type Resolver struct {
	searcher Searcher
	logger   zerolog.Logger
}

// New creates a resolver using s for searches.
func New(s Searcher) *Resolver {
	return &Resolver{
		searcher: s,
		logger:   config.GetLogger().With().Str("component", "resolver").Logger(),
	}
}

// Resolve pops the record's alternate names in rank order and returns at the
// first search result the validator accepts, linking it to the record. The
// remaining names are left in the queue. A record that is already linked is
// returned as resolved without searching.
func (r *Resolver) Resolve(ctx context.Context, rec *models.TitleRecord) Resolution {
	res := Resolution{RecordID: rec.ID}
	if rec.Link != nil {
		res.Link = rec.Link
		return res
	}

	logger := r.logger.With().Int64("record", rec.ID).Str("name", rec.Name).Logger()
	if e := logger.Debug(); e.Enabled() {
		queued := rec.AlternateNames.Snapshot()
		names := make([]string, len(queued))
		for i, n := range queued {
			names[i] = fmt.Sprintf("%s (%d)", n.Name, n.Rank)
		}
		e.Strs("queue", names).Msg("Resolution started")
	}

	for {
		if err := ctx.Err(); err != nil {
			res.err = fmt.Errorf("resolve record %d: %w", rec.ID, err)
			metrics.ResolutionsTotal.WithLabelValues("cancelled").Inc()
			logger.Warn().Err(err).Int("attempts", len(res.Attempts)).Msg("Resolution cancelled")
			return res
		}

		name, ok := rec.AlternateNames.Pop()
		if !ok {
			break
		}

		year := rec.YearStart()
		if cand := r.try(ctx, &res, rec, name, StrategyStructured, fmt.Sprintf("%s (%d)", name.Name, year), func() (*models.MatchCandidate, error) {
			return r.searcher.StructuredSearch(ctx, name.Name, year, year)
		}); cand != nil {
			return r.link(res, rec, cand, logger)
		}

		if err := ctx.Err(); err != nil {
			continue
		}

		query := name.Name + " " + rec.Year.String()
		if cand := r.try(ctx, &res, rec, name, StrategyFreeText, query, func() (*models.MatchCandidate, error) {
			return r.searcher.FreeTextSearch(ctx, query)
		}); cand != nil {
			return r.link(res, rec, cand, logger)
		}
	}

	res.err = &apperrors.NoMatchFoundError{RecordID: rec.ID, Attempts: len(res.Attempts)}
	metrics.ResolutionsTotal.WithLabelValues("unresolved").Inc()
	logger.Info().Int("attempts", len(res.Attempts)).Msg("No match found")
	return res
}

// try runs one search and returns the candidate only if it was accepted.
func (r *Resolver) try(
	ctx context.Context,
	res *Resolution,
	rec *models.TitleRecord,
	name models.AlternateName,
	strategy Strategy,
	query string,
	search func() (*models.MatchCandidate, error),
) *models.MatchCandidate {
	start := time.Now()
	cand, err := search()
	metrics.SearchDurationSeconds.WithLabelValues(string(strategy)).Observe(time.Since(start).Seconds())

	attempt := Attempt{Strategy: strategy, Name: name, Query: query, Candidate: cand, Err: err}
	switch {
	case errors.Is(err, &apperrors.ErrNotFound{}):
		attempt.Outcome = OutcomeNotFound
		attempt.Candidate = nil
	case err != nil:
		attempt.Outcome = OutcomeError
		attempt.Candidate = nil
	case cand == nil:
		attempt.Outcome = OutcomeNotFound
	case matching.Accepts(rec, cand):
		attempt.Outcome = OutcomeFound
	default:
		attempt.Outcome = OutcomeRejected
	}
	res.Attempts = append(res.Attempts, attempt)
	metrics.SearchAttemptsTotal.WithLabelValues(string(strategy), attempt.Outcome.String()).Inc()

	event := r.logger.Debug()
	if attempt.Outcome == OutcomeError && ctx.Err() == nil {
		event = r.logger.Warn()
	}
	event.Int64("record", rec.ID).
		Str("strategy", string(strategy)).
		Str("query", query).
		Int("rank", name.Rank).
		Str("outcome", attempt.Outcome.String()).
		Err(err).
		Msg("Search attempt")

	if attempt.Outcome != OutcomeFound {
		return nil
	}
	return cand
}

func (r *Resolver) link(res Resolution, rec *models.TitleRecord, cand *models.MatchCandidate, logger zerolog.Logger) Resolution {
	if err := rec.SetLink(*cand); err != nil {
		res.err = fmt.Errorf("link record %d: %w", rec.ID, err)
		return res
	}
	res.Link = rec.Link
	metrics.ResolutionsTotal.WithLabelValues("resolved").Inc()
	logger.Info().Str("external_id", cand.ExternalID).Int("attempts", len(res.Attempts)).Msg("Record resolved")
	return res
}
