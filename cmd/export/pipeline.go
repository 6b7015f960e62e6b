package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/Belphemur/filmed/internal/resolver"
)

// recordSource lists a logged-in user's records.
type recordSource interface {
	Username(ctx context.Context) (string, error)
	Counts(ctx context.Context, username string) (models.UserCounts, error)
	StreamUser(ctx context.Context, username string, counts models.UserCounts) <-chan models.StreamResult[*models.TitleRecord]
}

// recordWriter stores one exported record.
type recordWriter interface {
	Write(rec *models.TitleRecord) error
}

// pipeline reads every record of the user, resolves them and writes them out.
// Records that fail to build or to export are reported and skipped.
type pipeline struct {
	source      recordSource
	resolver    *resolver.Resolver
	writer      recordWriter
	concurrency int
	onError     func(error)
	logger      zerolog.Logger
}

func (p *pipeline) run(ctx context.Context) (*Summary, error) {
	username, err := p.source.Username(ctx)
	if err != nil {
		return nil, fmt.Errorf("log in: %w", err)
	}
	counts, err := p.source.Counts(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("count user lists: %w", err)
	}

	summary := &Summary{Username: username, Counts: counts}

	var records []*models.TitleRecord
	for result := range p.source.StreamUser(ctx, username, counts) {
		if result.Err != nil {
			summary.RecordErrors++
			p.report(result.Err)
			continue
		}
		records = append(records, result.Value)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read user lists: %w", err)
	}
	summary.Records = len(records)
	p.logger.Info().Str("username", username).Int("records", len(records)).Int("errors", summary.RecordErrors).Msg("User lists read")

	if err := p.resolveAndWrite(ctx, records, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// resolveAndWrite links records to the search catalog in place, then writes
// every record, linked or not.
func (p *pipeline) resolveAndWrite(ctx context.Context, records []*models.TitleRecord, summary *Summary) error {
	for result := range p.resolver.ResolveAll(ctx, records, p.concurrency) {
		var noMatch *apperrors.NoMatchFoundError
		switch {
		case result.Err == nil:
			summary.Resolved++
		case errors.As(result.Err, &noMatch):
			summary.Unresolved++
		default:
			p.logger.Warn().Err(result.Err).Int64("record", result.Value.RecordID).Msg("Resolution interrupted")
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("resolve records: %w", err)
	}

	for _, rec := range records {
		if err := p.writer.Write(rec); err != nil {
			summary.Skipped++
			p.report(err)
		}
	}
	return nil
}

func (p *pipeline) report(err error) {
	p.logger.Warn().Err(err).Msg("Skipping record")
	if p.onError != nil {
		p.onError(err)
	}
}
