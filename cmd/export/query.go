package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Belphemur/filmed/internal/client"
	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/export"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/Belphemur/filmed/internal/taxonomy"
)

// catalogSource runs catalog searches without a session.
type catalogSource interface {
	Query(ctx context.Context, q client.CatalogQuery, page int) ([]*models.TitleRecord, error)
}

type queryOptions struct {
	year   string
	genres []string
	pages  int
}

func newQueryCommand(cfg *config.Config, opts *options) *cobra.Command {
	var qopts queryOptions

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Export the titles of a catalog search to the IMDb watch-list file",
		Long: "Searches the source catalog by release year and genre, links every hit to the " +
			"search catalog and writes the hits to want2see.csv. No session is needed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			q, err := qopts.catalogQuery()
			if err != nil {
				return err
			}
			return runQuery(cmd, cfg, *opts, q, qopts.pages)
		},
	}

	cmd.Flags().StringVarP(&qopts.year, "year", "y", "", `Release year or range, e.g. "2005" or "2015-2019"`)
	cmd.Flags().StringSliceVarP(&qopts.genres, "genre", "g", nil, `Genre label or id, repeatable; genres are OR-ed`)
	cmd.Flags().IntVarP(&qopts.pages, "pages", "p", 1, "Result pages to read")
	return cmd
}

// catalogQuery parses the flags. Genres are source catalog labels such as
// "Dramat" or their numeric ids.
func (o queryOptions) catalogQuery() (client.CatalogQuery, error) {
	var q client.CatalogQuery
	if o.pages <= 0 {
		return q, fmt.Errorf("--pages must be positive, got %d", o.pages)
	}
	if o.year != "" {
		year, err := models.ParseYear(o.year)
		if err != nil {
			return q, fmt.Errorf("--year: %w", err)
		}
		q.Year = &year
	}
	for _, raw := range o.genres {
		genre, err := parseGenre(raw)
		if err != nil {
			return q, fmt.Errorf("--genre: %w", err)
		}
		q.Genres = append(q.Genres, genre)
	}
	return q, nil
}

func parseGenre(raw string) (taxonomy.Genre, error) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.Atoi(raw); err == nil {
		genre, ok := taxonomy.GenreByID(id)
		if !ok {
			return 0, fmt.Errorf("unknown genre id %d", id)
		}
		return genre, nil
	}
	return taxonomy.LookupLabel(raw)
}

func runQuery(cmd *cobra.Command, cfg *config.Config, opts options, q client.CatalogQuery, pages int) error {
	env, err := newRunEnv(cmd, cfg)
	if err != nil {
		return err
	}
	defer env.close()

	writer, err := export.Create(opts.directory)
	if err != nil {
		return err
	}

	summary, runErr := env.pipeline(writer, opts).runQuery(env.ctx, env.source, q, pages)
	return env.finish(cmd, writer, summary, runErr, opts.directory)
}

// runQuery reads up to pages result pages, stopping at the first empty one.
// Hits carry no vote, so every record is exported as a watch-list entry.
func (p *pipeline) runQuery(ctx context.Context, source catalogSource, q client.CatalogQuery, pages int) (*Summary, error) {
	summary := &Summary{Query: describeQuery(q)}

	var records []*models.TitleRecord
	for page := 1; page <= pages; page++ {
		hits, err := source.Query(ctx, q, page)
		if err != nil {
			return nil, fmt.Errorf("query page %d: %w", page, err)
		}
		if len(hits) == 0 {
			break
		}
		for _, rec := range hits {
			rec.Watchlisted = true
		}
		records = append(records, hits...)
	}
	summary.Records = len(records)
	p.logger.Info().Str("query", summary.Query).Int("records", len(records)).Msg("Catalog query read")

	if err := p.resolveAndWrite(ctx, records, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func describeQuery(q client.CatalogQuery) string {
	parts := []string{"any year"}
	if q.Year != nil {
		parts[0] = q.Year.String()
	}
	if len(q.Genres) > 0 {
		names := make([]string, len(q.Genres))
		for i, g := range q.Genres {
			names[i] = g.String()
		}
		parts = append(parts, strings.Join(names, " or "))
	}
	return strings.Join(parts, ", ")
}
