package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Belphemur/filmed/internal/cache"
	"github.com/Belphemur/filmed/internal/client"
	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/export"
	"github.com/Belphemur/filmed/internal/reporting"
	"github.com/Belphemur/filmed/internal/resolver"
)

type options struct {
	directory   string
	concurrency int
}

func (o options) validate() error {
	if o.concurrency <= 0 {
		return fmt.Errorf("--concurrency must be positive, got %d", o.concurrency)
	}
	return nil
}

func newRootCommand() *cobra.Command {
	cfg := config.GetConfig()
	opts := options{
		directory:   cfg.Export.Directory,
		concurrency: cfg.Resolver.Concurrency,
	}

	rootCmd := &cobra.Command{
		Use:           "filmed-export",
		Short:         "Export a filmweb user's ratings and watch-list as IMDb CSV files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			if client.SessionCookie(cfg.Session) == "" {
				return fmt.Errorf("no session configured: set APP_SESSION_TOKEN, APP_SESSION_SESSION_ID and APP_SESSION_JWT")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.directory, "output", "o", opts.directory, "Directory the CSV files are written to")
	rootCmd.PersistentFlags().IntVarP(&opts.concurrency, "concurrency", "c", opts.concurrency, "Records resolved in parallel")

	rootCmd.AddCommand(newQueryCommand(cfg, &opts))
	return rootCmd
}

// runEnv is what every command run shares: an id, error reporting, a
// signal-aware context and the page cache.
type runEnv struct {
	id     string
	logger zerolog.Logger
	tags   map[string]string
	ctx    context.Context
	pages  cache.Cache
	source *client.SourceClient
	search *client.SearchClient

	cleanup []func()
}

func newRunEnv(cmd *cobra.Command, cfg *config.Config) (*runEnv, error) {
	runID := uuid.NewString()
	env := &runEnv{
		id:     runID,
		logger: config.GetLogger().With().Str("run_id", runID).Logger(),
		tags:   map[string]string{"run_id": runID},
	}

	flush, err := reporting.Init(cfg, version)
	if err != nil {
		env.logger.Warn().Err(err).Msg("Failed to initialise Sentry, continuing without error reporting")
	}
	env.cleanup = append(env.cleanup, flush)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	env.ctx = ctx
	env.cleanup = append(env.cleanup, stop)

	env.pages, err = cache.NewFromConfig(cfg, "pages")
	if err != nil {
		env.close()
		return nil, fmt.Errorf("create page cache: %w", err)
	}
	env.cleanup = append(env.cleanup, func() { _ = env.pages.Close() })

	env.source = client.NewSourceClient(cfg, client.NewSessionPool(cfg), cache.NewLoader(env.pages, "source"))
	env.search = client.NewSearchClient(cfg, cache.NewLoader(env.pages, "search"))
	return env, nil
}

func (e *runEnv) close() {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
}

func (e *runEnv) pipeline(writer recordWriter, opts options) *pipeline {
	return &pipeline{
		source:      e.source,
		resolver:    resolver.New(e.search),
		writer:      writer,
		concurrency: opts.concurrency,
		onError: func(err error) {
			reporting.Capture(err, e.tags)
		},
		logger: e.logger,
	}
}

// finish closes the export files and prints the summary of a successful run.
func (e *runEnv) finish(cmd *cobra.Command, writer *export.Writer, summary *Summary, runErr error, dir string) error {
	if err := writer.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close export files: %w", err)
	}
	if runErr != nil {
		reporting.Capture(runErr, e.tags)
		return runErr
	}

	summary.RunID = e.id
	summary.Files = writer.Counts()
	fmt.Fprintln(cmd.OutOrStdout(), summary.Render())
	e.logger.Info().Str("directory", dir).Msg("Export finished")
	return nil
}

func run(cmd *cobra.Command, cfg *config.Config, opts options) error {
	env, err := newRunEnv(cmd, cfg)
	if err != nil {
		return err
	}
	defer env.close()

	writer, err := export.Create(opts.directory)
	if err != nil {
		return err
	}

	summary, runErr := env.pipeline(writer, opts).run(env.ctx)
	return env.finish(cmd, writer, summary, runErr, opts.directory)
}
