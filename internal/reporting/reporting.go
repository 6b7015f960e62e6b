// Package reporting forwards hard failures to Sentry. Without a DSN every
// function is a no-op.
package reporting

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/filmed/internal/config"
)

const flushTimeout = 2 * time.Second

// Options builds the Sentry client options from the configuration.
func Options(cfg *config.Config, release string) sentry.ClientOptions {
	return sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		Release:          release,
		AttachStacktrace: true,
	}
}

// Init starts the Sentry client when a DSN is configured. The returned
// function flushes buffered events and must be called before exiting.
func Init(cfg *config.Config, release string) (func(), error) {
	if cfg.Sentry.DSN == "" {
		return func() {}, nil
	}
	if err := sentry.Init(Options(cfg, release)); err != nil {
		return func() {}, err
	}
	logger := config.GetLogger()
	logger.Info().Str("environment", cfg.Sentry.Environment).Msg("Sentry error reporting enabled")
	return func() { sentry.Flush(flushTimeout) }, nil
}

// Capture reports err with the given tags.
func Capture(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}
