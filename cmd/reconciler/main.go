package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Belphemur/filmed/internal/cache"
	"github.com/Belphemur/filmed/internal/client"
	"github.com/Belphemur/filmed/internal/config"
	grpcserver "github.com/Belphemur/filmed/internal/grpc"
	"github.com/Belphemur/filmed/internal/metrics"
	"github.com/Belphemur/filmed/internal/reporting"
	"github.com/Belphemur/filmed/internal/resolver"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		reporting.Capture(err, map[string]string{"component": "reconciler"})
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Reconciler stopped with an error")
		os.Exit(1)
	}
}

// run serves the reconciler until SIGINT or SIGTERM, then drains in-flight
// calls and stops the metrics endpoint.
func run() error {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	flush, err := reporting.Init(cfg, version)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialise Sentry, continuing without error reporting")
	}
	defer flush()

	pageCache, err := cache.NewFromConfig(cfg, "search")
	if err != nil {
		return fmt.Errorf("create %s page cache: %w", cfg.Cache.Provider, err)
	}
	defer pageCache.Close()

	searchClient := client.NewSearchClient(cfg, cache.NewLoader(pageCache, "search"))
	grpcServer := grpcserver.NewGRPCServer(resolver.New(searchClient))

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", address, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Serving Prometheus metrics")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serve metrics: %w", err)
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shut down metrics server")
			}
		}()
	}

	go func() {
		logger.Info().
			Str("version", version).
			Str("address", address).
			Str("service", grpcserver.ServiceName).
			Str("search_domain", cfg.SearchDomain).
			Msg("Serving gRPC")
		if err := grpcServer.Serve(listener); err != nil {
			errCh <- fmt.Errorf("serve gRPC: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received, draining gRPC calls")
		grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		grpcServer.Stop()
		return err
	}
}
