package main

import (
	"os"

	"github.com/Belphemur/filmed/internal/config"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Export failed")
		os.Exit(1)
	}
}
