// Package cache stores fetched catalog pages so that repeated searches for the
// same title do not hit the catalogs again.
package cache

import "github.com/rs/zerolog"

// EvictCallback is called when an entry is evicted from the cache.
// The redis provider passes a nil value since evicted bodies are not read back.
type EvictCallback func(key string, value []byte)

// Cache is a key-value store with LRU semantics and per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit.
	Get(key string) ([]byte, bool)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte)

	// Contains reports whether key is present without touching LRU order.
	Contains(key string) bool

	// Len returns the number of live entries. For redis this is the size of the data hash.
	Len() int

	// Close releases connections. No-op for the memory provider.
	Close() error
}

// Logger receives errors the cache swallows to keep Get/Set infallible.
type Logger interface {
	Error(msg string, err error)
}

type zerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologLogger adapts a zerolog logger to the cache Logger interface.
func NewZerologLogger(logger zerolog.Logger) Logger {
	return &zerologAdapter{logger: logger.With().Str("component", "cache").Logger()}
}

func (z *zerologAdapter) Error(msg string, err error) {
	z.logger.Error().Err(err).Msg(msg)
}
