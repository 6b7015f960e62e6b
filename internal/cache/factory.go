package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

const (
	defaultSize = 2000
	defaultTTL  = 24 * time.Hour
)

// ProviderConfig holds the configuration needed to create a cache instance.
type ProviderConfig struct {
	// Size is the maximum number of entries. Defaults to 2000.
	Size int

	// TTL is the time-to-live of an entry. Defaults to 24h.
	TTL time.Duration

	OnEvict EvictCallback

	// Logger receives errors from backends that cannot return them. Optional.
	Logger Logger

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// KeyPrefix namespaces redis keys. Defaults to "filmed:".
	KeyPrefix string

	// Group labels the cache_* metrics. A non-empty Group wraps the cache with instrumentation.
	Group string
}

func (c ProviderConfig) withDefaults() ProviderConfig {
	if c.Size <= 0 {
		c.Size = defaultSize
	}
	if c.TTL <= 0 {
		c.TTL = defaultTTL
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = defaultKeyPrefix
	}
	return c
}

// Provider is a constructor function that creates a Cache from config.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register makes a provider available to New. It panics on a nil provider or a duplicate name.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a cache with the named provider ("memory" or "redis").
// When cfg.Group is set, hits, misses and evictions are counted under that
// group and the entry count is reported lazily at scrape time.
func New(name string, cfg ProviderConfig) (Cache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	cfg = cfg.withDefaults()
	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	next := cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if next != nil {
			next(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}
	return newInstrumentedCache(inner, group), nil
}

// RegisteredProviders returns the provider names in sorted order.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
