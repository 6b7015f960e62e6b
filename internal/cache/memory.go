package cache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

// memoryCache is an in-process expirable LRU.
type memoryCache struct {
	pages *lru.LRU[string, []byte]
}

func newMemoryCache(cfg ProviderConfig) (Cache, error) {
	cfg = cfg.withDefaults()
	return &memoryCache{
		pages: lru.NewLRU[string, []byte](cfg.Size, lru.EvictCallback[string, []byte](cfg.OnEvict), cfg.TTL),
	}, nil
}

func (m *memoryCache) Get(key string) ([]byte, bool) { return m.pages.Get(key) }

func (m *memoryCache) Set(key string, value []byte) { m.pages.Add(key, value) }

func (m *memoryCache) Contains(key string) bool { return m.pages.Contains(key) }

func (m *memoryCache) Len() int { return m.pages.Len() }

func (m *memoryCache) Close() error { return nil }
