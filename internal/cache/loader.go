package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// PageKey derives a fixed-size cache key from a page URL.
func PageKey(url string) string {
	return "page:" + strconv.FormatUint(xxhash.Sum64String(url), 16)
}

// sharedLoadTimeout bounds a load that outlives the caller who started it.
const sharedLoadTimeout = time.Minute

// LoadFunc fetches the value for a key on a cache miss.
type LoadFunc func(ctx context.Context) ([]byte, error)

// Loader reads through a Cache. Concurrent misses on the same key share one load.
// Failed loads are not cached.
type Loader struct {
	cache Cache
	group string
	calls singleflight.Group
}

// NewLoader wraps c. group labels the cache_loads_total metric.
func NewLoader(c Cache, group string) *Loader {
	return &Loader{cache: c, group: group}
}

// Get returns the cached value for key, calling load on a miss.
func (l *Loader) Get(ctx context.Context, key string, load LoadFunc) ([]byte, error) {
	if l == nil || l.cache == nil {
		return load(ctx)
	}
	if body, ok := l.cache.Get(key); ok {
		return body, nil
	}

	// The load is shared by every waiter on key, so it must not inherit the
	// cancellation of whichever caller happened to start it.
	ch := l.calls.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()
		body, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		l.cache.Set(key, body)
		return body, nil
	})

	select {
	case <-ctx.Done():
		LoadsTotal.WithLabelValues(l.group, "error").Inc()
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			LoadsTotal.WithLabelValues(l.group, "error").Inc()
			return nil, res.Err
		}
		if res.Shared {
			LoadsTotal.WithLabelValues(l.group, "shared").Inc()
		} else {
			LoadsTotal.WithLabelValues(l.group, "fetched").Inc()
		}
		return res.Val.([]byte), nil
	}
}
