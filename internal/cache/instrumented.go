package cache

// instrumentedCache counts hits and misses of inner under group.
// Evictions are counted by the OnEvict hook New installs.
type instrumentedCache struct {
	inner Cache
	group string
}

func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	registerEntriesCollector(group, inner.Len)
	return &instrumentedCache{inner: inner, group: group}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return val, ok
}

func (c *instrumentedCache) Set(key string, value []byte) { c.inner.Set(key, value) }

func (c *instrumentedCache) Contains(key string) bool { return c.inner.Contains(key) }

func (c *instrumentedCache) Len() int { return c.inner.Len() }

// Close unregisters the entries gauge and closes inner.
func (c *instrumentedCache) Close() error {
	unregisterEntriesCollector(c.group)
	return c.inner.Close()
}
