package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache metrics, labelled by cache group ("search_pages", "source_pages").
var (
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits.",
		},
		[]string{"cache"},
	)

	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses.",
		},
		[]string{"cache"},
	)

	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of entries evicted from the cache.",
		},
		[]string{"cache"},
	)

	// LoadsTotal counts Loader fetches on a miss. result is "fetched", "shared" or "error".
	LoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_loads_total",
			Help: "Total number of loads performed after a cache miss.",
		},
		[]string{"cache", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		EvictionsTotal,
		LoadsTotal,
	)
}

// entriesCollector reports the size of one cache group by calling size at scrape
// time, so entries expired by redis are never over-counted.
type entriesCollector struct {
	desc *prometheus.Desc
	size func() int
}

func (c *entriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *entriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.size()))
}

var (
	collectorsMu sync.Mutex
	collectors   = make(map[string]*entriesCollector)
	// registerer is swapped for an isolated registry in tests.
	registerer prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesCollector installs the cache_entries gauge for group, replacing
// a collector left over from a previous cache of the same group.
func registerEntriesCollector(group string, size func() int) *entriesCollector {
	c := &entriesCollector{
		desc: prometheus.NewDesc(
			"cache_entries",
			"Current number of entries in the cache.",
			nil,
			prometheus.Labels{"cache": group},
		),
		size: size,
	}

	collectorsMu.Lock()
	defer collectorsMu.Unlock()

	if old, ok := collectors[group]; ok {
		registerer.Unregister(old)
	}
	collectors[group] = c
	_ = registerer.Register(c)
	return c
}

func unregisterEntriesCollector(group string) {
	collectorsMu.Lock()
	defer collectorsMu.Unlock()

	if c, ok := collectors[group]; ok {
		registerer.Unregister(c)
		delete(collectors, group)
	}
}
