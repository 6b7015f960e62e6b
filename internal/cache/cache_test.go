package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
)

func counterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestNew_Memory(t *testing.T) {
	c, err := New("memory", ProviderConfig{Size: 10, TTL: time.Hour})
	if err != nil {
		t.Fatalf("New memory: %v", err)
	}
	defer c.Close()

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Expected miss on empty cache")
	}

	c.Set("k", []byte("v"))
	val, ok := c.Get("k")
	if !ok || string(val) != "v" {
		t.Fatalf("Get(k) = %q, %v; want v, true", val, ok)
	}
	if !c.Contains("k") || c.Len() != 1 {
		t.Errorf("Contains/Len mismatch: %v, %d", c.Contains("k"), c.Len())
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New("nonexistent", ProviderConfig{}); err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestRegisteredProviders(t *testing.T) {
	names := RegisteredProviders()
	if len(names) != 2 || names[0] != "memory" || names[1] != "redis" {
		t.Errorf("RegisteredProviders() = %v, want [memory redis]", names)
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	Register("memory", newMemoryCache)
}

func TestProviderConfig_Defaults(t *testing.T) {
	cfg := ProviderConfig{}.withDefaults()
	if cfg.Size != defaultSize || cfg.TTL != defaultTTL || cfg.KeyPrefix != defaultKeyPrefix {
		t.Errorf("withDefaults() = %+v", cfg)
	}

	cfg = ProviderConfig{Size: 5, TTL: time.Minute, KeyPrefix: "x:"}.withDefaults()
	if cfg.Size != 5 || cfg.TTL != time.Minute || cfg.KeyPrefix != "x:" {
		t.Errorf("withDefaults() overwrote explicit values: %+v", cfg)
	}
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c, err := New("memory", ProviderConfig{
		Size:    2,
		TTL:     time.Hour,
		OnEvict: func(key string, _ []byte) { evicted = append(evicted, key) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Get("a")
	c.Set("c", []byte("3"))

	if c.Contains("b") {
		t.Error("Expected b to be evicted")
	}
	if !c.Contains("a") || !c.Contains("c") {
		t.Error("Expected a and c to remain")
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("evicted = %v, want [b]", evicted)
	}
}

func TestMemoryCache_Expires(t *testing.T) {
	c, err := New("memory", ProviderConfig{Size: 10, TTL: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Set("k", []byte("v"))
	time.Sleep(150 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestInstrumentedCache_CountsHitsMissesEvictions(t *testing.T) {
	registerer = prometheus.NewRegistry()
	t.Cleanup(func() { registerer = prometheus.DefaultRegisterer })

	const group = "test_instrumented"
	c, err := New("memory", ProviderConfig{Size: 1, TTL: time.Hour, Group: group})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	hits := counterValue(HitsTotal, group)
	misses := counterValue(MissesTotal, group)
	evictions := counterValue(EvictionsTotal, group)

	c.Get("a")
	c.Set("a", []byte("1"))
	c.Get("a")
	c.Set("b", []byte("2"))

	if got := counterValue(HitsTotal, group) - hits; got != 1 {
		t.Errorf("hits diff = %.0f, want 1", got)
	}
	if got := counterValue(MissesTotal, group) - misses; got != 1 {
		t.Errorf("misses diff = %.0f, want 1", got)
	}
	if got := counterValue(EvictionsTotal, group) - evictions; got != 1 {
		t.Errorf("evictions diff = %.0f, want 1", got)
	}
}

func TestEntriesCollector_ReportsLiveSize(t *testing.T) {
	reg := prometheus.NewRegistry()
	registerer = reg
	t.Cleanup(func() { registerer = prometheus.DefaultRegisterer })

	c, err := New("memory", ProviderConfig{Size: 10, TTL: time.Hour, Group: "test_entries"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var found bool
	for _, f := range families {
		if f.GetName() == "cache_entries" {
			found = true
			if v := f.GetMetric()[0].GetGauge().GetValue(); v != 2 {
				t.Errorf("cache_entries = %.0f, want 2", v)
			}
		}
	}
	if !found {
		t.Fatal("cache_entries not gathered")
	}

	_ = c.Close()
	families, _ = reg.Gather()
	for _, f := range families {
		if f.GetName() == "cache_entries" {
			t.Error("cache_entries still registered after Close")
		}
	}
}

type recordingLogger struct{ msgs []string }

func (r *recordingLogger) Error(msg string, _ error) { r.msgs = append(r.msgs, msg) }

func TestZerologLogger(t *testing.T) {
	var _ Logger = &recordingLogger{}
	l := NewZerologLogger(zerolog.Nop())
	l.Error("ignored", errors.New("boom"))
}
