package config

import (
	"testing"
	"time"
)

func TestGetConfig_Defaults(t *testing.T) {
	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("GetConfig() returned nil")
	}
	if cfg.SourceDomain == "" || cfg.SearchDomain == "" {
		t.Errorf("domains not defaulted: %q %q", cfg.SourceDomain, cfg.SearchDomain)
	}
	if cfg.Session.PoolSize < 1 {
		t.Errorf("Session.PoolSize = %d, want >= 1", cfg.Session.PoolSize)
	}
	if cfg.Resolver.Concurrency < 1 {
		t.Errorf("Resolver.Concurrency = %d, want >= 1", cfg.Resolver.Concurrency)
	}
	if cfg.UserAgent == "" {
		t.Error("UserAgent not defaulted")
	}
}

func TestConfig_Durations(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		get  func(*Config) time.Duration
		want time.Duration
	}{
		{"timeout default", Config{}, (*Config).Timeout, 30 * time.Second},
		{"timeout parsed", Config{ClientTimeout: "5s"}, (*Config).Timeout, 5 * time.Second},
		{"timeout invalid", Config{ClientTimeout: "soon"}, (*Config).Timeout, 30 * time.Second},
		{"timeout negative", Config{ClientTimeout: "-1s"}, (*Config).Timeout, 30 * time.Second},
		{"cache ttl default", Config{}, (*Config).CacheTTL, 24 * time.Hour},
		{"breaker delay default", Config{}, (*Config).BreakerDelay, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.get(&tt.cfg); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_CacheTTLParsed(t *testing.T) {
	cfg := Config{}
	cfg.Cache.TTL = "2h"
	if got := cfg.CacheTTL(); got != 2*time.Hour {
		t.Errorf("CacheTTL() = %v, want 2h", got)
	}
}

func TestGetUserAgent(t *testing.T) {
	if GetUserAgent() == "" {
		t.Error("GetUserAgent() returned empty string")
	}
}
