package cache

import "github.com/Belphemur/filmed/internal/config"

// NewFromConfig creates the configured page cache, instrumented under group.
func NewFromConfig(cfg *config.Config, group string) (Cache, error) {
	return New(cfg.Cache.Provider, ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           cfg.CacheTTL(),
		Logger:        NewZerologLogger(config.GetLogger()),
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         group,
	})
}
