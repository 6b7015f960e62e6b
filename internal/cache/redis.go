package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "filmed:"
	redisOpTimeout   = 2 * time.Second
)

func init() {
	Register("redis", newRedisCache)
}

// redisCache keeps pages in Redis/Valkey with LRU eviction done in Lua.
//
// Two keys hold everything:
//
//   - {prefix}pages: a hash of key -> body, each field expiring through HPEXPIRE
//     (Redis 7.4+ / Valkey 8+).
//   - {prefix}lru: a sorted set of key -> last access time in microseconds.
//
// Members of the sorted set whose hash field already expired are dropped
// during the next eviction pass.
type redisCache struct {
	client   *redis.Client
	ttl      time.Duration
	maxSize  int
	onEvict  EvictCallback
	logger   Logger
	pagesKey string
	lruKey   string
}

// KEYS[1] = pages hash, KEYS[2] = lru set
// ARGV[1] = now (µs), ARGV[2] = key
var touchScript = redis.NewScript(`
local body = redis.call('HGET', KEYS[1], ARGV[2])
if body then
    redis.call('ZADD', KEYS[2], ARGV[1], ARGV[2])
end
return body
`)

// KEYS[1] = pages hash, KEYS[2] = lru set
// ARGV[1] = body, ARGV[2] = now (µs), ARGV[3] = key, ARGV[4] = max entries, ARGV[5] = ttl (ms)
// Returns the evicted keys.
var storeScript = redis.NewScript(`
local key   = ARGV[3]
local limit = tonumber(ARGV[4])

redis.call('HSET', KEYS[1], key, ARGV[1])
redis.call('HPEXPIRE', KEYS[1], tonumber(ARGV[5]), 'FIELDS', 1, key)
redis.call('ZADD', KEYS[2], ARGV[2], key)

local evicted = {}
local size = redis.call('ZCARD', KEYS[2])
while size > limit do
    local oldest = redis.call('ZPOPMIN', KEYS[2], 1)
    if #oldest == 0 then break end
    redis.call('HDEL', KEYS[1], oldest[1])
    evicted[#evicted + 1] = oldest[1]
    size = size - 1
end
return evicted
`)

func newRedisCache(cfg ProviderConfig) (Cache, error) {
	cfg = cfg.withDefaults()
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddress, err)
	}

	return &redisCache{
		client:   client,
		ttl:      cfg.TTL,
		maxSize:  cfg.Size,
		onEvict:  cfg.OnEvict,
		logger:   cfg.Logger,
		pagesKey: cfg.KeyPrefix + "pages",
		lruKey:   cfg.KeyPrefix + "lru",
	}, nil
}

func (r *redisCache) keys() []string {
	return []string{r.pagesKey, r.lruKey}
}

func (r *redisCache) report(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func now() string {
	return strconv.FormatInt(time.Now().UnixMicro(), 10)
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	body, err := touchScript.Run(ctx, r.client, r.keys(), now(), key).Text()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.report("redis cache get failed", err)
		}
		return nil, false
	}
	return []byte(body), true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	evicted, err := storeScript.Run(ctx, r.client, r.keys(),
		value, now(), key, strconv.Itoa(r.maxSize), strconv.FormatInt(r.ttl.Milliseconds(), 10),
	).StringSlice()
	if err != nil {
		r.report("redis cache set failed", err)
		return
	}

	if r.onEvict == nil {
		return
	}
	for _, k := range evicted {
		r.onEvict(k, nil)
	}
}

func (r *redisCache) Contains(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	ok, err := r.client.HExists(ctx, r.pagesKey, key).Result()
	if err != nil {
		r.report("redis cache contains failed", err)
		return false
	}
	return ok
}

func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := r.client.HLen(ctx, r.pagesKey).Result()
	if err != nil {
		r.report("redis cache len failed", err)
		return 0
	}
	return int(n)
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
