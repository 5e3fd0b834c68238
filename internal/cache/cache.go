package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tripwise-backend/internal/metrics"
)

// Cache is a read-through JSON cache for external API lookups. A nil
// *Cache is valid and caches nothing, so callers never branch on whether
// redis is configured.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get unmarshals the cached value for key into dest. Missing keys and
// stale payloads both count as misses.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		metrics.Global().CacheMisses.Inc()
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.Global().CacheMisses.Inc()
		return false
	}
	metrics.Global().CacheHits.Inc()
	return true
}

// Set stores val under key for the configured TTL. Failures are silent:
// the cache is an optimization, not a dependency.
func (c *Cache) Set(ctx context.Context, key string, val any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, c.ttl)
}
