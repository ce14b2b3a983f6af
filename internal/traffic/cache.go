package traffic

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"centre-portal/pkg/utils"
)

// RedisCache stores snapshots as JSON in Redis.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache { return &RedisCache{rdb: rdb} }

func (c *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	return utils.GetJSON(ctx, c.rdb, key, dst)
}

func (c *RedisCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	return utils.SetJSON(ctx, c.rdb, key, v, ttl)
}

// MemoryCache is an in-process Cache for tests and single-instance runs.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memoryEntry{}, now: time.Now}
}

func (c *MemoryCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if !ok || !c.now().Before(e.expires) {
		return false, nil
	}
	return true, json.Unmarshal(e.raw, dst)
}

func (c *MemoryCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{raw: raw, expires: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}
