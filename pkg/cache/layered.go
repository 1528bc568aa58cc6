package cache

import (
	"context"
	"time"
)

// LayeredCache implements two-level cache (L1: Memory, L2: Redis).
type LayeredCache struct {
	memCache   *MemoryCache
	redisCache *RedisCache
}

// NewLayeredCache creates a layered cache with memory and Redis.
func NewLayeredCache(redisCache *RedisCache, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{
		MemoryMaxSize: 1000,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	memOpts := append([]MemoryOption{WithMemoryMaxSize(cfg.MemoryMaxSize)}, cfg.MemoryOptions...)
	return &LayeredCache{
		memCache:   NewMemoryCache(memOpts...),
		redisCache: redisCache,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	// Write-through: Redis first, then memory
	if err := lc.redisCache.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return lc.memCache.Set(ctx, key, value, ttl)
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	if data, err := lc.memCache.getRaw(key); err == nil {
		return decode(data, dest)
	}

	data, ttl, err := lc.redisCache.getWithTTL(ctx, key)
	if err != nil {
		return err
	}

	// Promote with the remaining Redis lifetime so L1 never outlives L2.
	if ttl > 0 {
		_ = lc.memCache.setRaw(key, data, ttl)
	}
	return decode(data, dest)
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.memCache.Delete(ctx, keys...)
	return lc.redisCache.Delete(ctx, keys...)
}

func (lc *LayeredCache) Clear(ctx context.Context) error {
	_ = lc.memCache.Clear(ctx)
	return lc.redisCache.Clear(ctx)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	return lc.redisCache.Close()
}
