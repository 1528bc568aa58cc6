package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	data       []byte
	expireAt   time.Time // zero means no expiry
	lastAccess time.Time
}

func (m *memoryItem) expired(now time.Time) bool {
	return !m.expireAt.IsZero() && now.After(m.expireAt)
}

// MemoryCache implements Service using in-memory storage.
// Expired entries are evicted lazily on access; there is no background sweep.
type MemoryCache struct {
	mutex      sync.Mutex
	data       map[string]*memoryItem
	maxSize    int
	defaultTTL time.Duration
	now        func() time.Time
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:    5000,
		DefaultTTL: time.Minute,
		Clock:      time.Now,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &MemoryCache{
		data:       make(map[string]*memoryItem),
		maxSize:    cfg.MaxSize,
		defaultTTL: cfg.DefaultTTL,
		now:        cfg.Clock,
	}
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	return mc.setRaw(key, data, ttl)
}

func (mc *MemoryCache) setRaw(key string, data []byte, ttl time.Duration) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := mc.now()
	if ttl <= 0 {
		ttl = mc.defaultTTL
	}
	var expireAt time.Time
	if ttl > 0 {
		expireAt = now.Add(ttl)
	}

	if _, exists := mc.data[key]; !exists && mc.maxSize > 0 && len(mc.data) >= mc.maxSize {
		mc.evictLocked(now)
	}

	mc.data[key] = &memoryItem{data: data, expireAt: expireAt, lastAccess: now}
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	data, err := mc.getRaw(key)
	if err != nil {
		return err
	}
	return decode(data, dest)
}

func (mc *MemoryCache) getRaw(key string) ([]byte, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := mc.now()
	item, exists := mc.data[key]
	if !exists {
		return nil, ErrCacheMiss
	}
	if item.expired(now) {
		delete(mc.data, key)
		return nil, ErrCacheMiss
	}
	item.lastAccess = now
	return item.data, nil
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	for _, key := range keys {
		delete(mc.data, key)
	}
	return nil
}

func (mc *MemoryCache) Clear(_ context.Context) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	mc.data = make(map[string]*memoryItem)
	return nil
}

// Len reports stored entries, including expired ones not yet touched.
func (mc *MemoryCache) Len() int {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	return len(mc.data)
}

// evictLocked drops one expired entry if any, otherwise the least recently accessed.
func (mc *MemoryCache) evictLocked(now time.Time) {
	var (
		oldestKey  string
		oldestTime time.Time
	)
	for key, item := range mc.data {
		if item.expired(now) {
			delete(mc.data, key)
			return
		}
		if oldestKey == "" || item.lastAccess.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.lastAccess
		}
	}
	if oldestKey != "" {
		delete(mc.data, oldestKey)
	}
}

func (mc *MemoryCache) Close() error {
	return nil
}
