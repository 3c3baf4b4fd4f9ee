package content

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// Cache stores sorted listings by key. Implementations must not retain or
// mutate the slices they are given.
type Cache interface {
	Get(ctx context.Context, key string) ([]Record, bool)
	Set(ctx context.Context, key string, records []Record)
}

// MemoryCache keeps listings in an in-process LRU.
type MemoryCache struct {
	lru *cache.LRU[string, []Record]
}

// NewMemoryCache holds up to size listings, each for at most ttl (zero means no expiry).
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: cache.New(size, cache.WithTTL[string, []Record](ttl))}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]Record, bool) {
	return c.lru.Get(key)
}

func (c *MemoryCache) Set(_ context.Context, key string, records []Record) {
	stored := make([]Record, len(records))
	copy(stored, records)
	c.lru.Put(key, stored)
}

// KV is the byte store behind RedisCache; *redis.Store satisfies it.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// RedisCache stores listings as JSON in a shared key-value store.
// Store failures degrade to cache misses.
type RedisCache struct {
	kv     KV
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache creates a cache over kv. A nil logger discards.
func NewRedisCache(kv KV, ttl time.Duration, log *slog.Logger) *RedisCache {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &RedisCache{kv: kv, ttl: ttl, logger: log}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]Record, bool) {
	raw, err := c.kv.Get(ctx, "content:"+key)
	if err != nil {
		c.logger.WarnContext(ctx, "content cache read failed", logger.Error(err))
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		c.logger.WarnContext(ctx, "content cache entry corrupt", logger.Error(err))
		return nil, false
	}
	return records, true
}

func (c *RedisCache) Set(ctx context.Context, key string, records []Record) {
	raw, err := json.Marshal(records)
	if err != nil {
		c.logger.WarnContext(ctx, "content cache encode failed", logger.Error(err))
		return
	}
	if err := c.kv.Set(ctx, "content:"+key, raw, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "content cache write failed", logger.Error(err))
	}
}
