package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const listCacheKey = "catalog:products:v1"

// ListCache keeps the product listing in Redis for a short TTL. Every
// operation fails open: a cache outage degrades to repository reads.
type ListCache struct {
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewListCache builds a product-list cache. A nil client disables caching.
func NewListCache(cache *redis.Client, ttl time.Duration, logger *slog.Logger) *ListCache {
	return &ListCache{cache: cache, ttl: ttl, logger: logger}
}

// Get returns the cached listing, if present.
func (c *ListCache) Get(ctx context.Context) ([]Product, bool) {
	if c == nil || c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, listCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var products []Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		c.logger.Warn("decode cached product list", slog.Any("error", err))
		return nil, false
	}
	return products, true
}

// Set stores the listing.
func (c *ListCache) Set(ctx context.Context, products []Product) {
	if c == nil || c.cache == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, listCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("store product list cache", slog.Any("error", err))
	}
}

// Invalidate drops the cached listing after a catalog mutation.
func (c *ListCache) Invalidate(ctx context.Context) {
	if c == nil || c.cache == nil {
		return
	}
	if err := c.cache.Del(ctx, listCacheKey).Err(); err != nil {
		c.logger.Warn("invalidate product list cache", slog.Any("error", err))
	}
}
