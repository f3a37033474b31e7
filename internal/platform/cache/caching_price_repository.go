// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"starpupil_backend/internal/feature/prices/domain/entity"
)

// PriceStore は装飾対象のリポジトリが満たすべき操作の集合です。
type PriceStore interface {
	Upsert(ctx context.Context, bar *entity.PriceBar) error
	Find(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error)
}

// CachingPriceRepository decorates a price repository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingPriceRepository struct {
	inner     PriceStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingPriceRepository decorates a price repository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "prices".
func NewCachingPriceRepository(rdb *redis.Client, ttl time.Duration, inner PriceStore, namespace string) *CachingPriceRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Upsert inserts or updates a price bar and invalidates related cache entries.
func (c *CachingPriceRepository) Upsert(ctx context.Context, bar *entity.PriceBar) error {
	// First upsert to the underlying repository
	if err := c.inner.Upsert(ctx, bar); err != nil {
		return err
	}
	// Exit early if Redis is not configured
	if c.rdb == nil {
		return nil
	}

	// Invalidate affected cache entries (keys per symbol)
	prefix := c.cacheKeyPrefix(bar.Symbol)
	_ = c.deleteByPattern(ctx, prefix+"*") // Best effort: don't fail if cache deletion fails
	return nil
}

// Find retrieves price bars, checking cache first then falling back to the database.
func (c *CachingPriceRepository) Find(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Find(ctx, symbol, startDate, endDate, limit)
	}

	key := c.cacheKey(symbol, startDate, endDate, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PriceBar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.Find(ctx, symbol, startDate, endDate, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingPriceRepository) cacheKey(symbol, startDate, endDate string, limit int) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d",
		c.namespace,
		safe(symbol),
		safe(startDate),
		safe(endDate),
		limit,
	)
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingPriceRepository) cacheKeyPrefix(symbol string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(symbol))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPriceRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
