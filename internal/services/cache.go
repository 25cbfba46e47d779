package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// CategoryCache is a read-through Redis cache in front of a
// domain.CategoryRepository. Category records change rarely and are read on
// every post listing, so a short TTL keeps hydration off the database.
type CategoryCache struct {
	inner       domain.CategoryRepository
	redisClient *redis.Client
	ttl         time.Duration
}

// NewCategoryCache wraps inner with Redis caching.
func NewCategoryCache(inner domain.CategoryRepository, redisClient *redis.Client, ttl time.Duration) domain.CategoryRepository {
	return &CategoryCache{inner: inner, redisClient: redisClient, ttl: ttl}
}

// FindByID implements domain.CategoryRepository. Cache failures fall back to
// the underlying repository; a stale or broken entry is never fatal.
func (c *CategoryCache) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	key := "cache:category:" + id

	if raw, err := c.redisClient.Get(ctx, key).Result(); err == nil {
		var cat domain.Category
		if err := json.Unmarshal([]byte(raw), &cat); err == nil {
			return &cat, nil
		}
	}

	cat, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(cat); err == nil {
		c.redisClient.Set(ctx, key, raw, c.ttl)
	}
	return cat, nil
}
