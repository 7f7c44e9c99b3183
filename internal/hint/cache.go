package hint

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"geoquiz/internal/logger"
)

// Cache stores accepted remote hints.
type Cache interface {
	Get(ctx context.Context, key string) (Hint, bool)
	Set(ctx context.Context, key string, h Hint)
}

// CacheKey is hint:<lang>:<id>; an empty lang is stored as "und".
func CacheKey(lang, id string) string {
	if lang == "" {
		lang = "und"
	}
	return "hint:" + lang + ":" + id
}

// RedisCache keeps hints in Redis with a TTL. Redis errors count as misses.
type RedisCache struct {
	rc  *redis.Client
	ttl time.Duration
}

// NewRedisCache returns nil when rc is nil so callers can pass it straight
// to Provider.
func NewRedisCache(rc *redis.Client, ttl time.Duration) *RedisCache {
	if rc == nil {
		return nil
	}
	return &RedisCache{rc: rc, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (Hint, bool) {
	s, err := c.rc.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.L().Debug("hint_cache_get_error", "key", key, "err", err)
		}
		return Hint{}, false
	}
	var h Hint
	if json.Unmarshal([]byte(s), &h) != nil || h.Text == "" {
		return Hint{}, false
	}
	return h, true
}

func (c *RedisCache) Set(ctx context.Context, key string, h Hint) {
	b, err := json.Marshal(h)
	if err != nil {
		return
	}
	if err := c.rc.Set(ctx, key, string(b), c.ttl).Err(); err != nil {
		logger.L().Debug("hint_cache_set_error", "key", key, "err", err)
	}
}
