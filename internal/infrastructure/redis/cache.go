package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache implements ports.Cache on plain Redis strings (GET / SET EX).
type RedisCache struct {
	r redis.Cmdable
	// key prefix separating this service's entries from other users of the Redis DB
	prefix string
	// opTimeout bounds every command; zero leaves the caller's deadline alone
	opTimeout time.Duration
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(r redis.Cmdable, prefix string, opTimeout time.Duration) *RedisCache {
	return &RedisCache{r: r, prefix: prefix, opTimeout: opTimeout}
}

func (c *RedisCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

func (c *RedisCache) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.opTimeout)
}

// Get implements Cache.Get. An expired key reads as absent.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	val, err := c.r.Get(ctx, c.namespaced(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements Cache.Set.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()
	return c.r.Set(ctx, c.namespaced(key), value, ttl).Err()
}

// Delete implements Cache.Delete.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()
	return c.r.Del(ctx, c.namespaced(key)).Err()
}
