package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jlab-tracking/treesearch/pkg/observability"
)

// RedisCache implements Cache against a shared Redis instance, the
// natively-concurrent remote backend an HTTP service behind multiple
// replicas can use instead of a per-instance FileCache.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache returns a Cache backed by a Redis client for addr; the
// client connects on first use rather than here. db selects the
// Redis logical database; pass 0 for the default.
func NewRedisCache(addr string, db int) Cache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
	}
}

// Get retrieves a value from Redis, retrying transient network failures
// with backoff since a busy match service can't afford to fail a lookup
// over one dropped connection.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var miss bool
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = c.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			miss = true
			return nil
		}
		if err != nil {
			return Retryable(err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if miss {
		observability.Cache().OnCacheMiss(ctx, "redis")
		return nil, false, nil
	}
	observability.Cache().OnCacheHit(ctx, "redis")
	return data, true, nil
}

// Set stores a value in Redis. A zero ttl stores the entry without
// expiration, matching Cache's contract.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := RetryWithBackoff(ctx, func() error {
		if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
			return Retryable(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, "redis", len(data))
	return nil
}

// Delete removes a value from Redis. A missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close releases the underlying Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
