// Package cache stores the reference-list reads in Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisListCache keeps each list as a Redis list with a TTL. Empty lists are
// never stored, so an empty LRANGE is a miss.
type RedisListCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisListCache(client redis.UniversalClient, ttl time.Duration) *RedisListCache {
	return &RedisListCache{client: client, ttl: ttl}
}

func (c *RedisListCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	values, err := c.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, false, fmt.Errorf("read cached list %s: %w", key, err)
	}
	if len(values) == 0 {
		return nil, false, nil
	}
	return values, true, nil
}

func (c *RedisListCache) Set(ctx context.Context, key string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]any, len(values))
	for i, v := range values {
		members[i] = v
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.RPush(ctx, key, members...)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write cached list %s: %w", key, err)
	}
	return nil
}

func (c *RedisListCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate cached lists: %w", err)
	}
	return nil
}
