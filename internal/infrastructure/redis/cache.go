package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache implements ports.Cache using a Redis client.
type RedisCache struct {
	r redis.Cmdable
	// optional key prefix to namespace entries
	prefix string
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(r redis.Cmdable, prefix string) *RedisCache {
	return &RedisCache{r: r, prefix: prefix}
}

func (c *RedisCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get implements Cache.Get.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.r.Get(ctx, c.namespaced(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements Cache.Set.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.r.Set(ctx, c.namespaced(key), value, ttl).Err()
}

// Delete implements Cache.Delete.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ns := make([]string, len(keys))
	for i, k := range keys {
		ns[i] = c.namespaced(k)
	}
	return c.r.Del(ctx, ns...).Err()
}

// Track adds member to the set at key and refreshes its TTL.
func (c *RedisCache) Track(ctx context.Context, key, member string, ttl time.Duration) error {
	ns := c.namespaced(key)
	pipe := c.r.TxPipeline()
	pipe.SAdd(ctx, ns, member)
	if ttl > 0 {
		pipe.Expire(ctx, ns, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Members returns the members of the set at key.
func (c *RedisCache) Members(ctx context.Context, key string) ([]string, error) {
	members, err := c.r.SMembers(ctx, c.namespaced(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return members, err
}
