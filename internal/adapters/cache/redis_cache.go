package cache

import (
	"context"
	"errors"
	"fmt"
	"fuel-route-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries with native Redis expiry.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// OpenRedisCache parses a redis:// URL and verifies the connection.
func OpenRedisCache(ctx context.Context, redisURL, prefix string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("open redis cache: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis cache: ping %s: %w", opts.Addr, err)
	}

	return NewRedisCache(client, prefix), nil
}

func (r *RedisCache) key(k string) string { return r.prefix + strings.TrimSpace(k) }

func (r *RedisCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "cache.redis.Get")(&err)

	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get redis cache key=%q: %w", key, err)
	}
	return b, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "cache.redis.Set")(&err)

	if strings.TrimSpace(key) == "" {
		return errors.New("set redis cache: empty key")
	}
	if ttl <= 0 {
		return fmt.Errorf("set redis cache key=%q: ttl must be positive", key)
	}

	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("set redis cache key=%q: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Close() error { return r.client.Close() }
