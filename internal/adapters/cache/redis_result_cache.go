package cache

import (
	"context"
	"errors"
	"fmt"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisResultCache stores solve results in Redis as JSON with a fixed TTL.
// A zero TTL keeps entries until evicted by Redis.
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{client: client, ttl: ttl}
}

// NewRedisClient builds a client for addr and verifies it with PING.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis client: addr must not be empty")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis client: ping %s: %w", addr, err)
	}

	return client, nil
}

func (r *RedisResultCache) Get(ctx context.Context, key string) (_ domain.Result, _ bool, err error) {
	defer obs.Time(ctx, "cache.redis.Get")(&err)

	if r.client == nil {
		return domain.Result{}, false, errors.New("result cache: redis client is nil")
	}

	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Result{}, false, nil
	}
	if err != nil {
		return domain.Result{}, false, fmt.Errorf("result cache get %q: %w", key, err)
	}

	res, err := decodeResult(b)
	if err != nil {
		return domain.Result{}, false, fmt.Errorf("result cache get %q: %w", key, err)
	}

	return res, true, nil
}

func (r *RedisResultCache) Set(ctx context.Context, key string, res domain.Result) error {
	if r.client == nil {
		return errors.New("result cache: redis client is nil")
	}

	b, err := encodeResult(res)
	if err != nil {
		return fmt.Errorf("result cache set %q: %w", key, err)
	}

	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("result cache set %q: %w", key, err)
	}

	return nil
}
