package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss reports that a key is absent from the cache. Absence is always
// safe to treat as a miss; callers fall back to the store.
var ErrMiss = redis.Nil

// KV is the minimal key-value surface the read-through helper needs.
// *redis.Client satisfies it via RedisKV; tests substitute doubles.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisKV adapts a go-redis client to the KV interface.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// NewClient builds a redis client from redisURL, falling back to a local
// default when the URL does not parse.
func NewClient(redisURL string) *redis.Client {
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		opts = &redis.Options{Addr: "localhost:6379", DB: 0}
	}
	return redis.NewClient(opts)
}
