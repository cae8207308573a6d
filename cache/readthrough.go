package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Loader produces the authoritative value for a key on a cache miss.
type Loader func(ctx context.Context) (interface{}, error)

// TTLs for the two classes of cached data.
const (
	ListTTL   = time.Hour
	AnswerTTL = 24 * time.Hour
)

// GetOrLoad implements the read-through contract shared by the trending,
// offers and chat endpoints: on a hit the cached JSON is returned
// verbatim; on a miss, or on any cache error, the loader is consulted
// and its result is cached best-effort. The cache is never a source of
// truth: every path succeeds with the cache entirely unavailable, and a
// failed Set only costs a log line.
func GetOrLoad(ctx context.Context, kv KV, key string, ttl time.Duration, load Loader) ([]byte, error) {
	cached, err := kv.Get(ctx, key)
	if err == nil {
		return []byte(cached), nil
	}
	if err != ErrMiss {
		zap.L().Warn("Cache read failed, falling back to store",
			zap.String("key", key), zap.Error(err))
	}

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	if err := kv.Set(ctx, key, string(payload), ttl); err != nil {
		zap.L().Warn("Cache write failed",
			zap.String("key", key), zap.Error(err))
	}

	return payload, nil
}
