package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeKV is an in-memory KV with call counters and injectable failures.
type fakeKV struct {
	data   map[string]string
	gets   int
	sets   int
	getErr error
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.gets++
	if f.getErr != nil {
		return "", f.getErr
	}
	val, ok := f.data[key]
	if !ok {
		return "", ErrMiss
	}
	return val, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func TestGetOrLoad_MissThenHit(t *testing.T) {
	kv := newFakeKV()
	loads := 0
	load := func(ctx context.Context) (interface{}, error) {
		loads++
		return []string{"excavator filter", "track roller"}, nil
	}

	first, err := GetOrLoad(context.Background(), kv, "trending_products", ListTTL, load)
	assert.NoError(t, err)
	assert.Equal(t, 1, loads)

	// Second identical query within the TTL window must come from the
	// cache without another store hit.
	second, err := GetOrLoad(context.Background(), kv, "trending_products", ListTTL, load)
	assert.NoError(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)

	var decoded []string
	assert.NoError(t, json.Unmarshal(second, &decoded))
	assert.Equal(t, []string{"excavator filter", "track roller"}, decoded)
}

func TestGetOrLoad_CacheUnavailable(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("connection refused")
	kv.setErr = errors.New("connection refused")

	loads := 0
	load := func(ctx context.Context) (interface{}, error) {
		loads++
		return map[string]int{"stock": 5}, nil
	}

	// A dead cache must never fail the request; both calls fall through
	// to the loader and the responses are identical.
	first, err := GetOrLoad(context.Background(), kv, "all_offers", ListTTL, load)
	assert.NoError(t, err)

	second, err := GetOrLoad(context.Background(), kv, "all_offers", ListTTL, load)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, loads)
}

func TestGetOrLoad_LoaderErrorSurfaces(t *testing.T) {
	kv := newFakeKV()
	load := func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("store down")
	}

	_, err := GetOrLoad(context.Background(), kv, "trending_products", ListTTL, load)
	assert.Error(t, err)
	// Nothing should have been cached.
	assert.Empty(t, kv.data)
}
