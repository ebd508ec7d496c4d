package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache stores values of type V with a TTL.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: the cache's default TTL applies
//   - Negative: entry never expires
type Cache[V any] interface {
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Codec converts values to bytes for backends that store raw data.
type Codec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(data []byte) (V, error)
}

// JSON is the default Codec.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return data, nil
}

func (JSON[V]) Decode(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrDecode, err)
	}
	return v, nil
}

// flighter is implemented by caches that deduplicate concurrent misses.
// Each instance owns its group so equal keys on different caches never
// share a result.
type flighter interface {
	flight() *singleflight.Group
}

// GetOrSet returns the cached value for key, or calls fn on a miss and
// stores its result for the TTL fn returns. Concurrent misses for the same
// key on the same Memory or Redis cache share a single fn call. Errors from
// fn are returned and not cached. A failed Set does not fail the call.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	type result struct {
		val V
		ttl time.Duration
	}

	load := func() (any, error) {
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return result{val: val, ttl: ttl}, nil
	}

	var (
		res any
		err error
	)
	if f, ok := c.(flighter); ok {
		res, err, _ = f.flight().Do(key, load)
	} else {
		res, err = load()
	}
	if err != nil {
		var zero V
		return zero, err
	}

	r := res.(result)
	_ = c.Set(ctx, key, r.val, r.ttl)

	return r.val, nil
}
