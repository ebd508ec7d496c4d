package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Redis is a Cache backed by a Redis server, shared by every instance that
// points at it. The client lifecycle belongs to the caller (see pkg/redis).
type Redis[V any] struct {
	client     redis.UniversalClient
	codec      Codec[V]
	prefix     string
	defaultTTL time.Duration
	group      singleflight.Group
}

type redisSettings struct {
	prefix     string
	defaultTTL time.Duration
}

// RedisSetting configures a Redis cache.
type RedisSetting func(*redisSettings)

// WithPrefix namespaces keys as "{prefix}:{key}".
func WithPrefix(prefix string) RedisSetting {
	return func(s *redisSettings) {
		s.prefix = prefix
	}
}

// WithRedisDefaultTTL sets the TTL used when Set is called with zero.
// Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisSetting {
	return func(s *redisSettings) {
		s.defaultTTL = d
	}
}

// NewRedis creates a Redis-backed cache. A nil codec means JSON.
func NewRedis[V any](client redis.UniversalClient, codec Codec[V], settings ...RedisSetting) *Redis[V] {
	s := &redisSettings{defaultTTL: time.Hour}
	for _, fn := range settings {
		fn(s)
	}
	if codec == nil {
		codec = JSON[V]{}
	}

	return &Redis[V]{
		client:     client,
		codec:      codec,
		prefix:     s.prefix,
		defaultTTL: s.defaultTTL,
	}
}

// Get implements Cache.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}

	return r.codec.Decode(data)
}

// Set implements Cache.
func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.codec.Encode(value)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = r.defaultTTL
	}

	// Redis treats 0 as no expiration.
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

// Delete implements Cache.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *Redis[V]) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

var _ Cache[any] = (*Redis[any])(nil)

func (r *Redis[V]) flight() *singleflight.Group {
	return &r.group
}
