package carrier

import (
	"context"
	"time"

	"github.com/dmitrymomot/smsgate/pkg/cache"
)

// Cached wraps a loader so its rows are served from c for ttl.
// Concurrent misses for the same key trigger a single underlying load.
// Use a Redis-backed cache to share a fetched table between instances.
func Cached(l Loader, c cache.Cache[[]Entry], key string, ttl time.Duration) Loader {
	return LoaderFunc(func(ctx context.Context) ([]Entry, error) {
		return cache.GetOrSet(ctx, c, key, func(ctx context.Context) ([]Entry, time.Duration, error) {
			entries, err := l.Load(ctx)
			if err != nil {
				return nil, 0, err
			}
			if len(entries) == 0 {
				return nil, 0, ErrEmptyTable
			}
			return entries, ttl, nil
		})
	})
}
