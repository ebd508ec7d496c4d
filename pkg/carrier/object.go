package carrier

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// ObjectGetter reads objects by key. storage.S3Storage satisfies it.
type ObjectGetter interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Object returns a loader reading the table from object storage.
// The format is inferred from the key extension.
func Object(store ObjectGetter, key string) Loader {
	return LoaderFunc(func(ctx context.Context) ([]Entry, error) {
		f, err := FormatFromPath(key)
		if err != nil {
			return nil, err
		}

		rc, err := store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(io.LimitReader(rc, DefaultMaxSourceSize+1))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		if len(data) > DefaultMaxSourceSize {
			return nil, ErrSourceTooLarge
		}

		return Decode(bytes.NewReader(data), f)
	})
}
