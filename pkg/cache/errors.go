package cache

import "errors"

var (
	// ErrNotFound is returned for missing or expired keys.
	ErrNotFound = errors.New("cache: entry not found")

	ErrEncode = errors.New("cache: failed to encode value")
	ErrDecode = errors.New("cache: failed to decode value")
)
