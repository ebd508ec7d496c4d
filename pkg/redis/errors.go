package redis

import "errors"

var (
	// ErrURLRequired is returned by Open when REDIS_URL is empty.
	ErrURLRequired = errors.New("redis: connection url is required")

	// ErrInvalidURL is returned for anything other than a redis:// or
	// rediss:// URL that go-redis can parse.
	ErrInvalidURL = errors.New("redis: invalid connection url")

	// ErrUnreachable is returned when no PING succeeded within the
	// configured attempts.
	ErrUnreachable = errors.New("redis: server unreachable")

	// ErrPingFailed is reported by the readiness check when the carrier
	// table cache cannot be reached.
	ErrPingFailed = errors.New("redis: carrier cache ping failed")
)
