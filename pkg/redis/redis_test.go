package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/smsgate/pkg/redis"
)

func TestOpen_InvalidURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		err  error
	}{
		{name: "empty", url: "", err: redis.ErrURLRequired},
		{name: "wrong scheme", url: "http://localhost:6379", err: redis.ErrInvalidURL},
		{name: "bad db", url: "redis://localhost:6379/notanumber", err: redis.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := redis.Open(context.Background(), tt.url)
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, client)
		})
	}
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	err := redis.Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, redis.ErrPingFailed)
}

func TestOpen_UnreachableDoesNotWaitAfterLastAttempt(t *testing.T) {
	t.Parallel()

	start := time.Now()
	client, err := redis.Open(context.Background(), "redis://127.0.0.1:1",
		redis.WithRetry(1, time.Minute),
		redis.WithTimeouts(200*time.Millisecond, 200*time.Millisecond),
	)

	require.ErrorIs(t, err, redis.ErrUnreachable)
	require.Nil(t, client)
	require.Less(t, time.Since(start), 10*time.Second)
}
