package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()

		resp := Run(context.Background(), nil)
		require.Equal(t, StatusHealthy, resp.Status)
		require.Empty(t, resp.Checks)
	})

	t.Run("one failing check marks unhealthy", func(t *testing.T) {
		t.Parallel()

		resp := Run(context.Background(), Checks{
			"redis": func(context.Context) error { return nil },
			"s3":    func(context.Context) error { return errors.New("bucket missing") },
		})
		require.Equal(t, StatusUnhealthy, resp.Status)
		require.Equal(t, StatusHealthy, resp.Checks["redis"].Status)
		require.Equal(t, "bucket missing", resp.Checks["s3"].Error)
	})

	t.Run("timeout cancels slow checks", func(t *testing.T) {
		t.Parallel()

		resp := Run(context.Background(), Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}, WithTimeout(10*time.Millisecond))
		require.Equal(t, StatusUnhealthy, resp.Status)
	})
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	h := ReadinessHandler(Checks{"down": func(context.Context) error { return errors.New("down") }})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, StatusUnhealthy, resp.Status)
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
