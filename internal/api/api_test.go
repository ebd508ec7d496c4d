package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/smsgate"
	"github.com/dmitrymomot/smsgate/internal/api"
	"github.com/dmitrymomot/smsgate/pkg/carrier"
	"github.com/dmitrymomot/smsgate/pkg/health"
	"github.com/dmitrymomot/smsgate/pkg/mailer"
)

type recordingSender struct {
	err  error
	sent []*mailer.Email
	mu   sync.Mutex
}

func (s *recordingSender) Send(_ context.Context, e *mailer.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, e)
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func newTestAPI(t *testing.T, sender mailer.Sender, opts ...api.Option) http.Handler {
	t.Helper()

	table := carrier.MustTable(map[string]string{
		"CELLCOM": "{0}@cellcom.quiktxt.com",
		"ATT":     "{0}@txt.att.net",
	})
	svc, err := smsgate.New(sender, table, smsgate.WithFromAddress("alerts@example.com"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close(context.Background()) })

	return api.New(svc, opts...).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListCarriers(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t, &recordingSender{})
	rec := doJSON(t, h, http.MethodGet, "/carriers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Carriers []string `json:"carriers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"ATT", "CELLCOM"}, body.Carriers)
}

func TestSendMessage(t *testing.T) {
	t.Parallel()

	t.Run("sync send", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{}
		h := newTestAPI(t, sender)

		rec := doJSON(t, h, http.MethodPost, "/messages",
			`{"message":"hello","phone":5551234567,"carrier":"cellcom"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp api.SendResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "sent", resp.Status)
		assert.Equal(t, "5551234567@cellcom.quiktxt.com", resp.Recipient)

		require.Equal(t, 1, sender.count())
		assert.Equal(t, []string{"5551234567@cellcom.quiktxt.com"}, sender.sent[0].To)
		assert.Equal(t, "hello", sender.sent[0].Text)
	})

	t.Run("async send", func(t *testing.T) {
		t.Parallel()

		h := newTestAPI(t, &recordingSender{})

		rec := doJSON(t, h, http.MethodPost, "/messages",
			`{"message":"hello","phone":5551234567,"carrier":"ATT","async":true}`)

		require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
		var resp api.SendResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "accepted", resp.Status)
		assert.NotEmpty(t, resp.DeliveryID)
		assert.Equal(t, "5551234567@txt.att.net", resp.Recipient)
	})

	tests := []struct {
		name     string
		body     string
		sendErr  error
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown carrier",
			body:     `{"message":"hi","phone":5551234567,"carrier":"verizon"}`,
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  api.CodeUnknownCarrier,
		},
		{
			name:     "empty message",
			body:     `{"message":"","phone":5551234567,"carrier":"cellcom"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  api.CodeInvalidMessage,
		},
		{
			name:     "missing phone",
			body:     `{"message":"hi","carrier":"cellcom"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  api.CodeInvalidPhone,
		},
		{
			name:     "malformed json",
			body:     `{"message":`,
			wantCode: http.StatusBadRequest,
			wantErr:  api.CodeBadRequest,
		},
		{
			name:     "unknown field",
			body:     `{"message":"hi","phone":5551234567,"carrier":"cellcom","to":"x"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  api.CodeBadRequest,
		},
		{
			name:     "provider failure",
			body:     `{"message":"hi","phone":5551234567,"carrier":"cellcom"}`,
			sendErr:  errors.New("provider down"),
			wantCode: http.StatusBadGateway,
			wantErr:  api.CodeProviderFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &recordingSender{err: tt.sendErr}
			h := newTestAPI(t, sender)

			rec := doJSON(t, h, http.MethodPost, "/messages", tt.body)

			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			var resp struct {
				Error     string `json:"error"`
				Code      string `json:"code"`
				RequestID string `json:"request_id"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantErr, resp.Code)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, rec.Header().Get("X-Request-ID"), resp.RequestID)

			if tt.sendErr == nil {
				assert.Zero(t, sender.count())
			}
		})
	}
}

func TestSendMessage_BodyTooLarge(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t, &recordingSender{}, api.WithMaxBodySize(16))
	rec := doJSON(t, h, http.MethodPost, "/messages",
		`{"message":"this body is longer than sixteen bytes","phone":5551234567,"carrier":"cellcom"}`)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHealthRoutes(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t, &recordingSender{}, api.WithChecks(health.Checks{
		"redis": func(context.Context) error { return errors.New("down") },
	}))

	rec := doJSON(t, h, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unhealthy")
}
