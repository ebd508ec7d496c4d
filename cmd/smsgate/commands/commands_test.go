package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/smsgate"
	"github.com/dmitrymomot/smsgate/pkg/carrier"
	"github.com/dmitrymomot/smsgate/pkg/logger"
	"github.com/dmitrymomot/smsgate/pkg/mailer"
	"github.com/dmitrymomot/smsgate/pkg/mailer/resend"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, ProviderResend, cfg.Provider)
	assert.Equal(t, time.Hour, cfg.CarrierCacheTTL)
	assert.Equal(t, 16, cfg.MaxInFlight)
	assert.False(t, cfg.PlainText)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "info", cfg.Log.Level)

	cfg, err = LoadConfig(map[string]string{
		"SMSGATE_PROVIDER":     "gmail",
		"SMSGATE_CARRIERS":     "s3://tables/carriers.csv",
		"SMSGATE_FROM_ADDRESS": "alerts@example.com",
		"SMSGATE_FROM_NAME":    "Alerts",
		"SMSGATE_SEND_TIMEOUT": "5s",
		"RESEND_API_KEY":       "re_123",
		"S3_BUCKET":            "tables",
		"LOG_FORMAT":           "text",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderGmail, cfg.Provider)
	assert.Equal(t, "s3://tables/carriers.csv", cfg.CarrierSource)
	assert.Equal(t, "Alerts <alerts@example.com>", cfg.Mail.From())
	assert.Equal(t, 5*time.Second, cfg.SendTimeout)
	assert.Equal(t, "re_123", cfg.Resend.APIKey)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "text", cfg.Log.Format)

	_, err = LoadConfig(map[string]string{"SMSGATE_MAX_IN_FLIGHT": "many"})
	require.Error(t, err)
}

func TestNewSender(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := logger.NewNope()

	_, err := newSender(ctx, Config{Provider: "sendgrid"}, log)
	require.ErrorIs(t, err, ErrUnknownProvider)

	_, err = newSender(ctx, Config{Provider: ProviderResend}, log)
	require.ErrorIs(t, err, resend.ErrAPIKeyRequired)

	s, err := newSender(ctx, Config{Provider: "LOG"}, log)
	require.NoError(t, err)
	require.NoError(t, s.Send(ctx, &mailer.Email{
		From: "alerts@example.com",
		To:   []string{"5551234567@cellcom.quiktxt.com"},
		Text: "hi",
	}))
	require.ErrorIs(t, s.Send(ctx, &mailer.Email{From: "alerts@example.com", Text: "hi"}), mailer.ErrNoRecipient)
}

func TestNewLoader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := &deps{logger: logger.NewNope()}

	t.Run("bundled by default", func(t *testing.T) {
		t.Parallel()

		l, err := newLoader(Config{}, d)
		require.NoError(t, err)
		table, err := carrier.Build(ctx, l)
		require.NoError(t, err)
		assert.Contains(t, table.Names(), "CELLCOM")
	})

	t.Run("local file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "carriers.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"cellcom":"{0}@cellcom.quiktxt.com"}`), 0o600))

		l, err := newLoader(Config{CarrierSource: path}, d)
		require.NoError(t, err)
		table, err := carrier.Build(ctx, l)
		require.NoError(t, err)
		assert.Equal(t, []string{"CELLCOM"}, table.Names())
	})

	t.Run("remote url", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "CELLCOM,{0}@cellcom.quiktxt.com\n")
		}))
		t.Cleanup(srv.Close)

		l, err := newLoader(Config{CarrierSource: srv.URL + "/carriers.csv"}, d)
		require.NoError(t, err)
		table, err := carrier.Build(ctx, l)
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		t.Parallel()

		_, err := newLoader(Config{CarrierSource: "s3://carriers.csv"}, d)
		require.ErrorIs(t, err, ErrStorageRequired)
	})
}

func TestServiceOptions_RequireFromAddress(t *testing.T) {
	t.Parallel()

	d := &deps{logger: logger.NewNope()}
	_, err := newService(context.Background(), Config{Provider: ProviderLog}, d)
	require.Error(t, err)

	svc, err := newService(context.Background(), Config{
		Provider:    ProviderLog,
		MaxInFlight: 1,
		PlainText:   true,
		NANPOnly:    true,
		Mail:        mailer.Config{FromAddress: "alerts@example.com"},
	}, d)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close(context.Background()) })

	require.NoError(t, svc.Send(context.Background(), "<b>hi</b>", 5552345678, "cellcom"))
	require.Error(t, svc.Send(context.Background(), "hi", 5551234567, "cellcom"))
}

func TestServiceOptions_DefaultConfigKeepsBodyVerbatim(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(map[string]string{"SMSGATE_FROM_ADDRESS": "alerts@example.com"})
	require.NoError(t, err)

	var got []string
	sender := mailer.SenderFunc(func(_ context.Context, e *mailer.Email) error {
		got = append(got, e.Text)
		return nil
	})
	table := carrier.MustTable(map[string]string{"CELLCOM": "{0}@cellcom.quiktxt.com"})

	svc, err := smsgate.New(sender, table, serviceOptions(cfg, logger.NewNope())...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close(context.Background()) })

	bodies := []string{
		"CPU<limit ok\nrestart at 5",
		"if temp<limit then call",
		"a <b> c",
		"line1\nline2",
	}
	for _, body := range bodies {
		require.NoError(t, svc.Send(context.Background(), body, 5551234567, "cellcom"))
	}
	assert.Equal(t, bodies, got)
}

// Command tests share package-level flag state and run sequentially.

func runCommand(t *testing.T, environ map[string]string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(environ)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCarriersCommand(t *testing.T) {
	out, err := runCommand(t, map[string]string{}, "carriers")
	require.NoError(t, err)
	assert.Contains(t, out, "CARRIER")
	assert.Contains(t, out, "{0}@cellcom.quiktxt.com")

	out, err = runCommand(t, map[string]string{}, "carriers", "--csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "carrier,template\n"))

	_, err = runCommand(t, map[string]string{}, "carriers", "publish", "carriers.csv")
	require.ErrorIs(t, err, ErrStorageRequired)
}

func TestSendCommand(t *testing.T) {
	environ := map[string]string{
		"SMSGATE_FROM_ADDRESS": "alerts@example.com",
		"LOG_LEVEL":            "error",
	}

	out, err := runCommand(t, environ, "send", "--provider", "log", "cellcom", "5551234567", "hello")
	require.NoError(t, err)
	assert.Equal(t, "sent to 5551234567@cellcom.quiktxt.com\n", out)

	_, err = runCommand(t, environ, "send", "--provider", "log", "verizon-nope", "5551234567", "hello")
	require.Error(t, err)

	_, err = runCommand(t, environ, "send", "--provider", "log", "cellcom", "not-a-number", "hello")
	require.Error(t, err)
}
