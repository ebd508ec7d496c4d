package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/smsgate"
	"github.com/dmitrymomot/smsgate/middlewares"
	"github.com/dmitrymomot/smsgate/pkg/cache"
	"github.com/dmitrymomot/smsgate/pkg/carrier"
	"github.com/dmitrymomot/smsgate/pkg/health"
	"github.com/dmitrymomot/smsgate/pkg/logger"
	"github.com/dmitrymomot/smsgate/pkg/mailer"
	"github.com/dmitrymomot/smsgate/pkg/mailer/gmail"
	"github.com/dmitrymomot/smsgate/pkg/mailer/resend"
	"github.com/dmitrymomot/smsgate/pkg/redis"
	"github.com/dmitrymomot/smsgate/pkg/sanitizer"
	"github.com/dmitrymomot/smsgate/pkg/storage"
)

const (
	s3Scheme       = "s3://"
	cacheKeyPrefix = "smsgate"
)

var (
	ErrUnknownProvider = errors.New("smsgate: unknown email provider")
	ErrStorageRequired = errors.New("smsgate: S3_BUCKET is required for s3:// carrier sources")
)

// deps are the collaborators built from Config. close releases them.
type deps struct {
	logger  *slog.Logger
	store   *storage.S3Storage
	redis   goredis.UniversalClient
	checks  health.Checks
	closers []func() error
}

func (d *deps) close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func newLogger(w io.Writer, cfg Config) *slog.Logger {
	return logger.New(w, cfg.Log, middlewares.RequestIDExtractor())
}

// buildDeps connects to the optional infrastructure: S3 when a bucket is
// configured and Redis when a URL is set.
func buildDeps(ctx context.Context, cfg Config, log *slog.Logger) (*deps, error) {
	d := &deps{logger: log, checks: health.Checks{}}

	if cfg.S3.Enabled() {
		store, err := storage.New(cfg.S3)
		if err != nil {
			return nil, err
		}
		d.store = store
		d.checks["s3"] = store.Healthcheck()
	}

	if cfg.RedisURL != "" {
		client, err := redis.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		d.redis = client
		d.checks["redis"] = redis.Healthcheck(client)
		d.closers = append(d.closers, client.Close)
	}

	return d, nil
}

// newSender picks the email provider.
func newSender(ctx context.Context, cfg Config, log *slog.Logger) (mailer.Sender, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderResend:
		return resend.New(cfg.Resend)
	case ProviderGmail:
		return gmail.New(ctx, cfg.Gmail)
	case ProviderLog:
		return logSender(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// logSender accepts every email and logs it. Used for dry runs.
func logSender(log *slog.Logger) mailer.Sender {
	return mailer.SenderFunc(func(ctx context.Context, e *mailer.Email) error {
		if err := mailer.Validate(e); err != nil {
			return err
		}
		log.InfoContext(ctx, "email not sent (log provider)",
			slog.String("from", e.From),
			slog.Any("to", e.To),
			slog.String("text", e.Text),
		)
		return nil
	})
}

// newLoader resolves the carrier table source:
//
//	""                  bundled table
//	http(s)://...       remote file
//	s3://key            object in the configured bucket
//	anything else       local file path
//
// Remote and object sources are cached in Redis when it is configured.
func newLoader(cfg Config, d *deps) (carrier.Loader, error) {
	src := strings.TrimSpace(cfg.CarrierSource)

	var l carrier.Loader
	switch {
	case src == "":
		return carrier.Default(), nil
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		l = carrier.Remote(src)
	case strings.HasPrefix(src, s3Scheme):
		if d.store == nil {
			return nil, ErrStorageRequired
		}
		l = carrier.Object(d.store, strings.TrimPrefix(src, s3Scheme))
	default:
		return carrier.File(os.DirFS(filepath.Dir(src)), filepath.Base(src)), nil
	}

	if d.redis != nil {
		c := cache.NewRedis(d.redis, cache.JSON[[]carrier.Entry]{}, cache.WithPrefix(cacheKeyPrefix))
		l = carrier.Cached(l, c, "carriers:"+src, cfg.CarrierCacheTTL)
	}
	return l, nil
}

func serviceOptions(cfg Config, log *slog.Logger) []smsgate.Option {
	opts := []smsgate.Option{
		smsgate.WithFromAddress(cfg.Mail.From()),
		smsgate.WithSubject(cfg.Mail.Subject),
		smsgate.WithLogger(log),
		smsgate.WithMaxInFlight(cfg.MaxInFlight),
		smsgate.WithSendTimeout(cfg.SendTimeout),
		smsgate.WithTags(mailer.SimpleTags("sms")),
	}
	if cfg.PlainText {
		opts = append(opts, smsgate.WithSanitizer(sanitizer.PlainText))
	}
	if cfg.NANPOnly {
		opts = append(opts, smsgate.WithPhoneValidator(smsgate.NANPValidator))
	}
	return opts
}

// newService wires everything a send needs.
func newService(ctx context.Context, cfg Config, d *deps) (*smsgate.Service, error) {
	sender, err := newSender(ctx, cfg, d.logger)
	if err != nil {
		return nil, err
	}
	loader, err := newLoader(cfg, d)
	if err != nil {
		return nil, err
	}
	return smsgate.Load(ctx, sender, loader, serviceOptions(cfg, d.logger)...)
}
