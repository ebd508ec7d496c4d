package commands

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/smsgate/pkg/logger"
	"github.com/dmitrymomot/smsgate/pkg/mailer"
	"github.com/dmitrymomot/smsgate/pkg/mailer/gmail"
	"github.com/dmitrymomot/smsgate/pkg/mailer/resend"
	"github.com/dmitrymomot/smsgate/pkg/storage"
)

// Email providers.
const (
	ProviderResend = "resend"
	ProviderGmail  = "gmail"
	ProviderLog    = "log"
)

// Config is the process configuration, read from the environment and
// overridden by flags.
type Config struct {
	Address         string        `env:"SMSGATE_ADDRESS" envDefault:":8080"`
	Provider        string        `env:"SMSGATE_PROVIDER" envDefault:"resend"`
	CarrierSource   string        `env:"SMSGATE_CARRIERS"`
	CarrierCacheTTL time.Duration `env:"SMSGATE_CARRIERS_TTL" envDefault:"1h"`
	RedisURL        string        `env:"REDIS_URL"`
	MaxInFlight     int           `env:"SMSGATE_MAX_IN_FLIGHT" envDefault:"16"`
	SendTimeout     time.Duration `env:"SMSGATE_SEND_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SMSGATE_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	PlainText       bool          `env:"SMSGATE_PLAIN_TEXT"`
	NANPOnly        bool          `env:"SMSGATE_NANP_ONLY"`

	Mail   mailer.Config
	Resend resend.Config
	Gmail  gmail.Config
	S3     storage.Config
	Log    logger.Config
}

// LoadConfig parses the environment. environ overrides the process
// environment when non-nil.
func LoadConfig(environ map[string]string) (Config, error) {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	return env.ParseAsWithOptions[Config](opts)
}
