package mailer

// Config holds the envelope settings shared by every provider.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	FromAddress string `env:"SMSGATE_FROM_ADDRESS"`
	FromName    string `env:"SMSGATE_FROM_NAME"`
	// Subject is optional; most gateways prepend it to the SMS text.
	Subject string `env:"SMSGATE_SUBJECT"`
}

// From returns the RFC 5322 sender built from the config, or "" when no
// address is set.
func (c Config) From() string {
	if c.FromAddress == "" {
		return ""
	}
	return Recipient(c.FromName, c.FromAddress)
}
