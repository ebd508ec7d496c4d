// Package gmail delivers smsgate emails through the Gmail API, either as a
// Workspace service account with domain-wide delegation or as a personal
// account with an OAuth2 refresh token.
package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/dmitrymomot/smsgate/pkg/mailer"
)

// Config holds Gmail provider configuration. Set CredentialsJSON for a
// service account, or ClientID, ClientSecret and RefreshToken for a user
// mailbox.
type Config struct {
	CredentialsJSON string `env:"GMAIL_CREDENTIALS_JSON"`
	ClientID        string `env:"GMAIL_CLIENT_ID"`
	ClientSecret    string `env:"GMAIL_CLIENT_SECRET"`
	RefreshToken    string `env:"GMAIL_REFRESH_TOKEN"`
	// Mailbox is the account the service account impersonates.
	Mailbox string `env:"GMAIL_MAILBOX"`
}

var (
	ErrCredentialsRequired = errors.New("gmail: credentials are required")
	ErrMailboxRequired     = errors.New("gmail: mailbox is required for service accounts")
)

// Sender implements mailer.Sender using the Gmail API.
type Sender struct {
	service *gmail.Service
}

// New creates a Sender from the configured credentials.
func New(ctx context.Context, cfg Config) (*Sender, error) {
	switch {
	case cfg.CredentialsJSON != "":
		if cfg.Mailbox == "" {
			return nil, ErrMailboxRequired
		}
		jwtConfig, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), gmail.GmailSendScope)
		if err != nil {
			return nil, fmt.Errorf("gmail: parse credentials: %w", err)
		}
		jwtConfig.Subject = cfg.Mailbox
		return newSender(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))

	case cfg.RefreshToken != "":
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailSendScope},
		}
		client := oauthCfg.Client(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
		return newSender(ctx, option.WithHTTPClient(client))

	default:
		return nil, ErrCredentialsRequired
	}
}

// NewWithOptions creates a Sender from raw client options, e.g. a custom
// endpoint and HTTP client.
func NewWithOptions(ctx context.Context, opts ...option.ClientOption) (*Sender, error) {
	return newSender(ctx, opts...)
}

func newSender(ctx context.Context, opts ...option.ClientOption) (*Sender, error) {
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail: create service: %w", err)
	}
	return &Sender{service: svc}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(buildMIME(email)),
	}

	if _, err := s.service.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail: send email: %w", err)
	}
	return nil
}

// buildMIME renders a single-part RFC 5322 message. SMS gateways relay
// only text, so HTML is used only when there is no text body.
func buildMIME(email *mailer.Email) []byte {
	body, contentType := email.Text, "text/plain; charset=UTF-8"
	if body == "" {
		body, contentType = email.HTML, "text/html; charset=UTF-8"
	}

	lines := []string{
		"From: " + email.From,
		"To: " + strings.Join(email.To, ", "),
	}
	if email.Subject != "" {
		lines = append(lines, "Subject: "+mime.QEncoding.Encode("utf-8", email.Subject))
	}

	keys := make([]string, 0, len(email.Headers))
	for k := range email.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, k+": "+email.Headers[k])
	}

	lines = append(lines,
		"MIME-Version: 1.0",
		"Content-Type: "+contentType,
		"Content-Transfer-Encoding: 8bit",
		"",
		body,
	)
	return []byte(strings.Join(lines, "\r\n"))
}

var _ mailer.Sender = (*Sender)(nil)
