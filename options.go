package smsgate

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/smsgate/pkg/mailer"
)

// Option configures a Service.
type Option func(*Service)

// WithFromAddress sets the sender shown on every message (required).
// Accepts a bare address or "Name <address>".
func WithFromAddress(addr string) Option {
	return func(s *Service) {
		s.from = addr
	}
}

// WithSubject sets an email subject. Most gateways prepend it to the text,
// so it is empty by default.
func WithSubject(subject string) Option {
	return func(s *Service) {
		s.subject = subject
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxInFlight bounds the number of concurrent SendAsync deliveries.
// Default: 16.
func WithMaxInFlight(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxInFlight = n
		}
	}
}

// WithSendTimeout bounds each asynchronous provider call, which outlives
// the caller's context. Default: 30 seconds.
func WithSendTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sendTimeout = d
		}
	}
}

// WithSanitizer transforms the message body before sending, for example
// sanitizer.PlainText. The result must not be empty.
func WithSanitizer(fn func(string) string) Option {
	return func(s *Service) {
		s.sanitize = fn
	}
}

// WithTags attaches provider tags to every message.
func WithTags(tags mailer.Tags) Option {
	return func(s *Service) {
		s.tags = tags
	}
}

// WithPhoneValidator adds a check on the phone number shape, such as
// NANPValidator. Only positivity is checked by default.
func WithPhoneValidator(fn func(phoneNumber int64) error) Option {
	return func(s *Service) {
		s.validatePhone = fn
	}
}
