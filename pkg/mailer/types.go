package mailer

import (
	"fmt"
	"net/mail"
)

// Tags are provider-specific labels. A struct{}{} value marks a
// presence-only tag; providers with name-value tags render it as "true".
type Tags map[string]any

// SimpleTags creates presence-only tags.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and address as "Name <address>", or the bare
// address when name is empty.
func Recipient(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// Email is an outbound message. It is built per send and never reused.
type Email struct {
	Headers map[string]string
	Tags    Tags
	From    string
	Subject string
	Text    string // plain text body, the only body SMS gateways relay
	HTML    string // optional
	To      []string
}

// Validate checks the fields every provider needs.
func Validate(e *Email) error {
	if e.From == "" {
		return ErrNoSender
	}
	if _, err := mail.ParseAddress(e.From); err != nil {
		return fmt.Errorf("%w: from %q: %v", ErrInvalidAddress, e.From, err)
	}
	if len(e.To) == 0 {
		return ErrNoRecipient
	}
	for _, to := range e.To {
		if _, err := mail.ParseAddress(to); err != nil {
			return fmt.Errorf("%w: to %q: %v", ErrInvalidAddress, to, err)
		}
	}
	if e.Text == "" && e.HTML == "" {
		return ErrNoContent
	}
	return nil
}
