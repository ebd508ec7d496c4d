package mailer

import "context"

// Sender is the capability every email provider implements.
// It receives a fully-prepared Email and returns once the provider has
// accepted or rejected it.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) error

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}
