package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("mailer: email must have at least one recipient")

	// ErrNoSender indicates the email has no from address.
	ErrNoSender = errors.New("mailer: email must have a sender")

	// ErrNoContent indicates neither a text nor an HTML body was provided.
	ErrNoContent = errors.New("mailer: email must have content")

	// ErrInvalidAddress indicates an address that does not parse as RFC 5322.
	ErrInvalidAddress = errors.New("mailer: invalid address")
)
