package smsgate

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/smsgate/pkg/carrier"
)

var (
	// ErrUnknownCarrier matches every *UnknownCarrierError.
	ErrUnknownCarrier = carrier.ErrUnknownCarrier

	// ErrSendFailed wraps failures reported by the email provider.
	ErrSendFailed = errors.New("smsgate: failed to send message")

	ErrEmptyMessage        = errors.New("smsgate: message is empty")
	ErrInvalidPhoneNumber  = errors.New("smsgate: invalid phone number")
	ErrSenderRequired      = errors.New("smsgate: email sender is required")
	ErrTableRequired       = errors.New("smsgate: carrier table is required")
	ErrFromAddressRequired = errors.New("smsgate: from address is required")
	ErrClosed              = errors.New("smsgate: service is closed")
	ErrPending             = errors.New("smsgate: delivery is still pending")
)

// UnknownCarrierError is returned when the requested carrier is not in the
// table. It is detected before any email is sent.
type UnknownCarrierError struct {
	Carrier string
}

func (e *UnknownCarrierError) Error() string {
	return fmt.Sprintf("smsgate: carrier %q does not exist", e.Carrier)
}

// Is reports whether target is ErrUnknownCarrier.
func (e *UnknownCarrierError) Is(target error) bool {
	return target == ErrUnknownCarrier
}
