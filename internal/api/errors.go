package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/smsgate"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeBadRequest      = "bad_request"
	CodeInvalidMessage  = "invalid_message"
	CodeInvalidPhone    = "invalid_phone"
	CodeUnknownCarrier  = "unknown_carrier"
	CodeProviderFailure = "provider_failure"
	CodeUnavailable     = "unavailable"
	CodeInternal        = "internal"
)

// HTTPError is an error with everything needed to render a JSON response.
type HTTPError struct {
	Err       error  `json:"-"`
	Message   string `json:"error"`
	ErrorCode string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
	Code      int    `json:"-"`
}

// NewHTTPError creates an HTTPError with the given status and message.
func NewHTTPError(code int, errorCode, message string) *HTTPError {
	return &HTTPError{Code: code, ErrorCode: errorCode, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status.
func (e *HTTPError) StatusCode() int {
	return e.Code
}

// toHTTPError maps service errors onto statuses. Unknown carriers are a
// client mistake about data (422), malformed input is 400, and provider
// failures are an upstream problem (502).
func toHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}

	var out *HTTPError
	switch {
	case errors.Is(err, smsgate.ErrUnknownCarrier):
		out = NewHTTPError(http.StatusUnprocessableEntity, CodeUnknownCarrier, err.Error())
	case errors.Is(err, smsgate.ErrEmptyMessage):
		out = NewHTTPError(http.StatusBadRequest, CodeInvalidMessage, err.Error())
	case errors.Is(err, smsgate.ErrInvalidPhoneNumber):
		out = NewHTTPError(http.StatusBadRequest, CodeInvalidPhone, err.Error())
	case errors.Is(err, smsgate.ErrSendFailed):
		out = NewHTTPError(http.StatusBadGateway, CodeProviderFailure, "message could not be handed to the email provider")
	case errors.Is(err, smsgate.ErrClosed):
		out = NewHTTPError(http.StatusServiceUnavailable, CodeUnavailable, "service is shutting down")
	default:
		out = NewHTTPError(http.StatusInternalServerError, CodeInternal, http.StatusText(http.StatusInternalServerError))
	}
	out.Err = err
	return out
}
