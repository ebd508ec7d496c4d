// Package api exposes the SMS service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/smsgate"
	"github.com/dmitrymomot/smsgate/middlewares"
	"github.com/dmitrymomot/smsgate/pkg/health"
	"github.com/dmitrymomot/smsgate/pkg/logger"
)

const defaultMaxBodySize = 64 << 10 // 64KB

// Messenger is the part of smsgate.Service the HTTP layer uses.
type Messenger interface {
	Send(ctx context.Context, message string, phoneNumber int64, carrier string) error
	SendAsync(ctx context.Context, message string, phoneNumber int64, carrier string) (*smsgate.Delivery, error)
	Destination(phoneNumber int64, carrier string) (string, error)
	CarrierOptions() []string
}

// API holds the HTTP handlers.
type API struct {
	svc         Messenger
	logger      *slog.Logger
	checks      health.Checks
	maxBodySize int64
}

// Option configures the API.
type Option func(*API)

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithChecks sets the readiness checks.
func WithChecks(checks health.Checks) Option {
	return func(a *API) {
		a.checks = checks
	}
}

// WithMaxBodySize limits request bodies. Default: 64KB.
func WithMaxBodySize(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBodySize = n
		}
	}
}

// New creates the API around svc.
func New(svc Messenger, opts ...Option) *API {
	a := &API{
		svc:         svc,
		logger:      logger.NewNope(),
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router returns the chi router with all routes mounted.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middlewares.RequestID(),
		chimw.RealIP,
		middlewares.Recover(a.logger),
	)

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(a.checks, health.WithLogger(a.logger)))

	r.Get("/carriers", a.wrap(a.listCarriers))
	r.Post("/messages", a.wrap(a.sendMessage))

	return r
}

type carriersResponse struct {
	Carriers []string `json:"carriers"`
}

func (a *API) listCarriers(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, carriersResponse{Carriers: a.svc.CarrierOptions()})
	return nil
}

// SendRequest is the body of POST /messages.
type SendRequest struct {
	Message string `json:"message"`
	Carrier string `json:"carrier"`
	Phone   int64  `json:"phone"`
	Async   bool   `json:"async"`
}

// SendResponse is the body of a successful POST /messages.
type SendResponse struct {
	Status     string `json:"status"`
	Recipient  string `json:"recipient"`
	DeliveryID string `json:"delivery_id,omitempty"`
}

func (a *API) sendMessage(w http.ResponseWriter, r *http.Request) error {
	var req SendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, a.maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return NewHTTPError(http.StatusRequestEntityTooLarge, CodeBadRequest, "request body too large")
		}
		return NewHTTPError(http.StatusBadRequest, CodeBadRequest, "invalid JSON body")
	}

	if req.Async {
		d, err := a.svc.SendAsync(r.Context(), req.Message, req.Phone, req.Carrier)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusAccepted, SendResponse{
			Status:     "accepted",
			Recipient:  d.Recipient,
			DeliveryID: d.ID,
		})
		return nil
	}

	if err := a.svc.Send(r.Context(), req.Message, req.Phone, req.Carrier); err != nil {
		return err
	}
	recipient, err := a.svc.Destination(req.Phone, req.Carrier)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, SendResponse{Status: "sent", Recipient: recipient})
	return nil
}
