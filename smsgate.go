package smsgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/smsgate/pkg/carrier"
	"github.com/dmitrymomot/smsgate/pkg/logger"
	"github.com/dmitrymomot/smsgate/pkg/mailer"
)

// DeliveryHeader carries the delivery ID on every outbound email.
const DeliveryHeader = "X-Smsgate-Delivery"

const (
	defaultMaxInFlight = 16
	defaultSendTimeout = 30 * time.Second
)

// Service sends SMS messages by emailing carrier gateway addresses.
// The carrier table is fixed at construction; Service is safe for
// concurrent use.
type Service struct {
	sender        mailer.Sender
	table         *carrier.Table
	logger        *slog.Logger
	sem           *semaphore.Weighted
	sanitize      func(string) string
	validatePhone func(int64) error
	tags          mailer.Tags
	from          string
	subject       string
	maxInFlight   int
	sendTimeout   time.Duration

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// New creates a Service delivering through sender with the given table.
func New(sender mailer.Sender, table *carrier.Table, opts ...Option) (*Service, error) {
	if sender == nil {
		return nil, ErrSenderRequired
	}
	if table == nil {
		return nil, ErrTableRequired
	}

	s := &Service{
		sender:      sender,
		table:       table,
		logger:      logger.NewNope(),
		maxInFlight: defaultMaxInFlight,
		sendTimeout: defaultSendTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.from == "" {
		return nil, ErrFromAddressRequired
	}
	s.sem = semaphore.NewWeighted(int64(s.maxInFlight))

	return s, nil
}

// Load builds the carrier table from loader once, then creates a Service.
func Load(ctx context.Context, sender mailer.Sender, loader carrier.Loader, opts ...Option) (*Service, error) {
	table, err := carrier.Build(ctx, loader)
	if err != nil {
		return nil, fmt.Errorf("smsgate: load carrier table: %w", err)
	}
	return New(sender, table, opts...)
}

// Send delivers message to phoneNumber on the named carrier and waits for
// the provider's answer. An unknown carrier fails with *UnknownCarrierError
// before anything is sent; provider failures are wrapped with ErrSendFailed.
func (s *Service) Send(ctx context.Context, message string, phoneNumber int64, carrierName string) error {
	email, id, err := s.prepare(message, phoneNumber, carrierName)
	if err != nil {
		return err
	}
	return s.deliver(ctx, email, id, carrierName)
}

// SendAsync validates the request like Send, then hands the email to the
// provider in the background and returns immediately. The outcome is
// reported through the returned Delivery and logged on failure.
// The provider call is detached from ctx cancellation but keeps its values.
func (s *Service) SendAsync(ctx context.Context, message string, phoneNumber int64, carrierName string) (*Delivery, error) {
	email, id, err := s.prepare(message, phoneNumber, carrierName)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	d := newDelivery(id, carrier.Normalize(carrierName), email.To[0])
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sendTimeout)
		defer cancel()

		if err := s.sem.Acquire(sendCtx, 1); err != nil {
			d.finish(errors.Join(ErrSendFailed, err))
			return
		}
		defer s.sem.Release(1)

		d.finish(s.deliver(sendCtx, email, id, carrierName))
	}()

	return d, nil
}

// Close stops accepting asynchronous sends and waits for in-flight
// deliveries or ctx, whichever comes first.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CarrierOptions returns the normalized names of the known carriers.
// Order carries no meaning; the slice is owned by the caller.
func (s *Service) CarrierOptions() []string {
	return s.table.Names()
}

// Destination returns the gateway address for phoneNumber on the named
// carrier without sending anything.
func (s *Service) Destination(phoneNumber int64, carrierName string) (string, error) {
	tmpl, ok := s.table.Lookup(carrierName)
	if !ok {
		return "", &UnknownCarrierError{Carrier: carrierName}
	}
	return tmpl.Format(phoneNumber), nil
}

// prepare runs every local check and builds the outbound email.
func (s *Service) prepare(message string, phoneNumber int64, carrierName string) (*mailer.Email, string, error) {
	if s.sanitize != nil {
		message = s.sanitize(message)
	}
	if strings.TrimSpace(message) == "" {
		return nil, "", ErrEmptyMessage
	}

	if phoneNumber <= 0 {
		return nil, "", fmt.Errorf("%w: %d", ErrInvalidPhoneNumber, phoneNumber)
	}
	if s.validatePhone != nil {
		if err := s.validatePhone(phoneNumber); err != nil {
			return nil, "", err
		}
	}

	to, err := s.Destination(phoneNumber, carrierName)
	if err != nil {
		return nil, "", err
	}

	id := uuid.NewString()
	return &mailer.Email{
		From:    s.from,
		To:      []string{to},
		Subject: s.subject,
		Text:    message,
		Tags:    s.tags,
		Headers: map[string]string{DeliveryHeader: id},
	}, id, nil
}

func (s *Service) deliver(ctx context.Context, email *mailer.Email, id, carrierName string) error {
	attrs := []any{
		slog.String("delivery_id", id),
		slog.String("carrier", carrier.Normalize(carrierName)),
	}

	if err := s.sender.Send(ctx, email); err != nil {
		s.logger.ErrorContext(ctx, "sms delivery failed", append(attrs, slog.Any("error", err))...)
		return errors.Join(ErrSendFailed, err)
	}

	s.logger.InfoContext(ctx, "sms handed to provider", attrs...)
	return nil
}
