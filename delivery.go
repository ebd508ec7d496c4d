package smsgate

import "context"

// Delivery tracks a message handed to the provider by SendAsync.
type Delivery struct {
	done      chan struct{}
	err       error
	ID        string
	Carrier   string
	Recipient string
}

func newDelivery(id, carrierName, recipient string) *Delivery {
	return &Delivery{
		done:      make(chan struct{}),
		ID:        id,
		Carrier:   carrierName,
		Recipient: recipient,
	}
}

func (d *Delivery) finish(err error) {
	d.err = err
	close(d.done)
}

// Done is closed once the provider call has returned.
func (d *Delivery) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the delivery finishes or ctx is done. It returns the
// provider error wrapped with ErrSendFailed, or ctx.Err().
func (d *Delivery) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return d.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns ErrPending until the delivery finishes, then its result.
func (d *Delivery) Err() error {
	select {
	case <-d.done:
		return d.err
	default:
		return ErrPending
	}
}
