package ports

import "context"

// Repos are repositories bound to one transaction.
type Repos struct {
	Slots    SlotRepo
	Bookings BookingRepo
}

type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}
