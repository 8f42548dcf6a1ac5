package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/stpnv0/TurfBooker/internal/domain"
)

type BookingRepo struct {
	store  *Store
	locked bool
}

func (r *BookingRepo) Create(_ context.Context, b *domain.Booking) error {
	defer r.store.guard(r.locked)()

	if _, ok := r.store.bookings[b.ID]; ok {
		return fmt.Errorf("%w: booking %s already exists", domain.ErrValidation, b.ID)
	}
	if b.Status.Active() {
		for _, other := range r.store.bookings {
			if other.SlotID == b.SlotID && other.Status.Active() {
				return fmt.Errorf("%w: slot %s already has an active booking", domain.ErrSlotConflict, b.SlotID)
			}
		}
	}

	c := b.Clone()
	now := r.store.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	r.store.bookings[c.ID] = c

	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	defer r.store.guard(r.locked)()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return b.Clone(), nil
}

func (r *BookingRepo) ListByPhone(_ context.Context, phone string) ([]*domain.Booking, error) {
	defer r.store.guard(r.locked)()

	var res []*domain.Booking
	for _, b := range r.store.bookings {
		if b.UserPhone == phone {
			res = append(res, b.Clone())
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})

	return res, nil
}

func (r *BookingRepo) UpdateStatus(_ context.Context, u domain.BookingUpdate) (*domain.Booking, error) {
	defer r.store.guard(r.locked)()

	b, ok := r.store.bookings[u.ID]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if !containsStatus(u.From, b.Status) {
		return nil, fmt.Errorf("%w: booking %s is %s", domain.ErrStatusConflict, b.ID, b.Status)
	}

	b.Status = u.To
	b.DecisionReason = u.Reason
	if b.ConfirmedAt == nil && u.ConfirmedAt != nil {
		b.ConfirmedAt = copyTime(u.ConfirmedAt)
	}
	b.UpdatedAt = r.store.now()

	return b.Clone(), nil
}

func (r *BookingRepo) UpdatePaymentStatus(
	_ context.Context,
	id string,
	from []domain.PaymentStatus,
	to domain.PaymentStatus,
) (*domain.Booking, error) {
	defer r.store.guard(r.locked)()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	allowed := false
	for _, st := range from {
		if b.PaymentStatus == st {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: payment of booking %s is %s", domain.ErrStatusConflict, b.ID, b.PaymentStatus)
	}

	b.PaymentStatus = to
	b.UpdatedAt = r.store.now()

	return b.Clone(), nil
}

func (r *BookingRepo) MarkNotified(_ context.Context, id string) error {
	defer r.store.guard(r.locked)()

	b, ok := r.store.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.WhatsappNotified = true
	return nil
}

func (r *BookingRepo) CountConfirmedSince(_ context.Context, phone string, since time.Time) (int, error) {
	defer r.store.guard(r.locked)()

	n := 0
	for _, b := range r.store.bookings {
		if b.UserPhone == phone && b.Status == domain.BookingStatusConfirmed &&
			b.ConfirmedAt != nil && !b.ConfirmedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *BookingRepo) CancelAwaitingBySlot(_ context.Context, slotID, exceptID, reason string) (int64, error) {
	defer r.store.guard(r.locked)()

	var n int64
	for _, b := range r.store.bookings {
		if b.SlotID != slotID || b.ID == exceptID || !containsStatus(domain.AwaitingStatuses, b.Status) {
			continue
		}
		b.Status = domain.BookingStatusCancelled
		b.DecisionReason = reason
		b.UpdatedAt = r.store.now()
		n++
	}
	return n, nil
}

func containsStatus(list []domain.BookingStatus, s domain.BookingStatus) bool {
	for _, st := range list {
		if st == s {
			return true
		}
	}
	return false
}
