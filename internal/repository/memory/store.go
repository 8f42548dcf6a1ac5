// Package memory is an in-process store with the same conditional-write
// semantics as the Postgres repositories.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/service/ports"
)

type Store struct {
	mu       sync.Mutex
	slots    map[string]*domain.Slot
	bookings map[string]*domain.Booking
	clock    func() time.Time
}

func New() *Store {
	return &Store{
		slots:    make(map[string]*domain.Slot),
		bookings: make(map[string]*domain.Booking),
		clock:    time.Now,
	}
}

// WithClock overrides the clock used for created_at/updated_at stamps.
func (s *Store) WithClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

func (s *Store) Slots() *SlotRepo {
	return &SlotRepo{store: s}
}

func (s *Store) Bookings() *BookingRepo {
	return &BookingRepo{store: s}
}

// WithTx runs fn under the store lock. Changes are rolled back if fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, repos ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make(map[string]*domain.Slot, len(s.slots))
	for id, sl := range s.slots {
		slots[id] = sl.Clone()
	}
	bookings := make(map[string]*domain.Booking, len(s.bookings))
	for id, b := range s.bookings {
		bookings[id] = b.Clone()
	}

	repos := ports.Repos{
		Slots:    &SlotRepo{store: s, locked: true},
		Bookings: &BookingRepo{store: s, locked: true},
	}
	if err := fn(ctx, repos); err != nil {
		s.slots = slots
		s.bookings = bookings
		return err
	}

	return nil
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

func (s *Store) guard(locked bool) func() {
	if locked {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
