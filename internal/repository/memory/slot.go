package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/stpnv0/TurfBooker/internal/domain"
)

type SlotRepo struct {
	store  *Store
	locked bool
}

func (r *SlotRepo) GetByID(_ context.Context, id string) (*domain.Slot, error) {
	defer r.store.guard(r.locked)()

	s, ok := r.store.slots[id]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	return s.Clone(), nil
}

func (r *SlotRepo) FindFree(_ context.Context, date time.Time, iv domain.Interval) (*domain.Slot, error) {
	defer r.store.guard(r.locked)()

	s := r.exact(date, iv)
	if s == nil || s.Status != domain.SlotStatusFree {
		return nil, domain.ErrSlotNotFound
	}
	return s.Clone(), nil
}

func (r *SlotRepo) FindOverlapping(
	_ context.Context,
	date time.Time,
	iv domain.Interval,
	statuses []domain.SlotStatus,
	excludeID string,
) ([]*domain.Slot, error) {
	defer r.store.guard(r.locked)()

	var res []*domain.Slot
	for _, s := range r.store.slots {
		if s.ID == excludeID || !s.Date.Equal(date) || !s.Interval.Overlaps(iv) {
			continue
		}
		for _, st := range statuses {
			if s.Status == st {
				res = append(res, s.Clone())
				break
			}
		}
	}
	sortSlots(res)

	return res, nil
}

func (r *SlotRepo) Upsert(_ context.Context, s *domain.Slot) (*domain.Slot, bool, error) {
	defer r.store.guard(r.locked)()

	if existing := r.exact(s.Date, s.Interval); existing != nil {
		return existing.Clone(), false, nil
	}
	if err := r.insert(s); err != nil {
		return nil, false, err
	}
	return r.store.slots[s.ID].Clone(), true, nil
}

func (r *SlotRepo) CreateMissing(_ context.Context, slots []*domain.Slot) (int, error) {
	defer r.store.guard(r.locked)()

	created := 0
	for _, s := range slots {
		if r.exact(s.Date, s.Interval) != nil {
			continue
		}
		if err := r.insert(s); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (r *SlotRepo) SetStatus(_ context.Context, id string, status domain.SlotStatus, holdExpiresAt *time.Time) error {
	defer r.store.guard(r.locked)()

	s, ok := r.store.slots[id]
	if !ok {
		return domain.ErrSlotNotFound
	}
	if status.Claiming() && r.claimedOverlap(s.Date, s.Interval, s.ID) {
		return domain.ErrSlotConflict
	}

	s.Status = status
	s.HoldExpiresAt = copyTime(holdExpiresAt)
	if !status.Claiming() {
		s.ClaimedBy = ""
	}
	s.UpdatedAt = r.store.now()

	return nil
}

func (r *SlotRepo) CompareAndSetStatus(_ context.Context, u domain.SlotUpdate) (*domain.Slot, error) {
	defer r.store.guard(r.locked)()

	s, ok := r.store.slots[u.ID]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	if !u.Matches(s) {
		return nil, fmt.Errorf("%w: slot %s is %s", domain.ErrStatusConflict, s.ID, s.Status)
	}
	if u.To.Claiming() && r.claimedOverlap(s.Date, s.Interval, s.ID) {
		return nil, domain.ErrSlotConflict
	}

	s.Status = u.To
	s.ClaimedBy = u.ClaimedBy
	s.HoldExpiresAt = copyTime(u.HoldExpiresAt)
	s.UpdatedAt = r.store.now()

	return s.Clone(), nil
}

func (r *SlotRepo) ListByDate(_ context.Context, date time.Time) ([]*domain.Slot, error) {
	defer r.store.guard(r.locked)()

	var res []*domain.Slot
	for _, s := range r.store.slots {
		if s.Date.Equal(date) {
			res = append(res, s.Clone())
		}
	}
	sortSlots(res)

	return res, nil
}

func (r *SlotRepo) CountByStatus(_ context.Context, date time.Time, status domain.SlotStatus) (int, error) {
	defer r.store.guard(r.locked)()

	n := 0
	for _, s := range r.store.slots {
		if s.Date.Equal(date) && s.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *SlotRepo) ReleaseExpiredHolds(_ context.Context, now time.Time) ([]*domain.Slot, error) {
	defer r.store.guard(r.locked)()

	var res []*domain.Slot
	for _, s := range r.store.slots {
		if s.Status != domain.SlotStatusHeld || s.HoldExpiresAt == nil || s.HoldExpiresAt.After(now) {
			continue
		}
		s.Status = domain.SlotStatusFree
		s.ClaimedBy = ""
		s.HoldExpiresAt = nil
		s.UpdatedAt = r.store.now()
		res = append(res, s.Clone())
	}
	sortSlots(res)

	return res, nil
}

func (r *SlotRepo) DeletePastFree(_ context.Context, before time.Time) (int64, error) {
	defer r.store.guard(r.locked)()

	referenced := make(map[string]bool, len(r.store.bookings))
	for _, b := range r.store.bookings {
		referenced[b.SlotID] = true
	}

	var n int64
	for id, s := range r.store.slots {
		if s.Date.Before(before) && !s.Status.Claiming() && !referenced[id] {
			delete(r.store.slots, id)
			n++
		}
	}
	return n, nil
}

func (r *SlotRepo) exact(date time.Time, iv domain.Interval) *domain.Slot {
	for _, s := range r.store.slots {
		if s.Date.Equal(date) && s.Interval == iv {
			return s
		}
	}
	return nil
}

func (r *SlotRepo) claimedOverlap(date time.Time, iv domain.Interval, excludeID string) bool {
	for _, s := range r.store.slots {
		if s.ID != excludeID && s.Status.Claiming() && s.Date.Equal(date) && s.Interval.Overlaps(iv) {
			return true
		}
	}
	return false
}

func (r *SlotRepo) insert(s *domain.Slot) error {
	if _, ok := r.store.slots[s.ID]; ok {
		return fmt.Errorf("%w: slot %s already exists", domain.ErrSlotConflict, s.ID)
	}
	if s.Status.Claiming() && r.claimedOverlap(s.Date, s.Interval, s.ID) {
		return domain.ErrSlotConflict
	}

	c := s.Clone()
	now := r.store.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	r.store.slots[c.ID] = c

	return nil
}

func sortSlots(slots []*domain.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].Interval.Start < slots[j].Interval.Start
	})
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
