package domain

import "time"

type SlotStatus string

const (
	SlotStatusFree    SlotStatus = "free"
	SlotStatusHeld    SlotStatus = "held"
	SlotStatusBooked  SlotStatus = "booked"
	SlotStatusExpired SlotStatus = "expired"
)

// ClaimingStatuses are the statuses that must not overlap on one date.
var ClaimingStatuses = []SlotStatus{SlotStatusHeld, SlotStatusBooked}

func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusFree, SlotStatusHeld, SlotStatusBooked, SlotStatusExpired:
		return true
	}
	return false
}

func (s SlotStatus) Claiming() bool {
	return s == SlotStatusHeld || s == SlotStatusBooked
}

type Slot struct {
	ID             string     `json:"id"`
	Date           time.Time  `json:"date"`
	Interval       Interval   `json:"interval"`
	Status         SlotStatus `json:"status"`
	ClaimedBy      string     `json:"claimed_by,omitempty"`
	HoldExpiresAt  *time.Time `json:"hold_expires_at,omitempty"`
	Price          int64      `json:"price"`
	AssignedWorker *string    `json:"assigned_worker,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HeldBy reports whether the slot is under a hold owned by bookingID.
func (s *Slot) HeldBy(bookingID string) bool {
	return s.Status == SlotStatusHeld && s.ClaimedBy == bookingID
}

// HoldLive reports whether the hold is still valid at now.
func (s *Slot) HoldLive(now time.Time) bool {
	return s.Status == SlotStatusHeld && s.HoldExpiresAt != nil && s.HoldExpiresAt.After(now)
}

func (s *Slot) Clone() *Slot {
	c := *s
	if s.HoldExpiresAt != nil {
		t := *s.HoldExpiresAt
		c.HoldExpiresAt = &t
	}
	if s.AssignedWorker != nil {
		w := *s.AssignedWorker
		c.AssignedWorker = &w
	}
	return &c
}

// SlotUpdate is a conditional status write. The row is changed only when its
// current status is in From and, for a held or booked row, Owner (if set)
// matches ClaimedBy and LiveAt (if set) is before HoldExpiresAt.
type SlotUpdate struct {
	ID     string
	From   []SlotStatus
	Owner  string
	LiveAt *time.Time

	To            SlotStatus
	ClaimedBy     string
	HoldExpiresAt *time.Time
}

// Matches evaluates the update predicate against the current row.
func (u SlotUpdate) Matches(s *Slot) bool {
	found := false
	for _, st := range u.From {
		if s.Status == st {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if u.Owner != "" && s.Status.Claiming() && s.ClaimedBy != u.Owner {
		return false
	}
	if u.LiveAt != nil && s.Status == SlotStatusHeld &&
		(s.HoldExpiresAt == nil || !s.HoldExpiresAt.After(*u.LiveAt)) {
		return false
	}
	return true
}

type ReconcileResult struct {
	Created int   `json:"created"`
	Pruned  int64 `json:"pruned"`
}
