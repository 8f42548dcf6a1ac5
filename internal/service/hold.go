package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

const DefaultHoldTTL = 300 * time.Second

// HoldManager moves slots through free -> held -> booked and back.
// Every write is a conditional update, so it is safe to call concurrently
// with the sweeper and with other requests.
type HoldManager struct {
	slots  ports.SlotRepo
	ttl    time.Duration
	clock  func() time.Time
	logger logger.Logger
}

func NewHoldManager(slots ports.SlotRepo, ttl time.Duration, logger logger.Logger) *HoldManager {
	if ttl <= 0 {
		ttl = DefaultHoldTTL
	}
	return &HoldManager{
		slots:  slots,
		ttl:    ttl,
		clock:  time.Now,
		logger: logger,
	}
}

func (h *HoldManager) WithClock(clock func() time.Time) *HoldManager {
	h.clock = clock
	return h
}

// With returns a copy of the manager working on the given repository,
// typically one bound to a transaction.
func (h *HoldManager) With(slots ports.SlotRepo) *HoldManager {
	c := *h
	c.slots = slots
	return &c
}

func (h *HoldManager) TTL() time.Duration {
	return h.ttl
}

// PlaceHold claims a free slot for owner until now+ttl. Placing it again for
// the same owner refreshes the expiry.
func (h *HoldManager) PlaceHold(ctx context.Context, slotID, owner string) (*domain.Slot, error) {
	expiresAt := h.clock().UTC().Add(h.ttl)

	s, err := h.slots.CompareAndSetStatus(ctx, domain.SlotUpdate{
		ID:            slotID,
		From:          []domain.SlotStatus{domain.SlotStatusFree, domain.SlotStatusExpired, domain.SlotStatusHeld},
		Owner:         owner,
		To:            domain.SlotStatusHeld,
		ClaimedBy:     owner,
		HoldExpiresAt: &expiresAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return nil, fmt.Errorf("place hold on slot %s: %w", slotID, domain.ErrSlotUnavailable)
		}
		return nil, fmt.Errorf("place hold: %w", err)
	}

	h.logger.Debug("slot held",
		logger.String("slot_id", slotID),
		logger.String("owner", owner),
		logger.String("expires_at", expiresAt.Format(time.RFC3339)),
	)

	return s, nil
}

// CommitHold turns owner's live hold into a booking.
func (h *HoldManager) CommitHold(ctx context.Context, slotID, owner string) (*domain.Slot, error) {
	now := h.clock().UTC()

	s, err := h.slots.CompareAndSetStatus(ctx, domain.SlotUpdate{
		ID:        slotID,
		From:      []domain.SlotStatus{domain.SlotStatusHeld},
		Owner:     owner,
		LiveAt:    &now,
		To:        domain.SlotStatusBooked,
		ClaimedBy: owner,
	})
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, domain.ErrStatusConflict) {
		return nil, fmt.Errorf("commit hold: %w", err)
	}

	current, getErr := h.slots.GetByID(ctx, slotID)
	if getErr != nil {
		return nil, fmt.Errorf("commit hold: %w", getErr)
	}
	if current.HeldBy(owner) {
		return nil, fmt.Errorf("slot %s: %w", slotID, domain.ErrHoldExpired)
	}
	return nil, fmt.Errorf("%w: slot %s is %s, not held by %s", domain.ErrInvalidTransition, slotID, current.Status, owner)
}

// ReleaseHold frees a slot claimed by owner. A booked slot is freed as well,
// which is how a confirmed booking gets cancelled. Releasing a slot that is
// already free or claimed by someone else is a no-op.
func (h *HoldManager) ReleaseHold(ctx context.Context, slotID, owner string) (*domain.Slot, error) {
	s, err := h.slots.CompareAndSetStatus(ctx, domain.SlotUpdate{
		ID:    slotID,
		From:  []domain.SlotStatus{domain.SlotStatusHeld, domain.SlotStatusBooked},
		Owner: owner,
		To:    domain.SlotStatusFree,
	})
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, domain.ErrStatusConflict) {
		return nil, fmt.Errorf("release hold: %w", err)
	}

	current, getErr := h.slots.GetByID(ctx, slotID)
	if getErr != nil {
		return nil, fmt.Errorf("release hold: %w", getErr)
	}

	h.logger.Debug("release skipped",
		logger.String("slot_id", slotID),
		logger.String("owner", owner),
		logger.String("status", string(current.Status)),
		logger.String("claimed_by", current.ClaimedBy),
	)

	return current, nil
}

// SweepExpired frees every hold whose expiry is not after now.
func (h *HoldManager) SweepExpired(ctx context.Context) ([]*domain.Slot, error) {
	released, err := h.slots.ReleaseExpiredHolds(ctx, h.clock().UTC())
	if err != nil {
		return nil, fmt.Errorf("sweep expired holds: %w", err)
	}

	if len(released) > 0 {
		h.logger.Info("expired holds released",
			logger.Int("count", len(released)),
		)
	}

	return released, nil
}
