package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionFor(t *testing.T) {
	tr, err := TransitionFor(DecisionConfirm)
	require.NoError(t, err)
	assert.Equal(t, BookingStatusConfirmed, tr.To)
	assert.Equal(t, SlotCommit, tr.Slot)
	assert.True(t, tr.Allows(BookingStatusPending))
	assert.True(t, tr.Allows(BookingStatusHold))
	assert.False(t, tr.Allows(BookingStatusConfirmed))

	tr, err = TransitionFor(DecisionNoShow)
	require.NoError(t, err)
	assert.Equal(t, SlotKeep, tr.Slot)
	assert.True(t, tr.Allows(BookingStatusConfirmed))
	assert.False(t, tr.Allows(BookingStatusPending))

	tr, err = TransitionFor(DecisionCancel)
	require.NoError(t, err)
	assert.True(t, tr.Allows(BookingStatusConfirmed))
	assert.False(t, tr.Allows(BookingStatusRejected))

	_, err = TransitionFor("approve")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision(" Confirm ")
	require.NoError(t, err)
	assert.Equal(t, DecisionConfirm, d)

	d, err = ParseDecision("no-show")
	require.NoError(t, err)
	assert.Equal(t, DecisionNoShow, d)

	_, err = ParseDecision("maybe")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSlotUpdate_Matches(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Minute)
	earlier := now.Add(-time.Minute)

	held := &Slot{Status: SlotStatusHeld, ClaimedBy: "b1", HoldExpiresAt: &later}
	free := &Slot{Status: SlotStatusFree}

	u := SlotUpdate{From: []SlotStatus{SlotStatusFree, SlotStatusHeld}, Owner: "b1"}
	assert.True(t, u.Matches(held))
	assert.True(t, u.Matches(free))

	u.Owner = "b2"
	assert.False(t, u.Matches(held))
	assert.True(t, u.Matches(free))

	live := SlotUpdate{From: []SlotStatus{SlotStatusHeld}, Owner: "b1", LiveAt: &now}
	assert.True(t, live.Matches(held))

	expired := &Slot{Status: SlotStatusHeld, ClaimedBy: "b1", HoldExpiresAt: &earlier}
	assert.False(t, live.Matches(expired))

	atBoundary := &Slot{Status: SlotStatusHeld, ClaimedBy: "b1", HoldExpiresAt: &now}
	assert.False(t, live.Matches(atBoundary))

	assert.False(t, SlotUpdate{From: []SlotStatus{SlotStatusBooked}}.Matches(free))
}

func TestPricing(t *testing.T) {
	p := Pricing{SplitAt: NewClock(18, 0), DayRate: 800, NightRate: 1200}

	day, _ := ParseInterval("10:00", "11:00")
	night, _ := ParseInterval("19:00", "20:00")
	across, _ := ParseInterval("17:00", "19:00")
	half, _ := ParseInterval("18:00", "18:30")

	assert.Equal(t, int64(800), p.PriceFor(day))
	assert.Equal(t, int64(1200), p.PriceFor(night))
	assert.Equal(t, int64(2000), p.PriceFor(across))
	assert.Equal(t, int64(600), p.PriceFor(half))

	assert.False(t, p.IsPeak(day))
	assert.True(t, p.IsPeak(night))
}
