package domain

import "fmt"

// SlotEffect is what a decision does to the slot of the booking.
type SlotEffect int

const (
	SlotKeep SlotEffect = iota
	SlotCommit
	SlotRelease
	SlotRehold
)

type Transition struct {
	From []BookingStatus
	To   BookingStatus
	Slot SlotEffect
}

func (t Transition) Allows(s BookingStatus) bool {
	for _, f := range t.From {
		if f == s {
			return true
		}
	}
	return false
}

var transitions = map[Decision]Transition{
	DecisionConfirm: {
		From: []BookingStatus{BookingStatusPending, BookingStatusHold},
		To:   BookingStatusConfirmed,
		Slot: SlotCommit,
	},
	DecisionReject: {
		From: []BookingStatus{BookingStatusPending, BookingStatusHold},
		To:   BookingStatusRejected,
		Slot: SlotRelease,
	},
	DecisionCancel: {
		From: []BookingStatus{BookingStatusPending, BookingStatusHold, BookingStatusConfirmed},
		To:   BookingStatusCancelled,
		Slot: SlotRelease,
	},
	DecisionHold: {
		From: []BookingStatus{BookingStatusPending, BookingStatusHold},
		To:   BookingStatusHold,
		Slot: SlotRehold,
	},
	DecisionNoShow: {
		From: []BookingStatus{BookingStatusConfirmed},
		To:   BookingStatusNoShow,
		Slot: SlotKeep,
	},
}

func TransitionFor(d Decision) (Transition, error) {
	t, ok := transitions[d]
	if !ok {
		return Transition{}, fmt.Errorf("%w: unknown decision %q", ErrValidation, d)
	}
	return t, nil
}
