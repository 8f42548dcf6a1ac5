package domain

import (
	"fmt"
	"strings"
)

type Decision string

const (
	DecisionConfirm Decision = "confirm"
	DecisionHold    Decision = "hold"
	DecisionReject  Decision = "reject"
	DecisionCancel  Decision = "cancel"
	DecisionNoShow  Decision = "no-show"
)

func ParseDecision(s string) (Decision, error) {
	d := Decision(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := transitions[d]; !ok {
		return "", fmt.Errorf("%w: unknown decision %q", ErrValidation, s)
	}
	return d, nil
}

// DecisionInput is what an automatic decision source sees about a booking.
type DecisionInput struct {
	UserPhone                   string `json:"user_phone"`
	RecentConfirmedBookingCount int    `json:"recent_confirmed_booking_count"`
	RemainingFreeSlotCount      int    `json:"remaining_free_slot_count"`
	IsPeakHour                  bool   `json:"is_peak_hour"`
}

type Verdict struct {
	Decision Decision `json:"decision"`
	Reason   string   `json:"reason"`
}
