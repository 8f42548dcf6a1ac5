package service

import (
	"context"

	"github.com/stpnv0/TurfBooker/internal/domain"
)

const (
	DefaultDailyConfirmedLimit = 3
	DefaultPeakLowStock        = 2
)

// RuleDecisionSource is the built-in decision source. It is also the fallback
// when a configured source fails.
type RuleDecisionSource struct {
	dailyLimit int
	lowStock   int
}

func NewRuleDecisionSource(dailyLimit, lowStock int) *RuleDecisionSource {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyConfirmedLimit
	}
	if lowStock < 0 {
		lowStock = DefaultPeakLowStock
	}
	return &RuleDecisionSource{dailyLimit: dailyLimit, lowStock: lowStock}
}

func (r *RuleDecisionSource) Decide(_ context.Context, in domain.DecisionInput) (domain.Verdict, error) {
	switch {
	case in.RecentConfirmedBookingCount >= r.dailyLimit:
		return domain.Verdict{
			Decision: domain.DecisionReject,
			Reason:   "daily booking limit reached for this phone",
		}, nil
	case in.IsPeakHour && in.RemainingFreeSlotCount <= r.lowStock:
		return domain.Verdict{
			Decision: domain.DecisionHold,
			Reason:   "peak hour with few free slots left, waiting for staff",
		}, nil
	default:
		return domain.Verdict{
			Decision: domain.DecisionConfirm,
			Reason:   "auto-approved",
		}, nil
	}
}

func verdictUsable(v domain.Verdict) bool {
	switch v.Decision {
	case domain.DecisionConfirm, domain.DecisionHold, domain.DecisionReject:
		return true
	}
	return false
}
