package ports

import (
	"context"

	"github.com/stpnv0/TurfBooker/internal/domain"
)

type DecisionSource interface {
	Decide(ctx context.Context, in domain.DecisionInput) (domain.Verdict, error)
}

// Coordinator applies decisions to bookings on behalf of other flows.
type Coordinator interface {
	GetBooking(ctx context.Context, id string) (*domain.Reservation, error)
	ApplyDecision(ctx context.Context, bookingID string, d domain.Decision, reason string) (*domain.Reservation, error)
}

type PaymentVerifier interface {
	Verify(ctx context.Context, proof domain.PaymentProof) (bool, error)
}
