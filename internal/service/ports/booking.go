package ports

import (
	"context"
	"time"

	"github.com/stpnv0/TurfBooker/internal/domain"
)

type BookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByPhone(ctx context.Context, phone string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, u domain.BookingUpdate) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id string, from []domain.PaymentStatus, to domain.PaymentStatus) (*domain.Booking, error)
	MarkNotified(ctx context.Context, id string) error
	CountConfirmedSince(ctx context.Context, phone string, since time.Time) (int, error)
	CancelAwaitingBySlot(ctx context.Context, slotID, exceptID, reason string) (int64, error)
}
