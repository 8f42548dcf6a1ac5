package ports

import (
	"context"
	"time"

	"github.com/stpnv0/TurfBooker/internal/domain"
)

type SlotRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	FindFree(ctx context.Context, date time.Time, iv domain.Interval) (*domain.Slot, error)
	FindOverlapping(ctx context.Context, date time.Time, iv domain.Interval, statuses []domain.SlotStatus, excludeID string) ([]*domain.Slot, error)
	Upsert(ctx context.Context, s *domain.Slot) (*domain.Slot, bool, error)
	CreateMissing(ctx context.Context, slots []*domain.Slot) (int, error)
	SetStatus(ctx context.Context, id string, status domain.SlotStatus, holdExpiresAt *time.Time) error
	CompareAndSetStatus(ctx context.Context, u domain.SlotUpdate) (*domain.Slot, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Slot, error)
	CountByStatus(ctx context.Context, date time.Time, status domain.SlotStatus) (int, error)
	ReleaseExpiredHolds(ctx context.Context, now time.Time) ([]*domain.Slot, error)
	DeletePastFree(ctx context.Context, before time.Time) (int64, error)
}
