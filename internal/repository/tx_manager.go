package repository

import (
	"context"
	"fmt"

	"github.com/stpnv0/TurfBooker/internal/service/ports"
	"github.com/wb-go/wbf/dbpg"
)

type TxManager struct {
	db       *dbpg.DB
	slots    *SlotRepository
	bookings *BookingRepository
}

func NewTxManager(db *dbpg.DB, slots *SlotRepository, bookings *BookingRepository) *TxManager {
	return &TxManager{db: db, slots: slots, bookings: bookings}
}

// WithTx commits when fn returns nil and rolls back otherwise.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos ports.Repos) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	repos := ports.Repos{
		Slots:    &SlotRepository{conn: m.slots.withTx(tx)},
		Bookings: &BookingRepository{conn: m.bookings.withTx(tx)},
	}
	if err = fn(ctx, repos); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
