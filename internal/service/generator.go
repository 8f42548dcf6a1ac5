package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

const DefaultHorizonDays = 30

// SlotGenerator keeps a rolling window of hourly free slots. It only inserts
// missing slots and prunes past free ones, so it never touches slots that are
// held, booked or referenced by a booking.
type SlotGenerator struct {
	slots   ports.SlotRepo
	window  domain.OperatingWindow
	pricing domain.Pricing
	clock   func() time.Time
	logger  logger.Logger
}

func NewSlotGenerator(slots ports.SlotRepo, window domain.OperatingWindow, pricing domain.Pricing, logger logger.Logger) *SlotGenerator {
	return &SlotGenerator{
		slots:   slots,
		window:  window,
		pricing: pricing,
		clock:   time.Now,
		logger:  logger,
	}
}

func (g *SlotGenerator) WithClock(clock func() time.Time) *SlotGenerator {
	g.clock = clock
	return g
}

func (g *SlotGenerator) Reconcile(ctx context.Context, daysAhead int) (domain.ReconcileResult, error) {
	var res domain.ReconcileResult
	if daysAhead <= 0 {
		return res, fmt.Errorf("%w: days ahead must be positive", domain.ErrValidation)
	}

	today := domain.DateOf(g.clock())
	hours := g.window.Hourly()

	for day := 0; day < daysAhead; day++ {
		date := today.AddDate(0, 0, day)

		batch := make([]*domain.Slot, 0, len(hours))
		for _, iv := range hours {
			batch = append(batch, &domain.Slot{
				ID:       uuid.New().String(),
				Date:     date,
				Interval: iv,
				Status:   domain.SlotStatusFree,
				Price:    g.pricing.PriceFor(iv),
			})
		}

		created, err := g.slots.CreateMissing(ctx, batch)
		res.Created += created
		if err != nil {
			return res, fmt.Errorf("generate slots for %s: %w", date.Format(domain.DateLayout), err)
		}
	}

	pruned, err := g.slots.DeletePastFree(ctx, today)
	if err != nil {
		return res, fmt.Errorf("prune past slots: %w", err)
	}
	res.Pruned = pruned

	g.logger.Info("slots reconciled",
		logger.Int("days_ahead", daysAhead),
		logger.Int("created", res.Created),
		logger.Int64("pruned", res.Pruned),
	)

	return res, nil
}
