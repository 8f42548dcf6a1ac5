package scheduler

import (
	"context"
	"time"

	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/wb-go/wbf/logger"
)

const (
	sweepLockKey     = "turf:lock:sweep"
	reconcileLockKey = "turf:lock:reconcile"
)

type holdSweeper interface {
	SweepExpired(ctx context.Context) ([]*domain.Slot, error)
}

type slotReconciler interface {
	Reconcile(ctx context.Context, daysAhead int) (domain.ReconcileResult, error)
}

// jobLocker keeps several replicas from running the same job at once.
type jobLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error)
}

type Config struct {
	SweepInterval     time.Duration
	ReconcileInterval time.Duration
	HorizonDays       int
}

type Scheduler struct {
	sweeper    holdSweeper
	reconciler slotReconciler
	locker     jobLocker
	cfg        Config
	logger     logger.Logger
}

func New(
	sweeper holdSweeper,
	reconciler slotReconciler,
	cfg Config,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		sweeper:    sweeper,
		reconciler: reconciler,
		cfg:        cfg,
		logger:     logger,
	}
}

// WithLocker makes every tick run under a distributed lock.
func (s *Scheduler) WithLocker(l jobLocker) *Scheduler {
	s.locker = l
	return s
}

// Start reconciles slots once and then runs both jobs until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	sweep := time.NewTicker(s.cfg.SweepInterval)
	defer sweep.Stop()

	var reconcileC <-chan time.Time
	if s.reconciler != nil && s.cfg.ReconcileInterval > 0 {
		reconcile := time.NewTicker(s.cfg.ReconcileInterval)
		defer reconcile.Stop()
		reconcileC = reconcile.C

		s.runLocked(ctx, reconcileLockKey, s.cfg.ReconcileInterval, s.reconcile)
	}

	s.logger.Info("scheduler started",
		logger.Duration("sweep_interval", s.cfg.SweepInterval),
		logger.Duration("reconcile_interval", s.cfg.ReconcileInterval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-sweep.C:
			s.runLocked(ctx, sweepLockKey, s.cfg.SweepInterval, s.sweep)
		case <-reconcileC:
			s.runLocked(ctx, reconcileLockKey, s.cfg.ReconcileInterval, s.reconcile)
		}
	}
}

func (s *Scheduler) runLocked(ctx context.Context, key string, ttl time.Duration, job func(context.Context)) {
	if s.locker == nil {
		job(ctx)
		return
	}

	unlock, ok, err := s.locker.TryLock(ctx, key, ttl)
	if err != nil {
		s.logger.Error("failed to acquire job lock",
			logger.String("key", key),
			logger.String("error", err.Error()),
		)
		return
	}
	if !ok {
		s.logger.Debug("job is running elsewhere", logger.String("key", key))
		return
	}
	defer unlock()

	job(ctx)
}

func (s *Scheduler) sweep(ctx context.Context) {
	released, err := s.sweeper.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("failed to release expired holds",
			logger.String("error", err.Error()),
		)
		return
	}

	for _, slot := range released {
		s.logger.Info("hold expired",
			logger.String("slot_id", slot.ID),
			logger.String("date", slot.Date.Format(domain.DateLayout)),
			logger.String("interval", slot.Interval.String()),
		)
	}
}

func (s *Scheduler) reconcile(ctx context.Context) {
	if _, err := s.reconciler.Reconcile(ctx, s.cfg.HorizonDays); err != nil {
		s.logger.Error("failed to reconcile slots",
			logger.Int("days_ahead", s.cfg.HorizonDays),
			logger.String("error", err.Error()),
		)
	}
}
