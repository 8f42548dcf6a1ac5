package service

import (
	"context"
	"sync"
	"time"

	"github.com/wb-go/wbf/logger"
)

// FollowUps runs one delayed re-evaluation per booking. Scheduling again
// replaces the pending one.
type FollowUps struct {
	delay  time.Duration
	run    func(ctx context.Context, bookingID string)
	logger logger.Logger

	mu      sync.Mutex
	pending map[string]*pendingFollowUp
	wg      sync.WaitGroup
}

type pendingFollowUp struct {
	cancel context.CancelFunc
}

func NewFollowUps(delay time.Duration, run func(ctx context.Context, bookingID string), logger logger.Logger) *FollowUps {
	return &FollowUps{
		delay:   delay,
		run:     run,
		logger:  logger,
		pending: make(map[string]*pendingFollowUp),
	}
}

func (f *FollowUps) Schedule(ctx context.Context, bookingID string) {
	if f.delay <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	entry := &pendingFollowUp{cancel: cancel}

	f.mu.Lock()
	if prev, ok := f.pending[bookingID]; ok {
		prev.cancel()
	}
	f.pending[bookingID] = entry
	f.wg.Add(1)
	f.mu.Unlock()

	f.logger.Debug("follow-up scheduled",
		logger.String("booking_id", bookingID),
		logger.Duration("delay", f.delay),
	)

	go func() {
		defer f.wg.Done()
		defer cancel()

		timer := time.NewTimer(f.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if !f.claim(bookingID, entry) {
			return
		}
		f.run(ctx, bookingID)
	}()
}

// claim removes the entry if it still belongs to this run.
func (f *FollowUps) claim(bookingID string, entry *pendingFollowUp) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending[bookingID] != entry {
		return false
	}
	delete(f.pending, bookingID)
	return true
}

func (f *FollowUps) Cancel(bookingID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.pending[bookingID]
	if ok {
		entry.cancel()
		delete(f.pending, bookingID)
	}
	return ok
}

func (f *FollowUps) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Stop cancels all pending follow-ups and waits for running ones.
func (f *FollowUps) Stop() {
	f.mu.Lock()
	for id, entry := range f.pending {
		entry.cancel()
		delete(f.pending, id)
	}
	f.mu.Unlock()

	f.wg.Wait()
}
