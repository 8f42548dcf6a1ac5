package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/repository/memory"
	"github.com/stpnv0/TurfBooker/internal/service/ports/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: testDay.Add(9 * time.Hour)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store     *memory.Store
	clock     *fakeClock
	holds     *HoldManager
	notifier  *mocks.MockNotifier
	publisher *mocks.MockEventPublisher
	svc       *ReservationService
}

func testPolicy() Policy {
	return Policy{
		Window:  domain.DefaultOperatingWindow(),
		Pricing: domain.Pricing{SplitAt: domain.NewClock(18, 0), DayRate: 800, NightRate: 1200},
	}
}

func newFixture(t *testing.T, policy Policy, opts ...Option) *fixture {
	t.Helper()

	clock := newFakeClock()
	store := memory.New().WithClock(clock.Now)
	log := newTestLogger(t)

	holds := NewHoldManager(store.Slots(), DefaultHoldTTL, log).WithClock(clock.Now)

	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.Anything, mock.Anything).
		Return(domain.NotifyResult{Success: true, Channel: "test"}).Maybe()

	publisher := mocks.NewMockEventPublisher(t)
	publisher.EXPECT().PublishJSON(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	opts = append([]Option{WithClock(clock.Now)}, opts...)
	svc := NewReservationService(store, store.Slots(), store.Bookings(), holds, notifier, publisher, policy, log, opts...)
	t.Cleanup(svc.Close)

	return &fixture{
		store:     store,
		clock:     clock,
		holds:     holds,
		notifier:  notifier,
		publisher: publisher,
		svc:       svc,
	}
}

func reserveInput(t *testing.T, start, end, phone string) domain.ReserveInput {
	t.Helper()
	iv, err := domain.ParseInterval(start, end)
	require.NoError(t, err)

	return domain.ReserveInput{
		Date:      testDay,
		Interval:  iv,
		UserName:  "Ravi",
		UserPhone: phone,
		Source:    domain.SourceWeb,
	}
}
