package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReservationService_ReserveAndConfirm(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	res, err := f.svc.Reserve(ctx, reserveInput(t, "18:00", "19:00", "9876543210"))
	require.NoError(t, err)

	assert.Equal(t, domain.BookingStatusPending, res.Booking.Status)
	assert.Equal(t, domain.PaymentStatusPending, res.Booking.PaymentStatus)
	assert.Equal(t, domain.SlotStatusHeld, res.Slot.Status)
	require.NotNil(t, res.Slot.HoldExpiresAt)
	assert.Equal(t, f.clock.Now().Add(300*time.Second), *res.Slot.HoldExpiresAt)
	assert.Equal(t, int64(1200), res.Booking.Amount)
	assert.Equal(t, res.Slot.ID, res.Booking.SlotID)

	confirmed, err := f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionConfirm, "staff approved")
	require.NoError(t, err)

	assert.Equal(t, domain.BookingStatusConfirmed, confirmed.Booking.Status)
	assert.Equal(t, "staff approved", confirmed.Booking.DecisionReason)
	require.NotNil(t, confirmed.Booking.ConfirmedAt)
	assert.Equal(t, domain.SlotStatusBooked, confirmed.Slot.Status)
	assert.Nil(t, confirmed.Slot.HoldExpiresAt)

	stored, err := f.store.Slots().GetByID(ctx, res.Slot.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, stored.Status)

	require.Eventually(t, func() bool {
		b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
		return err == nil && b.WhatsappNotified
	}, time.Second, 10*time.Millisecond)
}

func TestReservationService_ConcurrentSameInterval(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		errs []error
	)
	for _, phone := range []string{"9000000001", "9000000002"} {
		wg.Add(1)
		go func(phone string) {
			defer wg.Done()
			_, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", phone))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			errs = append(errs, err)
		}(phone)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrSlotConflict)

	slots, err := f.store.Slots().ListByDate(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, domain.SlotStatusHeld, slots[0].Status)
}

func TestReservationService_ConcurrentOverlappingIntervals(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	ranges := [][2]string{{"10:00", "11:00"}, {"10:30", "11:30"}, {"09:30", "10:30"}, {"10:15", "10:45"}}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, start, end string) {
			defer wg.Done()
			phone := "900000000" + string(rune('0'+i))
			_, err := f.svc.Reserve(ctx, reserveInput(t, start, end, phone))
			if err != nil {
				assert.True(t,
					errors.Is(err, domain.ErrSlotConflict) || errors.Is(err, domain.ErrSlotUnavailable),
					"unexpected error: %v", err)
				return
			}
			mu.Lock()
			ok++
			mu.Unlock()
		}(i, r[0], r[1])
	}
	wg.Wait()

	assert.Equal(t, 1, ok)

	held, err := f.store.Slots().FindOverlapping(ctx, testDay, domain.Interval{Start: 0, End: domain.MinutesPerDay}, domain.ClaimingStatuses, "")
	require.NoError(t, err)
	assert.Len(t, held, 1)
}

func TestReservationService_ExpiredHoldCannotBeConfirmed(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
	require.NoError(t, err)

	f.clock.Advance(301 * time.Second)

	released, err := f.holds.SweepExpired(ctx)
	require.NoError(t, err)
	require.Len(t, released, 1)
	assert.Equal(t, domain.SlotStatusFree, released[0].Status)

	_, err = f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionConfirm, "")
	assert.ErrorIs(t, err, domain.ErrHoldExpired)

	b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, b.Status)
}

func TestReservationService_ExpiredButNotSwept(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
	require.NoError(t, err)

	f.clock.Advance(DefaultHoldTTL)

	_, err = f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionConfirm, "")
	assert.ErrorIs(t, err, domain.ErrHoldExpired)
}

func TestReservationService_OutsideOperatingHours(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	_, err := f.svc.Reserve(ctx, reserveInput(t, "06:00", "07:00", "9876543210"))
	assert.ErrorIs(t, err, domain.ErrOutsideOperatingHours)

	slots, err := f.store.Slots().ListByDate(ctx, testDay)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestReservationService_Validation(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	in := reserveInput(t, "10:00", "11:00", "12345")
	_, err := f.svc.Reserve(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = reserveInput(t, "10:00", "11:00", "9876543210")
	in.UserName = "  "
	_, err = f.svc.Reserve(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = reserveInput(t, "10:00", "11:00", "9876543210")
	in.Interval = domain.Interval{Start: 660, End: 600}
	_, err = f.svc.Reserve(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	in = reserveInput(t, "10:00", "11:00", "9876543210")
	in.Source = "fax"
	_, err = f.svc.Reserve(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReservationService_ReserveUsesGeneratedSlot(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	gen := NewSlotGenerator(f.store.Slots(), domain.DefaultOperatingWindow(), testPolicy().Pricing, newTestLogger(t)).
		WithClock(f.clock.Now)
	_, err := gen.Reconcile(ctx, 1)
	require.NoError(t, err)

	free, err := f.store.Slots().FindFree(ctx, testDay, reserveInput(t, "10:00", "11:00", "9876543210").Interval)
	require.NoError(t, err)

	res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
	require.NoError(t, err)
	assert.Equal(t, free.ID, res.Slot.ID)
	assert.Equal(t, int64(800), res.Booking.Amount)

	in := reserveInput(t, "11:00", "12:00", "9876543210")
	in.SlotID = res.Slot.ID
	_, err = f.svc.Reserve(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReservationService_ReuseAfterExpiryCancelsStaleBooking(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	first, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9000000001"))
	require.NoError(t, err)

	f.clock.Advance(DefaultHoldTTL)
	_, err = f.holds.SweepExpired(ctx)
	require.NoError(t, err)

	second, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9000000002"))
	require.NoError(t, err)
	assert.Equal(t, first.Slot.ID, second.Slot.ID)

	stale, err := f.store.Bookings().GetByID(ctx, first.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, stale.Status)
	assert.True(t, stale.LostHold())

	_, err = f.svc.ApplyDecision(ctx, first.Booking.ID, domain.DecisionConfirm, "")
	assert.ErrorIs(t, err, domain.ErrHoldExpired)

	// отмена по решению персонала остаётся недопустимым переходом
	_, err = f.svc.ApplyDecision(ctx, second.Booking.ID, domain.DecisionCancel, "")
	require.NoError(t, err)
	_, err = f.svc.ApplyDecision(ctx, second.Booking.ID, domain.DecisionConfirm, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReservationService_SweepExpiredCancelsWaitingBookings(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	expiring, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9000000001"))
	require.NoError(t, err)

	f.clock.Advance(2 * time.Minute)
	live, err := f.svc.Reserve(ctx, reserveInput(t, "12:00", "13:00", "9000000002"))
	require.NoError(t, err)

	f.clock.Advance(DefaultHoldTTL - 2*time.Minute)

	released, err := f.svc.SweepExpired(ctx)
	require.NoError(t, err)
	require.Len(t, released, 1)
	assert.Equal(t, expiring.Slot.ID, released[0].ID)

	b, err := f.store.Bookings().GetByID(ctx, expiring.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, b.Status)
	assert.Equal(t, domain.HoldExpiredReason, b.DecisionReason)

	b, err = f.store.Bookings().GetByID(ctx, live.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, b.Status)

	_, err = f.svc.ApplyDecision(ctx, expiring.Booking.ID, domain.DecisionConfirm, "")
	assert.ErrorIs(t, err, domain.ErrHoldExpired)

	released, err = f.svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Empty(t, released)
}

func TestReservationService_RepeatedRequestIsIdempotent(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	in := reserveInput(t, "10:00", "11:00", "9876543210")
	in.BookingID = "6f1c2a52-2d1b-4c61-9d55-3f1e0e0b7a11"

	first, err := f.svc.Reserve(ctx, in)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)

	second, err := f.svc.Reserve(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
	assert.Equal(t, first.Slot.ID, second.Slot.ID)
	assert.Equal(t, f.clock.Now().Add(DefaultHoldTTL), *second.Slot.HoldExpiresAt)

	bookings, err := f.store.Bookings().ListByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestReservationService_DecisionTable(t *testing.T) {
	ctx := context.Background()

	t.Run("reject frees the slot", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		out, err := f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionReject, "no payment")
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusRejected, out.Booking.Status)
		assert.Equal(t, domain.SlotStatusFree, out.Slot.Status)
		assert.Nil(t, out.Slot.HoldExpiresAt)
	})

	t.Run("cancel of a confirmed booking frees the slot", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)
		_, err = f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionConfirm, "")
		require.NoError(t, err)

		out, err := f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionCancel, "customer called")
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, out.Booking.Status)
		assert.Equal(t, domain.SlotStatusFree, out.Slot.Status)

		again, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9000000002"))
		require.NoError(t, err)
		assert.Equal(t, res.Slot.ID, again.Slot.ID)
	})

	t.Run("hold refreshes the ttl", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		f.clock.Advance(4 * time.Minute)
		out, err := f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionHold, "call back")
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusHold, out.Booking.Status)
		assert.Equal(t, domain.SlotStatusHeld, out.Slot.Status)
		assert.Equal(t, f.clock.Now().Add(DefaultHoldTTL), *out.Slot.HoldExpiresAt)

		confirmed, err := f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionConfirm, "")
		require.NoError(t, err)
		assert.Equal(t, domain.SlotStatusBooked, confirmed.Slot.Status)
	})

	t.Run("no-show keeps the slot booked", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		_, err = f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionNoShow, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		confirmed, err := f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionConfirm, "")
		require.NoError(t, err)
		confirmedAt := *confirmed.Booking.ConfirmedAt

		out, err := f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionNoShow, "")
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusNoShow, out.Booking.Status)
		assert.Equal(t, domain.SlotStatusBooked, out.Slot.Status)
		assert.Equal(t, confirmedAt, *out.Booking.ConfirmedAt)
	})

	t.Run("double confirm is rejected", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		_, err = f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionConfirm, "")
		require.NoError(t, err)
		_, err = f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionConfirm, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		_, err := f.svc.ApplyDecision(ctx, "missing", domain.DecisionConfirm, "")
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})
}

func TestReservationService_PublishFailureIsTolerated(t *testing.T) {
	f := newFixture(t, testPolicy())
	f.publisher.ExpectedCalls = nil
	f.publisher.EXPECT().PublishJSON(mock.Anything, "booking.created", mock.Anything).
		Return(errors.New("broker down")).Once()

	res, err := f.svc.Reserve(context.Background(), reserveInput(t, "10:00", "11:00", "9876543210"))
	require.NoError(t, err)
	assert.NotEmpty(t, res.Booking.ID)
}

func TestReservationService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("rules confirm an off-peak slot", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		out, err := f.svc.Decide(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, out.Booking.Status)
		assert.Equal(t, "auto-approved", out.Booking.DecisionReason)
	})

	t.Run("rules reject after the daily limit", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		for _, r := range [][2]string{{"07:00", "08:00"}, {"08:00", "09:00"}, {"09:00", "10:00"}} {
			res, err := f.svc.Reserve(ctx, reserveInput(t, r[0], r[1], "9876543210"))
			require.NoError(t, err)
			_, err = f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionConfirm, "")
			require.NoError(t, err)
		}

		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		out, err := f.svc.Decide(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusRejected, out.Booking.Status)
		assert.Equal(t, domain.SlotStatusFree, out.Slot.Status)
	})

	t.Run("rules hold a scarce peak slot", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		res, err := f.svc.Reserve(ctx, reserveInput(t, "19:00", "20:00", "9876543210"))
		require.NoError(t, err)

		out, err := f.svc.Decide(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusHold, out.Booking.Status)
		assert.Equal(t, domain.SlotStatusHeld, out.Slot.Status)
	})

	t.Run("failing source falls back to rules", func(t *testing.T) {
		source := mocks.NewMockDecisionSource(t)
		source.EXPECT().Decide(mock.Anything, mock.Anything).
			Return(domain.Verdict{}, errors.New("model timeout")).Once()

		f := newFixture(t, testPolicy(), WithDecisionSource(source))
		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		out, err := f.svc.Decide(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, out.Booking.Status)
	})

	t.Run("source input", func(t *testing.T) {
		source := mocks.NewMockDecisionSource(t)
		source.EXPECT().Decide(mock.Anything, domain.DecisionInput{
			UserPhone:                   "9876543210",
			RecentConfirmedBookingCount: 0,
			RemainingFreeSlotCount:      0,
			IsPeakHour:                  true,
		}).Return(domain.Verdict{Decision: domain.DecisionReject, Reason: "suspicious"}, nil).Once()

		f := newFixture(t, testPolicy(), WithDecisionSource(source))
		res, err := f.svc.Reserve(ctx, reserveInput(t, "20:00", "21:00", "+91 98765 43210"))
		require.NoError(t, err)

		out, err := f.svc.Decide(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusRejected, out.Booking.Status)
		assert.Equal(t, "suspicious", out.Booking.DecisionReason)
	})
}

func TestReservationService_HoldFollowUp(t *testing.T) {
	ctx := context.Background()
	policy := testPolicy()
	policy.FollowUpDelay = 20 * time.Millisecond

	t.Run("follow-up applies a later verdict", func(t *testing.T) {
		source := mocks.NewMockDecisionSource(t)
		source.EXPECT().Decide(mock.Anything, mock.Anything).
			Return(domain.Verdict{Decision: domain.DecisionHold, Reason: "busy evening"}, nil).Once()
		source.EXPECT().Decide(mock.Anything, mock.Anything).
			Return(domain.Verdict{Decision: domain.DecisionConfirm, Reason: "ok now"}, nil).Once()

		f := newFixture(t, policy, WithDecisionSource(source))
		res, err := f.svc.Reserve(ctx, reserveInput(t, "19:00", "20:00", "9876543210"))
		require.NoError(t, err)

		out, err := f.svc.Decide(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusHold, out.Booking.Status)

		require.Eventually(t, func() bool {
			b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
			return err == nil && b.Status == domain.BookingStatusConfirmed
		}, time.Second, 5*time.Millisecond)

		b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, "follow-up: ok now", b.DecisionReason)
	})

	t.Run("manual decision cancels the follow-up", func(t *testing.T) {
		f := newFixture(t, policy)
		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		_, err = f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionHold, "")
		require.NoError(t, err)
		assert.Equal(t, 1, f.svc.followUps.Pending())

		_, err = f.svc.ApplyDecision(ctx, res.Booking.ID, domain.DecisionReject, "")
		require.NoError(t, err)
		assert.Equal(t, 0, f.svc.followUps.Pending())

		time.Sleep(50 * time.Millisecond)
		b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusRejected, b.Status)
	})
}

func TestReservationService_Queries(t *testing.T) {
	f := newFixture(t, testPolicy())
	ctx := context.Background()

	res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
	require.NoError(t, err)

	got, err := f.svc.GetBooking(ctx, res.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Slot.ID, got.Slot.ID)

	list, err := f.svc.ListBookingsByPhone(ctx, "98765-43210")
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = f.svc.ListBookingsByPhone(ctx, "123")
	assert.ErrorIs(t, err, domain.ErrValidation)

	slots, err := f.svc.ListSlots(ctx, testDay.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, domain.SlotStatusHeld, slots[0].Status)

	_, err = f.svc.GetBooking(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestNormalizePhone(t *testing.T) {
	p, err := NormalizePhone("+91 98765 43210")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", p)

	p, err = NormalizePhone("98765-43210")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", p)

	_, err = NormalizePhone("987654321")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
