package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture(t *testing.T) (*fixture, *mocks.MockPaymentVerifier, *PaymentService) {
	t.Helper()
	f := newFixture(t, testPolicy())
	verifier := mocks.NewMockPaymentVerifier(t)
	svc := NewPaymentService(f.store.Bookings(), verifier, f.svc, f.notifier, newTestLogger(t))
	return f, verifier, svc
}

func proofFor(b *domain.Booking) domain.PaymentProof {
	return domain.PaymentProof{OrderID: b.PaymentOrderID, PaymentID: "pay_1", Signature: "abc"}
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("valid signature confirms the booking", func(t *testing.T) {
		f, verifier, svc := newPaymentFixture(t)

		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)
		require.NotEmpty(t, res.Booking.PaymentOrderID)

		proof := proofFor(res.Booking)
		verifier.EXPECT().Verify(mock.Anything, proof).Return(true, nil).Once()

		out, err := svc.VerifyPayment(ctx, res.Booking.ID, proof)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, out.Booking.Status)
		assert.Equal(t, domain.SlotStatusBooked, out.Slot.Status)
		assert.Equal(t, paymentVerifiedReason, out.Booking.DecisionReason)

		b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusVerified, b.PaymentStatus)

		_, err = svc.VerifyPayment(ctx, res.Booking.ID, proof)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("proof of one booking does not pay for another", func(t *testing.T) {
		f, verifier, svc := newPaymentFixture(t)

		first, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)
		second, err := f.svc.Reserve(ctx, reserveInput(t, "12:00", "13:00", "9123456780"))
		require.NoError(t, err)
		require.NotEqual(t, first.Booking.PaymentOrderID, second.Booking.PaymentOrderID)

		proof := proofFor(first.Booking)
		verifier.EXPECT().Verify(mock.Anything, proof).Return(true, nil).Once()

		out, err := svc.VerifyPayment(ctx, first.Booking.ID, proof)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, out.Booking.Status)

		_, err = svc.VerifyPayment(ctx, second.Booking.ID, proof)
		assert.ErrorIs(t, err, domain.ErrInvalidSignature)

		b, err := f.store.Bookings().GetByID(ctx, second.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
		assert.Equal(t, domain.PaymentStatusPending, b.PaymentStatus)
	})

	t.Run("bad signature marks the payment failed", func(t *testing.T) {
		f, verifier, svc := newPaymentFixture(t)

		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		proof := proofFor(res.Booking)
		verifier.EXPECT().Verify(mock.Anything, proof).Return(false, nil).Once()

		_, err = svc.VerifyPayment(ctx, res.Booking.ID, proof)
		assert.ErrorIs(t, err, domain.ErrInvalidSignature)

		b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, b.PaymentStatus)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
	})

	t.Run("verifier error keeps the payment submitted", func(t *testing.T) {
		f, verifier, svc := newPaymentFixture(t)

		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		proof := proofFor(res.Booking)
		verifier.EXPECT().Verify(mock.Anything, proof).Return(false, errors.New("no secret")).Once()

		_, err = svc.VerifyPayment(ctx, res.Booking.ID, proof)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidSignature)

		b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusSubmitted, b.PaymentStatus)
	})

	t.Run("retry confirms a verified booking after a failed confirm", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		verifier := mocks.NewMockPaymentVerifier(t)
		coordinator := mocks.NewMockCoordinator(t)
		svc := NewPaymentService(f.store.Bookings(), verifier, coordinator, f.notifier, newTestLogger(t))

		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		proof := proofFor(res.Booking)
		verifier.EXPECT().Verify(mock.Anything, proof).Return(true, nil).Twice()
		coordinator.EXPECT().GetBooking(mock.Anything, res.Booking.ID).RunAndReturn(f.svc.GetBooking).Twice()
		coordinator.EXPECT().ApplyDecision(mock.Anything, res.Booking.ID, domain.DecisionConfirm, paymentVerifiedReason).
			Return(nil, errors.New("connection reset")).Once()
		coordinator.EXPECT().ApplyDecision(mock.Anything, res.Booking.ID, domain.DecisionConfirm, paymentVerifiedReason).
			RunAndReturn(f.svc.ApplyDecision).Once()

		_, err = svc.VerifyPayment(ctx, res.Booking.ID, proof)
		require.Error(t, err)

		out, err := svc.VerifyPayment(ctx, res.Booking.ID, proof)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, out.Booking.Status)
		assert.Equal(t, domain.SlotStatusBooked, out.Slot.Status)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, svc := newPaymentFixture(t)
		_, err := svc.VerifyPayment(ctx, "any", domain.PaymentProof{OrderID: "order_1"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, _, svc := newPaymentFixture(t)
		_, err := svc.VerifyPayment(ctx, "missing", domain.PaymentProof{OrderID: "order_1", PaymentID: "pay_1", Signature: "abc"})
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})

	t.Run("paid after hold expired", func(t *testing.T) {
		f, verifier, svc := newPaymentFixture(t)

		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		proof := proofFor(res.Booking)
		verifier.EXPECT().Verify(mock.Anything, proof).Return(true, nil).Once()

		f.clock.Advance(DefaultHoldTTL)
		_, err = svc.VerifyPayment(ctx, res.Booking.ID, proof)
		assert.ErrorIs(t, err, domain.ErrHoldExpired)

		b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusVerified, b.PaymentStatus)
	})
}

func TestPaymentService_HandlePaymentEvent(t *testing.T) {
	ctx := context.Background()

	paid := func(b *domain.Booking) domain.PaymentEvent {
		return domain.PaymentEvent{
			Type:      domain.PaymentEventPaid,
			BookingID: b.ID,
			OrderID:   b.PaymentOrderID,
			PaymentID: "pay_1",
		}
	}

	t.Run("paid event is idempotent", func(t *testing.T) {
		f, _, svc := newPaymentFixture(t)
		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		ev := paid(res.Booking)
		require.NoError(t, svc.HandlePaymentEvent(ctx, ev))
		require.NoError(t, svc.HandlePaymentEvent(ctx, ev))

		b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
		assert.Equal(t, domain.PaymentStatusVerified, b.PaymentStatus)
	})

	t.Run("redelivery confirms after a transient failure", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		coordinator := mocks.NewMockCoordinator(t)
		svc := NewPaymentService(f.store.Bookings(), mocks.NewMockPaymentVerifier(t), coordinator, f.notifier, newTestLogger(t))

		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		coordinator.EXPECT().GetBooking(mock.Anything, res.Booking.ID).RunAndReturn(f.svc.GetBooking).Twice()
		coordinator.EXPECT().ApplyDecision(mock.Anything, res.Booking.ID, domain.DecisionConfirm, paymentVerifiedReason).
			Return(nil, errors.New("connection reset")).Once()
		coordinator.EXPECT().ApplyDecision(mock.Anything, res.Booking.ID, domain.DecisionConfirm, paymentVerifiedReason).
			RunAndReturn(f.svc.ApplyDecision).Once()

		ev := paid(res.Booking)
		require.Error(t, svc.HandlePaymentEvent(ctx, ev))

		b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusVerified, b.PaymentStatus)
		assert.Equal(t, domain.BookingStatusPending, b.Status)

		require.NoError(t, svc.HandlePaymentEvent(ctx, ev))

		b, err = f.store.Bookings().GetByID(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, b.Status)

		// подтверждённая бронь: повтор ничего не делает
		require.NoError(t, svc.HandlePaymentEvent(ctx, ev))
	})

	t.Run("event for another order is rejected", func(t *testing.T) {
		f, _, svc := newPaymentFixture(t)
		first, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)
		second, err := f.svc.Reserve(ctx, reserveInput(t, "12:00", "13:00", "9123456780"))
		require.NoError(t, err)

		ev := paid(first.Booking)
		ev.BookingID = second.Booking.ID
		assert.ErrorIs(t, svc.HandlePaymentEvent(ctx, ev), domain.ErrValidation)

		b, err := f.store.Bookings().GetByID(ctx, second.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
		assert.Equal(t, domain.PaymentStatusPending, b.PaymentStatus)
	})

	t.Run("failed event", func(t *testing.T) {
		f, _, svc := newPaymentFixture(t)
		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		ev := domain.PaymentEvent{Type: domain.PaymentEventFailed, BookingID: res.Booking.ID, OrderID: res.Booking.PaymentOrderID}
		require.NoError(t, svc.HandlePaymentEvent(ctx, ev))
		require.NoError(t, svc.HandlePaymentEvent(ctx, ev))

		b, err := f.store.Bookings().GetByID(ctx, res.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, b.PaymentStatus)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
	})

	t.Run("coordinator failure", func(t *testing.T) {
		f := newFixture(t, testPolicy())
		coordinator := mocks.NewMockCoordinator(t)
		svc := NewPaymentService(f.store.Bookings(), mocks.NewMockPaymentVerifier(t), coordinator, f.notifier, newTestLogger(t))

		res, err := f.svc.Reserve(ctx, reserveInput(t, "10:00", "11:00", "9876543210"))
		require.NoError(t, err)

		coordinator.EXPECT().GetBooking(mock.Anything, res.Booking.ID).Return(res, nil).Once()
		coordinator.EXPECT().ApplyDecision(mock.Anything, res.Booking.ID, domain.DecisionConfirm, paymentVerifiedReason).
			Return(nil, domain.ErrSlotConflict).Once()

		err = svc.HandlePaymentEvent(ctx, paid(res.Booking))
		assert.ErrorIs(t, err, domain.ErrSlotConflict)
	})

	t.Run("invalid events", func(t *testing.T) {
		_, _, svc := newPaymentFixture(t)
		assert.ErrorIs(t, svc.HandlePaymentEvent(ctx, domain.PaymentEvent{Type: domain.PaymentEventPaid}), domain.ErrValidation)
		assert.ErrorIs(t, svc.HandlePaymentEvent(ctx, domain.PaymentEvent{Type: "payment.refunded", BookingID: "b"}), domain.ErrValidation)
	})
}
