package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

const paymentVerifiedReason = "payment verified"

type PaymentService struct {
	bookings    ports.BookingRepo
	verifier    ports.PaymentVerifier
	coordinator ports.Coordinator
	notifier    ports.Notifier
	logger      logger.Logger
}

func NewPaymentService(
	bookings ports.BookingRepo,
	verifier ports.PaymentVerifier,
	coordinator ports.Coordinator,
	notifier ports.Notifier,
	logger logger.Logger,
) *PaymentService {
	return &PaymentService{
		bookings:    bookings,
		verifier:    verifier,
		coordinator: coordinator,
		notifier:    notifier,
		logger:      logger,
	}
}

// VerifyPayment checks the gateway signature and confirms the booking on success.
// The proof must carry the order issued together with the booking.
func (s *PaymentService) VerifyPayment(ctx context.Context, bookingID string, proof domain.PaymentProof) (*domain.Reservation, error) {
	if strings.TrimSpace(proof.OrderID) == "" || strings.TrimSpace(proof.PaymentID) == "" || proof.Signature == "" {
		return nil, fmt.Errorf("%w: order_id, payment_id and signature are required", domain.ErrValidation)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if !orderMatches(b, proof.OrderID) {
		s.logger.Warn("payment proof belongs to another order",
			logger.String("booking_id", bookingID),
			logger.String("order_id", proof.OrderID),
		)
		return nil, fmt.Errorf("%w: order %s is not issued for booking %s", domain.ErrInvalidSignature, proof.OrderID, bookingID)
	}

	if b.PaymentStatus == domain.PaymentStatusVerified {
		if b.Status == domain.BookingStatusConfirmed {
			return nil, fmt.Errorf("%w: payment already verified", domain.ErrInvalidTransition)
		}

		// оплата принята раньше, но бронь тогда не подтвердилась
		ok, err := s.verifier.Verify(ctx, proof)
		if err != nil {
			return nil, fmt.Errorf("verify payment: %w", err)
		}
		if !ok {
			return nil, domain.ErrInvalidSignature
		}
		return s.confirmPaid(ctx, bookingID)
	}

	_, err = s.bookings.UpdatePaymentStatus(ctx, bookingID,
		[]domain.PaymentStatus{domain.PaymentStatusPending, domain.PaymentStatusSubmitted, domain.PaymentStatusFailed},
		domain.PaymentStatusSubmitted,
	)
	if err != nil {
		return nil, fmt.Errorf("submit payment: %w", err)
	}

	ok, err := s.verifier.Verify(ctx, proof)
	if err != nil {
		// проверить не удалось, статус остаётся submitted
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if !ok {
		if _, markErr := s.bookings.UpdatePaymentStatus(ctx, bookingID,
			[]domain.PaymentStatus{domain.PaymentStatusSubmitted}, domain.PaymentStatusFailed,
		); markErr != nil {
			s.logger.Error("failed to mark payment failed",
				logger.String("booking_id", bookingID),
				logger.String("error", markErr.Error()),
			)
		}

		s.logger.Warn("payment signature mismatch",
			logger.String("booking_id", bookingID),
			logger.String("order_id", proof.OrderID),
		)
		s.notifyPayment(ctx, domain.NotifyPaymentFailed, bookingID)
		return nil, domain.ErrInvalidSignature
	}

	if _, err = s.bookings.UpdatePaymentStatus(ctx, bookingID,
		[]domain.PaymentStatus{domain.PaymentStatusSubmitted}, domain.PaymentStatusVerified,
	); err != nil {
		return nil, fmt.Errorf("mark payment verified: %w", err)
	}
	s.paymentVerified(ctx, bookingID)

	return s.confirmPaid(ctx, bookingID)
}

// HandlePaymentEvent applies a gateway event received from the broker.
// A paid event is a replay only once the booking is confirmed; until then
// redeliveries keep trying to confirm it.
func (s *PaymentService) HandlePaymentEvent(ctx context.Context, ev domain.PaymentEvent) error {
	if ev.BookingID == "" {
		return fmt.Errorf("%w: payment event without booking_id", domain.ErrValidation)
	}
	if ev.Type != domain.PaymentEventPaid && ev.Type != domain.PaymentEventFailed {
		return fmt.Errorf("%w: unknown payment event %q", domain.ErrValidation, ev.Type)
	}

	b, err := s.bookings.GetByID(ctx, ev.BookingID)
	if err != nil {
		return fmt.Errorf("get booking: %w", err)
	}
	if !orderMatches(b, ev.OrderID) {
		return fmt.Errorf("%w: order %q is not issued for booking %s", domain.ErrValidation, ev.OrderID, ev.BookingID)
	}

	if ev.Type == domain.PaymentEventFailed {
		_, err = s.bookings.UpdatePaymentStatus(ctx, ev.BookingID,
			[]domain.PaymentStatus{domain.PaymentStatusPending, domain.PaymentStatusSubmitted},
			domain.PaymentStatusFailed,
		)
		if errors.Is(err, domain.ErrStatusConflict) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("mark payment failed: %w", err)
		}
		s.notifyPayment(ctx, domain.NotifyPaymentFailed, ev.BookingID)
		return nil
	}

	if b.PaymentStatus == domain.PaymentStatusVerified && b.Status == domain.BookingStatusConfirmed {
		s.logger.Info("payment event already applied",
			logger.String("booking_id", ev.BookingID),
			logger.String("payment_id", ev.PaymentID),
		)
		return nil
	}

	if b.PaymentStatus != domain.PaymentStatusVerified {
		_, err = s.bookings.UpdatePaymentStatus(ctx, ev.BookingID,
			[]domain.PaymentStatus{domain.PaymentStatusPending, domain.PaymentStatusSubmitted, domain.PaymentStatusFailed},
			domain.PaymentStatusVerified,
		)
		switch {
		case err == nil:
			s.paymentVerified(ctx, ev.BookingID)
		case errors.Is(err, domain.ErrStatusConflict):
			// параллельная доставка уже отметила оплату
		default:
			return fmt.Errorf("mark payment verified: %w", err)
		}
	}

	_, err = s.confirmPaid(ctx, ev.BookingID)
	return err
}

func (s *PaymentService) paymentVerified(ctx context.Context, bookingID string) {
	s.logger.Info("payment verified",
		logger.String("booking_id", bookingID),
	)
	s.notifyPayment(ctx, domain.NotifyPaymentVerified, bookingID)
}

// confirmPaid applies the confirm decision to a booking whose payment is verified.
func (s *PaymentService) confirmPaid(ctx context.Context, bookingID string) (*domain.Reservation, error) {
	current, err := s.coordinator.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Booking.Status == domain.BookingStatusConfirmed {
		return current, nil
	}

	res, err := s.coordinator.ApplyDecision(ctx, bookingID, domain.DecisionConfirm, paymentVerifiedReason)
	if err != nil {
		// деньги получены, но слот подтвердить не удалось
		s.logger.Error("paid booking could not be confirmed",
			logger.String("booking_id", bookingID),
			logger.String("error", err.Error()),
		)
		return nil, fmt.Errorf("confirm paid booking: %w", err)
	}

	return res, nil
}

func orderMatches(b *domain.Booking, orderID string) bool {
	return b.PaymentOrderID != "" && strings.TrimSpace(orderID) == b.PaymentOrderID
}

func (s *PaymentService) notifyPayment(ctx context.Context, kind domain.NotificationKind, bookingID string) {
	go func(ctx context.Context) {
		b, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			s.logger.Error("failed to get booking for payment notification",
				logger.String("booking_id", bookingID),
			)
			return
		}

		res := s.notifier.Notify(ctx, domain.NotificationFor(kind, b, nil))
		if res.Err != nil {
			s.logger.Warn("payment notification not delivered",
				logger.String("booking_id", bookingID),
				logger.String("channel", res.Channel),
				logger.String("error", res.Err.Error()),
			)
		}
	}(context.WithoutCancel(ctx))
}
