package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/service/ports"
	"github.com/wb-go/wbf/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/stpnv0/TurfBooker/internal/service"

// Policy holds the business constants of the facility.
type Policy struct {
	Window        domain.OperatingWindow
	Pricing       domain.Pricing
	FollowUpDelay time.Duration
}

type ReservationService struct {
	tx        ports.TxManager
	slots     ports.SlotRepo
	bookings  ports.BookingRepo
	holds     *HoldManager
	notifier  ports.Notifier
	publisher ports.EventPublisher
	decider   ports.DecisionSource
	fallback  ports.DecisionSource
	followUps *FollowUps
	policy    Policy
	clock     func() time.Time
	tracer    trace.Tracer
	logger    logger.Logger
}

type Option func(*ReservationService)

func WithClock(clock func() time.Time) Option {
	return func(s *ReservationService) { s.clock = clock }
}

// WithDecisionSource plugs an external decision source in front of the rules.
func WithDecisionSource(ds ports.DecisionSource) Option {
	return func(s *ReservationService) { s.decider = ds }
}

func WithRules(rules *RuleDecisionSource) Option {
	return func(s *ReservationService) { s.fallback = rules }
}

func NewReservationService(
	tx ports.TxManager,
	slots ports.SlotRepo,
	bookings ports.BookingRepo,
	holds *HoldManager,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	policy Policy,
	logger logger.Logger,
	opts ...Option,
) *ReservationService {
	s := &ReservationService{
		tx:        tx,
		slots:     slots,
		bookings:  bookings,
		holds:     holds,
		notifier:  notifier,
		publisher: publisher,
		policy:    policy,
		clock:     time.Now,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fallback == nil {
		s.fallback = NewRuleDecisionSource(DefaultDailyConfirmedLimit, DefaultPeakLowStock)
	}
	if s.decider == nil {
		s.decider = s.fallback
	}
	s.followUps = NewFollowUps(policy.FollowUpDelay, s.followUp, logger)

	return s
}

// Close stops pending hold follow-ups.
func (s *ReservationService) Close() {
	s.followUps.Stop()
}

func (s *ReservationService) Reserve(ctx context.Context, in domain.ReserveInput) (*domain.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "ReservationService.Reserve")
	defer span.End()

	in, err := s.normalize(in)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(
		attribute.String("slot.date", in.Date.Format(domain.DateLayout)),
		attribute.String("slot.interval", in.Interval.String()),
		attribute.String("booking.source", string(in.Source)),
	)

	if in.BookingID != "" {
		res, found, err := s.resume(ctx, in)
		if err != nil {
			return nil, fail(span, err)
		}
		if found {
			return res, nil
		}
	} else {
		in.BookingID = uuid.New().String()
	}

	res, err := s.reserveOnce(ctx, in)
	if raced(err) {
		s.logger.LogAttrs(ctx, logger.WarnLevel, "reservation raced, retrying",
			logger.String("booking_id", in.BookingID),
			logger.String("error", err.Error()),
		)
		res, err = s.reserveOnce(ctx, in)
		if raced(err) {
			err = fmt.Errorf("%w: %v", domain.ErrSlotConflict, err)
		}
	}
	if err != nil {
		return nil, fail(span, err)
	}

	s.logger.Info("slot reserved",
		logger.String("booking_id", res.Booking.ID),
		logger.String("slot_id", res.Slot.ID),
		logger.String("date", res.Slot.Date.Format(domain.DateLayout)),
		logger.String("interval", res.Slot.Interval.String()),
		logger.String("source", string(res.Booking.Source)),
	)

	s.publish(ctx, "booking.created", res)
	go s.notify(context.WithoutCancel(ctx), domain.NotifyBookingReceived, res)

	return res, nil
}

func (s *ReservationService) reserveOnce(ctx context.Context, in domain.ReserveInput) (*domain.Reservation, error) {
	var res *domain.Reservation

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos ports.Repos) error {
		conflicts, err := repos.Slots.FindOverlapping(ctx, in.Date, in.Interval, domain.ClaimingStatuses, in.SlotID)
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("%w: %s overlaps %s on %s",
				domain.ErrSlotConflict, in.Interval, conflicts[0].Interval, in.Date.Format(domain.DateLayout))
		}

		slot, err := s.resolveSlot(ctx, repos.Slots, in)
		if err != nil {
			return err
		}

		held, err := s.holds.With(repos.Slots).PlaceHold(ctx, slot.ID, in.BookingID)
		if err != nil {
			return err
		}

		// прошлые брони этого слота потеряли холд
		if _, err = repos.Bookings.CancelAwaitingBySlot(ctx, held.ID, in.BookingID, domain.HoldExpiredReason); err != nil {
			return fmt.Errorf("cancel stale bookings: %w", err)
		}

		amount := in.Amount
		if amount == 0 {
			amount = held.Price
		}

		now := s.now()
		booking := &domain.Booking{
			ID:             in.BookingID,
			UserName:       in.UserName,
			UserPhone:      in.UserPhone,
			SlotID:         held.ID,
			Amount:         amount,
			Status:         domain.BookingStatusPending,
			PaymentStatus:  domain.PaymentStatusPending,
			PaymentOrderID: newOrderID(),
			Source:         in.Source,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err = repos.Bookings.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		res = &domain.Reservation{Booking: booking, Slot: held}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *ReservationService) resolveSlot(ctx context.Context, slots ports.SlotRepo, in domain.ReserveInput) (*domain.Slot, error) {
	if in.SlotID != "" {
		slot, err := slots.GetByID(ctx, in.SlotID)
		if err != nil {
			return nil, fmt.Errorf("get slot: %w", err)
		}
		if !slot.Date.Equal(in.Date) || slot.Interval != in.Interval {
			return nil, fmt.Errorf("%w: slot %s is %s %s", domain.ErrValidation,
				slot.ID, slot.Date.Format(domain.DateLayout), slot.Interval)
		}
		if slot.Status == domain.SlotStatusFree || slot.Status == domain.SlotStatusHeld {
			return slot, nil
		}
	}

	slot, err := slots.FindFree(ctx, in.Date, in.Interval)
	if err == nil {
		return slot, nil
	}
	if !errors.Is(err, domain.ErrSlotNotFound) {
		return nil, fmt.Errorf("find free slot: %w", err)
	}

	slot, _, err = slots.Upsert(ctx, &domain.Slot{
		ID:       uuid.New().String(),
		Date:     in.Date,
		Interval: in.Interval,
		Status:   domain.SlotStatusFree,
		Price:    s.policy.Pricing.PriceFor(in.Interval),
	})
	if err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	return slot, nil
}

// resume handles a repeated request carrying an existing booking id.
func (s *ReservationService) resume(ctx context.Context, in domain.ReserveInput) (*domain.Reservation, bool, error) {
	booking, err := s.bookings.GetByID(ctx, in.BookingID)
	if errors.Is(err, domain.ErrBookingNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get booking: %w", err)
	}

	slot, err := s.slots.GetByID(ctx, booking.SlotID)
	if err != nil {
		return nil, false, fmt.Errorf("get slot: %w", err)
	}
	if !slot.Date.Equal(in.Date) || slot.Interval != in.Interval {
		return nil, false, fmt.Errorf("%w: booking %s belongs to another slot", domain.ErrValidation, booking.ID)
	}

	switch booking.Status {
	case domain.BookingStatusConfirmed:
		return &domain.Reservation{Booking: booking, Slot: slot}, true, nil
	case domain.BookingStatusPending, domain.BookingStatusHold:
		held, err := s.holds.PlaceHold(ctx, slot.ID, booking.ID)
		if err != nil {
			return nil, false, err
		}
		return &domain.Reservation{Booking: booking, Slot: held}, true, nil
	default:
		return nil, false, fmt.Errorf("%w: booking %s is %s", domain.ErrInvalidTransition, booking.ID, booking.Status)
	}
}

func (s *ReservationService) ApplyDecision(
	ctx context.Context,
	bookingID string,
	d domain.Decision,
	reason string,
) (*domain.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "ReservationService.ApplyDecision",
		trace.WithAttributes(
			attribute.String("booking.id", bookingID),
			attribute.String("decision", string(d)),
		),
	)
	defer span.End()

	tr, err := domain.TransitionFor(d)
	if err != nil {
		return nil, fail(span, err)
	}

	res, err := s.applyOnce(ctx, bookingID, d, tr, reason)
	if errors.Is(err, domain.ErrStatusConflict) {
		s.logger.LogAttrs(ctx, logger.WarnLevel, "decision raced, retrying",
			logger.String("booking_id", bookingID),
			logger.String("decision", string(d)),
		)
		res, err = s.applyOnce(ctx, bookingID, d, tr, reason)
		if errors.Is(err, domain.ErrStatusConflict) {
			err = fmt.Errorf("%w: %v", domain.ErrSlotConflict, err)
		}
	}
	if err != nil {
		return nil, fail(span, err)
	}

	if d == domain.DecisionHold {
		s.followUps.Schedule(ctx, bookingID)
	} else {
		s.followUps.Cancel(bookingID)
	}

	s.logger.Info("decision applied",
		logger.String("booking_id", bookingID),
		logger.String("decision", string(d)),
		logger.String("booking_status", string(res.Booking.Status)),
		logger.String("slot_status", string(res.Slot.Status)),
	)

	s.publish(ctx, "booking."+string(res.Booking.Status), res)
	go s.notify(context.WithoutCancel(ctx), decisionNotifications[d], res)

	return res, nil
}

var decisionNotifications = map[domain.Decision]domain.NotificationKind{
	domain.DecisionConfirm: domain.NotifyBookingConfirmed,
	domain.DecisionReject:  domain.NotifyBookingRejected,
	domain.DecisionCancel:  domain.NotifyBookingCancelled,
	domain.DecisionHold:    domain.NotifyBookingHeld,
	domain.DecisionNoShow:  domain.NotifyBookingNoShow,
}

func (s *ReservationService) applyOnce(
	ctx context.Context,
	bookingID string,
	d domain.Decision,
	tr domain.Transition,
	reason string,
) (*domain.Reservation, error) {
	var res *domain.Reservation

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos ports.Repos) error {
		booking, err := repos.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		if !tr.Allows(booking.Status) {
			if d == domain.DecisionConfirm && booking.LostHold() {
				return fmt.Errorf("%w: booking %s lost its hold on slot %s", domain.ErrHoldExpired, booking.ID, booking.SlotID)
			}
			return fmt.Errorf("%w: cannot %s a %s booking", domain.ErrInvalidTransition, d, booking.Status)
		}

		slot, err := s.applySlotEffect(ctx, repos.Slots, booking, tr.Slot)
		if err != nil {
			return err
		}

		u := domain.BookingUpdate{
			ID:     booking.ID,
			From:   []domain.BookingStatus{booking.Status},
			To:     tr.To,
			Reason: reason,
		}
		if tr.To == domain.BookingStatusConfirmed {
			now := s.now()
			u.ConfirmedAt = &now
		}

		updated, err := repos.Bookings.UpdateStatus(ctx, u)
		if err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		res = &domain.Reservation{Booking: updated, Slot: slot}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *ReservationService) applySlotEffect(
	ctx context.Context,
	slots ports.SlotRepo,
	booking *domain.Booking,
	effect domain.SlotEffect,
) (*domain.Slot, error) {
	holds := s.holds.With(slots)

	switch effect {
	case domain.SlotCommit:
		slot, err := holds.CommitHold(ctx, booking.SlotID, booking.ID)
		if err == nil || !errors.Is(err, domain.ErrInvalidTransition) {
			return slot, err
		}

		current, getErr := slots.GetByID(ctx, booking.SlotID)
		if getErr != nil {
			return nil, fmt.Errorf("get slot: %w", getErr)
		}
		if current.Status == domain.SlotStatusBooked && current.ClaimedBy == booking.ID {
			// параллельное подтверждение той же брони
			return nil, fmt.Errorf("%w: slot %s already booked", domain.ErrStatusConflict, current.ID)
		}
		return nil, fmt.Errorf("%w: booking %s lost its hold on slot %s", domain.ErrHoldExpired, booking.ID, booking.SlotID)

	case domain.SlotRelease:
		return holds.ReleaseHold(ctx, booking.SlotID, booking.ID)

	case domain.SlotRehold:
		return holds.PlaceHold(ctx, booking.SlotID, booking.ID)

	default:
		slot, err := slots.GetByID(ctx, booking.SlotID)
		if err != nil {
			return nil, fmt.Errorf("get slot: %w", err)
		}
		return slot, nil
	}
}

// SweepExpired frees expired holds and cancels the bookings that were waiting on them.
func (s *ReservationService) SweepExpired(ctx context.Context) ([]*domain.Slot, error) {
	var (
		released  []*domain.Slot
		cancelled int64
	)

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos ports.Repos) error {
		var err error
		released, err = s.holds.With(repos.Slots).SweepExpired(ctx)
		if err != nil {
			return err
		}

		cancelled = 0
		for _, slot := range released {
			n, err := repos.Bookings.CancelAwaitingBySlot(ctx, slot.ID, "", domain.HoldExpiredReason)
			if err != nil {
				return fmt.Errorf("cancel bookings of slot %s: %w", slot.ID, err)
			}
			cancelled += n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cancelled > 0 {
		s.logger.LogAttrs(ctx, logger.InfoLevel, "bookings cancelled on hold expiry",
			logger.Int("slots", len(released)),
			logger.Int64("bookings", cancelled),
		)
	}

	return released, nil
}

// Decide asks the decision source about a booking and applies its verdict.
func (s *ReservationService) Decide(ctx context.Context, bookingID string) (*domain.Reservation, error) {
	verdict, err := s.verdictFor(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.ApplyDecision(ctx, bookingID, verdict.Decision, verdict.Reason)
}

func (s *ReservationService) verdictFor(ctx context.Context, bookingID string) (domain.Verdict, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("get booking: %w", err)
	}
	slot, err := s.slots.GetByID(ctx, booking.SlotID)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("get slot: %w", err)
	}

	now := s.clock()
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	confirmed, err := s.bookings.CountConfirmedSince(ctx, booking.UserPhone, startOfDay)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("count confirmed bookings: %w", err)
	}
	free, err := s.slots.CountByStatus(ctx, slot.Date, domain.SlotStatusFree)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("count free slots: %w", err)
	}

	in := domain.DecisionInput{
		UserPhone:                   booking.UserPhone,
		RecentConfirmedBookingCount: confirmed,
		RemainingFreeSlotCount:      free,
		IsPeakHour:                  s.policy.Pricing.IsPeak(slot.Interval),
	}

	verdict, err := s.decider.Decide(ctx, in)
	if err == nil && verdictUsable(verdict) {
		return verdict, nil
	}

	s.logger.LogAttrs(ctx, logger.WarnLevel, "decision source failed, using rules",
		logger.String("booking_id", bookingID),
		logger.Any("error", err),
		logger.String("decision", string(verdict.Decision)),
	)

	return s.fallback.Decide(ctx, in)
}

// followUp re-evaluates a booking left on hold. Another hold verdict leaves
// it for staff or for the sweeper.
func (s *ReservationService) followUp(ctx context.Context, bookingID string) {
	verdict, err := s.verdictFor(ctx, bookingID)
	if err != nil {
		s.logger.Error("follow-up evaluation failed",
			logger.String("booking_id", bookingID),
			logger.String("error", err.Error()),
		)
		return
	}

	if verdict.Decision == domain.DecisionHold {
		s.logger.Info("booking stays on hold",
			logger.String("booking_id", bookingID),
		)
		return
	}

	if _, err = s.ApplyDecision(ctx, bookingID, verdict.Decision, "follow-up: "+verdict.Reason); err != nil {
		s.logger.Warn("follow-up decision not applied",
			logger.String("booking_id", bookingID),
			logger.String("decision", string(verdict.Decision)),
			logger.String("error", err.Error()),
		)
	}
}

func (s *ReservationService) GetBooking(ctx context.Context, id string) (*domain.Reservation, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	slot, err := s.slots.GetByID(ctx, booking.SlotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}

	return &domain.Reservation{Booking: booking, Slot: slot}, nil
}

func (s *ReservationService) ListBookingsByPhone(ctx context.Context, phone string) ([]*domain.Booking, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByPhone(ctx, normalized)
}

func (s *ReservationService) ListSlots(ctx context.Context, date time.Time) ([]*domain.Slot, error) {
	return s.slots.ListByDate(ctx, domain.DateOf(date))
}

func (s *ReservationService) normalize(in domain.ReserveInput) (domain.ReserveInput, error) {
	if err := s.policy.Window.ValidateWithin(in.Interval); err != nil {
		return in, err
	}

	phone, err := NormalizePhone(in.UserPhone)
	if err != nil {
		return in, err
	}
	in.UserPhone = phone

	in.UserName = strings.TrimSpace(in.UserName)
	if in.UserName == "" {
		return in, fmt.Errorf("%w: user name is required", domain.ErrValidation)
	}
	if in.Amount < 0 {
		return in, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if in.Date.IsZero() {
		return in, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	in.Date = domain.DateOf(in.Date)

	if in.Source == "" {
		in.Source = domain.SourceWeb
	}
	if !in.Source.Valid() {
		return in, fmt.Errorf("%w: unknown source %q", domain.ErrValidation, in.Source)
	}

	return in, nil
}

func newOrderID() string {
	return "order_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// NormalizePhone keeps the digits of a phone number and requires ten of them.
// A leading 91 country code is dropped.
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if len(digits) != 10 {
		return "", fmt.Errorf("%w: phone must have 10 digits", domain.ErrValidation)
	}

	return digits, nil
}

func (s *ReservationService) publish(ctx context.Context, key string, res *domain.Reservation) {
	if err := s.publisher.PublishJSON(ctx, key, domain.BookingEventFor(res.Booking, res.Slot)); err != nil {
		s.logger.Warn("failed to publish booking event",
			logger.String("routing_key", key),
			logger.String("booking_id", res.Booking.ID),
			logger.String("error", err.Error()),
		)
	}
}

func (s *ReservationService) notify(ctx context.Context, kind domain.NotificationKind, res *domain.Reservation) {
	result := s.notifier.Notify(ctx, domain.NotificationFor(kind, res.Booking, res.Slot))
	if !result.Success {
		if result.Err != nil {
			s.logger.Warn("notification not delivered",
				logger.String("booking_id", res.Booking.ID),
				logger.String("kind", string(kind)),
				logger.String("channel", result.Channel),
				logger.String("error", result.Err.Error()),
			)
		}
		return
	}

	if kind != domain.NotifyBookingConfirmed {
		return
	}
	if err := s.bookings.MarkNotified(ctx, res.Booking.ID); err != nil {
		s.logger.Error("failed to mark booking notified",
			logger.String("booking_id", res.Booking.ID),
			logger.String("error", err.Error()),
		)
	}
}

func (s *ReservationService) now() time.Time {
	return s.clock().UTC()
}

func raced(err error) bool {
	return errors.Is(err, domain.ErrStatusConflict) || errors.Is(err, domain.ErrSlotUnavailable)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
