package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

type ReservationSvc interface {
	Reserve(ctx context.Context, in domain.ReserveInput) (*domain.Reservation, error)
	ApplyDecision(ctx context.Context, bookingID string, d domain.Decision, reason string) (*domain.Reservation, error)
	Decide(ctx context.Context, bookingID string) (*domain.Reservation, error)
	GetBooking(ctx context.Context, id string) (*domain.Reservation, error)
	ListBookingsByPhone(ctx context.Context, phone string) ([]*domain.Booking, error)
	ListSlots(ctx context.Context, date time.Time) ([]*domain.Slot, error)
}

type PaymentSvc interface {
	VerifyPayment(ctx context.Context, bookingID string, proof domain.PaymentProof) (*domain.Reservation, error)
}

type SlotReconciler interface {
	Reconcile(ctx context.Context, daysAhead int) (domain.ReconcileResult, error)
}

type Handler struct {
	reservationService ReservationSvc
	paymentService     PaymentSvc
	reconciler         SlotReconciler
	horizonDays        int
}

func NewHandler(reservationService ReservationSvc, paymentService PaymentSvc, reconciler SlotReconciler, horizonDays int) *Handler {
	return &Handler{
		reservationService: reservationService,
		paymentService:     paymentService,
		reconciler:         reconciler,
		horizonDays:        horizonDays,
	}
}

// Reservations

func (h *Handler) Reserve(c *ginext.Context) {
	var req dto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	iv, err := domain.ParseInterval(req.Start, req.End)
	if err != nil {
		h.handleError(c, err)
		return
	}

	input := domain.ReserveInput{
		Date:      date,
		Interval:  iv,
		UserName:  req.UserName,
		UserPhone: req.UserPhone,
		Amount:    req.Amount,
		SlotID:    req.SlotID,
		BookingID: req.BookingID,
		Source:    domain.Source(req.Source),
	}

	res, err := h.reservationService.Reserve(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReservationResponse(res))
}

// Bookings

func (h *Handler) GetBooking(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid booking id"})
		return
	}

	res, err := h.reservationService.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

func (h *Handler) ListBookings(c *ginext.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "phone is required"})
		return
	}

	bookings, err := h.reservationService.ListBookingsByPhone(c.Request.Context(), phone)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, dto.ToBookingResponse(b))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ApplyDecision(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid booking id"})
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	decision, err := domain.ParseDecision(req.Decision)
	if err != nil {
		h.handleError(c, err)
		return
	}

	res, err := h.reservationService.ApplyDecision(c.Request.Context(), id, decision, req.Reason)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

func (h *Handler) Decide(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid booking id"})
		return
	}

	res, err := h.reservationService.Decide(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

// Payments

func (h *Handler) VerifyPayment(c *ginext.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	proof := domain.PaymentProof{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	}

	res, err := h.paymentService.VerifyPayment(c.Request.Context(), req.BookingID, proof)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

// Slots

func (h *Handler) ListSlots(c *ginext.Context) {
	date, err := domain.ParseDate(c.Query("date"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	slots, err := h.reservationService.ListSlots(c.Request.Context(), date)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.SlotResponse, 0, len(slots))
	for _, s := range slots {
		resp = append(resp, dto.ToSlotResponse(s))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Reconcile(c *ginext.Context) {
	var req dto.ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
	}
	if req.DaysAhead == 0 {
		req.DaysAhead = h.horizonDays
	}

	res, err := h.reconciler.Reconcile(c.Request.Context(), req.DaysAhead)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{Created: res.Created, Pruned: res.Pruned})
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrSlotConflict),
		errors.Is(err, domain.ErrSlotUnavailable),
		errors.Is(err, domain.ErrHoldExpired),
		errors.Is(err, domain.ErrStatusConflict),
		errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrOutsideOperatingHours):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
