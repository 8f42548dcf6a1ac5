package dto

import (
	"time"

	"github.com/stpnv0/TurfBooker/internal/domain"
)

type SlotResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	TimeRange     string  `json:"time_range"`
	Status        string  `json:"status"`
	Price         int64   `json:"price"`
	HoldExpiresAt *string `json:"hold_expires_at,omitempty"`
}

type BookingResponse struct {
	ID               string  `json:"id"`
	SlotID           string  `json:"slot_id"`
	UserName         string  `json:"user_name"`
	UserPhone        string  `json:"user_phone"`
	Amount           int64   `json:"amount"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"payment_status"`
	PaymentOrderID   string  `json:"payment_order_id"`
	Source           string  `json:"source"`
	DecisionReason   string  `json:"decision_reason,omitempty"`
	WhatsappNotified bool    `json:"whatsapp_notified"`
	ConfirmedAt      *string `json:"confirmed_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type ReservationResponse struct {
	Booking BookingResponse `json:"booking"`
	Slot    SlotResponse    `json:"slot"`
}

type ReconcileResponse struct {
	Created int   `json:"created"`
	Pruned  int64 `json:"pruned"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToSlotResponse(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:            s.ID,
		Date:          s.Date.Format(domain.DateLayout),
		Start:         s.Interval.Start.String(),
		End:           s.Interval.End.String(),
		TimeRange:     s.Interval.HumanRange(),
		Status:        string(s.Status),
		Price:         s.Price,
		HoldExpiresAt: formatTime(s.HoldExpiresAt),
	}
}

func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		SlotID:           b.SlotID,
		UserName:         b.UserName,
		UserPhone:        b.UserPhone,
		Amount:           b.Amount,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentOrderID:   b.PaymentOrderID,
		Source:           string(b.Source),
		DecisionReason:   b.DecisionReason,
		WhatsappNotified: b.WhatsappNotified,
		ConfirmedAt:      formatTime(b.ConfirmedAt),
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
}

func ToReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		Booking: ToBookingResponse(r.Booking),
		Slot:    ToSlotResponse(r.Slot),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
