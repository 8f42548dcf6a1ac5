package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusHold      BookingStatus = "hold"
	BookingStatusNoShow    BookingStatus = "no-show"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// HoldExpiredReason marks bookings cancelled because their slot hold ran out.
const HoldExpiredReason = "hold expired before a decision was made"

var ActiveStatuses = []BookingStatus{BookingStatusPending, BookingStatusHold, BookingStatusConfirmed}

// AwaitingStatuses are active bookings whose slot is still only held.
var AwaitingStatuses = []BookingStatus{BookingStatusPending, BookingStatusHold}

func (s BookingStatus) Active() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSubmitted PaymentStatus = "submitted"
	PaymentStatusVerified  PaymentStatus = "verified"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Source string

const (
	SourceWeb     Source = "web"
	SourceChatbot Source = "chatbot"
	SourceWebhook Source = "webhook"
	SourceAdmin   Source = "admin"
)

func (s Source) Valid() bool {
	switch s {
	case SourceWeb, SourceChatbot, SourceWebhook, SourceAdmin:
		return true
	}
	return false
}

type Booking struct {
	ID               string        `json:"id"`
	UserName         string        `json:"user_name"`
	UserPhone        string        `json:"user_phone"`
	SlotID           string        `json:"slot_id"`
	Amount           int64         `json:"amount"`
	Status           BookingStatus `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentOrderID   string        `json:"payment_order_id"`
	ConfirmedAt      *time.Time    `json:"confirmed_at,omitempty"`
	WhatsappNotified bool          `json:"whatsapp_notified"`
	DecisionReason   string        `json:"decision_reason,omitempty"`
	Source           Source        `json:"source"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func (b *Booking) Clone() *Booking {
	c := *b
	if b.ConfirmedAt != nil {
		t := *b.ConfirmedAt
		c.ConfirmedAt = &t
	}
	return &c
}

// LostHold reports whether the booking was cancelled by hold expiry rather than by a decision.
func (b *Booking) LostHold() bool {
	return b.Status == BookingStatusCancelled && b.DecisionReason == HoldExpiredReason
}

// BookingUpdate is a conditional status write keyed on the expected prior status.
// ConfirmedAt is applied only if the booking has none yet.
type BookingUpdate struct {
	ID          string
	From        []BookingStatus
	To          BookingStatus
	Reason      string
	ConfirmedAt *time.Time
}

type ReserveInput struct {
	Date      time.Time
	Interval  Interval
	UserName  string
	UserPhone string
	Amount    int64
	SlotID    string
	BookingID string
	Source    Source
}

// Reservation is a booking together with the slot it claims.
type Reservation struct {
	Booking *Booking `json:"booking"`
	Slot    *Slot    `json:"slot"`
}
