package domain

type PaymentProof struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// PaymentEvent is a gateway notification delivered through the broker.
type PaymentEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
}

const (
	PaymentEventPaid   = "payment.paid"
	PaymentEventFailed = "payment.failed"
)

// BookingEvent is published on every booking status change.
type BookingEvent struct {
	BookingID string        `json:"booking_id"`
	SlotID    string        `json:"slot_id"`
	Status    BookingStatus `json:"status"`
	SlotDate  string        `json:"slot_date"`
	TimeRange string        `json:"time_range"`
	Phone     string        `json:"phone"`
	Amount    int64         `json:"amount"`
	Source    Source        `json:"source"`
}

func BookingEventFor(b *Booking, s *Slot) BookingEvent {
	ev := BookingEvent{
		BookingID: b.ID,
		SlotID:    b.SlotID,
		Status:    b.Status,
		Phone:     b.UserPhone,
		Amount:    b.Amount,
		Source:    b.Source,
	}
	if s != nil {
		ev.SlotDate = s.Date.Format(DateLayout)
		ev.TimeRange = s.Interval.String()
	}
	return ev
}
