package domain

type NotificationKind string

const (
	NotifyBookingReceived  NotificationKind = "booking_received"
	NotifyBookingConfirmed NotificationKind = "booking_confirmed"
	NotifyBookingRejected  NotificationKind = "booking_rejected"
	NotifyBookingHeld      NotificationKind = "booking_held"
	NotifyBookingCancelled NotificationKind = "booking_cancelled"
	NotifyBookingNoShow    NotificationKind = "booking_no_show"
	NotifyPaymentVerified  NotificationKind = "payment_verified"
	NotifyPaymentFailed    NotificationKind = "payment_failed"
)

type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Phone     string           `json:"phone"`
	UserName  string           `json:"user_name"`
	BookingID string           `json:"booking_id"`
	SlotDate  string           `json:"slot_date"`
	TimeRange string           `json:"time_range"`
	Amount    int64            `json:"amount"`
	Reason    string           `json:"reason,omitempty"`
}

type NotifyResult struct {
	Success bool
	Channel string
	Err     error
}

// NotificationFor builds the notification of the given kind for a reservation.
func NotificationFor(kind NotificationKind, b *Booking, s *Slot) Notification {
	n := Notification{
		Kind:      kind,
		Phone:     b.UserPhone,
		UserName:  b.UserName,
		BookingID: b.ID,
		Amount:    b.Amount,
		Reason:    b.DecisionReason,
	}
	if s != nil {
		n.SlotDate = s.Date.Format(DateLayout)
		n.TimeRange = s.Interval.HumanRange()
	}
	return n
}
