package notification

import (
	"fmt"
	"strings"

	"github.com/stpnv0/TurfBooker/internal/domain"
)

var titles = map[domain.NotificationKind]string{
	domain.NotifyBookingReceived:  "New booking request",
	domain.NotifyBookingConfirmed: "Booking confirmed",
	domain.NotifyBookingRejected:  "Booking rejected",
	domain.NotifyBookingHeld:      "Booking on hold",
	domain.NotifyBookingCancelled: "Booking cancelled",
	domain.NotifyBookingNoShow:    "Customer did not show up",
	domain.NotifyPaymentVerified:  "Payment verified",
	domain.NotifyPaymentFailed:    "Payment failed",
}

func title(kind domain.NotificationKind) string {
	if t, ok := titles[kind]; ok {
		return t
	}
	return string(kind)
}

// body renders the plain text lines shared by every channel.
func body(n domain.Notification) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Booking: %s\n", n.BookingID)
	fmt.Fprintf(&b, "Customer: %s (%s)\n", n.UserName, n.Phone)
	if n.SlotDate != "" {
		fmt.Fprintf(&b, "Slot: %s, %s\n", n.SlotDate, n.TimeRange)
	}
	if n.Amount > 0 {
		fmt.Fprintf(&b, "Amount: ₹%d\n", n.Amount)
	}
	if n.Reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", n.Reason)
	}

	return strings.TrimRight(b.String(), "\n")
}
