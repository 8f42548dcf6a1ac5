package dto

type ReserveRequest struct {
	Date      string `json:"date" binding:"required"`
	Start     string `json:"start" binding:"required"`
	End       string `json:"end" binding:"required"`
	UserName  string `json:"user_name" binding:"required"`
	UserPhone string `json:"user_phone" binding:"required"`
	Amount    int64  `json:"amount" binding:"gte=0"`
	SlotID    string `json:"slot_id" binding:"omitempty,uuid"`
	BookingID string `json:"booking_id" binding:"omitempty,uuid"`
	Source    string `json:"source" binding:"omitempty,oneof=web chatbot webhook admin"`
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
	Reason   string `json:"reason"`
}

type VerifyPaymentRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type ReconcileRequest struct {
	DaysAhead int `json:"days_ahead" binding:"omitempty,gt=0,lte=365"`
}
