package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/stpnv0/TurfBooker/internal/domain"
)

var ErrNoSecret = errors.New("payment secret is not configured")

// HMACVerifier checks gateway signatures: hex(HMAC-SHA256(secret, orderId|paymentId)).
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(_ context.Context, proof domain.PaymentProof) (bool, error) {
	if len(v.secret) == 0 {
		return false, ErrNoSecret
	}

	expected := v.Sign(proof.OrderID, proof.PaymentID)
	got := strings.ToLower(strings.TrimSpace(proof.Signature))

	return hmac.Equal([]byte(got), []byte(expected)), nil
}

func (v *HMACVerifier) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
