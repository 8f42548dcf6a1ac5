package mq

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/mq/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type ackRecord struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecord) Ack(uint64, bool) error { a.acked = true; return nil }

func (a *ackRecord) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *ackRecord) Reject(_ uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func delivery(ack *ackRecord, key, body string) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, RoutingKey: key, Body: []byte(body)}
}

func TestConsumer_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("ack on success, type from routing key", func(t *testing.T) {
		h := mocks.NewMockPaymentHandler(t)
		h.EXPECT().HandlePaymentEvent(mock.Anything, domain.PaymentEvent{
			Type: domain.PaymentEventPaid, BookingID: "b1", PaymentID: "pay_1", Amount: 1200,
		}).Return(nil).Once()

		c := NewConsumer(ConsumerConfig{Queue: "payments"}, h, newTestLogger(t))
		ack := &ackRecord{}
		c.handle(ctx, delivery(ack, domain.PaymentEventPaid, `{"booking_id":"b1","payment_id":"pay_1","amount":1200}`))

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
	})

	t.Run("malformed body is dropped", func(t *testing.T) {
		h := mocks.NewMockPaymentHandler(t)
		c := NewConsumer(ConsumerConfig{Queue: "payments"}, h, newTestLogger(t))

		ack := &ackRecord{}
		c.handle(ctx, delivery(ack, domain.PaymentEventPaid, `{not json`))

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("domain failure is dropped", func(t *testing.T) {
		h := mocks.NewMockPaymentHandler(t)
		h.EXPECT().HandlePaymentEvent(mock.Anything, mock.Anything).Return(domain.ErrHoldExpired).Once()

		c := NewConsumer(ConsumerConfig{Queue: "payments"}, h, newTestLogger(t))
		ack := &ackRecord{}
		c.handle(ctx, delivery(ack, domain.PaymentEventPaid, `{"type":"payment.paid","booking_id":"b1"}`))

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("transient failure is requeued", func(t *testing.T) {
		h := mocks.NewMockPaymentHandler(t)
		h.EXPECT().HandlePaymentEvent(mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

		c := NewConsumer(ConsumerConfig{Queue: "payments"}, h, newTestLogger(t))
		ack := &ackRecord{}
		c.handle(ctx, delivery(ack, domain.PaymentEventFailed, `{"booking_id":"b1"}`))

		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue)
	})
}

func TestNewConsumer_Defaults(t *testing.T) {
	c := NewConsumer(ConsumerConfig{Queue: "payments"}, nil, newTestLogger(t))
	assert.Equal(t, []string{domain.PaymentEventPaid, domain.PaymentEventFailed}, c.cfg.Bindings)
	assert.Equal(t, 8, c.cfg.Prefetch)
}
