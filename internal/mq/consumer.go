package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/wb-go/wbf/logger"
)

type paymentHandler interface {
	HandlePaymentEvent(ctx context.Context, ev domain.PaymentEvent) error
}

type ConsumerConfig struct {
	URL      string
	Exchange string
	Queue    string
	Bindings []string
	Prefetch int
}

// Consumer feeds payment gateway events into the payment flow.
type Consumer struct {
	cfg     ConsumerConfig
	handler paymentHandler
	logger  logger.Logger

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg ConsumerConfig, handler paymentHandler, logger logger.Logger) *Consumer {
	if len(cfg.Bindings) == 0 {
		cfg.Bindings = []string{domain.PaymentEventPaid, domain.PaymentEventFailed}
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 8
	}
	return &Consumer{cfg: cfg, handler: handler, logger: logger}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	closeAll := func() {
		_ = ch.Close()
		_ = conn.Close()
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		closeAll()
		return fmt.Errorf("declare exchange: %w", err)
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		closeAll()
		return fmt.Errorf("declare queue: %w", err)
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			closeAll()
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		closeAll()
		return fmt.Errorf("set qos: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

// Run consumes until ctx is done or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	c.logger.Info("payment consumer started",
		logger.String("queue", c.cfg.Queue),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	err := c.process(ctx, d)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case permanent(err):
		c.logger.Error("payment event dropped",
			logger.String("routing_key", d.RoutingKey),
			logger.String("error", err.Error()),
		)
		_ = d.Nack(false, false)
	default:
		c.logger.Warn("payment event requeued",
			logger.String("routing_key", d.RoutingKey),
			logger.String("error", err.Error()),
		)
		_ = d.Nack(false, true)
	}
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery) error {
	var ev domain.PaymentEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		return fmt.Errorf("%w: decode payment event: %v", domain.ErrValidation, err)
	}
	if ev.Type == "" {
		ev.Type = d.RoutingKey
	}

	return c.handler.HandlePaymentEvent(ctx, ev)
}

// permanent errors will not go away on redelivery.
func permanent(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrBookingNotFound) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrHoldExpired) ||
		errors.Is(err, domain.ErrSlotConflict)
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
