package rabbit

import (
	"context"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robertarktes/ticket-booking-and-payments/internal/eventbus"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
)

// Consumer reads envelopes from a durable queue bound to the events exchange.
type Consumer struct {
	ch     *amqp.Channel
	queue  string
	logger observability.Logger
}

// NewConsumer declares queue and binds it with bindingKey ("#" for
// everything) to exchange.
func NewConsumer(conn *amqp.Connection, exchange, queue, bindingKey string, logger observability.Logger) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, err
	}
	if err := ch.QueueBind(queue, bindingKey, exchange, false, nil); err != nil {
		ch.Close()
		return nil, err
	}
	return &Consumer{ch: ch, queue: queue, logger: logger}, nil
}

// Consume delivers envelopes to handler until ctx is done. Undecodable
// messages are dropped; a handler error requeues the message.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, eventbus.Envelope) error) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("rabbit: delivery channel closed")
			}
			c.handle(ctx, d, handler)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery, handler func(context.Context, eventbus.Envelope) error) {
	env, err := eventbus.Decode(d.Body)
	if err != nil {
		c.logger.WithField("message_id", d.MessageId).WithError(err).Warn("dropping undecodable message")
		_ = d.Nack(false, false)
		return
	}
	if err := handler(ctx, env); err != nil {
		c.logger.WithField("message_id", d.MessageId).WithError(err).Error("handler failed, requeueing")
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func (c *Consumer) Close() error {
	return c.ch.Close()
}
