package kafka

import (
	"context"
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/eventbus"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
	logger observability.Logger
}

func NewConsumer(brokers []string, groupID, topic string, logger observability.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads until ctx is done or handler fails. Offsets are committed
// only after handler succeeds; undecodable messages are skipped.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, eventbus.Envelope) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		env, err := eventbus.Decode(msg.Value)
		if err != nil {
			c.logger.WithField("offset", msg.Offset).WithError(err).Warn("skipping undecodable message")
		} else if err := handler(ctx, env); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}
