package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/eventbus"
	"github.com/segmentio/kafka-go"
)

const (
	headerSource     = "source"
	headerDetailType = "detail-type"
)

// Producer writes envelopes to one topic, keyed by aggregate id so that the
// events of one ticket or payment stay in order within a partition.
type Producer struct {
	writer *kafka.Writer
	source string
}

func NewProducer(brokers []string, topic, source string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		source: source,
	}
}

func (p *Producer) Publish(ctx context.Context, e domain.Event) error {
	return p.PublishAll(ctx, []domain.Event{e})
}

// PublishAll sends events with a single WriteMessages call.
func (p *Producer) PublishAll(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs, err := toMessages(p.source, events)
	if err != nil {
		return domain.PublishError(err, "kafka: encode events")
	}
	return domain.PublishError(p.writer.WriteMessages(ctx, msgs...), "kafka: write messages")
}

func toMessages(source string, events []domain.Event) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		env, err := eventbus.Wrap(source, e)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(env)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(env.AggregateID),
			Value: value,
			Time:  env.Time,
			Headers: []kafka.Header{
				{Key: headerSource, Value: []byte(env.Source)},
				{Key: headerDetailType, Value: []byte(env.DetailType)},
			},
		})
	}
	return msgs, nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
