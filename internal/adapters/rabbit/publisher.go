package rabbit

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/eventbus"
)

// Publisher sends domain events to a topic exchange, routed by
// "<source>.<eventName>". The channel runs in transactional mode so that a
// PublishAll call lands on the broker as a whole or not at all.
type Publisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
	source   string
}

func NewPublisher(conn *amqp.Connection, exchange, source string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, err
	}
	if err := ch.Tx(); err != nil {
		ch.Close()
		return nil, err
	}
	return &Publisher{ch: ch, exchange: exchange, source: source}, nil
}

func (p *Publisher) Publish(ctx context.Context, e domain.Event) error {
	return p.PublishAll(ctx, []domain.Event{e})
}

func (p *Publisher) PublishAll(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]amqp.Publishing, 0, len(events))
	keys := make([]string, 0, len(events))
	for _, e := range events {
		env, err := eventbus.Wrap(p.source, e)
		if err != nil {
			return domain.PublishError(err, "rabbit: wrap event")
		}
		body, err := json.Marshal(env)
		if err != nil {
			return domain.PublishError(err, "rabbit: encode event")
		}
		keys = append(keys, env.RoutingKey())
		msgs = append(msgs, amqp.Publishing{
			MessageId:    uuid.NewString(),
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    env.Time,
			Type:         env.DetailType,
			AppId:        env.Source,
			Body:         body,
		})
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i, msg := range msgs {
		if err := p.ch.PublishWithContext(ctx, p.exchange, keys[i], false, false, msg); err != nil {
			_ = p.ch.TxRollback()
			return domain.PublishError(err, "rabbit: publish")
		}
	}
	return domain.PublishError(p.ch.TxCommit(), "rabbit: commit")
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}
