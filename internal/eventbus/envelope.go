// Package eventbus defines the wire envelope shared by every event bus
// adapter: a source, a detail type equal to the domain event name, and the
// JSON-encoded event as detail.
package eventbus

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
)

const (
	SourceBooking = "com.travier.booking"
	SourcePayment = "com.travier.payment"
)

type Envelope struct {
	Source      string          `json:"source"`
	DetailType  string          `json:"detailType"`
	AggregateID string          `json:"aggregateId"`
	Time        time.Time       `json:"time"`
	Detail      json.RawMessage `json:"detail"`
}

// Wrap builds the envelope for e under source.
func Wrap(source string, e domain.Event) (Envelope, error) {
	if e == nil {
		return Envelope{}, errors.New("eventbus: nil event")
	}
	detail, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, errors.Wrapf(err, "eventbus: marshal %s", e.EventName())
	}
	return Envelope{
		Source:      source,
		DetailType:  e.EventName(),
		AggregateID: e.AggregateID(),
		Time:        e.OccurredAt().UTC(),
		Detail:      detail,
	}, nil
}

func Encode(source string, e domain.Event) ([]byte, error) {
	env, err := Wrap(source, e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

func Decode(b []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, errors.Wrap(err, "eventbus: decode envelope")
	}
	if env.DetailType == "" {
		return Envelope{}, errors.New("eventbus: envelope has no detail type")
	}
	return env, nil
}

// RoutingKey is the topic routing key used by the rabbit exchange and the
// kafka message key prefix, e.g. "com.travier.booking.TicketReserved".
func (e Envelope) RoutingKey() string {
	return e.Source + "." + e.DetailType
}
