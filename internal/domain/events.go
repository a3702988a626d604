package domain

import (
	"context"
	"time"
)

// Event is an immutable record of a state change, queued on an aggregate
// until the caller has persisted it and hands it to an EventPublisher.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() string
}

// EventHeader carries the fields shared by every domain event. Embedding it
// keeps the JSON shape flat: eventName, timestamp, aggregateId, then payload.
type EventHeader struct {
	Name      string    `json:"eventName"`
	Timestamp time.Time `json:"timestamp"`
	Aggregate string    `json:"aggregateId"`
}

func NewEventHeader(name, aggregateID string, at time.Time) EventHeader {
	return EventHeader{Name: name, Timestamp: at.UTC(), Aggregate: aggregateID}
}

func (h EventHeader) EventName() string     { return h.Name }
func (h EventHeader) OccurredAt() time.Time { return h.Timestamp }
func (h EventHeader) AggregateID() string   { return h.Aggregate }

// EventPublisher delivers domain events to the event bus.
// PublishAll with an empty slice succeeds without contacting the transport;
// otherwise all entries go out as one submission.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	PublishAll(ctx context.Context, events []Event) error
}

// CloneEvents copies a pending-event buffer so the copy and the original
// never share a backing array.
func CloneEvents(events []Event) []Event {
	if len(events) == 0 {
		return nil
	}
	out := make([]Event, len(events))
	copy(out, events)
	return out
}
