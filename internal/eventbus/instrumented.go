package eventbus

import (
	"context"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
)

type instrumented struct {
	bus  string
	next domain.EventPublisher
}

// Instrument counts published events and failed submissions for bus.
func Instrument(bus string, next domain.EventPublisher) domain.EventPublisher {
	return &instrumented{bus: bus, next: next}
}

func (p *instrumented) Publish(ctx context.Context, e domain.Event) error {
	return p.PublishAll(ctx, []domain.Event{e})
}

func (p *instrumented) PublishAll(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := p.next.PublishAll(ctx, events); err != nil {
		observability.EventPublishFailures.WithLabelValues(p.bus).Inc()
		return err
	}
	for _, e := range events {
		observability.EventsPublished.WithLabelValues(p.bus, e.EventName()).Inc()
	}
	return nil
}
