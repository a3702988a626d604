package memory

import (
	"context"
	"sync"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
)

// Publisher keeps every published event in order. Setting Err makes every
// submission fail with it.
type Publisher struct {
	mu      sync.Mutex
	events  []domain.Event
	batches int
	Err     error
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(ctx context.Context, e domain.Event) error {
	return p.PublishAll(ctx, []domain.Event{e})
}

func (p *Publisher) PublishAll(_ context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return domain.PublishError(p.Err, "memory publish")
	}
	p.events = append(p.events, events...)
	p.batches++
	return nil
}

func (p *Publisher) Events() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return domain.CloneEvents(p.events)
}

// Batches counts successful non-empty submissions.
func (p *Publisher) Batches() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.batches
}
