// Package memory provides process-local repositories and an event publisher
// for development and tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/payment"
)

type TicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]booking.Ticket
}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{tickets: make(map[string]booking.Ticket)}
}

func (r *TicketRepository) GetByID(_ context.Context, id string) (booking.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return booking.Ticket{}, domain.NotFoundf("ticket with ID %s not found", id)
	}
	return t, nil
}

// Save stores t without its pending events.
func (r *TicketRepository) Save(_ context.Context, t booking.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[t.ID()] = t.ClearEvents()
	return nil
}

func (r *TicketRepository) FindByFlightID(_ context.Context, flightID string) ([]booking.Ticket, error) {
	return r.filter(func(t booking.Ticket) bool { return t.FlightID() == flightID }), nil
}

func (r *TicketRepository) FindByPassengerID(_ context.Context, passengerID string) ([]booking.Ticket, error) {
	return r.filter(func(t booking.Ticket) bool { return t.PassengerID() == passengerID }), nil
}

func (r *TicketRepository) filter(keep func(booking.Ticket) bool) []booking.Ticket {
	r.mu.RLock()
	out := make([]booking.Ticket, 0)
	for _, t := range r.tickets {
		if keep(t) {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b booking.Ticket) int {
		if c := a.BookingDate().Compare(b.BookingDate()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]payment.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[string]payment.Payment)}
}

func (r *PaymentRepository) GetByID(_ context.Context, id string) (payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return payment.Payment{}, domain.NotFoundf("payment with ID %s not found", id)
	}
	return p, nil
}

func (r *PaymentRepository) Save(_ context.Context, p payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.ID()] = p.ClearEvents()
	return nil
}

func (r *PaymentRepository) FindByTicketID(_ context.Context, ticketID string) ([]payment.Payment, error) {
	r.mu.RLock()
	out := make([]payment.Payment, 0)
	for _, p := range r.payments {
		if p.TicketID() == ticketID {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b payment.Payment) int { return cmp.Compare(a.ID(), b.ID()) })
	return out, nil
}

// Len reports how many payments are stored.
func (r *PaymentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.payments)
}
