package usecase

import (
	"context"

	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
)

// TicketQueries serves the read-only lookups. Nothing here touches the
// event publisher.
type TicketQueries struct {
	tickets booking.TicketRepository
}

func NewTicketQueries(tickets booking.TicketRepository) *TicketQueries {
	return &TicketQueries{tickets: tickets}
}

func (q *TicketQueries) GetTicket(ctx context.Context, ticketID string) (TicketDetails, error) {
	t, err := q.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return TicketDetails{}, err
	}
	return NewTicketDetails(t), nil
}

func (q *TicketQueries) ListTicketsByFlight(ctx context.Context, flightID string) ([]TicketDetails, error) {
	ts, err := q.tickets.FindByFlightID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	return toDetails(ts), nil
}

func (q *TicketQueries) ListTicketsByPassenger(ctx context.Context, passengerID string) ([]TicketDetails, error) {
	ts, err := q.tickets.FindByPassengerID(ctx, passengerID)
	if err != nil {
		return nil, err
	}
	return toDetails(ts), nil
}

func toDetails(ts []booking.Ticket) []TicketDetails {
	out := make([]TicketDetails, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTicketDetails(t))
	}
	return out
}
