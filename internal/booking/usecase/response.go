// Package usecase holds the booking orchestrators. Each one loads or builds a
// ticket, applies a transition, saves it, publishes its pending events and
// then clears them.
package usecase

import (
	"context"
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
)

type TicketResponse struct {
	TicketID    string `json:"ticketId"`
	FlightID    string `json:"flightId"`
	PassengerID string `json:"passengerId"`
	SeatNumber  string `json:"seatNumber"`
	Status      string `json:"status"`
}

// TicketDetails is the read-side view returned by the query use cases.
type TicketDetails struct {
	TicketResponse
	BookingDate     time.Time `json:"bookingDate"`
	DepartureTime   time.Time `json:"departureTime"`
	ArrivalTime     time.Time `json:"arrivalTime"`
	DurationMinutes int64     `json:"durationMinutes"`
}

func NewTicketResponse(t booking.Ticket) TicketResponse {
	return TicketResponse{
		TicketID:    t.ID(),
		FlightID:    t.FlightID(),
		PassengerID: t.PassengerID(),
		SeatNumber:  t.SeatNumber(),
		Status:      string(t.Status()),
	}
}

func NewTicketDetails(t booking.Ticket) TicketDetails {
	ft := t.FlightTime()
	return TicketDetails{
		TicketResponse:  NewTicketResponse(t),
		BookingDate:     t.BookingDate(),
		DepartureTime:   ft.Departure(),
		ArrivalTime:     ft.Arrival(),
		DurationMinutes: ft.DurationInMinutes(),
	}
}

// commit saves t, publishes its pending events in order as one batch and
// returns t with an empty buffer. Nothing is published if the save fails.
func commit(ctx context.Context, repo booking.TicketRepository, pub domain.EventPublisher, t booking.Ticket) (booking.Ticket, error) {
	if err := repo.Save(ctx, t); err != nil {
		return t, err
	}
	if err := pub.PublishAll(ctx, t.Events()); err != nil {
		return t, err
	}
	return t.ClearEvents(), nil
}
