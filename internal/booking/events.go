package booking

import (
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
)

const (
	EventTicketReserved  = "TicketReserved"
	EventTicketCheckedIn = "TicketCheckedIn"
	EventTicketCancelled = "TicketCancelled"
)

type TicketReserved struct {
	domain.EventHeader
	TicketID    string    `json:"ticketId"`
	FlightID    string    `json:"flightId"`
	PassengerID string    `json:"passengerId"`
	SeatNumber  string    `json:"seatNumber"`
	BookingDate time.Time `json:"bookingDate"`
}

type TicketCheckedIn struct {
	domain.EventHeader
	TicketID string `json:"ticketId"`
}

type TicketCancelled struct {
	domain.EventHeader
	TicketID string `json:"ticketId"`
}

func newTicketReserved(t Ticket, at time.Time) TicketReserved {
	return TicketReserved{
		EventHeader: domain.NewEventHeader(EventTicketReserved, t.id, at),
		TicketID:    t.id,
		FlightID:    t.flightID,
		PassengerID: t.passengerID,
		SeatNumber:  t.seatNumber,
		BookingDate: t.bookingDate,
	}
}

func newTicketCheckedIn(t Ticket, at time.Time) TicketCheckedIn {
	return TicketCheckedIn{
		EventHeader: domain.NewEventHeader(EventTicketCheckedIn, t.id, at),
		TicketID:    t.id,
	}
}

func newTicketCancelled(t Ticket, at time.Time) TicketCancelled {
	return TicketCancelled{
		EventHeader: domain.NewEventHeader(EventTicketCancelled, t.id, at),
		TicketID:    t.id,
	}
}
