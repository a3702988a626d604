package booking

import (
	"context"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
)

// TicketRepository persists tickets. GetByID returns an error marked with
// domain.ErrNotFound when the id is unknown. Save is an upsert.
type TicketRepository interface {
	GetByID(ctx context.Context, id string) (Ticket, error)
	Save(ctx context.Context, ticket Ticket) error
	FindByFlightID(ctx context.Context, flightID string) ([]Ticket, error)
	FindByPassengerID(ctx context.Context, passengerID string) ([]Ticket, error)
}

// TicketService wraps ticket construction and transitions so use cases do
// not depend on the id generator or the clock directly.
type TicketService struct {
	ids   domain.IDGenerator
	clock domain.Clock
}

func NewTicketService(ids domain.IDGenerator, clock domain.Clock) *TicketService {
	if ids == nil {
		ids = domain.NewUUID
	}
	if clock == nil {
		clock = domain.SystemClock
	}
	return &TicketService{ids: ids, clock: clock}
}

// CreateTicket reserves a new seat; the booking date is the current instant.
func (s *TicketService) CreateTicket(flightID, passengerID, seatNumber, departureTime, arrivalTime string) (Ticket, error) {
	flightTime, err := NewFlightTime(departureTime, arrivalTime)
	if err != nil {
		return Ticket{}, err
	}
	return NewTicket(TicketProps{
		FlightID:    flightID,
		PassengerID: passengerID,
		SeatNumber:  seatNumber,
		BookingDate: s.clock(),
		Status:      TicketStatusReserved,
		FlightTime:  flightTime,
	}, s.ids, s.clock)
}

func (s *TicketService) CheckInTicket(t Ticket) (Ticket, error) {
	return t.CheckIn(s.clock())
}

func (s *TicketService) CancelTicket(t Ticket) (Ticket, error) {
	return t.Cancel(s.clock())
}
