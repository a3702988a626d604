package booking

import (
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
)

type TicketStatus string

const (
	TicketStatusReserved  TicketStatus = "RESERVED"
	TicketStatusCheckedIn TicketStatus = "CHECKED_IN"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusReserved, TicketStatusCheckedIn, TicketStatusCancelled:
		return true
	}
	return false
}

// TicketProps is the input for NewTicket. An empty TicketID means a brand-new
// reservation; a set TicketID means the ticket is being rehydrated.
type TicketProps struct {
	TicketID    string
	FlightID    string
	PassengerID string
	SeatNumber  string
	BookingDate time.Time
	Status      TicketStatus
	FlightTime  FlightTime
}

// Ticket is the aggregate root of the booking context. Transitions never
// modify the receiver: they return the next state with the emitted event
// appended to its pending buffer.
type Ticket struct {
	id          string
	flightID    string
	passengerID string
	seatNumber  string
	bookingDate time.Time
	status      TicketStatus
	flightTime  FlightTime
	events      []domain.Event
}

// NewTicket builds a ticket. Only a brand-new ticket (no id supplied) gets an
// id from ids and a TicketReserved event stamped with clock.
func NewTicket(p TicketProps, ids domain.IDGenerator, clock domain.Clock) (Ticket, error) {
	if p.FlightTime.IsZero() {
		return Ticket{}, domain.Validationf("flight time is required")
	}
	status := p.Status
	if status == "" {
		status = TicketStatusReserved
	}
	if !status.Valid() {
		return Ticket{}, domain.Validationf("unknown ticket status %q", p.Status)
	}
	if ids == nil {
		ids = domain.NewUUID
	}
	if clock == nil {
		clock = domain.SystemClock
	}

	t := Ticket{
		id:          p.TicketID,
		flightID:    p.FlightID,
		passengerID: p.PassengerID,
		seatNumber:  p.SeatNumber,
		bookingDate: p.BookingDate.UTC(),
		status:      status,
		flightTime:  p.FlightTime,
	}
	if p.TicketID == "" {
		t.id = ids()
		t = t.record(newTicketReserved(t, clock()))
	}
	return t, nil
}

func (t Ticket) ID() string             { return t.id }
func (t Ticket) FlightID() string       { return t.flightID }
func (t Ticket) PassengerID() string    { return t.passengerID }
func (t Ticket) SeatNumber() string     { return t.seatNumber }
func (t Ticket) BookingDate() time.Time { return t.bookingDate }
func (t Ticket) Status() TicketStatus   { return t.status }
func (t Ticket) FlightTime() FlightTime { return t.flightTime }

// CheckIn moves a RESERVED ticket to CHECKED_IN.
func (t Ticket) CheckIn(at time.Time) (Ticket, error) {
	if t.status != TicketStatusReserved {
		return t, domain.InvalidStatef("cannot check in ticket %s: ticket is not in a %q state", t.id, TicketStatusReserved)
	}
	t.status = TicketStatusCheckedIn
	return t.record(newTicketCheckedIn(t, at)), nil
}

// Cancel moves the ticket to CANCELLED. A checked-in ticket can no longer be
// cancelled. Cancelling an already cancelled ticket succeeds and emits again.
func (t Ticket) Cancel(at time.Time) (Ticket, error) {
	if t.status == TicketStatusCheckedIn {
		return t, domain.InvalidStatef("cannot cancel ticket %s: ticket is already checked in", t.id)
	}
	t.status = TicketStatusCancelled
	return t.record(newTicketCancelled(t, at)), nil
}

// Events returns a copy of the events recorded since the last ClearEvents.
func (t Ticket) Events() []domain.Event {
	return domain.CloneEvents(t.events)
}

func (t Ticket) ClearEvents() Ticket {
	t.events = nil
	return t
}

func (t Ticket) record(e domain.Event) Ticket {
	t.events = append(domain.CloneEvents(t.events), e)
	return t
}
