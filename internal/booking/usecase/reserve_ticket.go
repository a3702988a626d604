package usecase

import (
	"context"

	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"go.opentelemetry.io/otel/attribute"
)

type ReserveTicketRequest struct {
	FlightID      string `json:"flightId"`
	PassengerID   string `json:"passengerId"`
	SeatNumber    string `json:"seatNumber"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
}

type ReserveTicket struct {
	tickets   booking.TicketRepository
	publisher domain.EventPublisher
	service   *booking.TicketService
	logger    observability.Logger
}

func NewReserveTicket(tickets booking.TicketRepository, publisher domain.EventPublisher, service *booking.TicketService, logger observability.Logger) *ReserveTicket {
	return &ReserveTicket{tickets: tickets, publisher: publisher, service: service, logger: logger}
}

func (uc *ReserveTicket) Execute(ctx context.Context, req ReserveTicketRequest) (resp TicketResponse, err error) {
	ctx, span := observability.Tracer().Start(ctx, "booking.ReserveTicket")
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()

	ticket, err := uc.service.CreateTicket(req.FlightID, req.PassengerID, req.SeatNumber, req.DepartureTime, req.ArrivalTime)
	if err != nil {
		return TicketResponse{}, err
	}
	span.SetAttributes(attribute.String("ticket.id", ticket.ID()), attribute.String("flight.id", ticket.FlightID()))

	ticket, err = commit(ctx, uc.tickets, uc.publisher, ticket)
	if err != nil {
		uc.logger.WithField("ticket_id", ticket.ID()).WithError(err).Warn("reserve ticket failed")
		return TicketResponse{}, err
	}

	uc.logger.WithField("ticket_id", ticket.ID()).WithField("flight_id", ticket.FlightID()).Info("ticket reserved")
	return NewTicketResponse(ticket), nil
}
