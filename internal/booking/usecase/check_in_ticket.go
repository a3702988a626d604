package usecase

import (
	"context"

	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"go.opentelemetry.io/otel/attribute"
)

type CheckInTicketRequest struct {
	TicketID string `json:"ticketId"`
}

type CheckInTicket struct {
	tickets   booking.TicketRepository
	publisher domain.EventPublisher
	service   *booking.TicketService
	logger    observability.Logger
}

func NewCheckInTicket(tickets booking.TicketRepository, publisher domain.EventPublisher, service *booking.TicketService, logger observability.Logger) *CheckInTicket {
	return &CheckInTicket{tickets: tickets, publisher: publisher, service: service, logger: logger}
}

func (uc *CheckInTicket) Execute(ctx context.Context, req CheckInTicketRequest) (resp TicketResponse, err error) {
	ctx, span := observability.Tracer().Start(ctx, "booking.CheckInTicket")
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()
	span.SetAttributes(attribute.String("ticket.id", req.TicketID))

	ticket, err := uc.tickets.GetByID(ctx, req.TicketID)
	if err != nil {
		return TicketResponse{}, err
	}

	ticket, err = uc.service.CheckInTicket(ticket)
	if err != nil {
		return TicketResponse{}, err
	}

	ticket, err = commit(ctx, uc.tickets, uc.publisher, ticket)
	if err != nil {
		uc.logger.WithField("ticket_id", req.TicketID).WithError(err).Warn("check-in failed")
		return TicketResponse{}, err
	}

	uc.logger.WithField("ticket_id", ticket.ID()).Info("ticket checked in")
	return NewTicketResponse(ticket), nil
}
