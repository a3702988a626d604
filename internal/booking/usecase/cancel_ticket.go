package usecase

import (
	"context"

	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"go.opentelemetry.io/otel/attribute"
)

type CancelTicketRequest struct {
	TicketID string `json:"ticketId"`
}

type CancelTicket struct {
	tickets   booking.TicketRepository
	publisher domain.EventPublisher
	service   *booking.TicketService
	logger    observability.Logger
}

func NewCancelTicket(tickets booking.TicketRepository, publisher domain.EventPublisher, service *booking.TicketService, logger observability.Logger) *CancelTicket {
	return &CancelTicket{tickets: tickets, publisher: publisher, service: service, logger: logger}
}

func (uc *CancelTicket) Execute(ctx context.Context, req CancelTicketRequest) (resp TicketResponse, err error) {
	ctx, span := observability.Tracer().Start(ctx, "booking.CancelTicket")
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()
	span.SetAttributes(attribute.String("ticket.id", req.TicketID))

	ticket, err := uc.tickets.GetByID(ctx, req.TicketID)
	if err != nil {
		return TicketResponse{}, err
	}

	ticket, err = uc.service.CancelTicket(ticket)
	if err != nil {
		return TicketResponse{}, err
	}

	ticket, err = commit(ctx, uc.tickets, uc.publisher, ticket)
	if err != nil {
		uc.logger.WithField("ticket_id", req.TicketID).WithError(err).Warn("cancel failed")
		return TicketResponse{}, err
	}

	uc.logger.WithField("ticket_id", ticket.ID()).Info("ticket cancelled")
	return NewTicketResponse(ticket), nil
}
