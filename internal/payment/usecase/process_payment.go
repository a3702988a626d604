package usecase

import (
	"context"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"github.com/robertarktes/ticket-booking-and-payments/internal/payment"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type ProcessPaymentRequest struct {
	TicketID      string          `json:"ticketId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"paymentMethod"`
}

type ProcessPayment struct {
	payments  payment.PaymentRepository
	publisher domain.EventPublisher
	service   *payment.PaymentService
	logger    observability.Logger
}

func NewProcessPayment(payments payment.PaymentRepository, publisher domain.EventPublisher, service *payment.PaymentService, logger observability.Logger) *ProcessPayment {
	return &ProcessPayment{payments: payments, publisher: publisher, service: service, logger: logger}
}

// Execute creates and settles a payment. When any step fails, a separate
// FAILED payment carrying the error text is stored and the original error is
// returned. A failure after the COMPLETED record was saved (publish) therefore
// leaves two records for the same attempt.
func (uc *ProcessPayment) Execute(ctx context.Context, req ProcessPaymentRequest) (resp PaymentResponse, err error) {
	ctx, span := observability.Tracer().Start(ctx, "payment.ProcessPayment")
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()
	span.SetAttributes(attribute.String("ticket.id", req.TicketID))

	p, err := uc.process(ctx, req)
	if err != nil {
		uc.recordFailure(ctx, req, err)
		return PaymentResponse{}, err
	}

	uc.logger.WithField("payment_id", p.ID()).WithField("ticket_id", p.TicketID()).Info("payment processed")
	return NewPaymentResponse(p), nil
}

func (uc *ProcessPayment) process(ctx context.Context, req ProcessPaymentRequest) (payment.Payment, error) {
	p, err := uc.service.CreatePayment(req.TicketID, req.Amount, req.Currency, payment.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return p, err
	}
	p, err = uc.service.ProcessPayment(p)
	if err != nil {
		return p, err
	}
	return commit(ctx, uc.payments, uc.publisher, p)
}

// recordFailure never returns an error: the caller already has one to report.
func (uc *ProcessPayment) recordFailure(ctx context.Context, req ProcessPaymentRequest, cause error) {
	log := uc.logger.WithField("ticket_id", req.TicketID).WithError(cause)

	failed, err := uc.service.CreatePayment(req.TicketID, req.Amount, req.Currency, payment.PaymentMethod(req.PaymentMethod))
	if err == nil {
		failed, err = uc.service.FailPayment(failed, cause.Error())
	}
	if err != nil {
		log.WithField("record_error", err.Error()).Warn("payment failed and could not be recorded")
		return
	}
	if err := uc.payments.Save(ctx, failed); err != nil {
		log.WithField("record_error", err.Error()).Error("saving failed payment")
		return
	}
	observability.FailedPaymentsRecorded.Inc()
	log.WithField("payment_id", failed.ID()).Warn("payment failed")
}
