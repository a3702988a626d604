package usecase

import (
	"context"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"github.com/robertarktes/ticket-booking-and-payments/internal/payment"
	"go.opentelemetry.io/otel/attribute"
)

type IssueRefundRequest struct {
	PaymentID string `json:"paymentId"`
	Reason    string `json:"reason"`
}

type IssueRefund struct {
	payments  payment.PaymentRepository
	publisher domain.EventPublisher
	service   *payment.PaymentService
	logger    observability.Logger
}

func NewIssueRefund(payments payment.PaymentRepository, publisher domain.EventPublisher, service *payment.PaymentService, logger observability.Logger) *IssueRefund {
	return &IssueRefund{payments: payments, publisher: publisher, service: service, logger: logger}
}

func (uc *IssueRefund) Execute(ctx context.Context, req IssueRefundRequest) (resp PaymentResponse, err error) {
	ctx, span := observability.Tracer().Start(ctx, "payment.IssueRefund")
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()
	span.SetAttributes(attribute.String("payment.id", req.PaymentID))

	p, err := uc.payments.GetByID(ctx, req.PaymentID)
	if err != nil {
		return PaymentResponse{}, err
	}

	p, err = uc.service.RefundPayment(p, req.Reason)
	if err != nil {
		return PaymentResponse{}, err
	}

	p, err = commit(ctx, uc.payments, uc.publisher, p)
	if err != nil {
		uc.logger.WithField("payment_id", req.PaymentID).WithError(err).Warn("refund failed")
		return PaymentResponse{}, err
	}

	uc.logger.WithField("payment_id", p.ID()).Info("refund issued")
	return NewPaymentResponse(p), nil
}
