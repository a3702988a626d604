package usecase

import (
	"context"

	"github.com/robertarktes/ticket-booking-and-payments/internal/payment"
)

type PaymentQueries struct {
	payments payment.PaymentRepository
}

func NewPaymentQueries(payments payment.PaymentRepository) *PaymentQueries {
	return &PaymentQueries{payments: payments}
}

func (q *PaymentQueries) GetPayment(ctx context.Context, paymentID string) (PaymentResponse, error) {
	p, err := q.payments.GetByID(ctx, paymentID)
	if err != nil {
		return PaymentResponse{}, err
	}
	return NewPaymentResponse(p), nil
}

func (q *PaymentQueries) ListPaymentsByTicket(ctx context.Context, ticketID string) ([]PaymentResponse, error) {
	ps, err := q.payments.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewPaymentResponse(p))
	}
	return out, nil
}
