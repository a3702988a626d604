// Package usecase holds the payment orchestrators.
package usecase

import (
	"context"
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/payment"
	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	PaymentID     string          `json:"paymentId"`
	TicketID      string          `json:"ticketId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
	RefundDate    *time.Time      `json:"refundDate,omitempty"`
	FailureReason string          `json:"failureReason,omitempty"`
}

func NewPaymentResponse(p payment.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.ID(),
		TicketID:      p.TicketID(),
		Amount:        p.Amount().Amount(),
		Currency:      p.Amount().Currency(),
		PaymentMethod: string(p.Method()),
		Status:        string(p.Status()),
		PaymentDate:   p.PaymentDate(),
		RefundDate:    p.RefundDate(),
		FailureReason: p.FailureReason(),
	}
}

func commit(ctx context.Context, repo payment.PaymentRepository, pub domain.EventPublisher, p payment.Payment) (payment.Payment, error) {
	if err := repo.Save(ctx, p); err != nil {
		return p, err
	}
	if err := pub.PublishAll(ctx, p.Events()); err != nil {
		return p, err
	}
	return p.ClearEvents(), nil
}
