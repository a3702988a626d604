package payment

import (
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	EventPaymentProcessed = "PaymentProcessed"
	EventRefundIssued     = "RefundIssued"
)

type PaymentProcessed struct {
	domain.EventHeader
	PaymentID     string          `json:"paymentId"`
	TicketID      string          `json:"ticketId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PaymentDate   time.Time       `json:"paymentDate"`
}

type RefundIssued struct {
	domain.EventHeader
	PaymentID  string          `json:"paymentId"`
	TicketID   string          `json:"ticketId"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	RefundDate time.Time       `json:"refundDate"`
	Reason     string          `json:"reason"`
}

func newPaymentProcessed(p Payment, at time.Time) PaymentProcessed {
	return PaymentProcessed{
		EventHeader:   domain.NewEventHeader(EventPaymentProcessed, p.id, at),
		PaymentID:     p.id,
		TicketID:      p.ticketID,
		Amount:        p.amount.Amount(),
		Currency:      p.amount.Currency(),
		PaymentMethod: p.method,
		PaymentDate:   *p.paymentDate,
	}
}

func newRefundIssued(p Payment, reason string, at time.Time) RefundIssued {
	return RefundIssued{
		EventHeader: domain.NewEventHeader(EventRefundIssued, p.id, at),
		PaymentID:   p.id,
		TicketID:    p.ticketID,
		Amount:      p.amount.Amount(),
		Currency:    p.amount.Currency(),
		RefundDate:  *p.refundDate,
		Reason:      reason,
	}
}
