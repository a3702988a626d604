package payment

import (
	"context"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/shopspring/decimal"
)

// PaymentRepository persists payments. GetByID returns an error marked with
// domain.ErrNotFound when the id is unknown. Save is an upsert.
type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (Payment, error)
	Save(ctx context.Context, payment Payment) error
	FindByTicketID(ctx context.Context, ticketID string) ([]Payment, error)
}

// PaymentService is the seam where a real payment gateway would plug in.
// Today ProcessPayment settles immediately.
type PaymentService struct {
	ids   domain.IDGenerator
	clock domain.Clock
}

func NewPaymentService(ids domain.IDGenerator, clock domain.Clock) *PaymentService {
	if ids == nil {
		ids = domain.NewUUID
	}
	if clock == nil {
		clock = domain.SystemClock
	}
	return &PaymentService{ids: ids, clock: clock}
}

func (s *PaymentService) CreatePayment(ticketID string, amount decimal.Decimal, currency string, method PaymentMethod) (Payment, error) {
	money, err := NewMoney(amount, currency)
	if err != nil {
		return Payment{}, err
	}
	return NewPayment(PaymentProps{
		TicketID: ticketID,
		Amount:   money,
		Method:   method,
		Status:   PaymentStatusPending,
	}, s.ids)
}

func (s *PaymentService) ProcessPayment(p Payment) (Payment, error) {
	return p.MarkAsCompleted(s.clock())
}

func (s *PaymentService) RefundPayment(p Payment, reason string) (Payment, error) {
	return p.Refund(reason, s.clock())
}

func (s *PaymentService) FailPayment(p Payment, reason string) (Payment, error) {
	return p.MarkAsFailed(reason)
}
