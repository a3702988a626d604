package payment

import (
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodDebitCard    PaymentMethod = "DEBIT_CARD"
	MethodPayPal       PaymentMethod = "PAYPAL"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodPayPal, MethodBankTransfer:
		return true
	}
	return false
}

// PaymentProps is the input for NewPayment. Optional dates are nil when unset.
type PaymentProps struct {
	PaymentID     string
	TicketID      string
	Amount        Money
	Method        PaymentMethod
	Status        PaymentStatus
	PaymentDate   *time.Time
	RefundDate    *time.Time
	FailureReason string
}

// Payment is the aggregate root of the payment context. Like booking.Ticket,
// every transition returns the next state and leaves the receiver untouched.
type Payment struct {
	id            string
	ticketID      string
	amount        Money
	method        PaymentMethod
	status        PaymentStatus
	paymentDate   *time.Time
	refundDate    *time.Time
	failureReason string
	events        []domain.Event
}

// NewPayment builds a payment. No event is recorded at construction.
func NewPayment(p PaymentProps, ids domain.IDGenerator) (Payment, error) {
	if p.Amount.IsZero() {
		return Payment{}, domain.Validationf("payment amount is required")
	}
	if p.Method == "" {
		return Payment{}, domain.Validationf("payment method is required")
	}
	if !p.Method.Valid() {
		return Payment{}, domain.Validationf("unsupported payment method %q", p.Method)
	}
	status := p.Status
	if status == "" {
		status = PaymentStatusPending
	}
	if !status.Valid() {
		return Payment{}, domain.Validationf("unknown payment status %q", p.Status)
	}
	if ids == nil {
		ids = domain.NewUUID
	}
	id := p.PaymentID
	if id == "" {
		id = ids()
	}
	return Payment{
		id:            id,
		ticketID:      p.TicketID,
		amount:        p.Amount,
		method:        p.Method,
		status:        status,
		paymentDate:   utcPtr(p.PaymentDate),
		refundDate:    utcPtr(p.RefundDate),
		failureReason: p.FailureReason,
	}, nil
}

func (p Payment) ID() string            { return p.id }
func (p Payment) TicketID() string      { return p.ticketID }
func (p Payment) Amount() Money         { return p.amount }
func (p Payment) Method() PaymentMethod { return p.method }
func (p Payment) Status() PaymentStatus { return p.status }
func (p Payment) FailureReason() string { return p.failureReason }
func (p Payment) PaymentDate() *time.Time {
	return utcPtr(p.paymentDate)
}
func (p Payment) RefundDate() *time.Time {
	return utcPtr(p.refundDate)
}

// MarkAsCompleted settles a PENDING payment and records PaymentProcessed.
func (p Payment) MarkAsCompleted(at time.Time) (Payment, error) {
	if p.status != PaymentStatusPending {
		return p, domain.InvalidStatef("cannot complete payment %s: payment is not in a %q state", p.id, PaymentStatusPending)
	}
	p.status = PaymentStatusCompleted
	p.paymentDate = utcPtr(&at)
	return p.record(newPaymentProcessed(p, at)), nil
}

// MarkAsFailed moves a PENDING payment to FAILED. It records no event.
func (p Payment) MarkAsFailed(reason string) (Payment, error) {
	if p.status != PaymentStatusPending {
		return p, domain.InvalidStatef("cannot fail payment %s: payment is not in a %q state", p.id, PaymentStatusPending)
	}
	p.status = PaymentStatusFailed
	p.failureReason = reason
	return p, nil
}

// Refund reverses a COMPLETED payment and records RefundIssued.
func (p Payment) Refund(reason string, at time.Time) (Payment, error) {
	if p.status != PaymentStatusCompleted {
		return p, domain.InvalidStatef("cannot refund payment %s: only completed payments can be refunded", p.id)
	}
	p.status = PaymentStatusRefunded
	p.refundDate = utcPtr(&at)
	return p.record(newRefundIssued(p, reason, at)), nil
}

func (p Payment) Events() []domain.Event {
	return domain.CloneEvents(p.events)
}

func (p Payment) ClearEvents() Payment {
	p.events = nil
	return p
}

func (p Payment) record(e domain.Event) Payment {
	p.events = append(domain.CloneEvents(p.events), e)
	return p
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
