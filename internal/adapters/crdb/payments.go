package crdb

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/payment"
	"github.com/shopspring/decimal"
)

// amount is read back as STRING so no precision is lost on the way to decimal.
const paymentColumns = `payment_id, ticket_id, amount::STRING, currency, payment_method, status, payment_date, refund_date, failure_reason`

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, id)
	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return payment.Payment{}, domain.NotFoundf("payment with ID %s not found", id)
	}
	if err != nil {
		return payment.Payment{}, domain.PersistenceError(err, "crdb: get payment")
	}
	return p, nil
}

func (r *PaymentRepository) Save(ctx context.Context, p payment.Payment) error {
	var reason *string
	if p.FailureReason() != "" {
		v := p.FailureReason()
		reason = &v
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payments (payment_id, ticket_id, amount, currency, payment_method, status, payment_date, refund_date, failure_reason)
		VALUES ($1, $2, $3::DECIMAL, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (payment_id) DO UPDATE SET
			ticket_id = excluded.ticket_id,
			amount = excluded.amount,
			currency = excluded.currency,
			payment_method = excluded.payment_method,
			status = excluded.status,
			payment_date = excluded.payment_date,
			refund_date = excluded.refund_date,
			failure_reason = excluded.failure_reason
	`, p.ID(), p.TicketID(), p.Amount().Amount().String(), p.Amount().Currency(), string(p.Method()), string(p.Status()),
		p.PaymentDate(), p.RefundDate(), reason)
	return domain.PersistenceError(err, "crdb: save payment")
}

func (r *PaymentRepository) FindByTicketID(ctx context.Context, ticketID string) ([]payment.Payment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE ticket_id = $1 ORDER BY payment_id`, ticketID)
	if err != nil {
		return nil, domain.PersistenceError(err, "crdb: query payments")
	}
	defer rows.Close()

	payments := []payment.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, domain.PersistenceError(err, "crdb: scan payment")
		}
		payments = append(payments, p)
	}
	return payments, domain.PersistenceError(rows.Err(), "crdb: iterate payments")
}

func scanPayment(row pgx.Row) (payment.Payment, error) {
	var (
		id, ticketID, amount, currency, method, status string
		paidAt, refundedAt                              *time.Time
		reason                                          *string
	)
	if err := row.Scan(&id, &ticketID, &amount, &currency, &method, &status, &paidAt, &refundedAt, &reason); err != nil {
		return payment.Payment{}, err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return payment.Payment{}, errors.Wrapf(err, "stored payment %s amount", id)
	}
	money, err := payment.NewMoney(value, currency)
	if err != nil {
		return payment.Payment{}, errors.Wrapf(err, "stored payment %s", id)
	}
	props := payment.PaymentProps{
		PaymentID:   id,
		TicketID:    ticketID,
		Amount:      money,
		Method:      payment.PaymentMethod(method),
		Status:      payment.PaymentStatus(status),
		PaymentDate: paidAt,
		RefundDate:  refundedAt,
	}
	if reason != nil {
		props.FailureReason = *reason
	}
	return payment.NewPayment(props, nil)
}
