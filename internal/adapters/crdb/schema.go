package crdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS tickets (
	ticket_id STRING PRIMARY KEY,
	flight_id STRING NOT NULL,
	passenger_id STRING NOT NULL,
	seat_number STRING NOT NULL,
	booking_date TIMESTAMPTZ NOT NULL,
	status STRING NOT NULL CHECK (status IN ('RESERVED', 'CHECKED_IN', 'CANCELLED')),
	departure_time TIMESTAMPTZ NOT NULL,
	arrival_time TIMESTAMPTZ NOT NULL,
	INDEX tickets_flight_idx (flight_id),
	INDEX tickets_passenger_idx (passenger_id)
);
CREATE TABLE IF NOT EXISTS payments (
	payment_id STRING PRIMARY KEY,
	ticket_id STRING NOT NULL,
	amount DECIMAL NOT NULL,
	currency STRING NOT NULL,
	payment_method STRING NOT NULL,
	status STRING NOT NULL CHECK (status IN ('PENDING', 'COMPLETED', 'REFUNDED', 'FAILED')),
	payment_date TIMESTAMPTZ NULL,
	refund_date TIMESTAMPTZ NULL,
	failure_reason STRING NULL,
	INDEX payments_ticket_idx (ticket_id)
);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return domain.PersistenceError(err, "crdb: ensure schema")
}
