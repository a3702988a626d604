package crdb

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
)

const ticketColumns = `ticket_id, flight_id, passenger_id, seat_number, booking_date, status, departure_time, arrival_time`

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (booking.Ticket, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ticket_id = $1`, id)
	t, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return booking.Ticket{}, domain.NotFoundf("ticket with ID %s not found", id)
	}
	if err != nil {
		return booking.Ticket{}, domain.PersistenceError(err, "crdb: get ticket")
	}
	return t, nil
}

func (r *TicketRepository) Save(ctx context.Context, t booking.Ticket) error {
	ft := t.FlightTime()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tickets (`+ticketColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (ticket_id) DO UPDATE SET
			flight_id = excluded.flight_id,
			passenger_id = excluded.passenger_id,
			seat_number = excluded.seat_number,
			booking_date = excluded.booking_date,
			status = excluded.status,
			departure_time = excluded.departure_time,
			arrival_time = excluded.arrival_time
	`, t.ID(), t.FlightID(), t.PassengerID(), t.SeatNumber(), t.BookingDate(), string(t.Status()), ft.Departure(), ft.Arrival())
	return domain.PersistenceError(err, "crdb: save ticket")
}

func (r *TicketRepository) FindByFlightID(ctx context.Context, flightID string) ([]booking.Ticket, error) {
	return r.list(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE flight_id = $1 ORDER BY booking_date, ticket_id`, flightID)
}

func (r *TicketRepository) FindByPassengerID(ctx context.Context, passengerID string) ([]booking.Ticket, error) {
	return r.list(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE passenger_id = $1 ORDER BY booking_date, ticket_id`, passengerID)
}

func (r *TicketRepository) list(ctx context.Context, query string, arg string) ([]booking.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, domain.PersistenceError(err, "crdb: query tickets")
	}
	defer rows.Close()

	tickets := []booking.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, domain.PersistenceError(err, "crdb: scan ticket")
		}
		tickets = append(tickets, t)
	}
	return tickets, domain.PersistenceError(rows.Err(), "crdb: iterate tickets")
}

func scanTicket(row pgx.Row) (booking.Ticket, error) {
	var (
		id, flightID, passengerID, seat, status string
		bookedAt, departure, arrival            time.Time
	)
	if err := row.Scan(&id, &flightID, &passengerID, &seat, &bookedAt, &status, &departure, &arrival); err != nil {
		return booking.Ticket{}, err
	}
	ft, err := booking.FlightTimeOf(departure, arrival)
	if err != nil {
		return booking.Ticket{}, errors.Wrapf(err, "stored ticket %s", id)
	}
	return booking.NewTicket(booking.TicketProps{
		TicketID:    id,
		FlightID:    flightID,
		PassengerID: passengerID,
		SeatNumber:  seat,
		BookingDate: bookedAt,
		Status:      booking.TicketStatus(status),
		FlightTime:  ft,
	}, nil, nil)
}
