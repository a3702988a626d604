package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robertarktes/ticket-booking-and-payments/internal/adapters/crdb"
	"github.com/robertarktes/ticket-booking-and-payments/internal/adapters/kafka"
	"github.com/robertarktes/ticket-booking-and-payments/internal/adapters/memory"
	"github.com/robertarktes/ticket-booking-and-payments/internal/adapters/rabbit"
	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	"github.com/robertarktes/ticket-booking-and-payments/internal/config"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/eventbus"
	"github.com/robertarktes/ticket-booking-and-payments/internal/payment"
)

type storage struct {
	tickets  booking.TicketRepository
	payments payment.PaymentRepository
	ping     func(context.Context) error
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return &storage{
			tickets:  memory.NewTicketRepository(),
			payments: memory.NewPaymentRepository(),
			ping:     func(context.Context) error { return nil },
			close:    func() {},
		}, nil
	case config.StorageCRDB:
		pool, err := pgxpool.New(ctx, cfg.CRDBDSN)
		if err != nil {
			return nil, errors.Wrap(err, "connect to crdb")
		}
		if err := crdb.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &storage{
			tickets:  crdb.NewTicketRepository(pool),
			payments: crdb.NewPaymentRepository(pool),
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil
	}
	return nil, errors.Newf("unknown STORAGE %q", cfg.Storage)
}

// bus holds one publisher per bounded context; each stamps its own source.
type bus struct {
	booking domain.EventPublisher
	payment domain.EventPublisher
	close   func()
}

func openBus(cfg *config.Config) (*bus, error) {
	switch cfg.EventBus {
	case config.BusMemory:
		pub := memory.NewPublisher()
		return &bus{
			booking: eventbus.Instrument(config.BusMemory, pub),
			payment: eventbus.Instrument(config.BusMemory, pub),
			close:   func() {},
		}, nil
	case config.BusRabbit:
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			return nil, errors.Wrap(err, "connect to rabbitmq")
		}
		bookingPub, err := rabbit.NewPublisher(conn, cfg.RabbitExchange, cfg.BookingEventSource)
		if err != nil {
			conn.Close()
			return nil, errors.Wrap(err, "create booking publisher")
		}
		paymentPub, err := rabbit.NewPublisher(conn, cfg.RabbitExchange, cfg.PaymentEventSource)
		if err != nil {
			conn.Close()
			return nil, errors.Wrap(err, "create payment publisher")
		}
		return &bus{
			booking: eventbus.Instrument(config.BusRabbit, bookingPub),
			payment: eventbus.Instrument(config.BusRabbit, paymentPub),
			close: func() {
				bookingPub.Close()
				paymentPub.Close()
				conn.Close()
			},
		}, nil
	case config.BusKafka:
		bookingPub := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.BookingEventSource)
		paymentPub := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.PaymentEventSource)
		return &bus{
			booking: eventbus.Instrument(config.BusKafka, bookingPub),
			payment: eventbus.Instrument(config.BusKafka, paymentPub),
			close: func() {
				bookingPub.Close()
				paymentPub.Close()
			},
		}, nil
	}
	return nil, errors.Newf("unknown EVENT_BUS %q", cfg.EventBus)
}
