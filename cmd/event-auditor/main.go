package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robertarktes/ticket-booking-and-payments/internal/adapters/kafka"
	mongoadapter "github.com/robertarktes/ticket-booking-and-payments/internal/adapters/mongo"
	"github.com/robertarktes/ticket-booking-and-payments/internal/adapters/rabbit"
	"github.com/robertarktes/ticket-booking-and-payments/internal/config"
	"github.com/robertarktes/ticket-booking-and-payments/internal/eventbus"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

type consumer interface {
	Consume(ctx context.Context, handler func(context.Context, eventbus.Envelope) error) error
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("event-auditor: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := observability.NewLogger(cfg.LogLevel).WithField("component", "event-auditor")

	shutdownOtel, err := observability.SetupOTel(ctx, "travier-event-auditor", cfg.OTLPEndpoint)
	if err != nil {
		return errors.Wrap(err, "setup otel")
	}
	defer shutdownOtel(context.Background())

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return errors.Wrap(err, "connect to mongo")
	}
	defer mongoClient.Disconnect(context.Background())

	audit := mongoadapter.NewAuditLogger(mongoClient.Database(cfg.MongoDB), logger)
	if err := audit.EnsureIndexes(ctx); err != nil {
		return errors.Wrap(err, "create audit indexes")
	}

	src, closeSrc, err := openConsumer(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSrc()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("bus", cfg.EventBus).Info("Event auditor started")
		return src.Consume(gctx, func(ctx context.Context, env eventbus.Envelope) error {
			ctx, span := observability.Tracer().Start(ctx, "audit."+env.DetailType)
			defer span.End()
			err := audit.LogEvent(ctx, env)
			observability.RecordError(span, err)
			return err
		})
	})

	err = g.Wait()
	logger.Info("Shutdown event auditor")
	return err
}

func openConsumer(cfg *config.Config, logger observability.Logger) (consumer, func(), error) {
	switch cfg.EventBus {
	case config.BusRabbit:
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "connect to rabbitmq")
		}
		c, err := rabbit.NewConsumer(conn, cfg.RabbitExchange, cfg.AuditQueue, "#", logger)
		if err != nil {
			conn.Close()
			return nil, nil, errors.Wrap(err, "create consumer")
		}
		return c, func() {
			c.Close()
			conn.Close()
		}, nil
	case config.BusKafka:
		c := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaTopic, logger)
		return c, func() { c.Close() }, nil
	}
	return nil, nil, errors.Newf("event-auditor needs EVENT_BUS=rabbit or kafka, got %q", cfg.EventBus)
}
