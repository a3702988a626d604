package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	redisclient "github.com/redis/go-redis/v9"
	redisadapter "github.com/robertarktes/ticket-booking-and-payments/internal/adapters/redis"
	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	bookinguc "github.com/robertarktes/ticket-booking-and-payments/internal/booking/usecase"
	"github.com/robertarktes/ticket-booking-and-payments/internal/config"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	httphandler "github.com/robertarktes/ticket-booking-and-payments/internal/http"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"github.com/robertarktes/ticket-booking-and-payments/internal/payment"
	paymentuc "github.com/robertarktes/ticket-booking-and-payments/internal/payment/usecase"
	"github.com/robertarktes/ticket-booking-and-payments/internal/rateLimit"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("api: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := observability.NewLogger(cfg.LogLevel)
	observability.InitMetrics()

	shutdownOtel, err := observability.SetupOTel(ctx, "travier-api", cfg.OTLPEndpoint)
	if err != nil {
		return errors.Wrap(err, "setup otel")
	}
	defer shutdownOtel(context.Background())

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()

	bus, err := openBus(cfg)
	if err != nil {
		return err
	}
	defer bus.close()

	ticketService := booking.NewTicketService(domain.NewUUID, domain.SystemClock)
	paymentService := payment.NewPaymentService(domain.NewUUID, domain.SystemClock)

	handlers := httphandler.NewHandlers(httphandler.UseCases{
		ReserveTicket:  bookinguc.NewReserveTicket(store.tickets, bus.booking, ticketService, logger),
		CheckInTicket:  bookinguc.NewCheckInTicket(store.tickets, bus.booking, ticketService, logger),
		CancelTicket:   bookinguc.NewCancelTicket(store.tickets, bus.booking, ticketService, logger),
		TicketQueries:  bookinguc.NewTicketQueries(store.tickets),
		ProcessPayment: paymentuc.NewProcessPayment(store.payments, bus.payment, paymentService, logger),
		IssueRefund:    paymentuc.NewIssueRefund(store.payments, bus.payment, paymentService, logger),
		PaymentQueries: paymentuc.NewPaymentQueries(store.payments),
	}, func(r *http.Request) error { return store.ping(r.Context()) })

	var rl *rateLimit.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		rl = rateLimit.NewRateLimiter(redisadapter.NewWindowCounter(redisClient), cfg.RateLimitPerMinute, time.Minute)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httphandler.SetupRouter(handlers, logger, rl),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", cfg.HTTPAddr).WithField("storage", cfg.Storage).WithField("bus", cfg.EventBus).Info("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown Server ...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("Server exiting")
	return err
}
