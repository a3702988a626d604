package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"github.com/robertarktes/ticket-booking-and-payments/internal/rateLimit"
)

// SetupRouter mounts every route. rl may be nil to disable rate limiting.
func SetupRouter(h *Handlers, logger observability.Logger, rl *rateLimit.RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(TracingMiddleware)
	r.Use(MetricsMiddleware)

	r.Get("/v1/healthz", h.Healthz)
	r.Get("/v1/readyz", h.Readyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Group(func(r chi.Router) {
		if rl != nil {
			r.Use(RateLimitMiddleware(rl))
		}

		r.Post("/v1/tickets", h.ReserveTicket)
		r.Get("/v1/tickets/{id}", h.GetTicket)
		r.Post("/v1/tickets/{id}/check-in", h.CheckInTicket)
		r.Post("/v1/tickets/{id}/cancel", h.CancelTicket)
		r.Get("/v1/tickets/{id}/payments", h.ListPaymentsByTicket)
		r.Get("/v1/flights/{id}/tickets", h.ListTicketsByFlight)
		r.Get("/v1/passengers/{id}/tickets", h.ListTicketsByPassenger)

		r.Post("/v1/payments", h.ProcessPayment)
		r.Get("/v1/payments/{id}", h.GetPayment)
		r.Post("/v1/payments/{id}/refund", h.IssueRefund)
	})

	return r
}
