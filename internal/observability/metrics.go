package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travier_requests_total",
			Help: "Total number of requests",
		},
		[]string{"route", "code", "method"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travier_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travier_events_published_total",
			Help: "Domain events handed to the event bus",
		},
		[]string{"bus", "event"},
	)

	EventPublishFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travier_event_publish_failures_total",
			Help: "Failed event bus submissions",
		},
		[]string{"bus"},
	)

	FailedPaymentsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "travier_failed_payments_recorded_total",
			Help: "Payment attempts persisted with FAILED status",
		},
	)

	RateLimitExceeded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "travier_rate_limit_exceeded_total",
			Help: "Total rate limit exceeded",
		},
	)
)

var registerOnce sync.Once

// InitMetrics registers the collectors with the default registry. Safe to
// call more than once.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal, RequestDuration, EventsPublished, EventPublishFailures, FailedPaymentsRecorded, RateLimitExceeded)
	})
}
