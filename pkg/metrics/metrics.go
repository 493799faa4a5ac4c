// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's counters and histograms. A single instance is
// created in the composition root and shared by services and clients.
type Metrics struct {
	registry *prometheus.Registry

	FollowupsScheduled prometheus.Counter
	FollowupsCancelled prometheus.Counter
	FollowupsProcessed *prometheus.CounterVec
	FollowupsFailed    prometheus.Counter

	ExternalRequests        *prometheus.CounterVec
	ExternalRequestDuration *prometheus.HistogramVec

	RateLimitedRequests prometheus.Counter
}

// New creates and registers all engine metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		FollowupsScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "followups_scheduled_total",
			Help: "Number of followup tasks created by the scheduler.",
		}),
		FollowupsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "followups_cancelled_total",
			Help: "Number of followup tasks cancelled after a prospect reply.",
		}),
		FollowupsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "followups_processed_total",
			Help: "Number of due followup tasks processed, by outcome.",
		}, []string{"status"}),
		FollowupsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "followups_failed_total",
			Help: "Number of followup tasks that ended in the failed state.",
		}),
		ExternalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "external_requests_total",
			Help: "Outbound requests to external collaborators, by service and outcome.",
		}, []string{"service", "status"}),
		ExternalRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "external_request_duration_seconds",
			Help:    "Duration of outbound requests to external collaborators.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service"}),
		RateLimitedRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Inbound requests rejected by the rate limiter.",
		}),
	}

	registry.MustRegister(
		m.FollowupsScheduled,
		m.FollowupsCancelled,
		m.FollowupsProcessed,
		m.FollowupsFailed,
		m.ExternalRequests,
		m.ExternalRequestDuration,
		m.RateLimitedRequests,
	)

	return m
}

// ObserveExternalRequest records one outbound call outcome with its duration.
func (m *Metrics) ObserveExternalRequest(service, status string, duration time.Duration) {
	m.ExternalRequests.WithLabelValues(service, status).Inc()
	m.ExternalRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// Handler returns the Prometheus text exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
