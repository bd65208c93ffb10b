// internal/app/system/metrics/metrics.go

// Package metrics registers the Prometheus instruments for the API and the
// middleware that feeds the HTTP-level ones. Domain counters are bumped by
// the feature handlers; nil receivers are safe so tests can pass a nil
// *Metrics without registering collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the registration API.
type Metrics struct {
	// HTTP request counts and latencies by method/path/status
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Domain events
	RegistrationsCreated *prometheus.CounterVec
	PaymentsSubmitted    prometheus.Counter
	PaymentsVerified     *prometheus.CounterVec
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contesthub_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status code",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contesthub_http_request_duration_seconds",
			Help:    "HTTP request duration by method and route pattern",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "path"}),

		RegistrationsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contesthub_registrations_created_total",
			Help: "Total competition registrations by kind",
		}, []string{"kind"}), // kind: "owner", "member"

		PaymentsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contesthub_payments_submitted_total",
			Help: "Total payment submissions awaiting verification",
		}),

		PaymentsVerified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contesthub_payments_verified_total",
			Help: "Total admin payment verdicts by resulting status",
		}, []string{"status"}),
	}
}

// IncrementRegistration records a new registration. kind is "owner" for a
// direct registration and "member" for a join by code.
func (m *Metrics) IncrementRegistration(kind string) {
	if m != nil {
		m.RegistrationsCreated.WithLabelValues(kind).Inc()
	}
}

// IncrementPaymentSubmitted records a payment entering Pending.
func (m *Metrics) IncrementPaymentSubmitted() {
	if m != nil {
		m.PaymentsSubmitted.Inc()
	}
}

// IncrementPaymentVerified records an admin verdict.
func (m *Metrics) IncrementPaymentVerified(status string) {
	if m != nil {
		m.PaymentsVerified.WithLabelValues(status).Inc()
	}
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware counts and times every request. The route pattern, not the raw
// URL, is used as the path label so ids do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		m.RequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
		m.RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
