// Package metrics holds the Prometheus collectors for the ordering backend.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	ordersPlaced  prometheus.Counter
	statusChanges *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "path"},
		),
		ordersPlaced: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_placed_total",
				Help: "Orders committed from a customer cart.",
			},
		),
		statusChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_status_changes_total",
				Help: "Order status changes by new status and who made them.",
			},
			[]string{"status", "source"},
		),
	}

	m.Registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.ordersPlaced,
		m.statusChanges,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordHTTPRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) OrderPlaced() {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// StatusChanged counts a transition; source is "kitchen" or "admin".
func (m *Metrics) StatusChanged(status, source string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status, source).Inc()
}
