package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the fetchers.
type Metrics struct {
	Registry                 *prometheus.Registry
	RequestsTotal            *prometheus.CounterVec
	RequestDuration          prometheus.Histogram
	VendorsFetchedTotal      prometheus.Counter
	MenusFetchedTotal        prometheus.Counter
	UnexpectedResponsesTotal *prometheus.CounterVec
	ErrorsTotal              *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodmandu_requests_total",
			Help: "Total HTTP requests issued, by endpoint.",
		},
		[]string{"endpoint"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodmandu_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	vendors := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "foodmandu_vendors_fetched_total",
			Help: "Total vendor records received from the search endpoint.",
		},
	)
	menus := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "foodmandu_menus_fetched_total",
			Help: "Total vendor menus received.",
		},
	)
	unexpected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodmandu_unexpected_responses_total",
			Help: "Responses without a JSON content type, by endpoint.",
		},
		[]string{"endpoint"},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodmandu_errors_total",
			Help: "Total number of fatal fetch errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, requestDuration, vendors, menus, unexpected, errorsTotal)

	return &Metrics{
		Registry:                 registry,
		RequestsTotal:            requests,
		RequestDuration:          requestDuration,
		VendorsFetchedTotal:      vendors,
		MenusFetchedTotal:        menus,
		UnexpectedResponsesTotal: unexpected,
		ErrorsTotal:              errorsTotal,
	}
}

// IncRequest increments the requests counter for an endpoint.
func (m *Metrics) IncRequest(endpoint string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint).Inc()
}

// ObserveDuration records an HTTP request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// AddVendors adds n vendor records to the vendors counter.
func (m *Metrics) AddVendors(n int) {
	if m == nil {
		return
	}
	m.VendorsFetchedTotal.Add(float64(n))
}

// IncMenus increments the menus counter.
func (m *Metrics) IncMenus() {
	if m == nil {
		return
	}
	m.MenusFetchedTotal.Inc()
}

// IncUnexpected increments the unexpected responses counter for an endpoint.
func (m *Metrics) IncUnexpected(endpoint string) {
	if m == nil {
		return
	}
	m.UnexpectedResponsesTotal.WithLabelValues(endpoint).Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
