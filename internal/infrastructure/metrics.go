package infrastructure

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the application's Prometheus metrics.
// All collectors are registered on a private registry so tests can
// create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	decompositions     *prometheus.CounterVec
	decomposeDuration  *prometheus.HistogramVec
	observationsLoaded prometheus.Counter
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewMetrics creates and registers all application metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		decompositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lmdi_decompositions_total",
			Help: "Total decomposition runs by mode and outcome",
		}, []string{"mode", "status"}),
		decomposeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lmdi_decomposition_duration_seconds",
			Help:    "Duration of decomposition runs",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		observationsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lmdi_observations_loaded_total",
			Help: "Total panel observations loaded from input files",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	registry.MustRegister(
		m.decompositions,
		m.decomposeDuration,
		m.observationsLoaded,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// RecordDecomposition records a completed decomposition run.
func (m *Metrics) RecordDecomposition(mode string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.decompositions.WithLabelValues(mode, status).Inc()
	m.decomposeDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordObservationsLoaded records observations read from an input file.
func (m *Metrics) RecordObservationsLoaded(count int) {
	m.observationsLoaded.Add(float64(count))
}

// RecordHTTPRequest records a served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
