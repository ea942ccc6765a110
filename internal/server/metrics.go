package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// Metrics holds the Prometheus collectors of one server.
// Each server owns its registry so tests can create servers freely.
type Metrics struct {
	Calculations    *prometheus.CounterVec
	EndpointLatency *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: config.MetricCalculations,
			Help: "Age calculations by outcome (ok, empty_input, future_date)",
		}, []string{config.MetricLabelOutcome}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    config.MetricLatency,
			Help:    "Latency of HTTP endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{config.MetricLabelRoute}),
		registry: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCalculation counts one calculation attempt.
func (m *Metrics) ObserveCalculation(err error) {
	outcome := config.OutcomeOK
	if err != nil {
		var vErr *engine.ValidationError
		if errors.As(err, &vErr) {
			outcome = vErr.Kind.String()
		} else {
			outcome = engine.ValidationKind(0).String()
		}
	}
	m.Calculations.WithLabelValues(outcome).Inc()
}

// ObserveRequest records the time spent serving route.
func (m *Metrics) ObserveRequest(route string, start time.Time) {
	m.EndpointLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
}
