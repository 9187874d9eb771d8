package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	ParsesTotal           *prometheus.CounterVec
	ParseDuration         *prometheus.HistogramVec
	ValidationErrorsTotal *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ParsesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recipe_parses_total",
			Help: "The total number of parse attempts per site.",
		}, []string{"site", "status"}), // status: success, failure
		ParseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recipe_parse_duration_seconds",
			Help:    "Duration of parse attempts.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 15, 30},
		}, []string{"site"}),
		ValidationErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recipe_validation_errors_total",
			Help: "Validation errors by code.",
		}, []string{"code"}),
	}
}

func (m *Metrics) ObserveParse(site string, success bool, seconds float64) {
	status := "failure"
	if success {
		status = "success"
	}
	m.ParsesTotal.WithLabelValues(site, status).Inc()
	m.ParseDuration.WithLabelValues(site).Observe(seconds)
}

func (m *Metrics) IncValidationError(code string) {
	m.ValidationErrorsTotal.WithLabelValues(code).Inc()
}

// Handler exposes the metrics registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
