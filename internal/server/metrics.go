package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/talenthub/internal/attempt"
)

// Metrics are the Prometheus collectors of the local API. Each Server owns
// its own registry so tests can run servers side by side.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	attempts prometheus.Counter
	answers  *prometheus.CounterVec
}

// NewMetrics registers the API collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "talenthub",
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "talenthub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "talenthub",
			Name:      "attempts_scored_total",
			Help:      "Attempts scored through /v1/score.",
		}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "talenthub",
			Name:      "answers_scored_total",
			Help:      "Scored questions by verdict.",
		}, []string{"verdict"}),
	}
	m.registry.MustRegister(
		m.requests, m.latency, m.attempts, m.answers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveResult counts a scored attempt.
func (m *Metrics) ObserveResult(r attempt.Result) {
	m.attempts.Inc()
	m.answers.WithLabelValues("correct").Add(float64(r.Correct))
	m.answers.WithLabelValues("wrong").Add(float64(r.Wrong))
}
