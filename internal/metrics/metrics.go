// Package metrics provides Prometheus metrics for scoring events.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the scoring counters and the current totals gauge.
type Metrics struct {
	ScoringEvents  *prometheus.CounterVec
	SaturatedStats *prometheus.CounterVec
	StatTotal      *prometheus.GaugeVec
	RequestsTotal  *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		ScoringEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statline_scoring_events_total",
				Help: "Scoring events by log entry status.",
			},
			[]string{"status"},
		),
		SaturatedStats: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statline_saturated_total",
				Help: "Times clamping absorbed part of a delta, by stat.",
			},
			[]string{"stat"},
		),
		StatTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "statline_stat_total",
				Help: "Current clamped total per stat.",
			},
			[]string{"stat"},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statline_http_requests_total",
				Help: "HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
		registry: reg,
	}

	reg.MustRegister(m.ScoringEvents)
	reg.MustRegister(m.SaturatedStats)
	reg.MustRegister(m.StatTotal)
	reg.MustRegister(m.RequestsTotal)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordEvent(status string, saturated []string) {
	m.ScoringEvents.WithLabelValues(status).Inc()
	for _, s := range saturated {
		m.SaturatedStats.WithLabelValues(s).Inc()
	}
}

func (m *Metrics) SetTotal(stat string, value int) {
	m.StatTotal.WithLabelValues(stat).Set(float64(value))
}

func (m *Metrics) RecordRequest(route, code string) {
	m.RequestsTotal.WithLabelValues(route, code).Inc()
}
