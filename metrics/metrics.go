// Package metrics exposes the lottery prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors updated by the contract host
type Metrics struct {
	registry *prometheus.Registry

	calls            *prometheus.CounterVec
	ticketsSold      prometheus.Counter
	payouts          prometheus.Counter
	ticketsAvailable prometheus.Gauge
}

// New - creates the collectors and registers them, with the Go and process
// collectors, in a dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lottery",
				Name:      "calls_total",
				Help:      "Total number of contract calls by entrypoint and status.",
			},
			[]string{"entrypoint", "status"},
		),
		ticketsSold: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "lottery",
				Name:      "tickets_sold_total",
				Help:      "Total number of tickets sold.",
			},
		),
		payouts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "lottery",
				Name:      "payouts_mutez_total",
				Help:      "Total amount paid to winners, in mutez.",
			},
		),
		ticketsAvailable: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lottery",
				Name:      "tickets_available",
				Help:      "Unsold tickets of the current round.",
			},
		),
	}

	m.registry.MustRegister(
		m.calls,
		m.ticketsSold,
		m.payouts,
		m.ticketsAvailable,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)

	return m
}

// ObserveCall counts one executed call
func (m *Metrics) ObserveCall(entrypoint, status string) {
	m.calls.WithLabelValues(entrypoint, status).Inc()
}

// AddTicketsSold counts sold tickets
func (m *Metrics) AddTicketsSold(n uint64) {
	m.ticketsSold.Add(float64(n))
}

// AddPayout counts an amount paid to a winner
func (m *Metrics) AddPayout(mutez uint64) {
	m.payouts.Add(float64(mutez))
}

// SetTicketsAvailable records the unsold tickets of the current round
func (m *Metrics) SetTicketsAvailable(n uint64) {
	m.ticketsAvailable.Set(float64(n))
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registered collectors
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
