// SPDX-License-Identifier: MIT

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the API. Each Metrics owns its
// registry so several servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Decompositions *prometheus.CounterVec
	Duration       *prometheus.HistogramVec
	Warnings       *prometheus.CounterVec
	CacheRequests  *prometheus.CounterVec
}

// Status labels of lvdecomp_decompositions_total.
const (
	statusOK      = "ok"
	statusInvalid = "invalid"
	statusFailed  = "failed"
	statusError   = "error"
)

// Result labels of lvdecomp_cache_requests_total.
const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Decompositions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lvdecomp_decompositions_total",
				Help: "Decomposition requests by method and outcome",
			},
			[]string{"method", "status"},
		),

		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lvdecomp_decomposition_duration_seconds",
				Help:    "Time spent in the decomposition engine",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method"},
		),

		Warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lvdecomp_warnings_total",
				Help: "Preconditioning warnings attached to results",
			},
			[]string{"code"},
		),

		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lvdecomp_cache_requests_total",
				Help: "Result cache lookups by outcome",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(
		m.Decompositions,
		m.Duration,
		m.Warnings,
		m.CacheRequests,
		collectors.NewGoCollector(),
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
