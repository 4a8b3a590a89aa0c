// Package metrics provides Prometheus metrics for the value engine daemon.
// The core calculation packages stay metric-free; the daemon records around
// analysis calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics collects and exposes analysis-related Prometheus metrics.
type EngineMetrics struct {
	registry *prometheus.Registry

	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisErrors   prometheus.Counter
	AnalysisDuration prometheus.Histogram

	// Valuation metrics
	EdgePercent   prometheus.Histogram
	ExpectedValue prometheus.Histogram
	KellyFraction prometheus.Histogram
	DegradedTotal prometheus.Counter
	BookValues    *prometheus.CounterVec

	// Streaming metrics
	ConnectedClients prometheus.Gauge
}

// NewEngineMetrics creates a new engine metrics collector with its own
// registry.
func NewEngineMetrics() *EngineMetrics {
	registry := prometheus.NewRegistry()

	em := &EngineMetrics{
		registry: registry,

		AnalysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propvalue_analyses_total",
				Help: "Total prop analyses performed",
			},
			[]string{"market"},
		),
		AnalysisErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "propvalue_analysis_errors_total",
				Help: "Analyses that returned an error field",
			},
		),
		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "propvalue_analysis_duration_seconds",
				Help:    "Duration of prop analyses",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),

		EdgePercent: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "propvalue_edge_percent",
				Help:    "Edge percentage of top-ranked values",
				Buckets: prometheus.LinearBuckets(-20, 4, 12),
			},
		),
		ExpectedValue: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "propvalue_expected_value",
				Help:    "Expected value per dollar of top-ranked values",
				Buckets: prometheus.LinearBuckets(-0.25, 0.05, 12),
			},
		),
		KellyFraction: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "propvalue_kelly_fraction",
				Help:    "Kelly fraction of top-ranked values",
				Buckets: prometheus.LinearBuckets(0, 0.02, 12),
			},
		),
		DegradedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "propvalue_degraded_values_total",
				Help: "Prop values produced by the degraded fallback path",
			},
		),
		BookValues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propvalue_book_values_total",
				Help: "Prop values computed per book and side",
			},
			[]string{"book", "side"},
		),

		ConnectedClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "propvalue_ws_clients",
				Help: "Connected WebSocket clients",
			},
		),
	}

	em.registerAll()
	return em
}

func (em *EngineMetrics) registerAll() {
	em.registry.MustRegister(
		em.AnalysesTotal,
		em.AnalysisErrors,
		em.AnalysisDuration,
		em.EdgePercent,
		em.ExpectedValue,
		em.KellyFraction,
		em.DegradedTotal,
		em.BookValues,
		em.ConnectedClients,
	)
}

// Registry returns the prometheus registry.
func (em *EngineMetrics) Registry() *prometheus.Registry {
	return em.registry
}

// RecordAnalysis records one completed analysis.
func (em *EngineMetrics) RecordAnalysis(market string, durationSec float64, errored bool) {
	em.AnalysesTotal.WithLabelValues(market).Inc()
	em.AnalysisDuration.Observe(durationSec)
	if errored {
		em.AnalysisErrors.Inc()
	}
}

// RecordValue records one computed prop value.
func (em *EngineMetrics) RecordValue(book, side string, degraded bool) {
	em.BookValues.WithLabelValues(book, side).Inc()
	if degraded {
		em.DegradedTotal.Inc()
	}
}

// RecordTopValue records the valuation distribution for a report's top value.
func (em *EngineMetrics) RecordTopValue(edgePercent, expectedValue, kellyFraction float64) {
	em.EdgePercent.Observe(edgePercent)
	em.ExpectedValue.Observe(expectedValue)
	em.KellyFraction.Observe(kellyFraction)
}
