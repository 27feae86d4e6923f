// Package metrics defines the Prometheus instrumentation for the quote API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Calculations counts calculator invocations by operation and outcome.
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "costengine_calculations_total",
			Help: "Total calculator invocations",
		},
		[]string{"operation", "status"},
	)

	// ValidationFailures counts rejected parameter sets by operation.
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "costengine_validation_failures_total",
			Help: "Parameter sets rejected by the input validator",
		},
		[]string{"operation"},
	)

	// CalculationDuration observes calculator latency by operation.
	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "costengine_calculation_duration_seconds",
			Help:    "Calculator latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
