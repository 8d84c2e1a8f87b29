// Package metrics defines all custom Prometheus metrics for the grading
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "grader"

// UploadsTotal counts upload attempts.
// Label:
//   - status: "accepted" or "rejected"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of upload attempts, by validation outcome.",
	},
	[]string{"status"},
)

// GradingsTotal counts grading calls by outcome.
// Label:
//   - result: "ok", "cache_hit", "upstream_error", or "internal_error"
var GradingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gradings_total",
		Help:      "Total number of grading calls, by result.",
	},
	[]string{"result"},
)

// GradingDuration measures how long one grading call takes end-to-end,
// including the synchronous inference request.
var GradingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "grading_duration_seconds",
		Help:      "Duration of a grading call from upload acceptance to persisted report.",
		// Inference dominates; buckets stretch well past the default range.
		Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 180},
	},
)

// WarmupTotal counts warmup attempts at process start.
// Label:
//   - result: "ok" or "error"
var WarmupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "warmup_total",
		Help:      "Total number of model warmup attempts, by result.",
	},
	[]string{"result"},
)
