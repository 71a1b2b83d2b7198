// Package metrics provides Prometheus metrics for analyzeme runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "analyzeme"
)

// Registry holds every analyzeme metric. It is separate from the default
// registry so textfile output carries no Go runtime collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Load metrics
var (
	// MessagesLoadedTotal counts messages decoded from exports.
	MessagesLoadedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "messages_total",
			Help:      "Total messages decoded from exports",
		},
	)

	// MessagesFilteredTotal counts messages dropped by --from/--to/--where.
	MessagesFilteredTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "messages_filtered_total",
			Help:      "Total messages dropped by date and expression filters",
		},
	)

	// LoadDuration tracks export decode time.
	LoadDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "duration_seconds",
			Help:      "Export decode time in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)
)

// Aggregation metrics
var (
	// AggregationsTotal counts aggregator runs by aggregator name.
	AggregationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "aggregations_total",
			Help:      "Total aggregator runs",
		},
		[]string{"aggregator"},
	)

	// AggregationDuration tracks aggregator latency.
	AggregationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "aggregation_duration_seconds",
			Help:      "Aggregator run time in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"aggregator"},
	)
)

// Track counts one run of the named aggregator. Call the returned func when
// the run finishes to record its duration.
func Track(aggregator string) func() {
	start := time.Now()
	return func() {
		AggregationsTotal.WithLabelValues(aggregator).Inc()
		AggregationDuration.WithLabelValues(aggregator).Observe(time.Since(start).Seconds())
	}
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
