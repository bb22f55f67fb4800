package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// wind-rose pipeline.
type Metrics struct {
	RowsRead    prometheus.Counter
	RowsDropped prometheus.Counter

	ObservationsConsumed prometheus.Counter
	ConsumeErrors        prometheus.Counter

	Renders        prometheus.Counter
	RenderDuration prometheus.Histogram

	RoseSamples     prometheus.Gauge
	PipelineRunning prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windy",
			Name:      "rows_read_total",
			Help:      "Total data rows read from the input table.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windy",
			Name:      "rows_dropped_total",
			Help:      "Total rows discarded for a missing direction or speed.",
		}),
		ObservationsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windy",
			Name:      "observations_consumed_total",
			Help:      "Total observation messages read from the source topic.",
		}),
		ConsumeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windy",
			Name:      "consume_errors_total",
			Help:      "Total failures reading or decoding observation messages.",
		}),
		Renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windy",
			Name:      "renders_total",
			Help:      "Total wind-rose figures rendered.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "windy",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete figure render.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		RoseSamples: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "windy",
			Name:      "rose_samples",
			Help:      "Clean samples in the current rose.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "windy",
			Name:      "pipeline_running",
			Help:      "1 when the live pipeline is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsDropped,
		m.ObservationsConsumed,
		m.ConsumeErrors,
		m.Renders,
		m.RenderDuration,
		m.RoseSamples,
		m.PipelineRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsRead:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "windy", Name: "rows_read_total"}),
		RowsDropped:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "windy", Name: "rows_dropped_total"}),
		ObservationsConsumed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "windy", Name: "observations_consumed_total"}),
		ConsumeErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "windy", Name: "consume_errors_total"}),
		Renders:              prometheus.NewCounter(prometheus.CounterOpts{Namespace: "windy", Name: "renders_total"}),
		RenderDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "windy", Name: "render_duration_seconds"}),
		RoseSamples:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "windy", Name: "rose_samples"}),
		PipelineRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "windy", Name: "pipeline_running"}),
	}
}
