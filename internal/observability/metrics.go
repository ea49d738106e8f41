package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ingestion metrics
	LinesRead       *prometheus.CounterVec
	LinesSkipped    *prometheus.CounterVec
	EventsStored    *prometheus.CounterVec
	EventsDropped   *prometheus.CounterVec
	InputFailures   *prometheus.CounterVec
	AnalyzeDuration *prometheus.HistogramVec

	// Report and artifact metrics
	ReportsGenerated  *prometheus.CounterVec
	ArtifactsWritten  *prometheus.CounterVec
	ArtifactSize      *prometheus.HistogramVec
	SinkWriteDuration *prometheus.HistogramVec
	SinkErrors        *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		// Ingestion metrics
		LinesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "log_lines_read_total",
				Help: "Total number of non-empty log lines read",
			},
			[]string{"origin"},
		),
		LinesSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "log_lines_skipped_total",
				Help: "Total number of lines skipped as unparseable",
			},
			[]string{"origin", "reason"},
		),
		EventsStored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "events_stored_total",
				Help: "Total number of classified events stored",
			},
			[]string{"source", "category"},
		),
		EventsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "events_dropped_total",
				Help: "Total number of parsed lines dropped for unknown source",
			},
			[]string{"origin"},
		),
		InputFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "input_failures_total",
				Help: "Total number of log files that could not be read",
			},
			[]string{"origin"},
		),
		AnalyzeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analyze_duration_seconds",
				Help:    "Duration of per-input analysis runs",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"origin"},
		),

		// Report and artifact metrics
		ReportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reports_generated_total",
				Help: "Total number of report views generated",
			},
			[]string{"report"},
		),
		ArtifactsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artifacts_written_total",
				Help: "Total number of artifacts written to the sink",
			},
			[]string{"backend", "status"},
		),
		ArtifactSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "artifact_size_bytes",
				Help:    "Size of artifacts written to the sink",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8), // 1KB to 16GB
			},
			[]string{"backend"},
		),
		SinkWriteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sink_write_duration_seconds",
				Help:    "Duration of sink write operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend"},
		),
		SinkErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sink_errors_total",
				Help: "Total number of sink errors",
			},
			[]string{"backend", "operation"},
		),
	}
}

// IncLinesRead increments the lines read counter.
func (m *Metrics) IncLinesRead(origin string) {
	m.LinesRead.WithLabelValues(origin).Inc()
}

// IncLinesSkipped increments the skipped lines counter.
func (m *Metrics) IncLinesSkipped(origin, reason string) {
	m.LinesSkipped.WithLabelValues(origin, reason).Inc()
}

// IncEventsStored increments the stored events counter.
func (m *Metrics) IncEventsStored(source, category string) {
	m.EventsStored.WithLabelValues(source, category).Inc()
}

// IncEventsDropped increments the dropped events counter.
func (m *Metrics) IncEventsDropped(origin string) {
	m.EventsDropped.WithLabelValues(origin).Inc()
}

// IncInputFailures increments the unreadable input counter.
func (m *Metrics) IncInputFailures(origin string) {
	m.InputFailures.WithLabelValues(origin).Inc()
}

// ObserveAnalyzeDuration observes one per-input analysis duration.
func (m *Metrics) ObserveAnalyzeDuration(origin string, duration float64) {
	m.AnalyzeDuration.WithLabelValues(origin).Observe(duration)
}

// IncReportsGenerated increments the generated reports counter.
func (m *Metrics) IncReportsGenerated(report string) {
	m.ReportsGenerated.WithLabelValues(report).Inc()
}

// IncArtifactsWritten increments the artifacts written counter.
func (m *Metrics) IncArtifactsWritten(backend, status string) {
	m.ArtifactsWritten.WithLabelValues(backend, status).Inc()
}

// ObserveArtifactSize observes one artifact size.
func (m *Metrics) ObserveArtifactSize(backend string, size float64) {
	m.ArtifactSize.WithLabelValues(backend).Observe(size)
}

// ObserveSinkWriteDuration observes one sink write duration.
func (m *Metrics) ObserveSinkWriteDuration(backend string, duration float64) {
	m.SinkWriteDuration.WithLabelValues(backend).Observe(duration)
}

// IncSinkErrors increments the sink errors counter.
func (m *Metrics) IncSinkErrors(backend, operation string) {
	m.SinkErrors.WithLabelValues(backend, operation).Inc()
}
