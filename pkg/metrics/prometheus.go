package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Build outcomes used as the status label.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Manager manages all Prometheus metrics for deck builds.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Build metrics
	builds         *prometheus.CounterVec
	buildDuration  prometheus.Histogram
	slidesRendered prometheus.Counter
	elements       *prometheus.CounterVec
	outputBytes    prometheus.Gauge
	lastBuildUnix  prometheus.Gauge
	activeWorkers  prometheus.Gauge

	// Chart rasterisation
	chartLatency *prometheus.HistogramVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Ledger metrics
	ledgerRecords prometheus.Gauge
	ledgerLatency *prometheus.HistogramVec

	// Error Metrics
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "deckgen",
		subsystem:        "builder",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.builds = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "builds_total",
		Help:        "Deck builds by outcome",
		ConstLabels: labels,
	}, []string{"status"})

	m.buildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "build_duration_milliseconds",
		Help:        "Time to load, lay out and render a deck",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.slidesRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "slides_rendered_total",
		Help:        "Slides written to presentations",
		ConstLabels: labels,
	})

	m.elements = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "elements_rendered_total",
		Help:        "Primitives drawn, by kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.outputBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "output_bytes",
		Help:        "Size of the last written presentation",
		ConstLabels: labels,
	})

	m.lastBuildUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_build_timestamp_seconds",
		Help:        "Unix time of the last successful build",
		ConstLabels: labels,
	})

	m.activeWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "active_workers",
		Help:        "Builds currently running in a batch",
		ConstLabels: labels,
	})

	m.chartLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "chart_render_milliseconds",
		Help:        "Chart rasterisation latency, by chart type",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"type"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_seconds",
		Help:        "HTTP request duration in seconds",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.ledgerRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ledger_records",
		Help:        "Builds recorded in the ledger",
		ConstLabels: labels,
	})

	m.ledgerLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ledger_latency_milliseconds",
		Help:        "Ledger operation latency, by operation",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100},
		ConstLabels: labels,
	}, []string{"op"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_component_total",
		Help:        "Errors by component and type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})
}

// RecordBuild counts a finished build with the given status.
func RecordBuild(status string) {
	globalManager.builds.WithLabelValues(status).Inc()
}

// RecordBuildDuration records build latency in milliseconds.
func RecordBuildDuration(latencyMs float64) {
	globalManager.buildDuration.Observe(latencyMs)
}

// RecordSlidesRendered adds n rendered slides.
func RecordSlidesRendered(n int) {
	globalManager.slidesRendered.Add(float64(n))
}

// RecordElementsRendered adds n primitives of the given kind.
func RecordElementsRendered(kind string, n int) {
	globalManager.elements.WithLabelValues(kind).Add(float64(n))
}

// UpdateOutputBytes sets the size of the last presentation.
func UpdateOutputBytes(n int) {
	globalManager.outputBytes.Set(float64(n))
}

// UpdateLastBuild sets the time of the last successful build.
func UpdateLastBuild(t time.Time) {
	globalManager.lastBuildUnix.Set(float64(t.Unix()))
}

// UpdateActiveWorkers sets the number of running batch builds.
func UpdateActiveWorkers(n int) {
	globalManager.activeWorkers.Set(float64(n))
}

// RecordChartLatency records chart rasterisation latency in milliseconds.
func RecordChartLatency(chartType string, latencyMs float64) {
	globalManager.chartLatency.WithLabelValues(chartType).Observe(latencyMs)
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateLedgerRecords sets the number of recorded builds.
func UpdateLedgerRecords(n int) {
	globalManager.ledgerRecords.Set(float64(n))
}

// RecordLedgerLatency records a ledger operation latency in milliseconds.
func RecordLedgerLatency(op string, latencyMs float64) {
	globalManager.ledgerLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordErrorByComponent increments the error counter for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current metrics in text exposition format,
// for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
