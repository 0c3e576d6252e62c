// Package metrics provides Prometheus metrics for the SkillPort service.
package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the SkillPort service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Record Store Metrics
	storeOperations *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec
	storeRecords    *prometheus.GaugeVec

	// Pipeline Metrics - filter, aggregate and rank runs per view
	pipelineRuns    *prometheus.CounterVec
	pipelineLatency *prometheus.HistogramVec
	recordsScanned  *prometheus.CounterVec

	// Business Metrics
	badgesAwarded        *prometheus.CounterVec
	idempotentDuplicates *prometheus.CounterVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "skillport",
		subsystem:        "api",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	counterVec := func(name, help string, keys ...string) *prometheus.CounterVec {
		return auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
		}, keys)
	}
	histogramVec := func(name, help string, keys ...string) *prometheus.HistogramVec {
		return auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
			Buckets:   m.histogramBuckets,
		}, keys)
	}
	gauge := func(name, help string) prometheus.Gauge {
		return auto.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
		})
	}

	m.httpRequests = counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.storeOperations = counterVec("store_operations_total",
		"Record store operations by entity, operation and result", "entity", "op", "result")
	m.storeLatency = histogramVec("store_latency_milliseconds",
		"Record store operation latency in milliseconds", "entity", "op")
	m.storeRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_records",
		Help:      "Number of records returned by the last full listing per entity",
	}, []string{"entity"})

	m.pipelineRuns = counterVec("pipeline_runs_total",
		"Filter, aggregate and rank pipeline runs by view", "view")
	m.pipelineLatency = histogramVec("pipeline_latency_milliseconds",
		"Pipeline latency in milliseconds by view, including the snapshot fetch", "view")
	m.recordsScanned = counterVec("records_scanned_total",
		"Records fed into the pipeline by entity", "entity")

	m.badgesAwarded = counterVec("badges_awarded_total",
		"Badges awarded by badge name", "badge")
	m.idempotentDuplicates = counterVec("idempotent_duplicates_total",
		"Create requests rejected for a repeated Idempotency-Key", "resource")

	m.errorRateByComponent = counterVec("errors_by_component_total",
		"Errors by component and type", "component", "error_type")
	m.errorRateByType = counterVec("errors_by_type_total",
		"Errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = counterVec("errors_by_endpoint_total",
		"Errors by HTTP endpoint", "endpoint", "method", "error_type")
	m.errorLatency = histogramVec("error_latency_milliseconds",
		"Latency of failed operations in milliseconds", "component", "error_type")

	m.systemMemoryUsage = gauge("system_memory_bytes", "Heap bytes in use")
	m.systemGoroutineCount = gauge("system_goroutines", "Number of live goroutines")
}

// collectSystem refreshes the runtime gauges once.
func (m *Manager) collectSystem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.systemMemoryUsage.Set(float64(ms.HeapInuse))
	m.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
}

// Run refreshes the runtime gauges every refresh interval until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	if !m.enabled {
		return
	}
	m.collectSystem()
	t := time.NewTicker(m.refreshInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.collectSystem()
		}
	}
}

// StartSystemCollector runs the global manager's runtime collector in the background.
func StartSystemCollector(ctx context.Context) {
	go globalManager.Run(ctx)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordStoreOperation records one store call and its latency.
func RecordStoreOperation(entity, op, result string, latencyMs float64) {
	globalManager.storeOperations.WithLabelValues(entity, op, result).Inc()
	globalManager.storeLatency.WithLabelValues(entity, op).Observe(latencyMs)
}

// UpdateStoreRecords sets the record count seen for entity.
func UpdateStoreRecords(entity string, count int) {
	globalManager.storeRecords.WithLabelValues(entity).Set(float64(count))
}

// RecordPipelineRun records a pipeline run for view.
func RecordPipelineRun(view string, latencyMs float64) {
	globalManager.pipelineRuns.WithLabelValues(view).Inc()
	globalManager.pipelineLatency.WithLabelValues(view).Observe(latencyMs)
}

// RecordRecordsScanned adds n to the scanned records of entity.
func RecordRecordsScanned(entity string, n int) {
	globalManager.recordsScanned.WithLabelValues(entity).Add(float64(n))
}

// RecordBadgeAwarded increments the awarded badge counter.
func RecordBadgeAwarded(badge string) {
	globalManager.badgesAwarded.WithLabelValues(badge).Inc()
}

// RecordIdempotentDuplicate increments the duplicate create counter.
func RecordIdempotentDuplicate(resource string) {
	globalManager.idempotentDuplicates.WithLabelValues(resource).Inc()
}

// Enhanced Error Metrics Functions.

// RecordErrorByComponent records an error by component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records error latency.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
