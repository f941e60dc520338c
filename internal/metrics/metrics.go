package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Fleetkeeper
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Pipeline Metrics
	PipelineRunsTotal       prometheus.CounterVec
	PipelineDuration        prometheus.HistogramVec
	VehiclesImportedTotal   prometheus.Counter
	VehiclesExportedTotal   prometheus.Counter
	PipelineItemErrorsTotal prometheus.Counter

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetkeeper_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fleetkeeper_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fleetkeeper_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		PipelineRunsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetkeeper_pipeline_runs_total",
				Help: "Total import/export pipeline runs by direction and outcome",
			},
			[]string{"direction", "outcome"},
		),
		PipelineDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fleetkeeper_pipeline_duration_seconds",
				Help:    "Pipeline run duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"direction"},
		),
		VehiclesImportedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fleetkeeper_vehicles_imported_total",
				Help: "Total vehicles persisted by import runs",
			},
		),
		VehiclesExportedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fleetkeeper_vehicles_exported_total",
				Help: "Total vehicles serialized by export runs",
			},
		),
		PipelineItemErrorsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fleetkeeper_pipeline_item_errors_total",
				Help: "Total non-fatal per-item errors accumulated by pipeline runs",
			},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetkeeper_cache_hits_total",
				Help: "Cache hits by cache key prefix",
			},
			[]string{"prefix"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetkeeper_cache_misses_total",
				Help: "Cache misses by cache key prefix",
			},
			[]string{"prefix"},
		),
	}
}
