package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine and its API surface
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Analysis Metrics
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    *prometheus.HistogramVec
	AnalysisStates      *prometheus.HistogramVec
	AttractorsFound     *prometheus.HistogramVec
	TruncatedSearches   *prometheus.CounterVec
	CompilationFailures prometheus.Counter

	// Solver Metrics
	SolverRunsTotal  *prometheus.CounterVec
	SolverIterations prometheus.Histogram
	SolverDuration   prometheus.Histogram

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all collectors registered
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initHTTPMetrics()
	r.initAnalysisMetrics()
	r.initSolverMetrics()

	return r
}

// PrometheusRegistry exposes the underlying registry for the /metrics handler
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}
