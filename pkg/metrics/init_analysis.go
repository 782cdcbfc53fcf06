package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "boolnet_analyses_total",
			Help: "Total number of attractor analyses executed",
		},
		[]string{"mode", "status"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boolnet_analysis_duration_seconds",
			Help:    "Attractor analysis duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 1.0, 10.0, 60.0, 300.0},
		},
		[]string{"mode"},
	)

	r.AnalysisStates = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boolnet_analysis_states_explored",
			Help:    "Number of states classified per analysis",
			Buckets: []float64{16, 256, 4096, 65536, 1 << 20, 1 << 24},
		},
		[]string{"mode"},
	)

	r.AttractorsFound = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boolnet_analysis_attractors_found",
			Help:    "Number of attractors found per analysis",
			Buckets: []float64{1, 2, 4, 8, 16, 64, 256},
		},
		[]string{"mode"},
	)

	r.TruncatedSearches = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "boolnet_analysis_truncated_total",
			Help: "Analyses that could not cover the full state space",
		},
		[]string{"mode"},
	)

	r.CompilationFailures = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "boolnet_rule_compilation_failures_total",
			Help: "Rule sets rejected by the compiler",
		},
	)
}
