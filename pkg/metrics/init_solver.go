package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSolverMetrics() {
	r.SolverRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "boolnet_solver_runs_total",
			Help: "Total number of relaxation solver runs",
		},
		[]string{"status"},
	)

	r.SolverIterations = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boolnet_solver_iterations",
			Help:    "Sweeps used per solver run",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		},
	)

	r.SolverDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boolnet_solver_duration_seconds",
			Help:    "Relaxation solver duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
	)
}
