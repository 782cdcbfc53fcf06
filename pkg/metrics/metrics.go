package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordAnalysis records one attractor search
func (r *Registry) RecordAnalysis(mode, status string, duration time.Duration, statesExplored uint64, attractors int, truncated bool) {
	r.AnalysesTotal.WithLabelValues(mode, status).Inc()
	r.AnalysisDuration.WithLabelValues(mode).Observe(duration.Seconds())
	r.AnalysisStates.WithLabelValues(mode).Observe(float64(statesExplored))
	r.AttractorsFound.WithLabelValues(mode).Observe(float64(attractors))
	if truncated {
		r.TruncatedSearches.WithLabelValues(mode).Inc()
	}
}

// RecordCompilationFailure records a rejected rule set
func (r *Registry) RecordCompilationFailure() {
	r.CompilationFailures.Inc()
}

// RecordSolverRun records one relaxation solve
func (r *Registry) RecordSolverRun(status string, duration time.Duration, iterations int) {
	r.SolverRunsTotal.WithLabelValues(status).Inc()
	r.SolverDuration.Observe(duration.Seconds())
	r.SolverIterations.Observe(float64(iterations))
}
