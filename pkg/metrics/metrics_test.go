package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry_IsIsolated(t *testing.T) {
	// Two registries must not collide; collectors are registered per
	// instance, not on the global default.
	a := NewRegistry()
	b := NewRegistry()

	a.RecordCompilationFailure()
	if got := testutil.ToFloat64(a.CompilationFailures); got != 1 {
		t.Errorf("CompilationFailures on a = %v, want 1", got)
	}
	if got := testutil.ToFloat64(b.CompilationFailures); got != 0 {
		t.Errorf("CompilationFailures on b = %v, want 0", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("POST", "/analyze/rules", "200", 10*time.Millisecond)
	r.RecordHTTPRequest("POST", "/analyze/rules", "200", 20*time.Millisecond)
	r.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)

	got := testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("POST", "/analyze/rules", "200"))
	if got != 2 {
		t.Errorf("analyze counter = %v, want 2", got)
	}
}

func TestRecordAnalysis(t *testing.T) {
	r := NewRegistry()

	r.RecordAnalysis("rules", "ok", 50*time.Millisecond, 1024, 3, false)
	r.RecordAnalysis("rules", "ok", 60*time.Millisecond, 2048, 1, true)
	r.RecordAnalysis("threshold", "ok", 5*time.Millisecond, 16, 2, false)

	if got := testutil.ToFloat64(r.AnalysesTotal.WithLabelValues("rules", "ok")); got != 2 {
		t.Errorf("rules analyses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.TruncatedSearches.WithLabelValues("rules")); got != 1 {
		t.Errorf("truncated searches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.TruncatedSearches.WithLabelValues("threshold")); got != 0 {
		t.Errorf("threshold truncations = %v, want 0", got)
	}
}

func TestRecordSolverRun(t *testing.T) {
	r := NewRegistry()

	r.RecordSolverRun("converged", 5*time.Millisecond, 42)
	r.RecordSolverRun("max_iterations", 80*time.Millisecond, 1000)

	if got := testutil.ToFloat64(r.SolverRunsTotal.WithLabelValues("converged")); got != 1 {
		t.Errorf("converged runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.SolverRunsTotal.WithLabelValues("max_iterations")); got != 1 {
		t.Errorf("capped runs = %v, want 1", got)
	}
}

func TestAllCollectorsExposed(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)
	r.RecordAnalysis("rules", "ok", time.Millisecond, 4, 3, false)
	r.RecordSolverRun("converged", time.Millisecond, 10)
	r.RecordCompilationFailure()

	families, err := r.PrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"boolnet_http_requests_total",
		"boolnet_http_request_duration_seconds",
		"boolnet_analyses_total",
		"boolnet_analysis_duration_seconds",
		"boolnet_analysis_states_explored",
		"boolnet_analysis_attractors_found",
		"boolnet_rule_compilation_failures_total",
		"boolnet_solver_runs_total",
		"boolnet_solver_iterations",
		"boolnet_solver_duration_seconds",
	} {
		if !names[want] {
			t.Errorf("Expected metric family %q in exposition", want)
		}
	}
}
