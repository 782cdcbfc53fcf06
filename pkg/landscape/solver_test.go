package landscape

import (
	"errors"
	"math"
	"testing"

	"github.com/Ashar-LUMS/boolnet/pkg/network"
)

// chainNetwork is a small activation chain used across the solver tests:
// a -> b -> c with positive weights and a self-sustaining bias on a.
func chainNetwork() *network.Network {
	return &network.Network{
		Nodes: []network.Node{
			{ID: "a", Bias: 1.0},
			{ID: "b"},
			{ID: "c"},
		},
		Edges: []network.Edge{
			{Source: "a", Target: "b", Weight: 1.0},
			{Source: "b", Target: "c", Weight: 1.0},
		},
		Options: network.Options{
			ThresholdMultiplier: 0.5,
			TieBehavior:         network.TieHold,
		},
	}
}

func TestSolve_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SolverOptions)
	}{
		{"zero noise", func(o *SolverOptions) { o.Noise = 0 }},
		{"negative noise", func(o *SolverOptions) { o.Noise = -1 }},
		{"degradation above one", func(o *SolverOptions) { o.SelfDegradation = 1.5 }},
		{"negative degradation", func(o *SolverOptions) { o.SelfDegradation = -0.1 }},
		{"zero iterations", func(o *SolverOptions) { o.MaxIterations = 0 }},
		{"zero tolerance", func(o *SolverOptions) { o.Tolerance = 0 }},
		{"initial probability above one", func(o *SolverOptions) { o.InitialProbability = 1.1 }},
		{"override above one", func(o *SolverOptions) { o.InitialOverrides = map[string]float64{"a": 2.0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultSolverOptions()
			tt.mutate(&opts)

			_, err := Solve(chainNetwork(), opts)
			if err == nil {
				t.Fatal("Expected a configuration error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSolve_NilNetwork(t *testing.T) {
	_, err := Solve(nil, DefaultSolverOptions())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil network, got %v", err)
	}
}

func TestSolve_UnknownOverrideRejected(t *testing.T) {
	opts := DefaultSolverOptions()
	opts.InitialOverrides = map[string]float64{"ghost": 0.5}

	_, err := Solve(chainNetwork(), opts)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for unknown override, got %v", err)
	}
}

func TestSolve_ConvergesOnChain(t *testing.T) {
	result, err := Solve(chainNetwork(), DefaultSolverOptions())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if !result.Converged {
		t.Error("Expected convergence on a 3-node chain")
	}
	if result.Iterations < 1 || result.Iterations > DefaultSolverOptions().MaxIterations {
		t.Errorf("Iterations = %d, want within [1, %d]", result.Iterations, DefaultSolverOptions().MaxIterations)
	}

	for _, id := range result.Order {
		p, ok := result.Probabilities[id]
		if !ok {
			t.Fatalf("Missing probability for %q", id)
		}
		if p < 0 || p > 1 {
			t.Errorf("Probability for %q = %v, outside [0,1]", id, p)
		}
		if _, ok := result.PotentialEnergy[id]; !ok {
			t.Errorf("Missing potential energy for %q", id)
		}
	}

	// Bias 1.0 against threshold 0.5 keeps a strongly active.
	if result.Probabilities["a"] < 0.6 {
		t.Errorf("Expected a to settle active, got %v", result.Probabilities["a"])
	}
}

func TestSolve_Reproducible(t *testing.T) {
	first, err := Solve(chainNetwork(), DefaultSolverOptions())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	second, err := Solve(chainNetwork(), DefaultSolverOptions())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if first.Iterations != second.Iterations || first.Converged != second.Converged {
		t.Error("Repeated solves should take identical paths")
	}
	for id, p := range first.Probabilities {
		if second.Probabilities[id] != p {
			t.Errorf("Probability for %q differs between runs: %v vs %v", id, p, second.Probabilities[id])
		}
	}
}

func TestSolve_IterationCapRespected(t *testing.T) {
	opts := DefaultSolverOptions()
	opts.MaxIterations = 3
	opts.Tolerance = 1e-15

	result, err := Solve(chainNetwork(), opts)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Iterations > 3 {
		t.Errorf("Iterations = %d, want at most 3", result.Iterations)
	}
}

func TestSolve_LowNoiseApproachesThresholdRule(t *testing.T) {
	// At near-zero temperature the logistic sharpens into a step: nodes
	// driven above the threshold saturate near 1, the rest near 0.
	net := chainNetwork()
	opts := DefaultSolverOptions()
	opts.Noise = 0.01
	opts.SelfDegradation = 0

	result, err := Solve(net, opts)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	// a: drive = 1.0 - 0.5 = 0.5 > 0 -> saturates on, and the activation
	// propagates down the chain.
	for _, id := range []string{"a", "b", "c"} {
		if result.Probabilities[id] < 0.95 {
			t.Errorf("Expected %q near 1 at low noise, got %v", id, result.Probabilities[id])
		}
	}
}

func TestSolve_HighNoiseFlattens(t *testing.T) {
	opts := DefaultSolverOptions()
	opts.Noise = 1e6

	result, err := Solve(chainNetwork(), opts)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	for id, p := range result.Probabilities {
		if math.Abs(p-0.5) > 0.01 {
			t.Errorf("Expected %q near 0.5 at high noise, got %v", id, p)
		}
	}
}

func TestSolve_InitialOverridesApplied(t *testing.T) {
	// Drive everything from a cold start; the bias should still win.
	opts := DefaultSolverOptions()
	opts.InitialOverrides = map[string]float64{"a": 0.0, "b": 0.0, "c": 0.0}

	result, err := Solve(chainNetwork(), opts)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !result.Converged {
		t.Error("Expected convergence from a cold start")
	}
	if result.Probabilities["a"] < 0.6 {
		t.Errorf("Bias should pull a active regardless of the seed, got %v", result.Probabilities["a"])
	}
}

func TestMeanFieldUpdate_Boundaries(t *testing.T) {
	// Low temperature: hard step around zero drive.
	if got := meanFieldUpdate(0.5, 1e-6); got < 0.999 {
		t.Errorf("Positive drive at low noise = %v, want near 1", got)
	}
	if got := meanFieldUpdate(-0.5, 1e-6); got > 0.001 {
		t.Errorf("Negative drive at low noise = %v, want near 0", got)
	}

	// High temperature: everything flattens toward 0.5.
	if got := meanFieldUpdate(5.0, 1e9); math.Abs(got-0.5) > 1e-6 {
		t.Errorf("High noise = %v, want 0.5", got)
	}

	// Zero drive is exactly 0.5 at any temperature.
	if got := meanFieldUpdate(0, 0.5); got != 0.5 {
		t.Errorf("Zero drive = %v, want 0.5", got)
	}
}

func TestPotentialEnergy(t *testing.T) {
	if got := potentialEnergy(1.0); got != 0 {
		t.Errorf("Energy at p=1 is %v, want 0", got)
	}

	// Monotone decreasing in p.
	prev := math.Inf(1)
	for _, p := range []float64{0.001, 0.01, 0.1, 0.5, 0.9, 1.0} {
		e := potentialEnergy(p)
		if e >= prev {
			t.Errorf("Energy at p=%v is %v, not below %v", p, e, prev)
		}
		prev = e
	}

	// Floored: never infinite even at p=0.
	if e := potentialEnergy(0); math.IsInf(e, 1) {
		t.Error("Energy at p=0 should be floored, not infinite")
	}
}
