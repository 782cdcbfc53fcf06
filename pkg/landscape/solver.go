// Package landscape estimates the steady-state probability of each node
// under a noisy mean-field relaxation of the weighted-threshold dynamics,
// and derives a potential-energy landscape from the result.
package landscape

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/Ashar-LUMS/boolnet/pkg/network"
)

// validate is a singleton validator instance
var validate = validator.New()

// ErrInvalidConfig marks a solver parameter that fails validation. Parameter
// errors surface before any iteration runs.
var ErrInvalidConfig = errors.New("invalid solver configuration")

// SolverOptions are the numeric parameters of the relaxation.
type SolverOptions struct {
	// Noise is the temperature µ. Small values drive nodes toward the
	// deterministic threshold rule; large values flatten every
	// probability toward 0.5.
	Noise float64 `json:"noise" validate:"gt=0"`
	// SelfDegradation pulls a node toward inactivity in the absence of
	// positive input.
	SelfDegradation float64 `json:"selfDegradation" validate:"gte=0,lte=1"`
	// MaxIterations bounds the number of full sweeps.
	MaxIterations int `json:"maxIterations" validate:"gte=1"`
	// Tolerance is the convergence threshold on the largest per-node
	// probability change in one sweep.
	Tolerance float64 `json:"tolerance" validate:"gt=0"`
	// InitialProbability seeds every node without an override.
	InitialProbability float64 `json:"initialProbability" validate:"gte=0,lte=1"`
	// InitialOverrides seeds individual nodes.
	InitialOverrides map[string]float64 `json:"initialOverrides,omitempty" validate:"omitempty,dive,gte=0,lte=1"`
}

// DefaultSolverOptions returns the standard solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Noise:              0.5,
		SelfDegradation:    0.1,
		MaxIterations:      1000,
		Tolerance:          1e-6,
		InitialProbability: 0.5,
	}
}

// Result is the steady-state estimate for one network.
type Result struct {
	Order           []string           `json:"order"`
	Probabilities   map[string]float64 `json:"probabilities"`
	PotentialEnergy map[string]float64 `json:"potentialEnergy"`
	Converged       bool               `json:"converged"`
	Iterations      int                `json:"iterations"`
}

// Solve iterates the mean-field recurrence until the largest per-node change
// in one sweep drops below the tolerance or the iteration cap is reached.
// The network must already be validated; parameter validation happens here
// and fails fast.
func Solve(net *network.Network, opts SolverOptions) (*Result, error) {
	if net == nil {
		return nil, fmt.Errorf("%w: network cannot be nil", ErrInvalidConfig)
	}
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	order := net.NodeIDs()
	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id] = i
	}

	for id := range opts.InitialOverrides {
		if _, ok := index[id]; !ok {
			return nil, fmt.Errorf("%w: initial override for unknown node %q", ErrInvalidConfig, id)
		}
	}

	// Resolve inputs to dense indexes once, before the sweep loop.
	type input struct {
		source int
		weight float64
	}
	inputs := make([][]input, len(order))
	for _, e := range net.Edges {
		inputs[index[e.Target]] = append(inputs[index[e.Target]], input{source: index[e.Source], weight: e.Weight})
	}
	bias := make([]float64, len(order))
	for i, id := range order {
		bias[i] = net.Bias(id)
	}

	probs := make([]float64, len(order))
	for i, id := range order {
		probs[i] = opts.InitialProbability
		if override, ok := opts.InitialOverrides[id]; ok {
			probs[i] = override
		}
	}

	next := make([]float64, len(order))
	threshold := net.Options.ThresholdMultiplier

	converged := false
	iterations := 0
	for iterations < opts.MaxIterations {
		iterations++

		maxDiff := 0.0
		for i := range order {
			drive := bias[i] - threshold - opts.SelfDegradation*probs[i]
			for _, in := range inputs[i] {
				drive += in.weight * probs[in.source]
			}
			next[i] = meanFieldUpdate(drive, opts.Noise)

			if diff := math.Abs(next[i] - probs[i]); diff > maxDiff {
				maxDiff = diff
			}
		}

		probs, next = next, probs

		if maxDiff < opts.Tolerance {
			converged = true
			break
		}
	}

	result := &Result{
		Order:           order,
		Probabilities:   make(map[string]float64, len(order)),
		PotentialEnergy: make(map[string]float64, len(order)),
		Converged:       converged,
		Iterations:      iterations,
	}
	for i, id := range order {
		p := clamp01(probs[i])
		result.Probabilities[id] = p
		result.PotentialEnergy[id] = potentialEnergy(p)
	}
	return result, nil
}

// meanFieldUpdate is the single place the recurrence lives so the formula can
// be corrected without touching the sweep loop. It maps a node's net drive
// (weighted input plus bias, minus threshold and self-degradation) to a new
// activation probability through a logistic with temperature µ: as µ tends to
// zero the output approaches the hard threshold step, and as µ grows every
// output flattens toward 0.5.
func meanFieldUpdate(drive, noise float64) float64 {
	return 1.0 / (1.0 + math.Exp(-drive/noise))
}

// potentialEnergy maps a steady-state probability to landscape height. Any
// monotone decreasing transform works for interpretation; -ln(p) keeps likely
// states in low-energy valleys. Probabilities are floored to keep the energy
// finite.
func potentialEnergy(p float64) float64 {
	const floor = 1e-12
	if p < floor {
		p = floor
	}
	return -math.Log(p)
}

// clamp01 bounds a probability estimate to [0, 1].
func clamp01(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
