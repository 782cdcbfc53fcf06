package dynamics

import (
	"github.com/Ashar-LUMS/boolnet/pkg/state"
)

// AttractorKind classifies a long-run behavior
type AttractorKind string

const (
	// FixedPoint is a state that maps to itself
	FixedPoint AttractorKind = "fixed_point"
	// Cycle is a minimal sequence of two or more states the update
	// function loops through indefinitely
	Cycle AttractorKind = "cycle"
)

// Attractor is one stable long-run behavior of the network together with its
// basin statistics.
type Attractor struct {
	ID     int           `json:"id"`
	Kind   AttractorKind `json:"kind"`
	Period int           `json:"period"`
	// States holds the member states in trajectory order, rotated so the
	// numerically smallest state comes first. Fixed points have exactly one.
	States []state.State `json:"states"`
	// BasinSize counts the distinct explored states whose trajectories
	// reach this attractor, members included.
	BasinSize uint64 `json:"basinSize"`
	// BasinShare is BasinSize divided by the explored state count.
	BasinShare float64 `json:"basinShare"`
}

// AnalysisResult is the outcome of one attractor search.
type AnalysisResult struct {
	AnalysisID string            `json:"analysisId"`
	Order      []string          `json:"order"`
	Labels     map[string]string `json:"labels,omitempty"`
	Attractors []Attractor       `json:"attractors"`
	// ExploredStateCount is the number of distinct states classified.
	ExploredStateCount uint64 `json:"exploredStateCount"`
	// TotalStateSpace is 2^n for an n-node network.
	TotalStateSpace uint64 `json:"totalStateSpace"`
	// Truncated reports that the search did not cover the whole space,
	// either because of the exhaustive bound or a cancelled run.
	Truncated bool     `json:"truncated"`
	Warnings  []string `json:"warnings,omitempty"`
}

// normalizeCycle rotates a cycle so its numerically smallest state is first.
// Two discoveries of the same cycle from different entry points then compare
// equal, and repeated runs order attractors identically.
func normalizeCycle(states []state.State) []state.State {
	if len(states) <= 1 {
		return states
	}

	minIdx := 0
	for i, s := range states {
		if s < states[minIdx] {
			minIdx = i
		}
	}

	rotated := make([]state.State, 0, len(states))
	rotated = append(rotated, states[minIdx:]...)
	rotated = append(rotated, states[:minIdx]...)
	return rotated
}
