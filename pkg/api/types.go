package api

import (
	"encoding/json"
	"time"

	"github.com/Ashar-LUMS/boolnet/pkg/network"
)

// NodeSpec describes one node in an analysis request
type NodeSpec struct {
	ID    string  `json:"id" validate:"required"`
	Label string  `json:"label"`
	Bias  float64 `json:"bias,omitempty"`
}

// EdgeSpec describes one weighted edge in an analysis request. Weight is a
// pointer so an explicit zero is distinguishable from an omitted field, which
// defaults to 1.0.
type EdgeSpec struct {
	Source string   `json:"source" validate:"required"`
	Target string   `json:"target" validate:"required"`
	Weight *float64 `json:"weight,omitempty"`
}

// RuleAnalysisRequest asks for an attractor search under boolean rules.
// Nodes is optional: when omitted, the node set and its canonical order are
// derived from the rule targets in definition order.
type RuleAnalysisRequest struct {
	Nodes          []NodeSpec `json:"nodes,omitempty"`
	Rules          []string   `json:"rules" validate:"required,min=1"`
	UnruledPolicy  string     `json:"unruledPolicy,omitempty"`
	Workers        int        `json:"workers,omitempty" validate:"gte=0,lte=64"`
	TimeoutSeconds float64    `json:"timeoutSeconds,omitempty" validate:"gte=0"`
}

// ThresholdAnalysisRequest asks for an attractor search under the
// weighted-threshold update rule.
type ThresholdAnalysisRequest struct {
	Nodes          []NodeSpec      `json:"nodes" validate:"required,min=1"`
	Edges          []EdgeSpec      `json:"edges,omitempty"`
	Options        network.Options `json:"options"`
	Workers        int             `json:"workers,omitempty" validate:"gte=0,lte=64"`
	TimeoutSeconds float64         `json:"timeoutSeconds,omitempty" validate:"gte=0"`
}

// LandscapeRequest asks for a steady-state probability landscape. Solver is
// kept raw so a partial object overrides only the fields it names; the rest
// stay at their defaults.
type LandscapeRequest struct {
	Nodes   []NodeSpec      `json:"nodes" validate:"required,min=1"`
	Edges   []EdgeSpec      `json:"edges,omitempty"`
	Options network.Options `json:"options"`
	Solver  json.RawMessage `json:"solver,omitempty"`
}

// ValidateRulesRequest asks for compilation of a rule set without a search
type ValidateRulesRequest struct {
	Rules []string `json:"rules" validate:"required,min=1"`
}

// RuleErrorItem is one line-numbered compilation problem
type RuleErrorItem struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ValidateRulesResponse reports the outcome of rule compilation
type ValidateRulesResponse struct {
	Valid   bool            `json:"valid"`
	Targets []string        `json:"targets,omitempty"`
	Errors  []RuleErrorItem `json:"errors,omitempty"`
}

// AttractorResponse is one attractor with its states rendered as 0/1 strings
// in canonical node order.
type AttractorResponse struct {
	ID         int      `json:"id"`
	Kind       string   `json:"kind"`
	Period     int      `json:"period"`
	States     []string `json:"states"`
	BasinSize  uint64   `json:"basinSize"`
	BasinShare float64  `json:"basinShare"`
}

// AnalysisResponse is the wire form of an attractor search result
type AnalysisResponse struct {
	AnalysisID         string              `json:"analysisId"`
	Order              []string            `json:"order"`
	Labels             map[string]string   `json:"labels,omitempty"`
	Attractors         []AttractorResponse `json:"attractors"`
	ExploredStateCount uint64              `json:"exploredStateCount"`
	TotalStateSpace    uint64              `json:"totalStateSpace"`
	Truncated          bool                `json:"truncated"`
	Warnings           []string            `json:"warnings,omitempty"`
}

// LandscapeResponse is the wire form of a solver result
type LandscapeResponse struct {
	Order           []string           `json:"order"`
	Probabilities   map[string]float64 `json:"probabilities"`
	PotentialEnergy map[string]float64 `json:"potentialEnergy"`
	Converged       bool               `json:"converged"`
	Iterations      int                `json:"iterations"`
}

// HealthResponse reports server liveness
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error  string          `json:"error"`
	Errors []RuleErrorItem `json:"errors,omitempty"`
}
