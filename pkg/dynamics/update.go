// Package dynamics implements the deterministic synchronous update semantics
// of a boolean network and the attractor search over its state space.
package dynamics

import (
	"fmt"

	"github.com/Ashar-LUMS/boolnet/pkg/network"
	"github.com/Ashar-LUMS/boolnet/pkg/rules"
	"github.com/Ashar-LUMS/boolnet/pkg/state"
)

// Updater maps one network state to its successor. Implementations must be
// pure: no shared mutable state across calls, so a single updater can be used
// from multiple search workers.
type Updater interface {
	Next(s state.State) state.State
}

// UnruledPolicy decides the next value of a node that has no update rule.
type UnruledPolicy string

const (
	// UnruledHold retains the node's previous value (the default).
	UnruledHold UnruledPolicy = "hold"
	// UnruledFalse forces rule-less nodes to false on every step.
	UnruledFalse UnruledPolicy = "false"
	// UnruledReject refuses to build an updater over a network with
	// rule-less nodes.
	UnruledReject UnruledPolicy = "reject"
)

// RuleUpdater computes successors by evaluating each node's compiled boolean
// expression against the current state.
type RuleUpdater struct {
	codec   *state.Codec
	exprs   []rules.Expr  // indexed by bit position; nil for rule-less nodes
	unruled UnruledPolicy // applied to nil entries
}

// NewRuleUpdater binds a compiled rule set to a canonical node order. Every
// rule target and every identifier a rule references must be a node in the
// codec; rule-less nodes follow the given policy.
func NewRuleUpdater(codec *state.Codec, rs *rules.RuleSet, unruled UnruledPolicy) (*RuleUpdater, error) {
	if unruled == "" {
		unruled = UnruledHold
	}

	exprs := make([]rules.Expr, codec.Len())
	for _, rule := range rs.Rules {
		i, ok := codec.Index(rule.Target)
		if !ok {
			return nil, fmt.Errorf("rule target %q is not a node in the network", rule.Target)
		}
		for _, ref := range rules.Vars(rule.Expr) {
			if _, ok := codec.Index(ref); !ok {
				return nil, fmt.Errorf("rule for %q references %q, which is not a node in the network", rule.Target, ref)
			}
		}
		exprs[i] = rule.Expr
	}

	if unruled == UnruledReject {
		for i, id := range codec.Order() {
			if exprs[i] == nil {
				return nil, fmt.Errorf("node %q has no update rule", id)
			}
		}
	}

	return &RuleUpdater{codec: codec, exprs: exprs, unruled: unruled}, nil
}

// Next evaluates every rule against s simultaneously and returns the
// successor state.
func (u *RuleUpdater) Next(s state.State) state.State {
	lookup := func(id string) bool {
		i, _ := u.codec.Index(id)
		return s.Bit(i)
	}

	var next state.State
	for i, expr := range u.exprs {
		switch {
		case expr != nil:
			next = next.SetBit(i, expr.Eval(lookup))
		case u.unruled == UnruledHold:
			next = next.SetBit(i, s.Bit(i))
		default:
			// UnruledFalse: bit stays zero
		}
	}
	return next
}

// weightedInput is one incoming connection, resolved to bit positions.
type weightedInput struct {
	source int
	weight float64
}

// ThresholdUpdater computes successors from the weighted sum of each node's
// incoming edges: active when the score clears the threshold, inactive when
// it falls short, tie policy on exact equality.
type ThresholdUpdater struct {
	codec     *state.Codec
	inputs    [][]weightedInput // indexed by target bit position
	bias      []float64
	threshold float64
	tie       network.TiePolicy
}

// NewThresholdUpdater builds a threshold updater from a validated network.
func NewThresholdUpdater(codec *state.Codec, net *network.Network) (*ThresholdUpdater, error) {
	inputs := make([][]weightedInput, codec.Len())
	for _, e := range net.Edges {
		src, ok := codec.Index(e.Source)
		if !ok {
			return nil, fmt.Errorf("edge source %q is not a node in the canonical order", e.Source)
		}
		dst, ok := codec.Index(e.Target)
		if !ok {
			return nil, fmt.Errorf("edge target %q is not a node in the canonical order", e.Target)
		}
		inputs[dst] = append(inputs[dst], weightedInput{source: src, weight: e.Weight})
	}

	bias := make([]float64, codec.Len())
	for i, id := range codec.Order() {
		bias[i] = net.Bias(id)
	}

	tie := net.Options.TieBehavior
	if tie == "" {
		tie = network.TieHold
	}

	return &ThresholdUpdater{
		codec:     codec,
		inputs:    inputs,
		bias:      bias,
		threshold: net.Options.ThresholdMultiplier,
		tie:       tie,
	}, nil
}

// Next applies the threshold rule to every node simultaneously. A node with
// no incoming edges and no bias has nothing driving it and holds its value;
// it behaves as an externally clamped input.
func (u *ThresholdUpdater) Next(s state.State) state.State {
	var next state.State
	for i := range u.inputs {
		if len(u.inputs[i]) == 0 && u.bias[i] == 0 {
			next = next.SetBit(i, s.Bit(i))
			continue
		}

		score := u.bias[i]
		for _, in := range u.inputs[i] {
			if s.Bit(in.source) {
				score += in.weight
			}
		}

		switch {
		case score > u.threshold:
			next = next.SetBit(i, true)
		case score < u.threshold:
			// bit stays zero
		default:
			// Exact tie. TieHold is the only supported policy.
			next = next.SetBit(i, s.Bit(i))
		}
	}
	return next
}
