package api

import (
	"context"
	"fmt"

	"github.com/Ashar-LUMS/boolnet/pkg/dynamics"
	"github.com/Ashar-LUMS/boolnet/pkg/network"
	"github.com/Ashar-LUMS/boolnet/pkg/rules"
	"github.com/Ashar-LUMS/boolnet/pkg/state"
)

// buildNetwork assembles and validates a network from request specs.
func buildNetwork(nodes []NodeSpec, edges []EdgeSpec, opts network.Options) (*network.Network, error) {
	net := &network.Network{
		Nodes:   make([]network.Node, len(nodes)),
		Edges:   make([]network.Edge, len(edges)),
		Options: opts,
	}
	for i, n := range nodes {
		net.Nodes[i] = network.Node{ID: n.ID, Label: n.Label, Bias: n.Bias}
	}
	for i, e := range edges {
		w := 1.0
		if e.Weight != nil {
			w = *e.Weight
		}
		net.Edges[i] = network.Edge{Source: e.Source, Target: e.Target, Weight: w}
	}
	if net.Options.TieBehavior == "" {
		net.Options.TieBehavior = network.TieHold
	}

	if err := network.Validate(net); err != nil {
		return nil, err
	}
	return net, nil
}

// nodesFromRuleSet derives a node list from compiled rule targets, keeping
// definition order as the canonical order.
func nodesFromRuleSet(rs *rules.RuleSet) []NodeSpec {
	targets := rs.Targets()
	nodes := make([]NodeSpec, len(targets))
	for i, t := range targets {
		nodes[i] = NodeSpec{ID: t, Label: t}
	}
	return nodes
}

// runRuleSearch compiles, wires, and searches a rule-based network.
func runRuleSearch(ctx context.Context, req *RuleAnalysisRequest, opts dynamics.SearchOptions) (*dynamics.AnalysisResult, *state.Codec, error) {
	rs, err := rules.Compile(req.Rules)
	if err != nil {
		return nil, nil, err
	}

	nodes := req.Nodes
	if len(nodes) == 0 {
		nodes = nodesFromRuleSet(rs)
	}
	net, err := buildNetwork(nodes, nil, network.DefaultOptions())
	if err != nil {
		return nil, nil, err
	}

	codec, err := state.NewCodec(net.NodeIDs())
	if err != nil {
		return nil, nil, err
	}

	policy := dynamics.UnruledPolicy(req.UnruledPolicy)
	switch policy {
	case "", dynamics.UnruledHold, dynamics.UnruledFalse, dynamics.UnruledReject:
	default:
		return nil, nil, fmt.Errorf("unsupported unruled policy %q", req.UnruledPolicy)
	}

	updater, err := dynamics.NewRuleUpdater(codec, rs, policy)
	if err != nil {
		return nil, nil, err
	}

	opts.Labels = net.Labels()
	result, err := dynamics.FindAttractors(ctx, updater, codec, opts)
	if err != nil {
		return nil, nil, err
	}
	return result, codec, nil
}

// runThresholdSearch wires and searches a weighted-threshold network.
func runThresholdSearch(ctx context.Context, req *ThresholdAnalysisRequest, opts dynamics.SearchOptions) (*dynamics.AnalysisResult, *state.Codec, error) {
	net, err := buildNetwork(req.Nodes, req.Edges, req.Options)
	if err != nil {
		return nil, nil, err
	}

	codec, err := state.NewCodec(net.NodeIDs())
	if err != nil {
		return nil, nil, err
	}

	updater, err := dynamics.NewThresholdUpdater(codec, net)
	if err != nil {
		return nil, nil, err
	}

	opts.Labels = net.Labels()
	result, err := dynamics.FindAttractors(ctx, updater, codec, opts)
	if err != nil {
		return nil, nil, err
	}
	return result, codec, nil
}

// toAnalysisResponse renders member states through the codec.
func toAnalysisResponse(res *dynamics.AnalysisResult, codec *state.Codec) AnalysisResponse {
	attractors := make([]AttractorResponse, len(res.Attractors))
	for i, a := range res.Attractors {
		states := make([]string, len(a.States))
		for j, s := range a.States {
			states[j] = codec.Format(s)
		}
		attractors[i] = AttractorResponse{
			ID:         a.ID,
			Kind:       string(a.Kind),
			Period:     a.Period,
			States:     states,
			BasinSize:  a.BasinSize,
			BasinShare: a.BasinShare,
		}
	}

	return AnalysisResponse{
		AnalysisID:         res.AnalysisID,
		Order:              res.Order,
		Labels:             res.Labels,
		Attractors:         attractors,
		ExploredStateCount: res.ExploredStateCount,
		TotalStateSpace:    res.TotalStateSpace,
		Truncated:          res.Truncated,
		Warnings:           res.Warnings,
	}
}

// ruleErrorItems converts a compiler ErrorList to wire form.
func ruleErrorItems(errs rules.ErrorList) []RuleErrorItem {
	items := make([]RuleErrorItem, len(errs))
	for i, e := range errs {
		items[i] = RuleErrorItem{Line: e.Line, Message: e.Message}
	}
	return items
}
