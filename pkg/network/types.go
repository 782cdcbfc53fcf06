package network

// TiePolicy decides the next value of a node whose weighted score lands
// exactly on the threshold.
type TiePolicy string

const (
	// TieHold retains the node's previous value on an exact tie.
	TieHold TiePolicy = "hold"
)

// Node is a binary-valued entity in a network. Its future value is governed
// either by a boolean rule (rule mode) or by the weighted sum of its incoming
// edges (threshold mode).
type Node struct {
	ID    string  `json:"id" yaml:"id" validate:"required,max=100"`
	Label string  `json:"label" yaml:"label"`
	Bias  float64 `json:"bias,omitempty" yaml:"bias,omitempty"`
	Rule  string  `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// Edge is a weighted directed connection between two nodes.
type Edge struct {
	Source string  `json:"source" yaml:"source" validate:"required"`
	Target string  `json:"target" yaml:"target" validate:"required"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Options carries the per-network analysis settings shared by the
// deterministic threshold updater and the relaxation solver.
type Options struct {
	// ThresholdMultiplier is the activation threshold each node's weighted
	// score is compared against.
	ThresholdMultiplier float64 `json:"thresholdMultiplier" yaml:"thresholdMultiplier"`
	// TieBehavior selects what happens when a score equals the threshold.
	TieBehavior TiePolicy `json:"tieBehavior" yaml:"tieBehavior"`
	// BiasOverrides replaces individual node biases without mutating the
	// node list.
	BiasOverrides map[string]float64 `json:"biasOverrides,omitempty" yaml:"biasOverrides,omitempty"`
}

// DefaultOptions returns the standard threshold settings.
func DefaultOptions() Options {
	return Options{
		ThresholdMultiplier: 0.5,
		TieBehavior:         TieHold,
	}
}

// Network is an ordered list of nodes plus the edges between them. The node
// order is canonical: it fixes the bit position of every node for the
// lifetime of one analysis run.
type Network struct {
	Nodes   []Node  `json:"nodes" yaml:"nodes" validate:"required,min=1,dive"`
	Edges   []Edge  `json:"edges,omitempty" yaml:"edges,omitempty" validate:"omitempty,dive"`
	Options Options `json:"options" yaml:"options"`
}

// NodeIDs returns the canonical node order as a slice of ids.
func (n *Network) NodeIDs() []string {
	ids := make([]string, len(n.Nodes))
	for i, node := range n.Nodes {
		ids[i] = node.ID
	}
	return ids
}

// Labels returns a node-id to label map. Nodes without an explicit label map
// to their id.
func (n *Network) Labels() map[string]string {
	labels := make(map[string]string, len(n.Nodes))
	for _, node := range n.Nodes {
		if node.Label != "" {
			labels[node.ID] = node.Label
		} else {
			labels[node.ID] = node.ID
		}
	}
	return labels
}

// Bias returns the effective bias for a node id, honoring overrides.
func (n *Network) Bias(id string) float64 {
	if n.Options.BiasOverrides != nil {
		if b, ok := n.Options.BiasOverrides[id]; ok {
			return b
		}
	}
	for _, node := range n.Nodes {
		if node.ID == id {
			return node.Bias
		}
	}
	return 0
}

// IncomingEdges groups edges by target id, preserving input order within
// each group.
func (n *Network) IncomingEdges() map[string][]Edge {
	in := make(map[string][]Edge, len(n.Nodes))
	for _, e := range n.Edges {
		in[e.Target] = append(in[e.Target], e)
	}
	return in
}

// RuleLines collects the non-empty rule texts of all nodes in canonical
// order, formatted as "target = expression" lines for the compiler.
func (n *Network) RuleLines() []string {
	lines := make([]string, 0, len(n.Nodes))
	for _, node := range n.Nodes {
		if node.Rule == "" {
			continue
		}
		lines = append(lines, node.ID+" = "+node.Rule)
	}
	return lines
}

// Clone creates a deep copy of the network.
func (n *Network) Clone() *Network {
	clone := &Network{
		Nodes:   make([]Node, len(n.Nodes)),
		Edges:   make([]Edge, len(n.Edges)),
		Options: n.Options,
	}
	copy(clone.Nodes, n.Nodes)
	copy(clone.Edges, n.Edges)
	if n.Options.BiasOverrides != nil {
		clone.Options.BiasOverrides = make(map[string]float64, len(n.Options.BiasOverrides))
		for k, v := range n.Options.BiasOverrides {
			clone.Options.BiasOverrides[k] = v
		}
	}
	return clone
}
