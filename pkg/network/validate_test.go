package network

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func validNetwork() *Network {
	return &Network{
		Nodes: []Node{
			{ID: "a", Bias: 1.0},
			{ID: "b", Label: "Node B"},
		},
		Edges: []Edge{
			{Source: "a", Target: "b", Weight: 1.0},
		},
		Options: DefaultOptions(),
	}
}

func TestValidate_AcceptsWellFormedNetwork(t *testing.T) {
	if err := Validate(validNetwork()); err != nil {
		t.Errorf("Expected valid network, got %v", err)
	}
}

func TestValidate_NilNetwork(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("Expected error for nil network")
	}
}

func TestValidate_RequiresNodes(t *testing.T) {
	if err := Validate(&Network{}); err == nil {
		t.Error("Expected error for a network without nodes")
	}
}

func TestValidate_RejectsBadNodeIDs(t *testing.T) {
	for _, id := range []string{"", "bad-id", "1leading", "spa ce", "dot.ted"} {
		n := validNetwork()
		n.Nodes[0].ID = id
		if err := Validate(n); err == nil {
			t.Errorf("Expected error for node id %q", id)
		}
	}
}

func TestValidate_RejectsDuplicateIDs(t *testing.T) {
	n := validNetwork()
	n.Nodes = append(n.Nodes, Node{ID: "a"})

	err := Validate(n)
	if err == nil {
		t.Fatal("Expected error for duplicate node id")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("Expected a duplicate-id message, got %v", err)
	}
}

func TestValidate_NodeCap(t *testing.T) {
	n := &Network{Options: DefaultOptions()}
	for i := 0; i <= MaxNodes; i++ {
		n.Nodes = append(n.Nodes, Node{ID: fmt.Sprintf("n%d", i)})
	}

	err := Validate(n)
	if !errors.Is(err, ErrTooManyNodes) {
		t.Errorf("Expected ErrTooManyNodes for %d nodes, got %v", len(n.Nodes), err)
	}

	n.Nodes = n.Nodes[:MaxNodes]
	if err := Validate(n); err != nil {
		t.Errorf("Exactly %d nodes should be accepted, got %v", MaxNodes, err)
	}
}

func TestValidate_EdgeEndpointsMustExist(t *testing.T) {
	n := validNetwork()
	n.Edges = append(n.Edges, Edge{Source: "ghost", Target: "b", Weight: 1.0})
	if err := Validate(n); err == nil {
		t.Error("Expected error for unknown edge source")
	}

	n = validNetwork()
	n.Edges = append(n.Edges, Edge{Source: "a", Target: "ghost", Weight: 1.0})
	if err := Validate(n); err == nil {
		t.Error("Expected error for unknown edge target")
	}
}

func TestValidate_BiasOverridesMustReferenceNodes(t *testing.T) {
	n := validNetwork()
	n.Options.BiasOverrides = map[string]float64{"ghost": 0.5}
	if err := Validate(n); err == nil {
		t.Error("Expected error for bias override on unknown node")
	}
}

func TestValidate_TiePolicy(t *testing.T) {
	n := validNetwork()
	n.Options.TieBehavior = TiePolicy("flip")
	if err := Validate(n); err == nil {
		t.Error("Expected error for unsupported tie policy")
	}

	n.Options.TieBehavior = ""
	if err := Validate(n); err != nil {
		t.Errorf("Empty tie policy should validate, got %v", err)
	}
}

func TestNetwork_Accessors(t *testing.T) {
	n := validNetwork()

	ids := n.NodeIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("NodeIDs = %v", ids)
	}

	labels := n.Labels()
	if labels["a"] != "a" {
		t.Errorf("Unlabeled node should map to its id, got %q", labels["a"])
	}
	if labels["b"] != "Node B" {
		t.Errorf("Labels[b] = %q", labels["b"])
	}

	if got := n.Bias("a"); got != 1.0 {
		t.Errorf("Bias(a) = %v, want 1.0", got)
	}
	n.Options.BiasOverrides = map[string]float64{"a": 0.25}
	if got := n.Bias("a"); got != 0.25 {
		t.Errorf("Bias(a) with override = %v, want 0.25", got)
	}

	in := n.IncomingEdges()
	if len(in["b"]) != 1 || in["b"][0].Source != "a" {
		t.Errorf("IncomingEdges[b] = %v", in["b"])
	}
}

func TestNetwork_RuleLines(t *testing.T) {
	n := &Network{
		Nodes: []Node{
			{ID: "a", Rule: "b"},
			{ID: "b"},
			{ID: "c", Rule: "a && !b"},
		},
	}

	lines := n.RuleLines()
	want := []string{"a = b", "c = a && !b"}
	if len(lines) != len(want) {
		t.Fatalf("RuleLines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("RuleLines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestNetwork_CloneIsDeep(t *testing.T) {
	n := validNetwork()
	n.Options.BiasOverrides = map[string]float64{"a": 0.5}

	clone := n.Clone()
	clone.Nodes[0].ID = "mutated"
	clone.Edges[0].Weight = 99
	clone.Options.BiasOverrides["a"] = 99

	if n.Nodes[0].ID != "a" || n.Edges[0].Weight != 1.0 || n.Options.BiasOverrides["a"] != 0.5 {
		t.Error("Clone should not share storage with the original")
	}
}
