package network

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const yamlDefinition = `
nodes:
  - id: input
    bias: 1.0
  - id: relay
    label: Relay gene
  - id: output
edges:
  - source: input
    target: relay
  - source: relay
    target: output
    weight: -2.0
  - source: input
    target: output
    weight: 0
options:
  thresholdMultiplier: 0.5
`

func TestDecode_YAML(t *testing.T) {
	n, err := Decode(strings.NewReader(yamlDefinition), "net.yaml")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(n.Nodes) != 3 || len(n.Edges) != 3 {
		t.Fatalf("Expected 3 nodes and 3 edges, got %d and %d", len(n.Nodes), len(n.Edges))
	}
	if n.Options.ThresholdMultiplier != 0.5 {
		t.Errorf("ThresholdMultiplier = %v, want 0.5", n.Options.ThresholdMultiplier)
	}

	// Only an omitted weight defaults to 1.0; explicit weights survive,
	// including an explicit zero.
	if n.Edges[0].Weight != 1.0 {
		t.Errorf("Default edge weight = %v, want 1.0", n.Edges[0].Weight)
	}
	if n.Edges[1].Weight != -2.0 {
		t.Errorf("Explicit edge weight = %v, want -2.0", n.Edges[1].Weight)
	}
	if n.Edges[2].Weight != 0 {
		t.Errorf("Explicit zero edge weight = %v, want 0", n.Edges[2].Weight)
	}

	// Omitted tie policy defaults to hold.
	if n.Options.TieBehavior != TieHold {
		t.Errorf("TieBehavior = %q, want %q", n.Options.TieBehavior, TieHold)
	}
}

func TestDecode_JSON(t *testing.T) {
	def := `{
		"nodes": [{"id": "x", "rule": "y"}, {"id": "y", "rule": "!x"}],
		"options": {"thresholdMultiplier": 0.5}
	}`

	n, err := Decode(strings.NewReader(def), "net.json")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(n.Nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(n.Nodes))
	}

	lines := n.RuleLines()
	if len(lines) != 2 || lines[0] != "x = y" || lines[1] != "y = !x" {
		t.Errorf("RuleLines = %v", lines)
	}
}

func TestDecode_RejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  string
		ext  string
	}{
		{"malformed yaml", "nodes: [unclosed", "net.yaml"},
		{"malformed json", `{"nodes":`, "net.json"},
		{"no nodes", "edges: []", "net.yaml"},
		{"dangling edge", "nodes: [{id: a}]\nedges: [{source: a, target: ghost}]", "net.yaml"},
		{"duplicate ids", "nodes: [{id: a}, {id: a}]", "net.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.def), tt.ext); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.yaml")
	if err := os.WriteFile(path, []byte(yamlDefinition), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	n, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(n.Nodes) != 3 {
		t.Errorf("Expected 3 nodes, got %d", len(n.Nodes))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for a missing file")
	}
}
