package network

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode reads a network definition in YAML (the default) or JSON and
// validates it. The format is chosen by the name extension; anything that is
// not .json is treated as YAML, which also accepts JSON input.
func Decode(r io.Reader, name string) (*Network, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read network definition: %w", err)
	}

	var doc networkDoc
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse network definition %s: %w", name, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse network definition %s: %w", name, err)
		}
	}

	n := doc.toNetwork()
	applyDefaults(n)

	if err := Validate(n); err != nil {
		return nil, fmt.Errorf("invalid network definition %s: %w", name, err)
	}
	return n, nil
}

// Load reads and validates a network definition file.
func Load(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open network definition: %w", err)
	}
	defer f.Close()
	return Decode(f, path)
}

// edgeDoc is the decode-side form of an edge. Weight is a pointer so an
// explicit zero survives decoding; only an omitted weight defaults to 1.0.
type edgeDoc struct {
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Weight *float64 `json:"weight" yaml:"weight"`
}

// networkDoc is the decode-side form of a network definition.
type networkDoc struct {
	Nodes   []Node    `json:"nodes" yaml:"nodes"`
	Edges   []edgeDoc `json:"edges" yaml:"edges"`
	Options Options   `json:"options" yaml:"options"`
}

func (d *networkDoc) toNetwork() *Network {
	n := &Network{
		Nodes:   d.Nodes,
		Options: d.Options,
	}
	if len(d.Edges) > 0 {
		n.Edges = make([]Edge, len(d.Edges))
		for i, e := range d.Edges {
			w := 1.0
			if e.Weight != nil {
				w = *e.Weight
			}
			n.Edges[i] = Edge{Source: e.Source, Target: e.Target, Weight: w}
		}
	}
	return n
}

// applyDefaults fills in the defaulted fields a sparse definition omits.
func applyDefaults(n *Network) {
	if n.Options.TieBehavior == "" {
		n.Options.TieBehavior = TieHold
	}
}
