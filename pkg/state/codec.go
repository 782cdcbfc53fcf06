// Package state maps between named node values and the packed bit-vector
// representation used by the dynamics engine. Bit i of a State is the value
// of the i-th node in the canonical order.
package state

import (
	"fmt"
	"strings"
)

// State is one joint configuration of a network, one bit per node. A single
// 64-bit word bounds supported networks at 64 nodes; network validation
// enforces the cap before any state is built.
type State uint64

// Codec owns the canonical node ordering for one analysis run and converts
// between sparse {nodeId: bool} maps and dense States. Conversion is a pure,
// total, order-preserving bijection for any map whose keys are a subset of
// the canonical node set; missing keys default to false.
type Codec struct {
	order []string
	index map[string]int
}

// NewCodec builds a codec over the given canonical node order.
func NewCodec(order []string) (*Codec, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("codec requires at least one node")
	}
	if len(order) > 64 {
		return nil, fmt.Errorf("codec supports at most 64 nodes, got %d", len(order))
	}

	index := make(map[string]int, len(order))
	for i, id := range order {
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("duplicate node id %q in canonical order", id)
		}
		index[id] = i
	}

	ordered := make([]string, len(order))
	copy(ordered, order)

	return &Codec{order: ordered, index: index}, nil
}

// Len returns the number of nodes in the canonical order.
func (c *Codec) Len() int {
	return len(c.order)
}

// Order returns a copy of the canonical node order.
func (c *Codec) Order() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Index returns the bit position of a node id.
func (c *Codec) Index(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Encode packs a sparse value map into a State. Unknown keys are an error;
// missing keys default to false.
func (c *Codec) Encode(values map[string]bool) (State, error) {
	var s State
	for id, v := range values {
		i, ok := c.index[id]
		if !ok {
			return 0, fmt.Errorf("unknown node id %q", id)
		}
		if v {
			s |= 1 << uint(i)
		}
	}
	return s, nil
}

// Decode expands a State into a complete value map over all nodes.
func (c *Codec) Decode(s State) map[string]bool {
	values := make(map[string]bool, len(c.order))
	for i, id := range c.order {
		values[id] = s&(1<<uint(i)) != 0
	}
	return values
}

// Bit returns the value of the node at bit position i.
func (s State) Bit(i int) bool {
	return s&(1<<uint(i)) != 0
}

// SetBit returns a copy of the state with bit i set to v.
func (s State) SetBit(i int, v bool) State {
	if v {
		return s | 1<<uint(i)
	}
	return s &^ (1 << uint(i))
}

// Format renders a state as a 0/1 string in canonical order, leftmost
// character first node. Intended for result display and test output.
func (c *Codec) Format(s State) string {
	var b strings.Builder
	b.Grow(len(c.order))
	for i := range c.order {
		if s.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
