package state

import (
	"fmt"
	"testing"
)

func TestNewCodec_Validation(t *testing.T) {
	if _, err := NewCodec(nil); err == nil {
		t.Error("Expected error for empty order")
	}
	if _, err := NewCodec([]string{"a", "b", "a"}); err == nil {
		t.Error("Expected error for duplicate ids")
	}

	big := make([]string, 65)
	for i := range big {
		big[i] = fmt.Sprintf("n%02d", i)
	}
	if _, err := NewCodec(big); err == nil {
		t.Error("Expected error for more than 64 nodes")
	}
}

func TestCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec, err := NewCodec([]string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}

	values := map[string]bool{"a": true, "c": true}
	s, err := codec.Encode(values)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// a is bit 0, c is bit 2
	if s != State(0b0101) {
		t.Errorf("Encode = %b, want 0101", s)
	}

	decoded := codec.Decode(s)
	if len(decoded) != 4 {
		t.Fatalf("Decode returned %d entries, want 4", len(decoded))
	}
	want := map[string]bool{"a": true, "b": false, "c": true, "d": false}
	for id, v := range want {
		if decoded[id] != v {
			t.Errorf("Decode[%q] = %v, want %v", id, decoded[id], v)
		}
	}
}

func TestCodec_MissingKeysDefaultFalse(t *testing.T) {
	codec, _ := NewCodec([]string{"x", "y"})

	s, err := codec.Encode(map[string]bool{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if s != 0 {
		t.Errorf("Empty mapping should encode to zero state, got %b", s)
	}
}

func TestCodec_UnknownKeyRejected(t *testing.T) {
	codec, _ := NewCodec([]string{"x"})

	if _, err := codec.Encode(map[string]bool{"z": true}); err == nil {
		t.Error("Expected error for unknown node id")
	}
}

func TestCodec_OrderIsCanonical(t *testing.T) {
	codec, _ := NewCodec([]string{"gene2", "gene1"})

	// Input order wins, not lexical order
	i, ok := codec.Index("gene2")
	if !ok || i != 0 {
		t.Errorf("Expected gene2 at bit 0, got %d", i)
	}
	i, _ = codec.Index("gene1")
	if i != 1 {
		t.Errorf("Expected gene1 at bit 1, got %d", i)
	}
}

func TestState_BitOps(t *testing.T) {
	var s State
	s = s.SetBit(3, true)
	if !s.Bit(3) {
		t.Error("Bit 3 should be set")
	}
	if s.Bit(2) {
		t.Error("Bit 2 should be clear")
	}
	s = s.SetBit(3, false)
	if s != 0 {
		t.Errorf("Expected zero state, got %b", s)
	}
}

func TestCodec_Format(t *testing.T) {
	codec, _ := NewCodec([]string{"a", "b", "c"})

	s, _ := codec.Encode(map[string]bool{"a": true, "c": true})
	if got := codec.Format(s); got != "101" {
		t.Errorf("Format = %q, want %q", got, "101")
	}
}
