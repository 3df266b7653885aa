package avsc

import (
	"math/rand"

	"golang.org/x/exp/slices"
)

// EnumNode is the type node for an Avro enum schema: an ordered, deduplicated
// set of symbol strings. The wire form is the zig-zag-encoded index of the
// chosen symbol within Symbols.
type EnumNode struct {
	Name    name
	Symbols []string
}

func (n *EnumNode) TypeName() string     { return kindEnum }
func (n *EnumNode) qualifiedName() string { return n.Name.full() }

func (n *EnumNode) Validate(v Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return slices.Contains(n.Symbols, s)
}

func (n *EnumNode) Read(t *Tap) (Value, error) {
	idx := t.ReadLong()
	if t.Truncated() {
		return nil, nil
	}
	if idx < 0 || int(idx) >= len(n.Symbols) {
		return nil, newDecodeError("cannot decode binary enum %q: index %d out of range for %d symbols", n.Name.full(), idx, len(n.Symbols))
	}
	return n.Symbols[idx], nil
}

func (n *EnumNode) Write(t *Tap, v Value) error {
	s, ok := v.(string)
	if !ok {
		return newEncodeError("cannot encode binary enum %q: received: %T", n.Name.full(), v)
	}
	idx := slices.Index(n.Symbols, s)
	if idx < 0 {
		return newEncodeError("cannot encode binary enum %q: value ought to be member of symbols: %v; %q", n.Name.full(), n.Symbols, s)
	}
	t.WriteLong(int64(idx))
	return nil
}

func (n *EnumNode) Random(rnd *rand.Rand) Value {
	return n.Symbols[rnd.Intn(len(n.Symbols))]
}
