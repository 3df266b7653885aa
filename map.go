package avsc

import "math/rand"

// MapNode is the type node for an Avro map schema: a mapping from Avro
// string keys to a single, constant value type.
type MapNode struct {
	Values TypeNode
}

func (n *MapNode) TypeName() string { return kindMap }

func (n *MapNode) Validate(v Value) bool {
	m, ok := v.(map[string]Value)
	if !ok {
		return false
	}
	for _, val := range m {
		if !n.Values.Validate(val) {
			return false
		}
	}
	return true
}

func (n *MapNode) Read(t *Tap) (Value, error) {
	out := make(map[string]Value)
	var readErr error
	t.ReadMap(func() {
		if readErr != nil || t.Truncated() {
			return
		}
		key := t.ReadString()
		if t.Truncated() {
			return
		}
		val, err := n.Values.Read(t)
		if err != nil {
			readErr = err
			return
		}
		out[key] = val
	})
	if readErr != nil {
		return nil, readErr
	}
	return out, nil
}

func (n *MapNode) Write(t *Tap, v Value) error {
	m, ok := v.(map[string]Value)
	if !ok {
		return newEncodeError("cannot encode binary map: received: %T", v)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	var writeErr error
	t.WriteMap(len(keys), func(i int) {
		if writeErr != nil {
			return
		}
		k := keys[i]
		t.WriteString(k)
		if err := n.Values.Write(t, m[k]); err != nil {
			writeErr = wrapEncodeError(err, "cannot encode binary map value for key %q", k)
		}
	})
	return writeErr
}

func (n *MapNode) Random(rnd *rand.Rand) Value { return n.randomAtDepth(rnd, 0) }

func (n *MapNode) randomAtDepth(rnd *rand.Rand, depth int) Value {
	length := rnd.Intn(3)
	out := make(map[string]Value, length)
	for i := 0; i < length; i++ {
		key := stringNode{}.Random(rnd).(string) + string(rune('a'+i))
		out[key] = randomChild(n.Values, rnd, depth)
	}
	return out
}

func (n *MapNode) zeroValue() Value { return map[string]Value{} }
