package avsc

import "math/rand"

// ArrayNode is the type node for an Avro array schema: a sequence whose
// elements all share a single item type.
type ArrayNode struct {
	Items TypeNode
}

func (n *ArrayNode) TypeName() string { return kindArray }

func (n *ArrayNode) Validate(v Value) bool {
	items, ok := v.([]Value)
	if !ok {
		return false
	}
	for _, item := range items {
		if !n.Items.Validate(item) {
			return false
		}
	}
	return true
}

func (n *ArrayNode) Read(t *Tap) (Value, error) {
	var items []Value
	var readErr error
	t.ReadArray(func() {
		if readErr != nil || t.Truncated() {
			return
		}
		v, err := n.Items.Read(t)
		if err != nil {
			readErr = err
			return
		}
		items = append(items, v)
	})
	if readErr != nil {
		return nil, readErr
	}
	if items == nil {
		items = []Value{}
	}
	return items, nil
}

func (n *ArrayNode) Write(t *Tap, v Value) error {
	items, ok := v.([]Value)
	if !ok {
		return newEncodeError("cannot encode binary array: received: %T", v)
	}
	var writeErr error
	t.WriteArray(len(items), func(i int) {
		if writeErr != nil {
			return
		}
		if err := n.Items.Write(t, items[i]); err != nil {
			writeErr = wrapEncodeError(err, "cannot encode binary array item %d", i)
		}
	})
	return writeErr
}

func (n *ArrayNode) Random(rnd *rand.Rand) Value { return n.randomAtDepth(rnd, 0) }

func (n *ArrayNode) randomAtDepth(rnd *rand.Rand, depth int) Value {
	length := rnd.Intn(3)
	items := make([]Value, length)
	for i := range items {
		items[i] = randomChild(n.Items, rnd, depth)
	}
	return items
}

func (n *ArrayNode) zeroValue() Value { return []Value{} }
