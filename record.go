package avsc

import "math/rand"

// Field is one member of a RecordNode's ordered field list.
type Field struct {
	Name       string
	Type       TypeNode
	Doc        string
	HasDefault bool
	Default    Value // already converted to Type's native representation
}

// RecordNode is the type node for an Avro record schema: an ordered list of
// named, typed fields.
type RecordNode struct {
	Name   name
	Fields []Field
}

func (n *RecordNode) TypeName() string      { return kindRecord }
func (n *RecordNode) qualifiedName() string { return n.Name.full() }

func (n *RecordNode) fieldByName(fieldName string) (Field, bool) {
	for _, f := range n.Fields {
		if f.Name == fieldName {
			return f, true
		}
	}
	return Field{}, false
}

func (n *RecordNode) Validate(v Value) bool {
	get, ok := recordFieldLookup(v)
	if !ok {
		return false
	}
	for _, f := range n.Fields {
		val, present := get(f.Name)
		if !present {
			if !f.HasDefault {
				return false
			}
			continue
		}
		if !f.Type.Validate(val) {
			return false
		}
	}
	return true
}

func (n *RecordNode) Read(t *Tap) (Value, error) {
	fields := make([]RecordField, len(n.Fields))
	for i, f := range n.Fields {
		v, err := f.Type.Read(t)
		if err != nil {
			return nil, wrapDecodeError(err, "cannot decode binary record %q field %q", n.Name.full(), f.Name)
		}
		if t.Truncated() {
			return nil, nil
		}
		fields[i] = RecordField{Name: f.Name, Value: v}
	}
	return &Record{Name: n.Name.full(), Fields: fields}, nil
}

func (n *RecordNode) Write(t *Tap, v Value) error {
	get, ok := recordFieldLookup(v)
	if !ok {
		return newEncodeError("cannot encode binary record %q: received: %T", n.Name.full(), v)
	}
	for _, f := range n.Fields {
		val, present := get(f.Name)
		if !present {
			if !f.HasDefault {
				return newEncodeError("cannot encode binary record %q: missing required field %q", n.Name.full(), f.Name)
			}
			val = f.Default
		}
		if err := f.Type.Write(t, val); err != nil {
			return wrapEncodeError(err, "cannot encode binary record %q field %q", n.Name.full(), f.Name)
		}
	}
	return nil
}

func (n *RecordNode) Random(rnd *rand.Rand) Value { return n.randomAtDepth(rnd, 0) }

func (n *RecordNode) randomAtDepth(rnd *rand.Rand, depth int) Value {
	fields := make([]RecordField, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = RecordField{Name: f.Name, Value: randomChild(f.Type, rnd, depth)}
	}
	return &Record{Name: n.Name.full(), Fields: fields}
}

func (n *RecordNode) zeroValue() Value { return baseValue(n) }

// baseValue produces a minimal, non-recursive valid sample for n: the field
// default when one exists, otherwise a zero-ish value for the kind. It is
// used once Random's recursion depth cap is reached, so a self-referential
// record (typically guarded by a nullable union per spec.md §9) terminates.
func baseValue(n TypeNode) Value {
	switch t := n.(type) {
	case nullNode:
		return nil
	case booleanNode:
		return false
	case intNode:
		return int32(0)
	case longNode:
		return int64(0)
	case floatNode:
		return float32(0)
	case doubleNode:
		return float64(0)
	case bytesNode:
		return []byte{}
	case stringNode:
		return ""
	case *ArrayNode:
		return []Value{}
	case *MapNode:
		return map[string]Value{}
	case *EnumNode:
		return t.Symbols[0]
	case *FixedNode:
		return make([]byte, t.Size)
	case *RecordNode:
		fields := make([]RecordField, len(t.Fields))
		for i, f := range t.Fields {
			if f.HasDefault {
				fields[i] = RecordField{Name: f.Name, Value: f.Default}
			} else {
				fields[i] = RecordField{Name: f.Name, Value: baseValue(f.Type)}
			}
		}
		return &Record{Name: t.Name.full(), Fields: fields}
	case *UnionWrappedNode:
		first := t.branches.branchFromIndex[0]
		if first.TypeName() == kindNull {
			return nil
		}
		return map[string]Value{branchDiscriminator(first): baseValue(first)}
	case *UnionUnwrappedNode:
		first := t.branches.branchFromIndex[0]
		if first.TypeName() == kindNull {
			return nil
		}
		return baseValue(first)
	default:
		return nil
	}
}
