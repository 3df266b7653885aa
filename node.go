package avsc

import "math/rand"

// Value is the native Go representation of an Avro value. Each type node
// kind decodes to exactly one Go shape (Validate and Write for int and long
// also accept int, int8, int16, int32 and int64, and for float and double
// accept float32 and float64):
//
//	null     nil
//	boolean  bool
//	int      int32
//	long     int64
//	float    float32
//	double   float64
//	bytes    []byte
//	string   string
//	array    []Value
//	map      map[string]Value
//	enum     string (the symbol)
//	fixed    []byte (len == the fixed's declared size)
//	record   *Record, or map[string]Value
//	union    nil / a single-key map[string]Value (wrapped), or a bare
//	         branch value (unwrapped)
//
// This mirrors the native values goavro produces from NativeFromBinary
// rather than introducing a parallel tagged-union value type, per the
// "dynamic value shapes" design note: validate/read/write dispatch on the
// TypeNode's own variant, never on the runtime shape of Value.
type Value = interface{}

// TypeNode is the capability set every Avro type kind implements: report its
// kind name, validate a candidate value, read one from a Tap, write one to a
// Tap, and produce a structurally valid random sample.
type TypeNode interface {
	// TypeName returns the Avro kind string, e.g. "int" or "record".
	TypeName() string

	// Validate reports whether v conforms to this type.
	Validate(v Value) bool

	// Read consumes bytes from t and returns the decoded value. Only
	// structural decode failures (bad union index, unknown enum index)
	// return an error; cursor truncation is surfaced once by the
	// top-level Decode call, not by every Read along the way.
	Read(t *Tap) (Value, error)

	// Write appends v's encoding to t. The caller is expected to have
	// already validated v; Write returns EncodeError when a validated
	// value still cannot be placed on the wire (e.g. a wrapped union
	// naming an unknown branch).
	Write(t *Tap, v Value) error

	// Random produces a structurally valid sample value, for testing.
	Random(rnd *rand.Rand) Value
}

// qualifiedNamer is implemented by named type kinds (enum, fixed, record) so
// that union branch discriminators can use the fully qualified name instead
// of the bare kind string. Primitives, arrays, maps and unions don't
// implement it, so branchDiscriminator falls back to TypeName().
type qualifiedNamer interface {
	qualifiedName() string
}

// branchDiscriminator returns the name a union uses to key a branch: the
// fully qualified name for enum/fixed/record, and the bare kind name for
// everything else (primitives, array, map).
func branchDiscriminator(n TypeNode) string {
	if qn, ok := n.(qualifiedNamer); ok {
		return qn.qualifiedName()
	}
	return n.TypeName()
}

// depthBounded is implemented by the recursive node kinds (array, map,
// record, union) so Random can cap recursion depth on self-referential
// schemas. randomAtDepth behaves like Random but switches to zeroValue once
// depth exceeds maxRandomDepth.
type depthBounded interface {
	randomAtDepth(rnd *rand.Rand, depth int) Value
	zeroValue() Value
}

const maxRandomDepth = 4

// randomChild produces a sample for a child node one level deeper than
// depth, routing through depthBounded when the child itself recurses.
func randomChild(n TypeNode, rnd *rand.Rand, depth int) Value {
	if depth >= maxRandomDepth {
		if db, ok := n.(depthBounded); ok {
			return db.zeroValue()
		}
	}
	if db, ok := n.(depthBounded); ok {
		return db.randomAtDepth(rnd, depth+1)
	}
	return n.Random(rnd)
}

// Record is the ordered decoded form of an Avro record value. Field order
// matches the schema's declared field order, per the record Read contract.
type Record struct {
	Name   string
	Fields []RecordField
}

// RecordField is one name/value pair of a decoded Record.
type RecordField struct {
	Name  string
	Value Value
}

// Get returns the value bound to the named field, and whether the field was
// present.
func (r *Record) Get(fieldName string) (Value, bool) {
	if r == nil {
		return nil, false
	}
	for _, f := range r.Fields {
		if f.Name == fieldName {
			return f.Value, true
		}
	}
	return nil, false
}

// Map copies the record's fields into a plain map, discarding field order.
func (r *Record) Map() map[string]Value {
	if r == nil {
		return map[string]Value{}
	}
	out := make(map[string]Value, len(r.Fields))
	for _, f := range r.Fields {
		out[f.Name] = f.Value
	}
	return out
}

// recordFieldLookup adapts either a *Record or a map[string]Value into a
// uniform field accessor, so Validate/Write can accept whichever shape the
// caller built the value with.
func recordFieldLookup(v Value) (get func(name string) (Value, bool), ok bool) {
	switch rv := v.(type) {
	case *Record:
		return rv.Get, true
	case map[string]Value:
		return func(name string) (Value, bool) {
			val, present := rv[name]
			return val, present
		}, true
	default:
		return nil, false
	}
}
