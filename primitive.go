package avsc

import (
	"math"
	"math/rand"
)

// Primitive kind name constants, shared between the registry's bootstrap
// table and the schema parser's string-schema dispatch.
const (
	kindNull    = "null"
	kindBoolean = "boolean"
	kindInt     = "int"
	kindLong    = "long"
	kindFloat   = "float"
	kindDouble  = "double"
	kindBytes   = "bytes"
	kindString  = "string"

	kindArray  = "array"
	kindMap    = "map"
	kindEnum   = "enum"
	kindFixed  = "fixed"
	kindRecord = "record"
	kindUnion  = "union"
)

// primitiveKinds lists every primitive in schema declaration order; used to
// build the registry's bootstrap table and to recognize primitive type
// strings during parsing.
var primitiveKinds = [...]string{
	kindNull, kindBoolean, kindInt, kindLong, kindFloat, kindDouble, kindBytes, kindString,
}

func isPrimitiveKind(s string) bool {
	for _, k := range primitiveKinds {
		if k == s {
			return true
		}
	}
	return false
}

type nullNode struct{}

func (nullNode) TypeName() string { return kindNull }
func (nullNode) Validate(v Value) bool {
	return v == nil
}
func (nullNode) Read(t *Tap) (Value, error) { return nil, nil }
func (nullNode) Write(t *Tap, v Value) error {
	if v != nil {
		return newEncodeError("cannot encode binary null: received: %T", v)
	}
	return nil
}
func (nullNode) Random(rnd *rand.Rand) Value { return nil }

type booleanNode struct{}

func (booleanNode) TypeName() string { return kindBoolean }
func (booleanNode) Validate(v Value) bool {
	_, ok := v.(bool)
	return ok
}
func (booleanNode) Read(t *Tap) (Value, error) { return t.ReadBool(), nil }
func (booleanNode) Write(t *Tap, v Value) error {
	b, ok := v.(bool)
	if !ok {
		return newEncodeError("cannot encode binary boolean: received: %T", v)
	}
	t.WriteBool(b)
	return nil
}
func (booleanNode) Random(rnd *rand.Rand) Value { return rnd.Intn(2) == 0 }

type intNode struct{}

func (intNode) TypeName() string { return kindInt }
func (intNode) Validate(v Value) bool {
	n, ok := asInt64(v)
	if !ok {
		return false
	}
	return n >= math.MinInt32 && n <= math.MaxInt32
}
func (intNode) Read(t *Tap) (Value, error) { return t.ReadInt(), nil }
func (intNode) Write(t *Tap, v Value) error {
	n, ok := asInt64(v)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return newEncodeError("cannot encode binary int: received: %T(%v)", v, v)
	}
	t.WriteInt(int32(n))
	return nil
}
func (intNode) Random(rnd *rand.Rand) Value { return int32(rnd.Intn(2001) - 1000) }

type longNode struct{}

func (longNode) TypeName() string { return kindLong }
func (longNode) Validate(v Value) bool {
	_, ok := asInt64(v)
	return ok
}
func (longNode) Read(t *Tap) (Value, error) { return t.ReadLong(), nil }
func (longNode) Write(t *Tap, v Value) error {
	n, ok := asInt64(v)
	if !ok {
		return newEncodeError("cannot encode binary long: received: %T", v)
	}
	t.WriteLong(n)
	return nil
}
func (longNode) Random(rnd *rand.Rand) Value { return rnd.Int63() - rnd.Int63() }

// maxFloat32Magnitude is the largest finite magnitude a single-precision
// float can represent; double values at or above it don't fit in a float.
const maxFloat32Magnitude = 3.4028234e38

type floatNode struct{}

func (floatNode) TypeName() string { return kindFloat }
func (floatNode) Validate(v Value) bool {
	f, ok := asFloat64(v)
	if !ok {
		return false
	}
	return math.Abs(f) < maxFloat32Magnitude
}
func (floatNode) Read(t *Tap) (Value, error) { return t.ReadFloat(), nil }
func (floatNode) Write(t *Tap, v Value) error {
	f, ok := asFloat64(v)
	if !ok || math.Abs(f) >= maxFloat32Magnitude {
		return newEncodeError("cannot encode binary float: received: %T(%v)", v, v)
	}
	t.WriteFloat(float32(f))
	return nil
}
func (floatNode) Random(rnd *rand.Rand) Value { return float32(rnd.NormFloat64()) }

type doubleNode struct{}

func (doubleNode) TypeName() string { return kindDouble }
func (doubleNode) Validate(v Value) bool {
	_, ok := asFloat64(v)
	return ok
}
func (doubleNode) Read(t *Tap) (Value, error) { return t.ReadDouble(), nil }
func (doubleNode) Write(t *Tap, v Value) error {
	f, ok := asFloat64(v)
	if !ok {
		return newEncodeError("cannot encode binary double: received: %T", v)
	}
	t.WriteDouble(f)
	return nil
}
func (doubleNode) Random(rnd *rand.Rand) Value { return rnd.NormFloat64() }

type bytesNode struct{}

func (bytesNode) TypeName() string { return kindBytes }
func (bytesNode) Validate(v Value) bool {
	_, ok := v.([]byte)
	return ok
}
func (bytesNode) Read(t *Tap) (Value, error) { return t.ReadBytes(), nil }
func (bytesNode) Write(t *Tap, v Value) error {
	b, ok := v.([]byte)
	if !ok {
		return newEncodeError("cannot encode binary bytes: received: %T", v)
	}
	t.WriteBytes(b)
	return nil
}
func (bytesNode) Random(rnd *rand.Rand) Value {
	n := rnd.Intn(8)
	b := make([]byte, n)
	rnd.Read(b)
	return b
}

type stringNode struct{}

func (stringNode) TypeName() string { return kindString }
func (stringNode) Validate(v Value) bool {
	_, ok := v.(string)
	return ok
}
func (stringNode) Read(t *Tap) (Value, error) { return t.ReadString(), nil }
func (stringNode) Write(t *Tap, v Value) error {
	s, ok := v.(string)
	if !ok {
		return newEncodeError("cannot encode binary string: received: %T", v)
	}
	t.WriteString(s)
	return nil
}

const randomStringAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

func (stringNode) Random(rnd *rand.Rand) Value {
	n := rnd.Intn(12)
	b := make([]byte, n)
	for i := range b {
		b[i] = randomStringAlphabet[rnd.Intn(len(randomStringAlphabet))]
	}
	return string(b)
}

// asInt64 coerces the handful of Go integer shapes a caller is likely to
// hand in (matching goavro's own "will coerce type if possible" behavior
// documented in goavro's union_test.go TestUnionWillCoerceTypeIfPossible) into an
// int64 for range validation.
func asInt64(v Value) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// asFloat64 coerces the Go float shapes a caller is likely to hand in into a
// float64 for range validation, mirroring asInt64's integer coercion.
func asFloat64(v Value) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	default:
		return 0, false
	}
}
