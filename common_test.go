package avsc

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/mohae/deepcopy"
)

// ensureError fails t unless err is non-nil and its message contains want.
func ensureError(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("GOT: nil error; WANT: error containing %q", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("GOT: %q; WANT: error containing %q", err.Error(), want)
	}
}

// mustParse parses a schema and fails the test on error.
func mustParse(t *testing.T, schema string, opts ParseOpts) TypeNode {
	t.Helper()
	node, err := ParseJSON([]byte(schema), opts)
	if err != nil {
		t.Fatalf("schema: %s; %s", schema, err)
	}
	return node
}

// testBinaryEncodePass encodes datum against schema and compares the result
// to expected.
func testBinaryEncodePass(t *testing.T, schema string, datum Value, expected []byte) {
	t.Helper()
	node := mustParse(t, schema, ParseOpts{})
	actual, err := Encode(node, datum, EncodeOpts{})
	if err != nil {
		t.Fatalf("schema: %s; Datum: %v; %s", schema, datum, err)
	}
	if !bytes.Equal(actual, expected) {
		t.Errorf("schema: %s; Datum: %v; Actual: %#v; Expected: %#v", schema, datum, actual, expected)
	}
}

// testBinaryDecodePass decodes buf against schema and compares the result to
// datum via deep equality (after copying datum, so maps/slices inside it
// aren't mutated by a prior encode step).
func testBinaryDecodePass(t *testing.T, schema string, datum Value, buf []byte) {
	t.Helper()
	node := mustParse(t, schema, ParseOpts{})
	value, err := Decode(node, buf)
	if err != nil {
		t.Fatalf("schema: %s; %s", schema, err)
	}
	datumCopy := deepcopy.Copy(datum)
	if !reflect.DeepEqual(value, datumCopy) {
		t.Errorf("schema: %s; Actual: %#v; Expected: %#v", schema, value, datumCopy)
	}
}

// testBinaryCodecPass does a bi-directional codec check: encode datum to
// bytes and confirm it matches buf, then decode buf and confirm it matches
// datum.
func testBinaryCodecPass(t *testing.T, schema string, datum Value, buf []byte) {
	t.Helper()
	testBinaryEncodePass(t, schema, datum, buf)
	testBinaryDecodePass(t, schema, datum, buf)
}

// testBinaryEncodeFail encodes datum against schema with Unsafe set, so the
// assertion exercises Write's own error text instead of always bottoming out
// at Encode's pre-Write Validate gate.
func testBinaryEncodeFail(t *testing.T, schema string, datum Value, errorMessage string) {
	t.Helper()
	node := mustParse(t, schema, ParseOpts{})
	buf, err := Encode(node, datum, EncodeOpts{Unsafe: true})
	ensureError(t, err, errorMessage)
	if buf != nil {
		t.Errorf("GOT: %v; WANT: nil", buf)
	}
}

func testBinaryDecodeFail(t *testing.T, schema string, buf []byte, errorMessage string) {
	t.Helper()
	node := mustParse(t, schema, ParseOpts{})
	value, err := Decode(node, buf)
	ensureError(t, err, errorMessage)
	if value != nil {
		t.Errorf("GOT: %v; WANT: nil", value)
	}
}

// roundTrip encodes then decodes datum against node, failing the test on any
// error, and returns the decoded value for the caller to inspect.
func roundTrip(t *testing.T, node TypeNode, datum Value) Value {
	t.Helper()
	buf, err := Encode(node, datum, EncodeOpts{})
	if err != nil {
		t.Fatalf("encode: %s", err)
	}
	value, err := Decode(node, buf)
	if err != nil {
		t.Fatalf("decode: %s", err)
	}
	return value
}
