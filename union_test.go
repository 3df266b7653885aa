package avsc

import "testing"

func TestCodecUnionWrappedNull(t *testing.T) {
	schema := `["null","string"]`
	testBinaryCodecPass(t, schema, nil, []byte{0x00})
}

func TestCodecUnionWrappedNonNull(t *testing.T) {
	schema := `["null","string"]`
	testBinaryCodecPass(t, schema, map[string]Value{"string": "hi"},
		append([]byte{0x02, 0x04}, []byte("hi")...))
}

func TestCodecUnionWrappedRequiresSingleKeyMap(t *testing.T) {
	testBinaryEncodeFail(t, `["null","string"]`, "hi", "received:")
	testBinaryEncodeFail(t, `["null","string"]`, map[string]Value{"string": "a", "int": "b"}, "received:")
}

func TestCodecUnionWrappedUnknownBranchFails(t *testing.T) {
	testBinaryEncodeFail(t, `["null","string"]`, map[string]Value{"int": int32(1)}, "no such branch")
}

func TestCodecUnionUnwrapped(t *testing.T) {
	node, err := Parse([]interface{}{"null", "string"}, ParseOpts{UnwrapUnions: true})
	if err != nil {
		t.Fatal(err)
	}
	got := roundTrip(t, node, "hi")
	if got != "hi" {
		t.Errorf("GOT: %v; WANT: hi", got)
	}
	if got := roundTrip(t, node, nil); got != nil {
		t.Errorf("GOT: %v; WANT: nil", got)
	}
}

func TestCodecUnionUnwrappedFirstMatchWins(t *testing.T) {
	// int and long both accept small integers; first declared branch wins
	// on Write, per declaration-order tie-breaking.
	node, err := Parse([]interface{}{"int", "long"}, ParseOpts{UnwrapUnions: true})
	if err != nil {
		t.Fatal(err)
	}
	un := node.(*UnionUnwrappedNode)
	buf, err := Encode(un, int64(5), EncodeOpts{Unsafe: true})
	if err != nil {
		t.Fatal(err)
	}
	tap := NewTap(buf)
	idx := tap.ReadLong()
	if idx != 0 {
		t.Errorf("GOT: branch index %d; WANT: 0 (int)", idx)
	}
}

func TestSchemaUnionRejectsDuplicateBranchNames(t *testing.T) {
	_, err := ParseJSON([]byte(`["string","string"]`), ParseOpts{})
	ensureError(t, err, "unique type")
}

func TestSchemaUnionRejectsEmpty(t *testing.T) {
	_, err := NewUnionWrapped(nil)
	ensureError(t, err, "one or more members")
}

func TestUnionNamedBranchDiscriminator(t *testing.T) {
	schema := `["null", {"type":"record","name":"Foo","fields":[{"name":"x","type":"int"}]}]`
	node := mustParse(t, schema, ParseOpts{})
	rec := &Record{Name: "Foo", Fields: []RecordField{{Name: "x", Value: int32(1)}}}
	wrapped := map[string]Value{"Foo": rec}
	if !node.Validate(wrapped) {
		t.Fatal("GOT: false; WANT: true")
	}
	got := roundTrip(t, node, wrapped)
	gotMap := got.(map[string]Value)
	if _, ok := gotMap["Foo"]; !ok {
		t.Errorf("GOT: %#v; WANT key \"Foo\"", gotMap)
	}
}

func TestRandomUnionValidates(t *testing.T) {
	schema := `["null","string","int"]`
	node := mustParse(t, schema, ParseOpts{})
	for i := 0; i < 30; i++ {
		v := RandomValue(node)
		if !node.Validate(v) {
			t.Errorf("Random produced invalid union value: %#v", v)
		}
	}
}
