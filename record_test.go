package avsc

import "testing"

const personSchema = `{
	"type": "record",
	"name": "Person",
	"namespace": "com.example",
	"fields": [
		{"name": "name", "type": "string"},
		{"name": "age", "type": "int", "default": 0}
	]
}`

func TestCodecRecord(t *testing.T) {
	node := mustParse(t, personSchema, ParseOpts{})
	datum := &Record{
		Name: "com.example.Person",
		Fields: []RecordField{
			{Name: "name", Value: "Ada"},
			{Name: "age", Value: int32(36)},
		},
	}
	got := roundTrip(t, node, datum)
	rec, ok := got.(*Record)
	if !ok {
		t.Fatalf("GOT: %T; WANT: *Record", got)
	}
	if v, _ := rec.Get("name"); v != "Ada" {
		t.Errorf("GOT: %v; WANT: Ada", v)
	}
	if v, _ := rec.Get("age"); v != int32(36) {
		t.Errorf("GOT: %v; WANT: 36", v)
	}
}

func TestCodecRecordMissingRequiredFieldFailsValidate(t *testing.T) {
	node := mustParse(t, personSchema, ParseOpts{})
	datum := map[string]Value{"age": int32(1)}
	if node.Validate(datum) {
		t.Fatal("GOT: true; WANT: false (missing required field \"name\")")
	}
}

func TestCodecRecordDefaultAppliesWhenFieldOmitted(t *testing.T) {
	node := mustParse(t, personSchema, ParseOpts{})
	datum := map[string]Value{"name": "Grace"}
	buf, err := Encode(node, datum, EncodeOpts{})
	if err != nil {
		t.Fatalf("encode: %s", err)
	}
	value, err := Decode(node, buf)
	if err != nil {
		t.Fatalf("decode: %s", err)
	}
	rec := value.(*Record)
	if v, _ := rec.Get("age"); v != int32(0) {
		t.Errorf("GOT: %v; WANT: 0", v)
	}
}

func TestCodecRecordAcceptsPlainMap(t *testing.T) {
	node := mustParse(t, personSchema, ParseOpts{})
	if !node.Validate(map[string]Value{"name": "Ada", "age": int32(1)}) {
		t.Fatal("GOT: false; WANT: true")
	}
}

func TestSchemaRecordSelfReference(t *testing.T) {
	schema := `{
		"type": "record",
		"name": "LinkedNode",
		"fields": [
			{"name": "value", "type": "int"},
			{"name": "next", "type": ["null", "LinkedNode"], "default": null}
		]
	}`
	node := mustParse(t, schema, ParseOpts{})
	rn, ok := node.(*RecordNode)
	if !ok {
		t.Fatalf("GOT: %T; WANT: *RecordNode", node)
	}
	nextField, ok := rn.fieldByName("next")
	if !ok {
		t.Fatal("expected field \"next\"")
	}
	union, ok := nextField.Type.(*UnionWrappedNode)
	if !ok {
		t.Fatalf("GOT: %T; WANT: *UnionWrappedNode", nextField.Type)
	}
	if union.branches.branchFromIndex[1] != node {
		t.Error("self-reference did not resolve to the same *RecordNode instance")
	}
}

func TestCodecRecordSelfReferentialRoundTrip(t *testing.T) {
	schema := `{
		"type": "record",
		"name": "LinkedNode",
		"fields": [
			{"name": "value", "type": "int"},
			{"name": "next", "type": ["null", "LinkedNode"], "default": null}
		]
	}`
	node := mustParse(t, schema, ParseOpts{})
	inner := &Record{Name: "LinkedNode", Fields: []RecordField{
		{Name: "value", Value: int32(2)},
		{Name: "next", Value: nil},
	}}
	outer := &Record{Name: "LinkedNode", Fields: []RecordField{
		{Name: "value", Value: int32(1)},
		{Name: "next", Value: map[string]Value{"LinkedNode": inner}},
	}}
	got := roundTrip(t, node, outer)
	rec := got.(*Record)
	if v, _ := rec.Get("value"); v != int32(1) {
		t.Errorf("GOT: %v; WANT: 1", v)
	}
	nextVal, _ := rec.Get("next")
	wrapped, ok := nextVal.(map[string]Value)
	if !ok {
		t.Fatalf("GOT: %T; WANT: map[string]Value", nextVal)
	}
	innerRec, ok := wrapped["LinkedNode"].(*Record)
	if !ok {
		t.Fatalf("GOT: %T; WANT: *Record", wrapped["LinkedNode"])
	}
	if v, _ := innerRec.Get("value"); v != int32(2) {
		t.Errorf("GOT: %v; WANT: 2", v)
	}
}

func TestRandomSelfReferentialRecordTerminates(t *testing.T) {
	schema := `{
		"type": "record",
		"name": "LinkedNode",
		"fields": [
			{"name": "value", "type": "int"},
			{"name": "next", "type": ["null", "LinkedNode"], "default": null}
		]
	}`
	node := mustParse(t, schema, ParseOpts{})
	for i := 0; i < 10; i++ {
		v := RandomValue(node)
		if !node.Validate(v) {
			t.Fatalf("Random produced invalid self-referential record: %#v", v)
		}
	}
}
