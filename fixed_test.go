package avsc

import "testing"

func TestCodecFixed(t *testing.T) {
	schema := `{"type":"fixed","name":"MD5","size":4}`
	testBinaryCodecPass(t, schema, []byte{0x01, 0x02, 0x03, 0x04}, []byte{0x01, 0x02, 0x03, 0x04})
}

func TestCodecFixedWrongSizeFailsEncode(t *testing.T) {
	schema := `{"type":"fixed","name":"MD5","size":4}`
	testBinaryEncodeFail(t, schema, []byte{0x01, 0x02}, "ought to be 4 bytes")
}

func TestCodecFixedTruncatedRead(t *testing.T) {
	schema := `{"type":"fixed","name":"MD5","size":4}`
	testBinaryDecodeFail(t, schema, []byte{0x01, 0x02}, "truncated")
}

func TestSchemaFixedRejectsNonPositiveSize(t *testing.T) {
	_, err := ParseJSON([]byte(`{"type":"fixed","name":"MD5","size":0}`), ParseOpts{})
	ensureError(t, err, "positive integral")
}

func TestFixedQualifiedName(t *testing.T) {
	node := mustParse(t, `{"type":"fixed","name":"MD5","namespace":"com.example","size":16}`, ParseOpts{})
	fx, ok := node.(*FixedNode)
	if !ok {
		t.Fatalf("GOT: %T; WANT: *FixedNode", node)
	}
	if got := fx.qualifiedName(); got != "com.example.MD5" {
		t.Errorf("GOT: %q; WANT: %q", got, "com.example.MD5")
	}
}
