// Command avroschema parses an Avro schema file and converts a single datum
// between its JSON representation and the Avro binary encoding (printed as
// hex). It is a thin wrapper over Parse/Encode/Decode; it does not know
// about the object container file format, RPC protocol files, or schema
// resolution.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/oleiman/avsc"
)

func main() {
	schemaPath := flag.String("schema", "", "path to the Avro schema file (required)")
	decode := flag.Bool("decode", false, "decode a hex-encoded binary datum from stdin to JSON, instead of encoding JSON to hex")
	unwrap := flag.Bool("unwrap-unions", false, "parse unions as the unwrapped (bare-value) variant")
	flag.Parse()

	if *schemaPath == "" {
		fmt.Fprintln(os.Stderr, "avroschema: -schema is required")
		flag.Usage()
		os.Exit(2)
	}

	schemaBytes, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("avroschema: %s", err)
	}

	node, err := avsc.ParseJSON(schemaBytes, avsc.ParseOpts{UnwrapUnions: *unwrap})
	if err != nil {
		log.Fatalf("avroschema: cannot parse schema: %s", err)
	}

	input, err := readAllStdin()
	if err != nil {
		log.Fatalf("avroschema: cannot read stdin: %s", err)
	}

	if *decode {
		if err := runDecode(node, input); err != nil {
			log.Fatalf("avroschema: %s", err)
		}
		return
	}
	if err := runEncode(node, input); err != nil {
		log.Fatalf("avroschema: %s", err)
	}
}

func runEncode(node avsc.TypeNode, input []byte) error {
	var raw interface{}
	if err := json.Unmarshal(input, &raw); err != nil {
		return fmt.Errorf("cannot unmarshal datum JSON: %w", err)
	}
	value, err := avsc.ValueFromJSON(node, raw)
	if err != nil {
		return fmt.Errorf("cannot convert datum to %s: %w", node.TypeName(), err)
	}
	encoded, err := avsc.Encode(node, value, avsc.EncodeOpts{})
	if err != nil {
		return fmt.Errorf("cannot encode: %w", err)
	}
	fmt.Println(hex.EncodeToString(encoded))
	return nil
}

func runDecode(node avsc.TypeNode, input []byte) error {
	trimmed := trimSpace(input)
	raw := make([]byte, hex.DecodedLen(len(trimmed)))
	n, err := hex.Decode(raw, trimmed)
	if err != nil {
		return fmt.Errorf("cannot decode hex input: %w", err)
	}
	value, err := avsc.Decode(node, raw[:n])
	if err != nil {
		return fmt.Errorf("cannot decode: %w", err)
	}
	out, err := json.Marshal(valueToJSON(value))
	if err != nil {
		return fmt.Errorf("cannot marshal decoded value: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func valueToJSON(v avsc.Value) interface{} {
	switch x := v.(type) {
	case []byte:
		return hex.EncodeToString(x)
	case []avsc.Value:
		out := make([]interface{}, len(x))
		for i, item := range x {
			out[i] = valueToJSON(item)
		}
		return out
	case map[string]avsc.Value:
		out := make(map[string]interface{}, len(x))
		for k, val := range x {
			out[k] = valueToJSON(val)
		}
		return out
	case *avsc.Record:
		out := make(map[string]interface{}, len(x.Fields))
		for _, f := range x.Fields {
			out[f.Name] = valueToJSON(f.Value)
		}
		return out
	default:
		return x
	}
}

func readAllStdin() ([]byte, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 4096)
	if info.Size() > 0 {
		buf = make([]byte, 0, info.Size())
	}
	for {
		n, err := os.Stdin.Read(tmp)
		buf = append(buf, tmp[:n]...)
		if err != nil {
			break
		}
	}
	return buf, nil
}

func trimSpace(b []byte) []byte {
	start, end := 0, len(b)
	isSpace := func(c byte) bool { return c == ' ' || c == '\n' || c == '\t' || c == '\r' }
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}
