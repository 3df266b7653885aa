package avsc

import (
	"encoding/json"
)

// ParseOpts controls how Parse resolves a schema document.
type ParseOpts struct {
	// Namespace is the enclosing namespace in effect for the top-level
	// schema, e.g. when parsing a fragment nested inside a larger
	// document the caller has already partially resolved.
	Namespace string

	// Registry is the named-type table to resolve references against
	// and register new named types into. A nil Registry gets a fresh
	// one pre-seeded with the primitive singletons. Pass the same
	// Registry across multiple Parse calls to let later schemas refer
	// to types a prior Parse call registered (spec invariant 1).
	Registry *Registry

	// UnwrapUnions selects UnionUnwrappedNode instead of
	// UnionWrappedNode for every union encountered while parsing.
	UnwrapUnions bool
}

// Parse walks a parsed schema document (the nested
// string/[]interface{}/map[string]interface{} shape produced by
// encoding/json, or assembled by hand) and returns its root TypeNode.
func Parse(schema interface{}, opts ParseOpts) (TypeNode, error) {
	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	return parseNode(schema, opts.Namespace, registry, opts.UnwrapUnions)
}

// ValueFromJSON converts a JSON-decoded generic value (as produced by
// encoding/json into a node's schema-matching native representation,
// applying the same union first-branch rule jsonToValue uses for field
// defaults. It's the inverse companion a caller reads JSON datums with, the
// way cmd/avroschema does.
func ValueFromJSON(node TypeNode, raw interface{}) (Value, error) {
	return jsonToValue(node, raw)
}

// ParseJSON unmarshals data as JSON and parses the result as a schema
// document; a convenience wrapper since every schema in the wild arrives as
// JSON text.
func ParseJSON(data []byte, opts ParseOpts) (TypeNode, error) {
	var schema interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, wrapSchemaError(err, "cannot unmarshal schema JSON")
	}
	return Parse(schema, opts)
}

func parseNode(schema interface{}, namespace string, registry *Registry, unwrap bool) (TypeNode, error) {
	switch s := schema.(type) {
	case string:
		return parseStringSchema(s, namespace, registry)
	case []interface{}:
		return parseUnionSchema(s, namespace, registry, unwrap)
	case map[string]interface{}:
		return parseComplexSchema(s, namespace, registry, unwrap)
	default:
		return nil, newSchemaError("unsupported schema shape: %T", schema)
	}
}

func parseStringSchema(s, namespace string, registry *Registry) (TypeNode, error) {
	if isPrimitiveKind(s) {
		node, _ := registry.lookup(s)
		return node, nil
	}
	full := qualifyReference(s, namespace)
	node, ok := registry.lookup(full)
	if !ok {
		return nil, newSchemaError("missing name: %s", full)
	}
	return node, nil
}

func parseUnionSchema(items []interface{}, namespace string, registry *Registry, unwrap bool) (TypeNode, error) {
	branches := make([]TypeNode, len(items))
	for i, item := range items {
		b, err := parseNode(item, namespace, registry, unwrap)
		if err != nil {
			return nil, wrapSchemaError(err, "union item %d ought to be valid Avro type", i+1)
		}
		branches[i] = b
	}
	if unwrap {
		return NewUnionUnwrapped(branches)
	}
	return NewUnionWrapped(branches)
}

func parseComplexSchema(m map[string]interface{}, namespace string, registry *Registry, unwrap bool) (TypeNode, error) {
	typeField, ok := m["type"].(string)
	if !ok {
		return nil, newSchemaError("schema ought to have a string \"type\" field: %v", m)
	}

	switch typeField {
	case kindArray:
		items, ok := m["items"]
		if !ok {
			return nil, newSchemaError("array schema ought to have an \"items\" field")
		}
		itemNode, err := parseNode(items, namespace, registry, unwrap)
		if err != nil {
			return nil, wrapSchemaError(err, "array \"items\" ought to be a valid Avro type")
		}
		return &ArrayNode{Items: itemNode}, nil

	case kindMap:
		values, ok := m["values"]
		if !ok {
			return nil, newSchemaError("map schema ought to have a \"values\" field")
		}
		valueNode, err := parseNode(values, namespace, registry, unwrap)
		if err != nil {
			return nil, wrapSchemaError(err, "map \"values\" ought to be a valid Avro type")
		}
		return &MapNode{Values: valueNode}, nil

	case kindEnum:
		return parseEnumSchema(m, namespace, registry)

	case kindFixed:
		return parseFixedSchema(m, namespace, registry)

	case kindRecord:
		return parseRecordSchema(m, namespace, registry, unwrap)

	default:
		if isPrimitiveKind(typeField) {
			node, _ := registry.lookup(typeField)
			return node, nil
		}
		// Not a recognized complex kind: treat "type" as a reference to
		// a previously declared named type, the way a field entry like
		// {"name": "x", "type": "com.example.Foo"} wrapped in an extra
		// object would be resolved.
		return parseStringSchema(typeField, namespace, registry)
	}
}

func requiredName(m map[string]interface{}, kind string) (string, error) {
	localName, ok := m["name"].(string)
	if !ok || localName == "" {
		return "", newSchemaError("%s schema ought to have a non-empty \"name\" field", kind)
	}
	return localName, nil
}

func schemaNamespaceOverride(m map[string]interface{}) string {
	ns, _ := m["namespace"].(string)
	return ns
}

func parseEnumSchema(m map[string]interface{}, namespace string, registry *Registry) (TypeNode, error) {
	localName, err := requiredName(m, kindEnum)
	if err != nil {
		return nil, err
	}
	n := newName(localName, schemaNamespaceOverride(m), namespace)

	rawSymbols, ok := m["symbols"].([]interface{})
	if !ok || len(rawSymbols) == 0 {
		return nil, newSchemaError("enum %q ought to have a non-empty \"symbols\" field", n.full())
	}
	symbols := make([]string, len(rawSymbols))
	seen := make(map[string]bool, len(rawSymbols))
	for i, rs := range rawSymbols {
		sym, ok := rs.(string)
		if !ok {
			return nil, newSchemaError("enum %q symbol %d ought to be a string", n.full(), i)
		}
		if seen[sym] {
			return nil, newSchemaError("enum %q ought to have distinct symbols; duplicate: %q", n.full(), sym)
		}
		seen[sym] = true
		symbols[i] = sym
	}

	node := &EnumNode{Name: n, Symbols: symbols}
	if err := registry.register(n.full(), node); err != nil {
		return nil, err
	}
	return node, nil
}

func parseFixedSchema(m map[string]interface{}, namespace string, registry *Registry) (TypeNode, error) {
	localName, err := requiredName(m, kindFixed)
	if err != nil {
		return nil, err
	}
	n := newName(localName, schemaNamespaceOverride(m), namespace)

	size, ok := asPositiveInt(m["size"])
	if !ok {
		return nil, newSchemaError("fixed %q ought to have a positive integral \"size\" field", n.full())
	}

	node := &FixedNode{Name: n, Size: size}
	if err := registry.register(n.full(), node); err != nil {
		return nil, err
	}
	return node, nil
}

func parseRecordSchema(m map[string]interface{}, namespace string, registry *Registry, unwrap bool) (TypeNode, error) {
	localName, err := requiredName(m, kindRecord)
	if err != nil {
		return nil, err
	}
	n := newName(localName, schemaNamespaceOverride(m), namespace)

	// Register the (as yet empty) node before recursing into the field
	// list, so a field may refer back to this record by name.
	node := &RecordNode{Name: n}
	if err := registry.register(n.full(), node); err != nil {
		return nil, err
	}

	rawFields, ok := m["fields"].([]interface{})
	if !ok {
		return nil, newSchemaError("record %q ought to have a \"fields\" field", n.full())
	}

	fields := make([]Field, len(rawFields))
	for i, rf := range rawFields {
		fm, ok := rf.(map[string]interface{})
		if !ok {
			return nil, newSchemaError("record %q field %d ought to be an object", n.full(), i)
		}
		fieldName, ok := fm["name"].(string)
		if !ok || fieldName == "" {
			return nil, newSchemaError("record %q field %d ought to have a non-empty \"name\"", n.full(), i)
		}
		fieldTypeSchema, ok := fm["type"]
		if !ok {
			return nil, newSchemaError("record %q field %q ought to have a \"type\"", n.full(), fieldName)
		}
		fieldType, err := parseNode(fieldTypeSchema, n.namespace, registry, unwrap)
		if err != nil {
			return nil, wrapSchemaError(err, "record %q field %q", n.full(), fieldName)
		}
		doc, _ := fm["doc"].(string)

		field := Field{Name: fieldName, Type: fieldType, Doc: doc}
		if rawDefault, hasDefault := fm["default"]; hasDefault {
			def, err := jsonToValue(fieldType, rawDefault)
			if err != nil {
				return nil, wrapSchemaError(err, "record %q field %q default", n.full(), fieldName)
			}
			field.HasDefault = true
			field.Default = def
		}
		fields[i] = field
	}
	node.Fields = fields
	return node, nil
}

func asPositiveInt(v interface{}) (int, bool) {
	n, ok := numberToInt64(v)
	if !ok || n < 1 {
		return 0, false
	}
	return int(n), true
}

func numberToInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// jsonToValue converts a JSON-decoded default value (or any JSON-encoded
// Avro value, recursively) into node's native representation, applying the
// Avro default-value quirk that a union-typed JSON value is written as the
// bare JSON form of its first branch rather than the usual
// {branchName: value} wrapped form. The returned value is the union's
// native form: a single-key map for UnionWrappedNode (nil when the first
// branch is null), the bare value for UnionUnwrappedNode.
func jsonToValue(node TypeNode, raw interface{}) (Value, error) {
	switch t := node.(type) {
	case nullNode:
		if raw != nil {
			return nil, newSchemaError("expected null default, got %T", raw)
		}
		return nil, nil
	case booleanNode:
		b, ok := raw.(bool)
		if !ok {
			return nil, newSchemaError("expected boolean default, got %T", raw)
		}
		return b, nil
	case intNode:
		n, ok := numberToInt64(raw)
		if !ok {
			return nil, newSchemaError("expected integral int default, got %v", raw)
		}
		return int32(n), nil
	case longNode:
		n, ok := numberToInt64(raw)
		if !ok {
			return nil, newSchemaError("expected integral long default, got %v", raw)
		}
		return n, nil
	case floatNode:
		f, ok := numberToFloat64(raw)
		if !ok {
			return nil, newSchemaError("expected numeric float default, got %T", raw)
		}
		return float32(f), nil
	case doubleNode:
		f, ok := numberToFloat64(raw)
		if !ok {
			return nil, newSchemaError("expected numeric double default, got %T", raw)
		}
		return f, nil
	case stringNode:
		s, ok := raw.(string)
		if !ok {
			return nil, newSchemaError("expected string default, got %T", raw)
		}
		return s, nil
	case bytesNode:
		s, ok := raw.(string)
		if !ok {
			return nil, newSchemaError("expected string-encoded bytes default, got %T", raw)
		}
		return bytesFromLatin1(s)
	case *FixedNode:
		s, ok := raw.(string)
		if !ok {
			return nil, newSchemaError("expected string-encoded fixed default, got %T", raw)
		}
		b, err := bytesFromLatin1(s)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, newSchemaError("fixed %q default ought to be %d bytes; got %d", t.Name.full(), t.Size, len(b))
		}
		return b, nil
	case *EnumNode:
		s, ok := raw.(string)
		if !ok || !t.Validate(s) {
			return nil, newSchemaError("enum %q default ought to be one of %v; got %v", t.Name.full(), t.Symbols, raw)
		}
		return s, nil
	case *ArrayNode:
		rawItems, ok := raw.([]interface{})
		if !ok {
			return nil, newSchemaError("expected array default, got %T", raw)
		}
		items := make([]Value, len(rawItems))
		for i, ri := range rawItems {
			v, err := jsonToValue(t.Items, ri)
			if err != nil {
				return nil, wrapSchemaError(err, "array default item %d", i)
			}
			items[i] = v
		}
		return items, nil
	case *MapNode:
		rawMap, ok := raw.(map[string]interface{})
		if !ok {
			return nil, newSchemaError("expected map default, got %T", raw)
		}
		out := make(map[string]Value, len(rawMap))
		for k, rv := range rawMap {
			v, err := jsonToValue(t.Values, rv)
			if err != nil {
				return nil, wrapSchemaError(err, "map default key %q", k)
			}
			out[k] = v
		}
		return out, nil
	case *RecordNode:
		rawRec, ok := raw.(map[string]interface{})
		if !ok {
			return nil, newSchemaError("record %q default ought to be an object, got %T", t.Name.full(), raw)
		}
		fields := make([]RecordField, len(t.Fields))
		for i, f := range t.Fields {
			rv, present := rawRec[f.Name]
			if !present {
				if !f.HasDefault {
					return nil, newSchemaError("record %q default missing field %q", t.Name.full(), f.Name)
				}
				fields[i] = RecordField{Name: f.Name, Value: f.Default}
				continue
			}
			v, err := jsonToValue(f.Type, rv)
			if err != nil {
				return nil, wrapSchemaError(err, "record %q default field %q", t.Name.full(), f.Name)
			}
			fields[i] = RecordField{Name: f.Name, Value: v}
		}
		return &Record{Name: t.Name.full(), Fields: fields}, nil
	case *UnionWrappedNode:
		first := t.firstBranch()
		v, err := jsonToValue(first, raw)
		if err != nil {
			return nil, err
		}
		if first.TypeName() == kindNull {
			return nil, nil
		}
		return map[string]Value{branchDiscriminator(first): v}, nil
	case *UnionUnwrappedNode:
		return jsonToValue(t.firstBranch(), raw)
	default:
		return nil, newSchemaError("unsupported type node %T for default conversion", node)
	}
}

func numberToFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// bytesFromLatin1 interprets s the way the Avro spec's JSON encoding
// interprets a bytes/fixed default string: each Unicode code point is one
// raw byte. A code point above 0xFF cannot be represented this way.
func bytesFromLatin1(s string) ([]byte, error) {
	runes := []rune(s)
	b := make([]byte, len(runes))
	for i, r := range runes {
		if r > 0xFF {
			return nil, newSchemaError("invalid bytes/fixed default: code unit %U exceeds 0xFF", r)
		}
		b[i] = byte(r)
	}
	return b, nil
}
