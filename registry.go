package avsc

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Registry is the fully-qualified-name table a schema is parsed against. It
// is pre-seeded with the eight primitive singletons (which can never be
// namespaced, invariant 6) and accumulates one entry per named type (enum,
// fixed, record) as parsing proceeds, including across several Parse calls
// that share it through ParseOpts.Registry.
//
// Named after joshng-goavro's SymbolTable, which plays the identical role
// of "previously registered schemas a later schema may refer to by name".
type Registry struct {
	byName map[string]TypeNode
}

// NewRegistry returns a registry pre-populated with the primitive
// singletons, ready to be passed as ParseOpts.Registry so that multiple
// Parse calls can share named-type resolution (spec invariant: parsing the
// same registry twice with a reference to a prior named type yields the
// same node identity).
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]TypeNode, len(primitiveKinds))}
	for _, k := range primitiveKinds {
		r.byName[k] = primitiveSingleton(k)
	}
	return r
}

func primitiveSingleton(kind string) TypeNode {
	switch kind {
	case kindNull:
		return nullNode{}
	case kindBoolean:
		return booleanNode{}
	case kindInt:
		return intNode{}
	case kindLong:
		return longNode{}
	case kindFloat:
		return floatNode{}
	case kindDouble:
		return doubleNode{}
	case kindBytes:
		return bytesNode{}
	case kindString:
		return stringNode{}
	default:
		return nil
	}
}

// lookup returns the node registered under fullName, if any.
func (r *Registry) lookup(fullName string) (TypeNode, bool) {
	n, ok := r.byName[fullName]
	return n, ok
}

// register binds fullName to node. It fails with SchemaError if fullName
// already names a different registered type; a named type may only be
// registered once, per invariant 1.
func (r *Registry) register(fullName string, node TypeNode) error {
	if existing, ok := r.byName[fullName]; ok && existing != node {
		return newSchemaError("name already in use: %s", fullName)
	}
	r.byName[fullName] = node
	return nil
}

// Names returns every fully qualified name currently registered, including
// the eight primitives, in sorted order.
func (r *Registry) Names() []string {
	names := maps.Keys(r.byName)
	sort.Strings(names)
	return names
}
