package avsc

import "strings"

// nullNamespace is the implicit namespace of a name with no dot and no
// enclosing namespace in effect. Named after goavro's own nullNamespace
// sentinel (see goavro's union.go &name{"union", nullNamespace} literal).
const nullNamespace = ""

// name is a fully qualified Avro name: a local name plus the namespace it
// was declared in, if any.
type name struct {
	local     string
	namespace string
}

// full renders the fully qualified name: "namespace.local", or just "local"
// when there is no namespace.
func (n name) full() string {
	if n.namespace == nullNamespace {
		return n.local
	}
	return n.namespace + "." + n.local
}

func (n name) String() string { return n.full() }

// newName computes a name for a local name declared with an optional
// schema-level namespace override, falling back to the enclosing namespace.
// If local already contains a dot it is treated as already fully qualified
// and the namespace arguments are ignored, per the Avro naming rules.
func newName(local, schemaNamespace, enclosingNamespace string) name {
	if idx := strings.LastIndexByte(local, '.'); idx >= 0 {
		return name{local: local[idx+1:], namespace: local[:idx]}
	}
	ns := enclosingNamespace
	if schemaNamespace != "" {
		ns = schemaNamespace
	}
	return name{local: local, namespace: ns}
}

// qualifyReference resolves a bare or dotted type reference string against
// an enclosing namespace, the way Parse does for string schemas that are not
// primitive kind names.
func qualifyReference(ref, enclosingNamespace string) string {
	if strings.ContainsRune(ref, '.') || enclosingNamespace == nullNamespace {
		return ref
	}
	return enclosingNamespace + "." + ref
}
