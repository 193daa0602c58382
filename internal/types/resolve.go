// Package types implements spec.md §4.2's name↔type mapping: resolving
// a source-level type name (with a leading run of "@" marking pointer
// depth) to a backend irgen.Type, and rendering a backend irgen.Type
// back to that same textual form.
package types

import (
	"strings"

	"github.com/lppc/luapp/internal/irgen"
)

// Resolve looks up name against the primitive table and, failing
// that, mod's struct table, applying one irgen.PointerTo wrap per
// leading "@". It reports ok=false for a name that resolves to
// nothing, mirroring the original's "return nullptr" on unknown type
// rather than a hard failure — callers turn that into a diagnostic.
func Resolve(mod *irgen.Module, name string) (*irgen.Type, bool) {
	depth := 0
	base := name
	for strings.HasPrefix(base, "@") {
		depth++
		base = base[1:]
	}

	var t *irgen.Type
	switch base {
	case "void":
		t = irgen.TVoid
	case "int":
		t = irgen.TInt32
	case "bool":
		t = irgen.TInt1
	case "float":
		t = irgen.TFloat32
	case "byte":
		t = irgen.TInt8
	case "string":
		// "string" is sugar for a byte pointer; it has no reverse
		// spelling in TypeToString, which only ever emits "@byte" for
		// this shape (matching the original: type2str has no "string"
		// case at all, so the round-trip is one-directional by design).
		t = irgen.PointerTo(irgen.TInt8)
	default:
		sd, ok := mod.GetStruct(base)
		if !ok {
			return nil, false
		}
		t = &irgen.Type{Kind: irgen.Struct, Struct: sd}
	}

	for i := 0; i < depth; i++ {
		t = irgen.PointerTo(t)
	}
	return t, true
}

// TypeToString is the inverse of Resolve: it renders a backend type
// back to source-level notation, peeling off pointer layers into a
// leading run of "@" the same way Resolve consumes them. This is the
// "type2str ∘ resolve = identity" round-trip the spec's Testable
// Properties section (§8) requires, for every type Resolve accepts
// except the "string" alias, which renders back as "@byte".
func TypeToString(t *irgen.Type) string {
	prefix := ""
	for t.IsPointer() {
		prefix += "@"
		t = t.Elem
	}

	switch t.Kind {
	case irgen.Void:
		return prefix + "void"
	case irgen.Int32:
		return prefix + "int"
	case irgen.Int1:
		return prefix + "bool"
	case irgen.Int8:
		return prefix + "byte"
	case irgen.Float32:
		return prefix + "float"
	case irgen.Struct:
		return prefix + t.Struct.Name
	default:
		return "unknown"
	}
}
