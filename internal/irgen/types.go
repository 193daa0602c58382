package irgen

import (
	"fmt"
	"strings"
)

// Kind discriminates the handful of backend types spec.md §4.2 needs:
// the five primitives, pointers, and named structs.
type Kind int

const (
	Void Kind = iota
	Int1
	Int8
	Int32
	Float32
	Pointer
	Struct
	Array
)

// Type is a backend type: primitive kinds carry no extra data,
// Pointer/Array carry Elem (Array also carries Len), Struct carries a
// StructDef.
type Type struct {
	Kind   Kind
	Elem   *Type
	Len    int
	Struct *StructDef
}

// StructDef is a named aggregate type; Fields is in declaration order
// and fixes the GEP index used to reach each field.
type StructDef struct {
	Name   string
	Fields []*Type
}

var (
	TVoid    = &Type{Kind: Void}
	TInt1    = &Type{Kind: Int1}
	TInt8    = &Type{Kind: Int8}
	TInt32   = &Type{Kind: Int32}
	TFloat32 = &Type{Kind: Float32}
)

// PointerTo returns a pointer type to elem. Pointer types are not
// interned: structural equality (Equal) is what the lowerer relies on.
func PointerTo(elem *Type) *Type {
	return &Type{Kind: Pointer, Elem: elem}
}

// ArrayOf returns a fixed-length array type of elem, used for a
// VariableDef whose array-size attribute is nonzero.
func ArrayOf(elem *Type, n int) *Type {
	return &Type{Kind: Array, Elem: elem, Len: n}
}

// IsPointer reports whether t is a pointer type.
func (t *Type) IsPointer() bool { return t != nil && t.Kind == Pointer }

// IsArray reports whether t is a fixed-length array type.
func (t *Type) IsArray() bool { return t != nil && t.Kind == Array }

// IsFloat reports whether t is the float primitive.
func (t *Type) IsFloat() bool { return t != nil && t.Kind == Float32 }

// IsInteger reports whether t is one of the integer-family primitives
// (bool, byte, int).
func (t *Type) IsInteger() bool {
	return t != nil && (t.Kind == Int1 || t.Kind == Int8 || t.Kind == Int32)
}

// Equal reports structural equality: same kind, same pointee (for
// pointers), same struct name (for structs).
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Pointer:
		return t.Elem.Equal(other.Elem)
	case Array:
		return t.Len == other.Len && t.Elem.Equal(other.Elem)
	case Struct:
		return t.Struct.Name == other.Struct.Name
	default:
		return true
	}
}

// String renders t using the backend's textual syntax, e.g. "i32",
// "float", "i8*", "%Point*".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Void:
		return "void"
	case Int1:
		return "i1"
	case Int8:
		return "i8"
	case Int32:
		return "i32"
	case Float32:
		return "float"
	case Pointer:
		return t.Elem.String() + "*"
	case Array:
		return fmt.Sprintf("[%d x %s]", t.Len, t.Elem)
	case Struct:
		return "%" + t.Struct.Name
	default:
		return "?"
	}
}

// bitWidth returns the integer bit width of a primitive, or 0 for
// non-integer kinds. Used by CreateIntCast and storageWidth.
func (t *Type) bitWidth() int {
	switch t.Kind {
	case Int1:
		return 1
	case Int8:
		return 8
	case Int32:
		return 32
	default:
		return 0
	}
}

// CanLosslesslyBitCast reports whether a bitcast between t and other
// preserves all bits (same storage width, neither side void) — the
// same check the lowerer uses to decide whether a TypeCast should
// raise a warning (spec.md §4.3).
func (t *Type) CanLosslesslyBitCast(other *Type) bool {
	if t.IsPointer() && other.IsPointer() {
		return true
	}
	tw, ow := t.storageWidth(), other.storageWidth()
	return tw != 0 && tw == ow
}

// storageWidth returns the in-memory bit width used for lossless-cast
// comparisons; float is 32-bit, and pointers are treated as 32-bit
// for this purpose.
func (t *Type) storageWidth() int {
	if t.Kind == Pointer || t.Kind == Float32 {
		return 32
	}
	return t.bitWidth()
}

// sanitizeName strips characters the textual printer would choke on
// from an identifier used verbatim in emitted IR (struct/global names
// coming from user source).
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return '_'
		}
		return r
	}, name)
}
