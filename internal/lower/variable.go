package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
)

// lowerVariable implements spec.md §4.4's Variable rule: resolve the
// name, walk any index/field chain to a final address, and return the
// loaded value — every Variable lowering is a loaded value, and a
// caller that needs the address recovers it via scope.VarToVal.
func (l *Lowerer) lowerVariable(v *ast.Variable) *irgen.Value {
	if v.Call != nil {
		return l.lowerMethodCall(v, v.Call)
	}

	addr, final := l.resolveVariableBase(v.Name, v.Loc)
	if final != nil {
		return final
	}
	if addr == nil {
		return nil
	}

	resolved := l.lowerVariableChain(v, addr)
	if resolved == nil {
		return nil
	}
	return l.B.CreateLoad(resolved, v.Name)
}

// resolveVariableBase looks name up in scope; failing that, it falls
// back to an i8* bitcast of a same-named top-level function, per
// spec.md §4.3's lookup contract. final is non-nil only for that
// fallback case, since it's already the value to use, not an address
// a chain can walk through.
func (l *Lowerer) resolveVariableBase(name string, loc ast.SourceLocation) (addr, final *irgen.Value) {
	if v, ok := l.Scope.Lookup(name); ok {
		return v, nil
	}
	if fn, ok := l.Mod.GetFunction(name); ok {
		return nil, &irgen.Value{Ref: "@" + fn.Name, Type: irgen.PointerTo(irgen.TInt8)}
	}
	l.Diags.Error(loc, "undefined variable '%s'", name)
	return nil, nil
}

// lowerVariableChain applies v's own index (if any), then recurses
// into v.Field, returning the final unresolved address — never loads
// it, so callers can decide whether they want the value or the
// address.
func (l *Lowerer) lowerVariableChain(v *ast.Variable, cursor *irgen.Value) *irgen.Value {
	if v.Index != nil {
		idx := l.Lower(v.Index)
		if idx == nil {
			return nil
		}
		cursor = l.applyIndex(cursor, idx, v.Name, v.Loc)
		if cursor == nil {
			return nil
		}
	}

	if v.Field == nil {
		return cursor
	}

	cursor = l.derefToStruct(cursor, v.Field.Loc)
	if cursor == nil {
		return nil
	}

	sd := cursor.Type.Elem.Struct
	ci, ok := l.Scope.LookupClass(sd.Name)
	if !ok {
		l.Diags.Error(v.Field.Loc, "undefined class '%s'", sd.Name)
		return nil
	}
	idx, ok := ci.Fields[v.Field.Name]
	if !ok {
		l.Diags.Error(v.Field.Loc, "undefined field '%s'", v.Field.Name)
		return nil
	}
	fieldType := sd.Fields[idx]
	fieldAddr := l.B.CreateStructGEP(cursor, idx, fieldType, v.Field.Name)
	return l.lowerVariableChain(v.Field, fieldAddr)
}

// applyIndex indexes into the value cursor points to: a fixed-length
// array uses a two-index GEP directly; a pointer variable must first
// be loaded and then indexed with a single-index GEP; anything else
// is a scalar and can't be indexed.
func (l *Lowerer) applyIndex(cursor, idx *irgen.Value, hint string, loc ast.SourceLocation) *irgen.Value {
	elem := cursor.Type.Elem
	switch {
	case elem.IsArray():
		return l.B.CreateArrayIndex(cursor, idx, elem.Elem, hint)
	case elem.IsPointer():
		ptrVal := l.B.CreateLoad(cursor, hint)
		return l.B.CreateGEP(ptrVal, idx, ptrVal.Type.Elem, hint)
	default:
		l.Diags.Error(loc, "can not index scalar values")
		return nil
	}
}

// derefToStruct follows at most one pointer indirection to reach a
// struct pointee, diagnosing if what's left still isn't a struct.
func (l *Lowerer) derefToStruct(cursor *irgen.Value, loc ast.SourceLocation) *irgen.Value {
	elem := cursor.Type.Elem
	if elem.IsPointer() {
		cursor = l.B.CreateLoad(cursor, "deref")
		elem = cursor.Type.Elem
	}
	if elem.Kind != irgen.Struct {
		l.Diags.Error(loc, "can not access a field of a non-class object")
		return nil
	}
	return cursor
}
