package lower

import (
	"fmt"

	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
	"github.com/lppc/luapp/internal/types"
)

// resolveDeclaredType resolves v.Type, wrapping it in an array type
// when v.Size is nonzero. Returns ok=false (having already recorded a
// diagnostic) for an unknown type name.
func (l *Lowerer) resolveDeclaredType(v *ast.VariableDef) (*irgen.Type, bool) {
	t, ok := types.Resolve(l.Mod, v.Type)
	if !ok {
		l.Diags.Error(v.Loc, "unknown type '%s'", v.Type)
		return nil, false
	}
	if v.Size > 0 {
		t = irgen.ArrayOf(t, int(v.Size))
	}
	return t, true
}

// lowerGlobalVariableDef implements spec.md §4.4's top-level
// VariableDef cases (extern / inferred / typed).
func (l *Lowerer) lowerGlobalVariableDef(v *ast.VariableDef) *irgen.Value {
	if _, exists := l.Scope.Lookup(v.Name); exists {
		l.Diags.Error(v.Loc, "variable name collision: '%s'", v.Name)
		return nil
	}

	if v.Extern {
		if v.Initial != nil {
			l.Diags.Error(v.Loc, "extern variable '%s' may not have an initializer", v.Name)
			return nil
		}
		t, ok := l.resolveDeclaredType(v)
		if !ok {
			return nil
		}
		addr := l.Mod.DefineGlobal(v.Name, t, "", true)
		l.Scope.Define(v.Name, addr)
		return nil
	}

	if v.Type == "" {
		initText, t, ok := l.lowerConstantInitializer(v.Initial)
		if !ok {
			return nil
		}
		addr := l.Mod.DefineGlobal(v.Name, t, initText, false)
		l.Scope.Define(v.Name, addr)
		return nil
	}

	t, ok := l.resolveDeclaredType(v)
	if !ok {
		return nil
	}
	initText := zeroInitializer(t)
	if v.Initial != nil {
		text, initType, ok := l.lowerConstantInitializer(v.Initial)
		if !ok {
			return nil
		}
		if !t.Equal(initType) {
			l.Diags.Error(v.Loc, "variable type mismatch, expected '%s' but got '%s'",
				types.TypeToString(t), types.TypeToString(initType))
			return nil
		}
		initText = text
	}
	addr := l.Mod.DefineGlobal(v.Name, t, initText, false)
	l.Scope.Define(v.Name, addr)
	return nil
}

// lowerLocalVariableDef implements spec.md §4.4's local VariableDef
// cases (inferred / typed), both of which allocate a stack slot and
// store through the current builder rather than emitting a constant.
func (l *Lowerer) lowerLocalVariableDef(v *ast.VariableDef) *irgen.Value {
	if _, exists := l.Scope.Lookup(v.Name); exists {
		l.Diags.Error(v.Loc, "variable name collision: '%s'", v.Name)
		return nil
	}

	if v.Type == "" {
		init := l.Lower(v.Initial)
		if init == nil {
			return nil
		}
		slot := l.B.CreateAlloca(init.Type, v.Name)
		l.B.CreateStore(init, slot)
		l.Scope.Define(v.Name, slot)
		return nil
	}

	t, ok := l.resolveDeclaredType(v)
	if !ok {
		return nil
	}
	slot := l.B.CreateAlloca(t, v.Name)
	l.Scope.Define(v.Name, slot)
	if v.Initial != nil {
		init := l.Lower(v.Initial)
		if init == nil {
			return nil
		}
		if !t.Equal(init.Type) {
			l.Diags.Error(v.Loc, "variable type mismatch, expected '%s' but got '%s'",
				types.TypeToString(t), types.TypeToString(init.Type))
			return nil
		}
		l.B.CreateStore(init, slot)
	}
	return nil
}

// lowerConstantInitializer evaluates e as a compile-time constant for
// a global's initializer — the only context where an initializer must
// be constant per spec.md §3 ("Global-scope VariableDefs require
// constant initializers").
func (l *Lowerer) lowerConstantInitializer(e ast.Expr) (text string, t *irgen.Type, ok bool) {
	switch v := e.(type) {
	case *ast.Integer:
		return fmt.Sprintf("%d", v.Value), irgen.TInt32, true
	case *ast.Number:
		return fmt.Sprintf("%e", float64(v.Value)), irgen.TFloat32, true
	case *ast.Bool:
		if v.Value {
			return "true", irgen.TInt1, true
		}
		return "false", irgen.TInt1, true
	case *ast.Byte:
		return fmt.Sprintf("%d", v.Value), irgen.TInt8, true
	case *ast.StringLit:
		return l.Mod.DefineStringConstant(v.Value), irgen.PointerTo(irgen.TInt8), true
	default:
		l.Diags.Error(e.Pos(), "global initializer must be a constant")
		return "", nil, false
	}
}

func zeroInitializer(t *irgen.Type) string {
	if t.IsPointer() {
		return "null"
	}
	if t.Kind == irgen.Float32 {
		return "0.0"
	}
	return "0"
}
