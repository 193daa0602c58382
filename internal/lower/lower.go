package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/errors"
	"github.com/lppc/luapp/internal/irgen"
	"github.com/lppc/luapp/internal/scope"
)

// Lowerer threads a single backend builder and scope stack through an
// entire module lowering (spec.md §5's "single-threaded and
// synchronous" resource model: nothing here is safe for concurrent use).
type Lowerer struct {
	Mod   *irgen.Module
	B     *irgen.Builder
	Scope *scope.Scope
	Diags *errors.Collector

	// decls maps an ast.Function (top-level or a class method) to the
	// backend function declared for it in the pre-declare pass, so the
	// body-lowering pass doesn't need to re-resolve the signature.
	decls map[*ast.Function]*irgen.Function
}

// New returns a Lowerer ready to lower into a fresh module named name.
func New(name string, diags *errors.Collector) *Lowerer {
	mod := irgen.NewModule(name)
	return &Lowerer{
		Mod:   mod,
		B:     irgen.NewBuilder(mod),
		Scope: scope.New(),
		Diags: diags,
		decls: map[*ast.Function]*irgen.Function{},
	}
}

// LowerModule lowers every preprocessed top-level item of m into l.Mod.
// Classes and function signatures are declared in a pre-pass so
// forward references between top-level items resolve regardless of
// source order; bodies are then lowered in source order, matching
// spec.md §5's "top-level items are processed in source order" for
// observable side effects (global initializers, diagnostic order).
func (l *Lowerer) LowerModule(m *ast.Module) {
	for _, k := range m.TopLevel {
		if cd, ok := k.(*ast.ClassDef); ok {
			l.declareClassShell(cd)
		}
	}
	for _, k := range m.TopLevel {
		if cd, ok := k.(*ast.ClassDef); ok {
			l.declareClassBody(cd)
		}
	}
	for _, k := range m.TopLevel {
		switch v := k.(type) {
		case *ast.Function:
			l.declareFunctionSignature(v)
		case *ast.ClassDef:
			for _, method := range v.Methods {
				l.declareMethodSignature(v, method)
			}
		}
	}

	for _, k := range m.TopLevel {
		switch v := k.(type) {
		case *ast.VariableDef:
			l.lowerGlobalVariableDef(v)
		case *ast.Function:
			l.lowerFunctionBody(v, l.decls[v])
		case *ast.ClassDef:
			for _, method := range v.Methods {
				l.lowerFunctionBody(method, l.decls[method])
			}
		}
	}
}

// Lower dispatches a single Expr to its lowering rule and returns the
// loaded value it produces, or nil on failure (spec.md §4.4, §7:
// failures are recorded, never raised, and "no value" propagates
// without emitting further IR for that sub-tree).
func (l *Lowerer) Lower(e ast.Expr) *irgen.Value {
	switch v := e.(type) {
	case *ast.Number:
		return l.lowerNumber(v)
	case *ast.Integer:
		return l.lowerInteger(v)
	case *ast.Bool:
		return l.lowerBool(v)
	case *ast.Byte:
		return l.lowerByte(v)
	case *ast.StringLit:
		return l.lowerString(v)
	case *ast.TypeCast:
		return l.lowerTypeCast(v)
	case *ast.Variable:
		return l.lowerVariable(v)
	case *ast.VariableDef:
		return l.lowerLocalVariableDef(v)
	case *ast.BinaryOp:
		return l.lowerBinaryOp(v)
	case *ast.UnaryOp:
		return l.lowerUnaryOp(v)
	case *ast.FunctionCall:
		return l.lowerFunctionCall(v)
	case *ast.Return:
		return l.lowerReturn(v)
	case *ast.If:
		return l.lowerIf(v)
	case *ast.While:
		return l.lowerWhile(v)
	case *ast.For:
		return l.lowerFor(v)
	case *ast.Label:
		return l.lowerLabel(v)
	case *ast.Goto:
		return l.lowerGoto(v)
	case *ast.Meta:
		return nil // resolved entirely during preprocessing
	default:
		l.Diags.Error(e.Pos(), "internal: no lowering rule for this expression")
		return nil
	}
}

// lowerBody lowers a statement list, stopping early only on a
// terminator so unreachable trailing instructions are never emitted
// into an already-terminated block.
func (l *Lowerer) lowerBody(body []ast.Expr) {
	for _, stmt := range body {
		if l.B.BB != nil && l.B.BB.Terminated {
			return
		}
		l.Lower(stmt)
	}
}
