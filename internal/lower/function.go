package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
	"github.com/lppc/luapp/internal/types"
)

// declareFunctionSignature resolves fn's signature and declares it in
// the backend module, recording the mapping for the later
// body-lowering pass. Called for plain top-level functions only;
// methods go through declareMethodSignature instead.
func (l *Lowerer) declareFunctionSignature(fn *ast.Function) {
	ret, paramTypes, ok := l.resolveSignature(fn)
	if !ok {
		return
	}
	paramNames := paramNamesOf(fn.Params)
	backend := l.Mod.DeclareFunction(fn.Name, ret, paramTypes, paramNames, fn.Variadic, fn.Extern)
	l.decls[fn] = backend
}

// declareMethodSignature mangles method's name to "{Class}_{Method}"
// and prepends an implicit "self @Class" parameter, per spec.md §3
// and §4.4's ClassDef rule. The ast.Function's own Name field is left
// untouched — mangling happens only in the name handed to the backend
// declaration — so the AST stays reusable by later tooling.
func (l *Lowerer) declareMethodSignature(cd *ast.ClassDef, method *ast.Function) {
	ret, paramTypes, ok := l.resolveSignature(method)
	if !ok {
		return
	}
	selfType, ok := types.Resolve(l.Mod, "@"+cd.Name)
	if !ok {
		l.Diags.Error(method.Loc, "undefined class '%s'", cd.Name)
		return
	}
	paramTypes = append([]*irgen.Type{selfType}, paramTypes...)
	paramNames := append([]string{"self"}, paramNamesOf(method.Params)...)

	mangled := cd.Name + "_" + method.Name
	backend := l.Mod.DeclareFunction(mangled, ret, paramTypes, paramNames, method.Variadic, method.Extern)
	l.decls[method] = backend

	if ci, ok := l.Scope.LookupClass(cd.Name); ok {
		ci.Methods[method.Name] = backend
	}
}

func (l *Lowerer) resolveSignature(fn *ast.Function) (ret *irgen.Type, params []*irgen.Type, ok bool) {
	ret, ok = types.Resolve(l.Mod, fn.ReturnType)
	if !ok {
		l.Diags.Error(fn.Loc, "unknown return type '%s'", fn.ReturnType)
		return nil, nil, false
	}
	for _, p := range fn.Params {
		pt, pok := l.resolveDeclaredType(p)
		if !pok {
			return nil, nil, false
		}
		params = append(params, pt)
	}
	return ret, params, true
}

func paramNamesOf(params []*ast.VariableDef) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// lowerFunctionBody implements the body half of spec.md §4.4's
// Function rule: for a non-extern function, open an entry block,
// spill each incoming parameter to a stack slot (so it can be
// addressed and reassigned like any local), lower the body, and pad a
// missing terminator with an implicit void return.
func (l *Lowerer) lowerFunctionBody(fn *ast.Function, backend *irgen.Function) {
	if backend == nil || fn.Extern {
		return
	}

	l.Scope.Enter()
	defer l.Scope.Exit()

	l.B.SetInsertPoint(backend, nil)
	entry := l.B.NewBlock("entry")
	l.B.SetInsertPoint(backend, entry)

	for i, param := range backend.Params {
		slot := l.B.CreateAlloca(param.Type, param.Ref[1:]+".addr")
		l.B.CreateStore(param, slot)
		l.Scope.Define(paramNameAt(fn, i), slot)
	}

	l.lowerBody(fn.Body)

	if !l.B.BB.Terminated {
		if backend.ReturnType.Kind == irgen.Void {
			l.B.CreateRetVoid()
		} else {
			l.Diags.Error(fn.Loc, "missing return in function '%s'", fn.Name)
		}
	}
}

// paramNameAt returns the name backend parameter i binds to: "self"
// for the implicit receiver at index 0 of a function marked IsMember
// (whose AST parameters then start at backend index 1), otherwise the
// corresponding ast.Function parameter name.
func paramNameAt(fn *ast.Function, i int) string {
	if fn.IsMember {
		if i == 0 {
			return "self"
		}
		return fn.Params[i-1].Name
	}
	return fn.Params[i].Name
}
