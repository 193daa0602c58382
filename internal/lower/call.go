package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
	"github.com/lppc/luapp/internal/scope"
	"github.com/lppc/luapp/internal/types"
)

// lowerFunctionCall implements spec.md §4.4's FunctionCall rule for a
// plain (non-method) call; include/require are already consumed by
// the preprocessor and are no-ops here.
func (l *Lowerer) lowerFunctionCall(call *ast.FunctionCall) *irgen.Value {
	if call.Name == "include" || call.Name == "require" {
		return nil
	}
	fn, ok := l.Mod.GetFunction(call.Name)
	if !ok {
		l.Diags.Error(call.Loc, "undefined function '%s'", call.Name)
		return nil
	}
	args, ok := l.lowerArgs(call.Args)
	if !ok {
		return nil
	}
	return l.emitCheckedCall(fn, args, call)
}

// lowerMethodCall implements the method-call half of the FunctionCall
// rule, reached from lowerVariable when a Variable carries a trailing
// Call: the callee name is "{recvTypeName}_{m}", and if the receiver
// is a value rather than a pointer, its address is synthesized so
// self is always "@Class".
func (l *Lowerer) lowerMethodCall(recv *ast.Variable, call *ast.FunctionCall) *irgen.Value {
	recvCopy := *recv
	recvCopy.Call = nil
	receiver := l.lowerVariable(&recvCopy)
	if receiver == nil {
		return nil
	}

	var self *irgen.Value
	switch {
	case receiver.Type.IsPointer() && receiver.Type.Elem.Kind == irgen.Struct:
		self = receiver
	case receiver.Type.Kind == irgen.Struct:
		addr, ok := scope.VarToVal(receiver)
		if !ok {
			l.Diags.Error(call.Loc, "can not take the address of a literal receiver")
			return nil
		}
		self = addr
	default:
		l.Diags.Error(call.Loc, "method call on a non-class value")
		return nil
	}

	className := self.Type.Elem.Struct.Name
	calleeName := className + "_" + call.Name
	fn, ok := l.Mod.GetFunction(calleeName)
	if !ok {
		l.Diags.Error(call.Loc, "undefined method '%s' on class '%s'", call.Name, className)
		return nil
	}

	args, ok := l.lowerArgs(call.Args)
	if !ok {
		return nil
	}
	args = append([]*irgen.Value{self}, args...)
	return l.emitCheckedCall(fn, args, call)
}

func (l *Lowerer) lowerArgs(exprs []ast.Expr) ([]*irgen.Value, bool) {
	args := make([]*irgen.Value, 0, len(exprs))
	for _, e := range exprs {
		v := l.Lower(e)
		if v == nil {
			return nil, false
		}
		args = append(args, v)
	}
	return args, true
}

// emitCheckedCall validates arity and per-argument types against a
// non-variadic callee's declared parameters before emitting the call;
// a variadic callee (one declared with "...") skips both checks
// entirely, its fixed parameters included.
func (l *Lowerer) emitCheckedCall(fn *irgen.Function, args []*irgen.Value, call *ast.FunctionCall) *irgen.Value {
	if !fn.Variadic {
		if len(args) != len(fn.Params) {
			l.Diags.Error(call.Loc, "argument count mismatch, required %d but got %d", len(fn.Params), len(args))
			return nil
		}
		for i, a := range args {
			if !a.Type.Equal(fn.Params[i].Type) {
				l.Diags.Error(call.Loc, "argument %d type mismatch, expected '%s' but got '%s'",
					i, types.TypeToString(fn.Params[i].Type), types.TypeToString(a.Type))
			}
		}
	}
	return l.B.CreateCall(fn, args, call.Name)
}
