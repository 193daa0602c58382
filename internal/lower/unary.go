package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
	"github.com/lppc/luapp/internal/scope"
)

// lowerUnaryOp implements spec.md §4.4's UnaryOp rule for the four
// operators: `~` (logical not, bool), `-` (negate, int/float),
// `@` (address-of, recovers the operand's backing pointer), and
// `$` (dereference, load through a pointer).
func (l *Lowerer) lowerUnaryOp(u *ast.UnaryOp) *irgen.Value {
	switch u.Op {
	case "~":
		v := l.Lower(u.Value)
		if v == nil {
			return nil
		}
		if v.Type.Kind != irgen.Int1 {
			l.Diags.Error(u.Loc, "'~' requires a bool operand")
			return nil
		}
		return l.B.CreateNot(v)
	case "-":
		v := l.Lower(u.Value)
		if v == nil {
			return nil
		}
		if !v.Type.IsInteger() && !v.Type.IsFloat() {
			l.Diags.Error(u.Loc, "'-' requires an int or float operand")
			return nil
		}
		return l.B.CreateNeg(v)
	case "@":
		v := l.Lower(u.Value)
		if v == nil {
			return nil
		}
		addr, ok := scope.VarToVal(v)
		if !ok {
			l.Diags.Error(u.Loc, "can not take the address of a literal")
			return nil
		}
		return addr
	case "$":
		v := l.Lower(u.Value)
		if v == nil {
			return nil
		}
		if !v.Type.IsPointer() {
			l.Diags.Error(u.Loc, "'$' requires a pointer operand")
			return nil
		}
		return l.B.CreateLoad(v, "deref")
	default:
		l.Diags.Error(u.Loc, "unknown unary operator '%s'", u.Op)
		return nil
	}
}
