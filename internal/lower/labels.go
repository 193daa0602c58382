package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
)

// lowerLabel implements spec.md §4.4's Label rule: create a named
// block, fall into it unconditionally, and record it in scope under
// its source name so a later Goto can find it.
func (l *Lowerer) lowerLabel(n *ast.Label) *irgen.Value {
	bb := l.B.NewBlock(n.Name)
	if !l.B.BB.Terminated {
		l.B.CreateBr(bb)
	}
	l.B.SetInsertPoint(l.B.Fn, bb)
	l.Scope.DefineLabel(n.Name, bb)
	return nil
}

// lowerGoto implements spec.md §4.4's Goto rule.
func (l *Lowerer) lowerGoto(n *ast.Goto) *irgen.Value {
	bb, ok := l.Scope.LookupLabel(n.Name)
	if !ok {
		l.Diags.Error(n.Loc, "undefined label '%s'", n.Name)
		return nil
	}
	l.B.CreateBr(bb)
	return nil
}
