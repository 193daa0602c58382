package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
)

// lowerReturn implements spec.md §4.4's Return rule.
func (l *Lowerer) lowerReturn(r *ast.Return) *irgen.Value {
	if r.Value == nil {
		l.B.CreateRetVoid()
		return nil
	}
	v := l.Lower(r.Value)
	if v == nil {
		return nil
	}
	l.B.CreateRet(v)
	return nil
}
