package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
)

// requireBoolHead lowers head and diagnoses unless its type is bool.
func (l *Lowerer) requireBoolHead(head ast.Expr, context string) *irgen.Value {
	v := l.Lower(head)
	if v == nil {
		return nil
	}
	if v.Type.Kind != irgen.Int1 {
		l.Diags.Error(head.Pos(), "%s condition must be of type bool", context)
		return nil
	}
	return v
}

// lowerIf implements spec.md §4.4's If rule: a true block, an else
// block, and a continuation that both branches fall through to.
func (l *Lowerer) lowerIf(n *ast.If) *irgen.Value {
	cond := l.requireBoolHead(n.Head, "if")
	if cond == nil {
		return nil
	}

	thenBB := l.B.NewBlock("if_true")
	elseBB := l.B.NewBlock("if_false")
	contBB := l.B.NewBlock("if_cont")

	l.B.CreateCondBr(cond, thenBB, elseBB)

	l.B.SetInsertPoint(l.B.Fn, thenBB)
	l.Scope.Enter()
	l.lowerBody(n.Body)
	l.Scope.Exit()
	if !l.B.BB.Terminated {
		l.B.CreateBr(contBB)
	}

	l.B.SetInsertPoint(l.B.Fn, elseBB)
	l.Scope.Enter()
	l.lowerBody(n.Else)
	l.Scope.Exit()
	if !l.B.BB.Terminated {
		l.B.CreateBr(contBB)
	}

	l.B.SetInsertPoint(l.B.Fn, contBB)
	return nil
}

// lowerWhile implements spec.md §4.4's While rule: a cond block
// re-evaluated on every iteration, a body block that loops back to it,
// and a continuation once the head is false.
func (l *Lowerer) lowerWhile(n *ast.While) *irgen.Value {
	condBB := l.B.NewBlock("while_cond")
	bodyBB := l.B.NewBlock("while_body")
	contBB := l.B.NewBlock("while_cont")

	l.B.CreateBr(condBB)

	l.B.SetInsertPoint(l.B.Fn, condBB)
	cond := l.requireBoolHead(n.Head, "while")
	if cond == nil {
		return nil
	}
	l.B.CreateCondBr(cond, bodyBB, contBB)

	l.B.SetInsertPoint(l.B.Fn, bodyBB)
	l.Scope.Enter()
	l.lowerBody(n.Body)
	l.Scope.Exit()
	if !l.B.BB.Terminated {
		l.B.CreateBr(condBB)
	}

	l.B.SetInsertPoint(l.B.Fn, contBB)
	return nil
}

// lowerFor implements spec.md §4.4's For rule: Init runs once before
// the cond block, Inc runs at the end of every true iteration.
func (l *Lowerer) lowerFor(n *ast.For) *irgen.Value {
	l.Scope.Enter()
	defer l.Scope.Exit()

	if n.Init != nil {
		l.Lower(n.Init)
	}

	condBB := l.B.NewBlock("for_cond")
	bodyBB := l.B.NewBlock("for_body")
	contBB := l.B.NewBlock("for_cont")

	l.B.CreateBr(condBB)

	l.B.SetInsertPoint(l.B.Fn, condBB)
	cond := l.requireBoolHead(n.Cond, "for")
	if cond == nil {
		return nil
	}
	l.B.CreateCondBr(cond, bodyBB, contBB)

	l.B.SetInsertPoint(l.B.Fn, bodyBB)
	l.Scope.Enter()
	l.lowerBody(n.Body)
	l.Scope.Exit()
	if !l.B.BB.Terminated {
		if n.Inc != nil {
			l.Lower(n.Inc)
		}
		l.B.CreateBr(condBB)
	}

	l.B.SetInsertPoint(l.B.Fn, contBB)
	return nil
}
