package parser

import (
	"testing"

	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/errors"
)

func parse(t *testing.T, source string) *ast.Module {
	t.Helper()
	diags := &errors.Collector{Source: source}
	mod := ParseModule(source, "test.lpp", diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diags.Format())
	}
	return mod
}

func TestParseClassWithFieldAndMethod(t *testing.T) {
	mod := parse(t, `
		class Point {
			local x -> int;
			local y -> int;
			function set(int nx, int ny) -> void {
				self.x = nx;
				self.y = ny;
			}
		}
	`)
	if len(mod.TopLevel) != 1 {
		t.Fatalf("expected one top-level item, got %d", len(mod.TopLevel))
	}
	cd, ok := mod.TopLevel[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("expected *ast.ClassDef, got %T", mod.TopLevel[0])
	}
	if cd.Name != "Point" || len(cd.Body) != 3 {
		t.Fatalf("unexpected class shape: %+v", cd)
	}
	fn, ok := cd.Body[2].(*ast.Function)
	if !ok || fn.Name != "set" || len(fn.Params) != 2 || fn.ReturnType != "void" {
		t.Fatalf("unexpected method shape: %+v", cd.Body[2])
	}
}

func TestParseFunctionWithControlFlowAndReturn(t *testing.T) {
	mod := parse(t, `
		function abs(int v) -> int {
			if (v < 0) {
				return -v;
			} else {
				return v;
			}
		}
	`)
	fn := mod.TopLevel[0].(*ast.Function)
	if fn.Name != "abs" || len(fn.Body) != 1 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	ifStmt, ok := fn.Body[0].(*ast.If)
	if !ok || len(ifStmt.Body) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("unexpected if shape: %+v", fn.Body[0])
	}
}

func TestParseForLoopAndMethodCall(t *testing.T) {
	mod := parse(t, `
		function main() -> int {
			local p -> Point;
			for (local i -> int = 0; i < 10; i = i + 1) {
				p:set(i, i);
			}
			return 0;
		}
	`)
	fn := mod.TopLevel[0].(*ast.Function)
	forStmt, ok := fn.Body[1].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", fn.Body[1])
	}
	if _, ok := forStmt.Init.(*ast.VariableDef); !ok {
		t.Fatalf("expected VariableDef init, got %T", forStmt.Init)
	}
	call, ok := forStmt.Body[0].(*ast.Variable)
	if !ok || call.Call == nil || call.Call.Name != "set" || !call.Call.IsMethod {
		t.Fatalf("unexpected method-call shape: %+v", forStmt.Body[0])
	}
}

func TestParseLabelGotoAndPointerCast(t *testing.T) {
	mod := parse(t, `
		function loopy() -> void {
			local n -> @int;
			loop:
			n = (int)0;
			goto loop;
		}
	`)
	fn := mod.TopLevel[0].(*ast.Function)
	if len(fn.Body) != 4 {
		t.Fatalf("expected 4 statements, got %d: %+v", len(fn.Body), fn.Body)
	}
	if _, ok := fn.Body[0].(*ast.VariableDef); !ok {
		t.Fatalf("expected *ast.VariableDef, got %T", fn.Body[0])
	}
	if _, ok := fn.Body[1].(*ast.Label); !ok {
		t.Fatalf("expected *ast.Label, got %T", fn.Body[1])
	}
	assign, ok := fn.Body[2].(*ast.BinaryOp)
	if !ok || assign.Op != "=" {
		t.Fatalf("expected assignment, got %+v", fn.Body[2])
	}
	if _, ok := assign.Right.(*ast.TypeCast); !ok {
		t.Fatalf("expected TypeCast RHS, got %T", assign.Right)
	}
	if _, ok := fn.Body[3].(*ast.Goto); !ok {
		t.Fatalf("expected *ast.Goto, got %T", fn.Body[3])
	}
}

func TestParseExternAndMeta(t *testing.T) {
	mod := parse(t, `
		extern function puts(@byte s) -> int;
		meta {
			DefineGlobal("buildTag", "int", false);
		}
	`)
	if len(mod.TopLevel) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(mod.TopLevel))
	}
	fn, ok := mod.TopLevel[0].(*ast.Function)
	if !ok || !fn.Extern || fn.Body != nil {
		t.Fatalf("unexpected extern shape: %+v", mod.TopLevel[0])
	}
	meta, ok := mod.TopLevel[1].(*ast.Meta)
	if !ok || len(meta.Body) != 1 {
		t.Fatalf("unexpected meta shape: %+v", mod.TopLevel[1])
	}
}

func TestParseVariadicFunction(t *testing.T) {
	mod := parse(t, `
		function printf(@byte fmt, ...) -> int {
			return 0;
		}
	`)
	fn := mod.TopLevel[0].(*ast.Function)
	if !fn.Variadic || len(fn.Params) != 1 {
		t.Fatalf("unexpected variadic shape: %+v", fn)
	}
}

func TestParseUndefinedTokenDiagnoses(t *testing.T) {
	diags := &errors.Collector{Source: "#"}
	ParseModule("#", "test.lpp", diags)
	if !diags.HasErrors() {
		t.Fatalf("expected a diagnostic for an illegal character")
	}
}
