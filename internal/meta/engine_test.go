package meta

import (
	"testing"

	"github.com/lppc/luapp/internal/ast"
)

func TestApplyDefinesGlobalThroughHostBindings(t *testing.T) {
	mod := &ast.Module{SourceName: "test.lpp"}
	metaBlock := &ast.Meta{
		Body: []ast.Expr{
			&ast.FunctionCall{Name: "DefineGlobal", Args: []ast.Expr{
				&ast.StringLit{Value: "buildTag"},
				&ast.StringLit{Value: "int"},
				&ast.Bool{Value: false},
			}},
		},
	}

	e := New()
	if err := e.Apply(mod, metaBlock); err != nil {
		t.Fatalf("unexpected Apply error: %v", err)
	}

	found := false
	for _, top := range mod.TopLevel {
		if vd, ok := top.(*ast.VariableDef); ok && vd.Name == "buildTag" && vd.Type == "int" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a buildTag global spliced into TopLevel, got: %#v", mod.TopLevel)
	}
}

func TestApplySurfacesEvalErrors(t *testing.T) {
	mod := &ast.Module{SourceName: "test.lpp"}
	metaBlock := &ast.Meta{
		Body: []ast.Expr{
			&ast.FunctionCall{Name: "undefinedHostFunction", Args: nil},
		},
	}

	e := New()
	if err := e.Apply(mod, metaBlock); err == nil {
		t.Fatalf("expected a call to an unregistered function to fail evaluation")
	}
}
