package emit

import (
	"strings"
	"testing"

	"github.com/lppc/luapp/internal/ast"
)

func TestWriteDefsRendersTopLevelFunctionsAndVariables(t *testing.T) {
	mod := &ast.Module{
		TopLevel: []ast.Expr{
			&ast.VariableDef{Name: "buf", Type: "byte", Size: 16},
			&ast.Function{Name: "puts", ReturnType: "int", Params: []*ast.VariableDef{{Name: "s", Type: "@byte"}}},
		},
	}

	out := WriteDefs(mod)
	if !strings.Contains(out, "extern local buf -> byte[16]") {
		t.Fatalf("expected extern local line, got:\n%s", out)
	}
	if !strings.Contains(out, "extern function puts(@byte s) -> int") {
		t.Fatalf("expected extern function line, got:\n%s", out)
	}
}

func TestWriteDefsRendersVariadicFunctions(t *testing.T) {
	mod := &ast.Module{
		TopLevel: []ast.Expr{
			&ast.Function{Name: "printf", ReturnType: "int", Params: []*ast.VariableDef{{Name: "fmt", Type: "@byte"}}, Variadic: true},
		},
	}

	out := WriteDefs(mod)
	if !strings.Contains(out, "extern function printf(@byte fmt, ...) -> int") {
		t.Fatalf("expected variadic signature, got:\n%s", out)
	}
}

func TestWriteDefsRendersClassFieldsAndMethodsWithoutSelf(t *testing.T) {
	mod := &ast.Module{
		TopLevel: []ast.Expr{
			&ast.ClassDef{
				Name:   "Point",
				Fields: []*ast.VariableDef{{Name: "x", Type: "int"}, {Name: "y", Type: "int"}},
				Methods: []*ast.Function{
					{Name: "set", ReturnType: "void", Params: []*ast.VariableDef{{Name: "nx", Type: "int"}, {Name: "ny", Type: "int"}}},
				},
			},
		},
	}

	out := WriteDefs(mod)
	if !strings.Contains(out, "class Point {") {
		t.Fatalf("expected class block, got:\n%s", out)
	}
	if !strings.Contains(out, "\tlocal x -> int\n") {
		t.Fatalf("expected field line with no extern prefix, got:\n%s", out)
	}
	if !strings.Contains(out, "\tfunction set(int nx, int ny) -> void\n") {
		t.Fatalf("expected method line with self omitted, got:\n%s", out)
	}
	if strings.Contains(out, "self") {
		t.Fatalf("method line should omit the implicit self parameter, got:\n%s", out)
	}
}

func TestWriteDefsSkipsMetaBlocks(t *testing.T) {
	mod := &ast.Module{
		TopLevel: []ast.Expr{
			&ast.Meta{Body: []ast.Expr{&ast.Function{Name: "genSetter", ReturnType: "void"}}},
		},
	}

	out := WriteDefs(mod)
	if out != "" {
		t.Fatalf("expected no output for a meta block, got:\n%s", out)
	}
}
