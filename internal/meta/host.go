package meta

import (
	"reflect"

	"github.com/lppc/luapp/internal/ast"
)

// hostBindings is the "metahost" package meta scripts import. It
// exposes the handful of AST-construction primitives a meta block
// plausibly needs to synthesize new top-level declarations: globals,
// and the include/require directives the preprocessor's own
// expandIncludes stage still recognizes once spliced in.
type hostBindings struct {
	mod *ast.Module
}

func (h *hostBindings) exports() map[string]reflect.Value {
	return map[string]reflect.Value{
		"DefineGlobal": reflect.ValueOf(h.DefineGlobal),
		"Require":      reflect.ValueOf(h.Require),
		"Include":      reflect.ValueOf(h.Include),
	}
}

// DefineGlobal appends a global VariableDef of the named type.
func (h *hostBindings) DefineGlobal(name, typeName string, extern bool) {
	h.mod.TopLevel = append(h.mod.TopLevel, &ast.VariableDef{Name: name, Type: typeName, Extern: extern})
}

// Require appends a require(path) call, picked up by the
// preprocessor's include-expansion stage that runs right after Meta.
func (h *hostBindings) Require(path string) {
	h.mod.TopLevel = append(h.mod.TopLevel, &ast.FunctionCall{
		Name: "require",
		Args: []ast.Expr{&ast.StringLit{Value: path}},
	})
}

// Include appends an include(path) call, spliced the same way.
func (h *hostBindings) Include(path string) {
	h.mod.TopLevel = append(h.mod.TopLevel, &ast.FunctionCall{
		Name: "include",
		Args: []ast.Expr{&ast.StringLit{Value: path}},
	})
}
