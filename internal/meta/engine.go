package meta

import (
	"fmt"

	"github.com/traefik/yaegi/interp"

	"github.com/lppc/luapp/internal/ast"
)

// Engine implements preprocess.MetaRunner with an embedded yaegi
// interpreter, grounded on _examples/breadchris-yaegi/interp: New
// builds the interpreter once and Apply reuses it across every Meta
// block in a compile, so a script's top-level declarations stay
// visible to scripts evaluated afterward, exactly as the interp.Eval
// examples in the yaegi test suite evaluate declaration and call in
// separate passes against the same Interpreter.
type Engine struct {
	interp *interp.Interpreter
}

// New constructs a meta Engine with a fresh yaegi interpreter.
func New() *Engine {
	return &Engine{interp: interp.New(interp.Options{})}
}

// Apply translates meta's sub-AST to Go source and evaluates it.
// Evaluated code reaches back into mod through the "metahost"
// bindings registered here; any evaluation error becomes the single
// diagnostic the caller attaches to meta's source location.
func (e *Engine) Apply(mod *ast.Module, meta *ast.Meta) error {
	host := &hostBindings{mod: mod}
	if err := e.interp.Use(interp.Exports{
		"luapp.internal/metahost/metahost": host.exports(),
	}); err != nil {
		return fmt.Errorf("registering meta host bindings: %w", err)
	}

	src := Translate(meta.Body)
	if _, err := e.interp.Eval(src); err != nil {
		return fmt.Errorf("meta block evaluation failed: %w", err)
	}
	return nil
}
