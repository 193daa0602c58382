// Package emit writes the ".lmod" definitions sidecar spec.md §6
// requires alongside module-mode output: a textual listing of the
// externally visible top-level variables, functions, and classes a
// "-m" compiled module exposes to a later "require" of it.
//
// The sidecar uses exactly the "extern local"/"extern function"
// surface syntax internal/parser already parses (declarations.go's
// parseExternDecl), not a separate serialization format — spec.md's
// own grammar for the file is phrased in those terms, and it is what
// lets require's loader read a .lmod back in as an ordinary Module
// and splice its declarations into the requiring file the same way
// "include" splices a source file's.
//
// WriteDefs walks the preprocessed *ast.Module (after Meta, include,
// and class-body lowering have all run), not the AST as originally
// parsed: include expansion has already spliced any included file's
// top-level declarations into mod.TopLevel by this point, so a
// struct or function pulled in transitively through "include" still
// appears in the sidecar without this package needing to chase
// include edges itself.
package emit

import (
	"fmt"
	"strings"

	"github.com/lppc/luapp/internal/ast"
)

// WriteDefs renders mod's externally-visible top-level declarations.
func WriteDefs(mod *ast.Module) string {
	var sb strings.Builder
	for _, item := range mod.TopLevel {
		switch v := item.(type) {
		case *ast.VariableDef:
			writeVariableLine(&sb, "extern ", v)
		case *ast.Function:
			writeFunctionLine(&sb, "extern ", v)
		case *ast.ClassDef:
			writeClassBlock(&sb, v)
		case *ast.Meta:
			// A meta block is consumed entirely during preprocessing
			// into other top-level declarations (spec.md §4.5); none of
			// its own script text is itself an externally visible
			// declaration, so nothing is emitted for the block itself.
		}
	}
	return sb.String()
}

func writeVariableLine(sb *strings.Builder, prefix string, v *ast.VariableDef) {
	size := ""
	if v.Size > 0 {
		size = fmt.Sprintf("[%d]", v.Size)
	}
	fmt.Fprintf(sb, "%slocal %s -> %s%s\n", prefix, v.Name, v.Type, size)
}

// writeFunctionLine renders fn's signature. prefix is "extern " for
// top-level functions; class methods are written bare (no "extern"
// keyword, matching an ordinary class-body method signature) since
// the class block around them already marks them declaration-only.
func writeFunctionLine(sb *strings.Builder, prefix string, fn *ast.Function) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Type + " " + p.Name
	}
	variadic := ""
	if fn.Variadic {
		if len(params) > 0 {
			variadic = ", "
		}
		variadic += "..."
	}
	fmt.Fprintf(sb, "%sfunction %s(%s%s) -> %s\n", prefix, fn.Name, strings.Join(params, ", "), variadic, fn.ReturnType)
}

// writeClassBlock renders a class's field-lines and method-lines.
// Methods omit the implicit first "self" parameter for free: the
// preprocessor's class lowering never adds self to a Function's own
// Params slice — self is prepended only during lowering, for the
// backend declaration alone.
func writeClassBlock(sb *strings.Builder, cd *ast.ClassDef) {
	fmt.Fprintf(sb, "class %s {\n", cd.Name)
	for _, f := range cd.Fields {
		sb.WriteString("\t")
		writeVariableLine(sb, "", f)
	}
	for _, m := range cd.Methods {
		sb.WriteString("\t")
		writeFunctionLine(sb, "", m)
	}
	sb.WriteString("}\n")
}
