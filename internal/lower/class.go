package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
	"github.com/lppc/luapp/internal/scope"
)

// declareClassShell creates the named struct type with no body yet,
// mirroring the original's two-phase "create identified struct, then
// set body" sequence so self-referential (pointer) fields resolve.
func (l *Lowerer) declareClassShell(cd *ast.ClassDef) {
	if _, exists := l.Scope.LookupClass(cd.Name); exists {
		l.Diags.Error(cd.Loc, "class '%s' is already defined", cd.Name)
		return
	}
	sd := l.Mod.DeclareStruct(cd.Name)
	l.Scope.DefineClass(cd.Name, &scope.ClassInfo{
		Struct:  sd,
		Fields:  map[string]int{},
		Methods: map[string]*irgen.Function{},
	})
}

// declareClassBody resolves and sets the struct's field list, in
// declaration order, fixing the GEP index used for each field
// (spec.md §4.4's ClassDef rule).
func (l *Lowerer) declareClassBody(cd *ast.ClassDef) {
	ci, ok := l.Scope.LookupClass(cd.Name)
	if !ok {
		return // class declaration itself already failed and was diagnosed
	}

	fieldTypes := make([]*irgen.Type, 0, len(cd.Fields))
	for _, f := range cd.Fields {
		// A field declared with the class's own name by value (not
		// "@ClassName") is excluded from the struct body rather than
		// resolved — resolving it would recurse into the
		// not-yet-finished struct and produce an infinitely-sized type.
		if f.Type == cd.Name {
			continue
		}
		ft, ok := l.resolveDeclaredType(f)
		if !ok {
			continue
		}
		ci.Fields[f.Name] = len(fieldTypes)
		fieldTypes = append(fieldTypes, ft)
	}
	ci.Struct.SetBody(fieldTypes)
}
