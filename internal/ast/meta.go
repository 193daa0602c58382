package ast

// Meta is a compile-time sub-program: Body is handed to the meta
// engine (internal/meta) before any other preprocessing stage runs,
// and may mutate the enclosing Module's top-level sequence via host
// bindings.
type Meta struct {
	Loc  SourceLocation
	Body []Expr
}

func (m *Meta) Pos() SourceLocation { return m.Loc }
