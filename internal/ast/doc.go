// Package ast models the program as a flat, mutable top-level
// sequence of Expr nodes (see Module) rather than a tree of statements
// nested under a Program root. The preprocessor is the only stage
// that mutates this sequence; the lowerer only reads it.
package ast
