// Package lower implements spec.md §4.4: the engine that walks a
// preprocessed ast.Module and builds a backend-IR module through
// internal/irgen, resolving types via internal/types and names via
// internal/scope, recording failures as diagnostics instead of
// aborting (spec.md §7).
package lower
