// Package irgen is the small "IR Builder" interface spec.md's design
// notes call for: it stands in for the out-of-scope external
// backend-IR library, giving the lowerer module/function/block/value/
// type builder primitives and a textual SSA-form printer, without
// pulling in a real LLVM binding (see DESIGN.md).
package irgen
