// Package scope implements spec.md §4.3's lowering-time symbol table:
// a stack of lexical frames holding already-lowered values, a flat
// class table (classes don't nest), and the var2val address-recovery
// helper every Variable lowering goes through.
package scope

import "github.com/lppc/luapp/internal/irgen"

// ClassInfo is a class's lowered layout: its struct definition, the
// GEP index of each field by name, and the backend function declared
// for each method by its unmangled name.
type ClassInfo struct {
	Struct  *irgen.StructDef
	Fields  map[string]int // field name -> GEP index
	Methods map[string]*irgen.Function
}

type frame struct {
	values map[string]*irgen.Value
	labels map[string]*irgen.BasicBlock
}

// Scope is a stack of lexical frames plus module-wide class metadata.
// It's created once per Module lowering and Enter/Exit bracket every
// function body and nested block.
type Scope struct {
	frames  []*frame
	classes map[string]*ClassInfo
}

// New returns a Scope with one top-level (global) frame already open.
func New() *Scope {
	s := &Scope{classes: map[string]*ClassInfo{}}
	s.Enter()
	return s
}

// Enter pushes a fresh, empty frame.
func (s *Scope) Enter() {
	s.frames = append(s.frames, &frame{
		values: map[string]*irgen.Value{},
		labels: map[string]*irgen.BasicBlock{},
	})
}

// Exit pops the innermost frame. Calling Exit on the last remaining
// (top-level) frame is a programmer error and panics, the same way
// popping an empty teacher symbol-table chain would.
func (s *Scope) Exit() {
	if len(s.frames) <= 1 {
		panic("scope: Exit called on top-level frame")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// IsTopLevel reports whether only the global frame is open.
func (s *Scope) IsTopLevel() bool {
	return len(s.frames) == 1
}

// Define binds name to v in the innermost frame.
func (s *Scope) Define(name string, v *irgen.Value) {
	s.top().values[name] = v
}

// Lookup searches from the innermost frame outward.
func (s *Scope) Lookup(name string) (*irgen.Value, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// DefineLabel binds a goto target name in the innermost frame.
func (s *Scope) DefineLabel(name string, bb *irgen.BasicBlock) {
	s.top().labels[name] = bb
}

// LookupLabel searches from the innermost frame outward.
func (s *Scope) LookupLabel(name string) (*irgen.BasicBlock, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if bb, ok := s.frames[i].labels[name]; ok {
			return bb, true
		}
	}
	return nil, false
}

// DefineClass registers a class's struct/field/method layout; classes
// are flat (no nested scoping), so this is keyed directly on the
// Scope rather than on the current frame.
func (s *Scope) DefineClass(name string, info *ClassInfo) {
	s.classes[name] = info
}

// LookupClass retrieves a previously defined class's layout.
func (s *Scope) LookupClass(name string) (*ClassInfo, bool) {
	ci, ok := s.classes[name]
	return ci, ok
}

func (s *Scope) top() *frame {
	return s.frames[len(s.frames)-1]
}

// VarToVal recovers the address a loaded value came from, the
// "var2val" pattern spec.md §4.3 names: lowering a Variable always
// produces the loaded value, and any caller that actually needs the
// l-value (an assignment target, a "@" address-of) walks back through
// Addr to get it. ok is false for a value that was never loaded from
// an address (a plain constant, a call result).
func VarToVal(v *irgen.Value) (addr *irgen.Value, ok bool) {
	if v == nil || v.Addr == nil {
		return nil, false
	}
	return v.Addr, true
}
