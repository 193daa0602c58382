package types

import (
	"testing"

	"github.com/lppc/luapp/internal/irgen"
)

func TestResolvePrimitives(t *testing.T) {
	mod := irgen.NewModule("test")
	cases := map[string]*irgen.Type{
		"void":  irgen.TVoid,
		"int":   irgen.TInt32,
		"bool":  irgen.TInt1,
		"byte":  irgen.TInt8,
		"float": irgen.TFloat32,
	}
	for name, want := range cases {
		got, ok := Resolve(mod, name)
		if !ok || !got.Equal(want) {
			t.Fatalf("Resolve(%q) = %v, %v; want %v, true", name, got, ok, want)
		}
	}
}

func TestResolvePointerDepth(t *testing.T) {
	mod := irgen.NewModule("test")
	got, ok := Resolve(mod, "@@int")
	if !ok {
		t.Fatalf("Resolve(@@int) failed")
	}
	want := irgen.PointerTo(irgen.PointerTo(irgen.TInt32))
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveStructMustBeDeclaredFirst(t *testing.T) {
	mod := irgen.NewModule("test")
	if _, ok := Resolve(mod, "Point"); ok {
		t.Fatalf("expected undeclared struct to fail resolution")
	}
	sd := mod.DeclareStruct("Point")
	sd.SetBody([]*irgen.Type{irgen.TInt32, irgen.TInt32})
	got, ok := Resolve(mod, "@Point")
	if !ok {
		t.Fatalf("Resolve(@Point) failed after declaration")
	}
	if !got.IsPointer() || got.Elem.Struct.Name != "Point" {
		t.Fatalf("got %v, want pointer to Point", got)
	}
}

func TestRoundTripPrimitivesAndPointers(t *testing.T) {
	mod := irgen.NewModule("test")
	for _, name := range []string{"void", "int", "bool", "byte", "float", "@int", "@@byte"} {
		t0, ok := Resolve(mod, name)
		if !ok {
			t.Fatalf("Resolve(%q) failed", name)
		}
		back := TypeToString(t0)
		if back != name {
			t.Fatalf("round trip mismatch for %q: got %q", name, back)
		}
	}
}

func TestStringIsNotRoundTrippable(t *testing.T) {
	mod := irgen.NewModule("test")
	t0, ok := Resolve(mod, "string")
	if !ok {
		t.Fatalf("Resolve(string) failed")
	}
	if got := TypeToString(t0); got != "@byte" {
		t.Fatalf("string's canonical reverse spelling should be @byte, got %q", got)
	}
}
