package scope

import (
	"testing"

	"github.com/lppc/luapp/internal/irgen"
)

func TestDefineLookupAcrossFrames(t *testing.T) {
	s := New()
	s.Define("g", &irgen.Value{Ref: "@g"})

	s.Enter()
	s.Define("x", &irgen.Value{Ref: "%1"})
	if v, ok := s.Lookup("x"); !ok || v.Ref != "%1" {
		t.Fatalf("expected to find x in inner frame")
	}
	if v, ok := s.Lookup("g"); !ok || v.Ref != "@g" {
		t.Fatalf("expected inner frame to see outer global g")
	}
	s.Exit()

	if _, ok := s.Lookup("x"); ok {
		t.Fatalf("x should not be visible after Exit")
	}
	if !s.IsTopLevel() {
		t.Fatalf("expected top level after matching Exit")
	}
}

func TestShadowing(t *testing.T) {
	s := New()
	s.Define("x", &irgen.Value{Ref: "@outer"})
	s.Enter()
	s.Define("x", &irgen.Value{Ref: "%inner"})
	v, _ := s.Lookup("x")
	if v.Ref != "%inner" {
		t.Fatalf("inner definition should shadow outer, got %q", v.Ref)
	}
	s.Exit()
	v, _ = s.Lookup("x")
	if v.Ref != "@outer" {
		t.Fatalf("outer definition should be restored, got %q", v.Ref)
	}
}

func TestVarToVal(t *testing.T) {
	addr := &irgen.Value{Ref: "%0", Type: irgen.PointerTo(irgen.TInt32)}
	loaded := &irgen.Value{Ref: "%1", Type: irgen.TInt32, Addr: addr}

	got, ok := VarToVal(loaded)
	if !ok || got != addr {
		t.Fatalf("expected VarToVal to recover the alloca address")
	}

	if _, ok := VarToVal(&irgen.Value{Ref: "5", Type: irgen.TInt32}); ok {
		t.Fatalf("a bare constant has no address to recover")
	}
}

func TestExitAtTopLevelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when exiting the top-level frame")
		}
	}()
	s := New()
	s.Exit()
}
