package ast

import "testing"

func TestModuleFindFunction(t *testing.T) {
	mod := &Module{
		TopLevel: []Expr{
			&VariableDef{Name: "x", Type: "int"},
			&Function{Name: "main", ReturnType: "int"},
		},
	}

	fn, ok := mod.FindFunction("main")
	if !ok {
		t.Fatal("expected to find function 'main'")
	}
	if fn.Name != "main" {
		t.Fatalf("got function named %q", fn.Name)
	}

	if _, ok := mod.FindFunction("missing"); ok {
		t.Fatal("expected FindFunction to report a miss, not find a ghost function")
	}
}

func TestClassDefMemberIndex(t *testing.T) {
	class := &ClassDef{
		Name: "Point",
		Fields: []*VariableDef{
			{Name: "x", Type: "int"},
			{Name: "y", Type: "int"},
		},
	}

	if idx := class.MemberIndex("y"); idx != 1 {
		t.Fatalf("expected field 'y' at index 1, got %d", idx)
	}
	if idx := class.MemberIndex("z"); idx != -1 {
		t.Fatalf("expected -1 for undefined field, got %d", idx)
	}
	if m := class.Member("x"); m == nil || m.Type != "int" {
		t.Fatalf("expected field 'x' of type int, got %+v", m)
	}
}

func TestVariableFieldChain(t *testing.T) {
	// a.b.c[i]
	v := &Variable{
		Name:  "a",
		Index: &Integer{Value: 0},
		Field: &Variable{
			Name: "b",
			Field: &Variable{
				Name: "c",
			},
		},
	}

	if v.Field.Field.Name != "c" {
		t.Fatalf("expected left-to-right field traversal to reach 'c', got %q", v.Field.Field.Name)
	}
}
