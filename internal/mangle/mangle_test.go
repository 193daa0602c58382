package mangle

import "testing"

func TestOperatorNameNormalization(t *testing.T) {
	got := OperatorName("+", "@byte", "@byte")
	want := "Operator_Plus_At_byte_At_byte"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeIsInjectiveOnTheTable(t *testing.T) {
	seen := map[string]rune{}
	for r, sub := range substitutions {
		if prev, ok := seen[sub]; ok {
			t.Fatalf("substitution %q used for both %q and %q", sub, prev, r)
		}
		seen[sub] = r
	}
}
