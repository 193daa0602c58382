package errors

import (
	"strings"
	"testing"

	"github.com/lppc/luapp/internal/ast"
)

func TestCollectorCountsErrorsNotWarnings(t *testing.T) {
	c := &Collector{File: "test.lpp", Source: "return y;\n"}

	c.Warning(ast.SourceLocation{Line: 1, Col: 1, Size: 1}, "redundant include of %s", "a.lpp")
	if c.HasErrors() {
		t.Fatal("a warning must not count as an error")
	}

	c.Error(ast.SourceLocation{Line: 1, Col: 8, Size: 1}, "undefined variable '%s'", "y")
	if !c.HasErrors() || c.ErrorCount != 1 {
		t.Fatalf("expected exactly one error, got %d", c.ErrorCount)
	}
}

func TestDiagnosticFormatHighlightsSourceLine(t *testing.T) {
	source := "function f() -> int { return y; }\n"
	d := Diagnostic{
		Severity: SeverityError,
		File:     "test.lpp",
		Loc:      ast.SourceLocation{Line: 1, Col: 30, Size: 1},
		Message:  "undefined variable 'y'",
	}

	out := d.Format(source)
	if !strings.Contains(out, "test.lpp:1:30: error: undefined variable 'y'") {
		t.Fatalf("missing header line, got:\n%s", out)
	}
	if !strings.Contains(out, "function f() -> int { return y; }") {
		t.Fatalf("missing source line, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret, got:\n%s", out)
	}
}
