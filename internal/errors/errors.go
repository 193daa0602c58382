// Package errors formats and accumulates compiler diagnostics. Nothing
// in this package panics: callers record a Diagnostic and keep going,
// the way the lowerer is required to (spec.md §7).
package errors

import (
	"fmt"
	"strings"

	"github.com/lppc/luapp/internal/ast"
)

// Severity distinguishes errors (which fail the compile) from warnings
// (which do not).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single compiler message anchored at a source
// location, matching spec.md §4.6's {severity, file, line, col, size,
// message} shape.
type Diagnostic struct {
	Severity Severity
	File     string
	Loc      ast.SourceLocation
	Message  string
}

// Format renders the diagnostic the way the original's AST::error /
// AST::warning do: a one-line header, the trimmed source line, and a
// caret underline Size columns wide starting at Col.
func (d Diagnostic) Format(source string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s:%d:%d: %s: %s\n", d.File, d.Loc.Line, d.Loc.Col, d.Severity, d.Message)

	if line := sourceLine(source, d.Loc.Line); line != "" {
		trimmed := strings.TrimLeft(line, " \t")
		offset := len(line) - len(trimmed)

		sb.WriteString("\t")
		sb.WriteString(trimmed)
		sb.WriteString("\n\t")

		col := d.Loc.Col - 1 - offset
		if col < 0 {
			col = 0
		}
		sb.WriteString(strings.Repeat(" ", col))
		sb.WriteString(strings.Repeat("^", max(d.Loc.Size, 1)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Collector accumulates diagnostics across an entire compile. Errors
// increment ErrorCount; warnings do not. The driver exits non-zero
// only if ErrorCount is positive at end-of-compile.
type Collector struct {
	File        string
	Source      string
	Diagnostics []Diagnostic
	ErrorCount  int
}

// Error records an error-severity diagnostic at loc.
func (c *Collector) Error(loc ast.SourceLocation, format string, args ...any) {
	c.add(Diagnostic{Severity: SeverityError, File: c.File, Loc: loc, Message: fmt.Sprintf(format, args...)})
	c.ErrorCount++
}

// Warning records a warning-severity diagnostic at loc.
func (c *Collector) Warning(loc ast.SourceLocation, format string, args ...any) {
	c.add(Diagnostic{Severity: SeverityWarning, File: c.File, Loc: loc, Message: fmt.Sprintf(format, args...)})
}

func (c *Collector) add(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (c *Collector) HasErrors() bool {
	return c.ErrorCount > 0
}

// Format renders every diagnostic against Source, in the order they
// were recorded.
func (c *Collector) Format() string {
	var sb strings.Builder
	for _, d := range c.Diagnostics {
		sb.WriteString(d.Format(c.Source))
	}
	return sb.String()
}
