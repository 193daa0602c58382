// Package mangle implements the deterministic name transformation from
// a source-level operator and its operand types to a plain callable
// function name (spec.md §6, "Operator mangling").
package mangle

import "strings"

// substitutions is applied character-by-character to an operator's
// spelling; characters absent from the table pass through unchanged.
// The table is injective on the characters it does map, so two
// distinct operator spellings never collide after substitution.
var substitutions = map[rune]string{
	'@': "_At_",
	'<': "_Smaller_",
	'>': "_Greater_",
	'=': "_Equal_",
	'+': "_Plus_",
	'-': "_Minus_",
	'*': "_Times_",
	'/': "_Divided_",
}

// Normalize rewrites op per the substitution table.
func Normalize(op string) string {
	var sb strings.Builder
	for _, r := range op {
		if sub, ok := substitutions[r]; ok {
			sb.WriteString(sub)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// OperatorName builds the callee name for a binary operator overload
// between operands of type left and right, e.g. OperatorName("+",
// "@byte", "@byte") == "Operator_Plus_At_byte_At_byte". The whole name
// is normalized, and each run of underscores the substitutions leave
// behind is collapsed to a single one.
func OperatorName(op, left, right string) string {
	name := Normalize("Operator_" + op + "_" + left + "_" + right)
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	return name
}
