package meta

import (
	"fmt"
	"strings"

	"github.com/lppc/luapp/internal/ast"
)

// goType maps a luapp textual type name to the Go type the
// translated source uses to carry it through the interpreter. Meta
// code manipulates scalars and strings to drive code generation
// decisions; it never needs pointer or struct arithmetic, so anything
// else collapses to interface{}.
func goType(name string) string {
	switch name {
	case "", "void":
		return ""
	case "int":
		return "int32"
	case "float":
		return "float32"
	case "bool":
		return "bool"
	case "byte":
		return "int8"
	case "string", "@byte":
		return "string"
	default:
		return "interface{}"
	}
}

// Translate renders a Meta block's sub-AST as Go source. Top-level
// Function definitions become package-level func declarations (so
// they can call each other and be called from the body); everything
// else is sequenced inside an init func, which yaegi's Eval runs
// automatically once the source is loaded.
func Translate(body []ast.Expr) string {
	var decls, stmts strings.Builder
	for _, e := range body {
		if fn, ok := e.(*ast.Function); ok {
			decls.WriteString(translateFunction(fn))
			decls.WriteString("\n")
			continue
		}
		stmts.WriteString(translateStmt(e, 1))
	}

	var out strings.Builder
	out.WriteString("package main\n\n")
	out.WriteString("import \"luapp.internal/metahost\"\n\n")
	out.WriteString(decls.String())
	out.WriteString("func init() {\n")
	out.WriteString(stmts.String())
	out.WriteString("}\n")
	return out.String()
}

func translateFunction(fn *ast.Function) string {
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, fmt.Sprintf("%s %s", p.Name, goType(p.Type)))
	}
	ret := goType(fn.ReturnType)
	sig := fmt.Sprintf("func %s(%s) %s {\n", fn.Name, strings.Join(params, ", "), ret)
	var body strings.Builder
	for _, e := range fn.Body {
		body.WriteString(translateStmt(e, 1))
	}
	return sig + body.String() + "}\n"
}

func indent(depth int) string { return strings.Repeat("\t", depth) }

// translateStmt renders one top-level or block-level form. Label and
// Goto have no structured Go equivalent and a nested ClassDef or Meta
// makes no sense inside a meta script, so all four are emitted as a
// comment rather than silently dropped.
func translateStmt(e ast.Expr, depth int) string {
	pad := indent(depth)
	switch v := e.(type) {
	case *ast.VariableDef:
		typ := goType(v.Type)
		if v.Initial != nil {
			return fmt.Sprintf("%svar %s %s = %s\n", pad, v.Name, typ, translateExpr(v.Initial))
		}
		return fmt.Sprintf("%svar %s %s\n", pad, v.Name, typ)
	case *ast.Return:
		if v.Value == nil {
			return pad + "return\n"
		}
		return fmt.Sprintf("%sreturn %s\n", pad, translateExpr(v.Value))
	case *ast.If:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%sif %s {\n", pad, translateExpr(v.Head)))
		for _, s := range v.Body {
			b.WriteString(translateStmt(s, depth+1))
		}
		if len(v.Else) > 0 {
			b.WriteString(pad + "} else {\n")
			for _, s := range v.Else {
				b.WriteString(translateStmt(s, depth+1))
			}
		}
		b.WriteString(pad + "}\n")
		return b.String()
	case *ast.While:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%sfor %s {\n", pad, translateExpr(v.Head)))
		for _, s := range v.Body {
			b.WriteString(translateStmt(s, depth+1))
		}
		b.WriteString(pad + "}\n")
		return b.String()
	case *ast.For:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%sfor %s; %s; %s {\n", pad,
			strings.TrimRight(strings.TrimLeft(translateStmt(v.Init, 0), "\t"), "\n"),
			translateExpr(v.Cond),
			strings.TrimRight(strings.TrimLeft(translateStmt(v.Inc, 0), "\t"), "\n")))
		for _, s := range v.Body {
			b.WriteString(translateStmt(s, depth+1))
		}
		b.WriteString(pad + "}\n")
		return b.String()
	case *ast.Label, *ast.Goto, *ast.ClassDef, *ast.Meta:
		return fmt.Sprintf("%s// unsupported inside a meta block: %T\n", pad, v)
	default:
		return fmt.Sprintf("%s%s\n", pad, translateExpr(e))
	}
}

func translateExpr(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Integer:
		return fmt.Sprintf("int32(%d)", v.Value)
	case *ast.Number:
		return fmt.Sprintf("float32(%g)", v.Value)
	case *ast.Bool:
		if v.Value {
			return "true"
		}
		return "false"
	case *ast.Byte:
		return fmt.Sprintf("int8(%d)", v.Value)
	case *ast.StringLit:
		return fmt.Sprintf("%q", v.Value)
	case *ast.Variable:
		return translateVariable(v)
	case *ast.BinaryOp:
		return translateBinaryOp(v)
	case *ast.UnaryOp:
		return translateUnaryOp(v)
	case *ast.FunctionCall:
		return translateCall(v.Name, v.Args)
	default:
		return fmt.Sprintf("/* unsupported expr %T */", v)
	}
}

func translateVariable(v *ast.Variable) string {
	expr := v.Name
	if v.Index != nil {
		expr = fmt.Sprintf("%s[%s]", expr, translateExpr(v.Index))
	}
	if v.Field != nil {
		expr = expr + "." + translateVariable(v.Field)
	}
	if v.Call != nil {
		expr = expr + "." + translateCall(v.Call.Name, v.Call.Args)
	}
	return expr
}

func translateCall(name string, args []ast.Expr) string {
	rendered := make([]string, 0, len(args))
	for _, a := range args {
		rendered = append(rendered, translateExpr(a))
	}
	switch name {
	case "DefineGlobal", "Require", "Include":
		return fmt.Sprintf("metahost.%s(%s)", name, strings.Join(rendered, ", "))
	default:
		return fmt.Sprintf("%s(%s)", name, strings.Join(rendered, ", "))
	}
}

// binaryOps maps luapp's textual operators to Go's; "~=" is the one
// spelling that differs (Go has no tilde-negation operator).
var binaryOps = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/",
	"<": "<", ">": ">", "<=": "<=", ">=": ">=",
	"==": "==", "~=": "!=", "=": "=",
}

func translateBinaryOp(v *ast.BinaryOp) string {
	op, ok := binaryOps[v.Op]
	if !ok {
		op = v.Op
	}
	return fmt.Sprintf("(%s %s %s)", translateExpr(v.Left), op, translateExpr(v.Right))
}

func translateUnaryOp(v *ast.UnaryOp) string {
	switch v.Op {
	case "~":
		return fmt.Sprintf("(!%s)", translateExpr(v.Value))
	case "-":
		return fmt.Sprintf("(-%s)", translateExpr(v.Value))
	case "@":
		return fmt.Sprintf("(&%s)", translateExpr(v.Value))
	case "$":
		return fmt.Sprintf("(*%s)", translateExpr(v.Value))
	default:
		return fmt.Sprintf("(%s%s)", v.Op, translateExpr(v.Value))
	}
}
