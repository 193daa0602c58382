package irgen

import (
	"fmt"
	"strings"
)

// String renders the module in the backend's textual SSA form: struct
// type definitions, then globals, then function declarations and
// definitions, in the order they were created.
func (m *Module) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; module %s\n\n", m.Name)

	for _, name := range m.structOrder {
		sd := m.structs[name]
		fields := make([]string, len(sd.Fields))
		for i, f := range sd.Fields {
			fields[i] = f.String()
		}
		fmt.Fprintf(&sb, "%%%s = type { %s }\n", name, strings.Join(fields, ", "))
	}
	if len(m.structOrder) > 0 {
		sb.WriteString("\n")
	}

	for _, name := range m.globalOrder {
		g := m.globals[name]
		if g.Extern {
			fmt.Fprintf(&sb, "@%s = external global %s\n", g.Name, g.Type)
			continue
		}
		qual := "global"
		if g.IsConst {
			qual = "constant"
		}
		fmt.Fprintf(&sb, "@%s = %s %s %s\n", g.Name, qual, g.Type, g.Init)
	}
	if len(m.globalOrder) > 0 {
		sb.WriteString("\n")
	}

	for _, name := range m.funcOrder {
		fn := m.funcs[name]
		sb.WriteString(fn.signature())
		if fn.Extern {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(" {\n")
		for _, bb := range fn.Blocks {
			fmt.Fprintf(&sb, "%s:\n", bb.Name)
			for _, line := range bb.Lines {
				fmt.Fprintf(&sb, "  %s\n", line)
			}
		}
		sb.WriteString("}\n\n")
	}

	return sb.String()
}

func (fn *Function) signature() string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Type.String() + " " + p.Ref
	}
	if fn.Variadic {
		params = append(params, "...")
	}
	kw := "define"
	if fn.Extern {
		kw = "declare"
	}
	return fmt.Sprintf("%s %s @%s(%s)", kw, fn.ReturnType, fn.Name, strings.Join(params, ", "))
}
