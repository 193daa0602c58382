package irgen

import "fmt"

// BasicBlock is a single label plus its ordered instruction lines. The
// printer is responsible for turning Lines into text; the builder only
// ever appends to the last block under the current insert point.
type BasicBlock struct {
	Name       string
	Lines      []string
	Terminated bool
}

// Function is either a definition (Blocks non-empty) or a declaration
// (Extern true, Blocks empty) — spec.md §4.3's extern functions lower
// to the latter.
type Function struct {
	Name       string
	ReturnType *Type
	Params     []*Value
	Extern     bool
	Variadic   bool
	Blocks     []*BasicBlock

	nextReg   int
	nextBlock int
}

// Global is a module-level variable: either a definition with an
// initializer or an extern declaration.
type Global struct {
	Name    string
	Type    *Type
	Init    string
	Extern  bool
	IsConst bool
}

// Module is the whole compilation unit the lowerer builds and the
// printer serializes to the backend's textual form.
type Module struct {
	Name string

	structOrder []string
	structs     map[string]*StructDef

	globalOrder []string
	globals     map[string]*Global

	funcOrder []string
	funcs     map[string]*Function

	stringCounter int
}

// NewModule returns an empty module named name.
func NewModule(name string) *Module {
	return &Module{
		Name:    name,
		structs: map[string]*StructDef{},
		globals: map[string]*Global{},
		funcs:   map[string]*Function{},
	}
}

// DeclareStruct registers (or returns the existing) named struct type.
// Fields are filled in afterward by the caller via SetBody, mirroring
// the original's two-phase "create identified struct, then set body"
// sequence so that self-referential (pointer) fields can be built.
func (m *Module) DeclareStruct(name string) *StructDef {
	name = sanitizeName(name)
	if sd, ok := m.structs[name]; ok {
		return sd
	}
	sd := &StructDef{Name: name}
	m.structs[name] = sd
	m.structOrder = append(m.structOrder, name)
	return sd
}

// GetStruct looks up a previously declared struct by name.
func (m *Module) GetStruct(name string) (*StructDef, bool) {
	sd, ok := m.structs[name]
	return sd, ok
}

// SetBody fills in a previously declared struct's field list.
func (sd *StructDef) SetBody(fields []*Type) {
	sd.Fields = fields
}

// DeclareFunction registers a function signature. If extern is true no
// blocks are created and the function prints as a declaration.
func (m *Module) DeclareFunction(name string, ret *Type, paramTypes []*Type, paramNames []string, variadic, extern bool) *Function {
	name = sanitizeName(name)
	if fn, ok := m.funcs[name]; ok {
		return fn
	}
	fn := &Function{
		Name:       name,
		ReturnType: ret,
		Extern:     extern,
		Variadic:   variadic,
	}
	for i, pt := range paramTypes {
		pname := ""
		if i < len(paramNames) {
			pname = paramNames[i]
		}
		fn.Params = append(fn.Params, &Value{Ref: "%" + pname, Type: pt})
	}
	m.funcs[name] = fn
	m.funcOrder = append(m.funcOrder, name)
	return fn
}

// GetFunction looks up a previously declared function by name.
func (m *Module) GetFunction(name string) (*Function, bool) {
	fn, ok := m.funcs[name]
	return fn, ok
}

// DefineGlobal registers a module-level variable. initText is the
// already-rendered constant initializer text (e.g. "0", "zeroinitializer").
func (m *Module) DefineGlobal(name string, t *Type, initText string, extern bool) *Value {
	name = sanitizeName(name)
	if g, ok := m.globals[name]; !ok {
		g = &Global{Name: name, Type: t, Init: initText, Extern: extern}
		m.globals[name] = g
		m.globalOrder = append(m.globalOrder, name)
	}
	return &Value{Ref: "@" + name, Type: PointerTo(t)}
}

// nextStringName returns a fresh unique name for a string-literal
// global, e.g. ".str.3".
func (m *Module) nextStringName() string {
	n := fmt.Sprintf(".str.%d", m.stringCounter)
	m.stringCounter++
	return n
}

// declareStringGlobal registers an anonymous constant byte-array
// global for s and returns its name and array-type text, shared by
// Builder.GlobalString (instruction form, for use inside a function
// body) and DefineStringConstant (constant-expr form, for global
// initializers where there's no insertion point to emit into).
func (m *Module) declareStringGlobal(s string) (name, arrTypeText string) {
	name = m.nextStringName()
	arrTypeText = fmt.Sprintf("[%d x i8]", len(s)+1)
	g := &Global{Name: name, Type: ArrayOf(TInt8, len(s)+1), Init: fmt.Sprintf("c%q\\00", s), IsConst: true}
	m.globals[name] = g
	m.globalOrder = append(m.globalOrder, name)
	return name, arrTypeText
}

// DefineStringConstant registers s as an anonymous global and returns
// a constant getelementptr expression referencing its first byte,
// suitable for use as another global's initializer text.
func (m *Module) DefineStringConstant(s string) string {
	name, arrTypeText := m.declareStringGlobal(s)
	return fmt.Sprintf("getelementptr inbounds (%s, %s* @%s, i32 0, i32 0)", arrTypeText, arrTypeText, name)
}
