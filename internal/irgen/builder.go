package irgen

import "fmt"

// Builder emits instructions into the block at the current insert
// point, the same one-cursor-at-a-time model the lowerer steps
// through a function body with.
type Builder struct {
	Mod *Module
	Fn  *Function
	BB  *BasicBlock
}

// NewBuilder returns a builder with no function/block selected yet;
// SetInsertPoint or NewBlock must be called before emitting.
func NewBuilder(mod *Module) *Builder {
	return &Builder{Mod: mod}
}

// SetInsertPoint moves subsequent emission to fn/bb, appending bb to
// fn's blocks if it is not already one of them.
func (b *Builder) SetInsertPoint(fn *Function, bb *BasicBlock) {
	b.Fn = fn
	b.BB = bb
	if fn == nil || bb == nil {
		return
	}
	for _, existing := range fn.Blocks {
		if existing == bb {
			return
		}
	}
	fn.Blocks = append(fn.Blocks, bb)
}

// NewBlock appends a fresh, empty block to the current function and
// returns it without switching the insert point to it — callers
// switch explicitly once they're ready to emit into it, so that
// forward-referenced blocks (if/while targets) can be created before
// they're filled in. With no current function yet, the block is
// returned detached and named after hint alone; SetInsertPoint then
// appends it to the function it is selected in.
func (b *Builder) NewBlock(hint string) *BasicBlock {
	if b.Fn == nil {
		return &BasicBlock{Name: hint}
	}
	name := fmt.Sprintf("%s.%d", hint, b.Fn.nextBlock)
	b.Fn.nextBlock++
	bb := &BasicBlock{Name: name}
	b.Fn.Blocks = append(b.Fn.Blocks, bb)
	return bb
}

func (b *Builder) emit(line string) {
	b.BB.Lines = append(b.BB.Lines, line)
}

func (b *Builder) newReg(t *Type) *Value {
	ref := fmt.Sprintf("%%%d", b.Fn.nextReg)
	b.Fn.nextReg++
	return &Value{Ref: ref, Type: t}
}

// CreateAlloca emits a stack allocation and returns a pointer-to-t value.
func (b *Builder) CreateAlloca(t *Type, hint string) *Value {
	v := b.newReg(PointerTo(t))
	b.emit(fmt.Sprintf("%s = alloca %s ; %s", v.Ref, t, hint))
	return v
}

// CreateLoad dereferences ptr, recording ptr on the result's Addr
// field so callers can recover the address later (spec.md §4.3).
func (b *Builder) CreateLoad(ptr *Value, hint string) *Value {
	elem := ptr.Type.Elem
	v := b.newReg(elem)
	v.Addr = ptr
	b.emit(fmt.Sprintf("%s = load %s, %s %s ; %s", v.Ref, elem, ptr.Type, ptr.Ref, hint))
	return v
}

// CreateStore writes val through ptr.
func (b *Builder) CreateStore(val, ptr *Value) {
	b.emit(fmt.Sprintf("store %s %s, %s %s", val.Type, val.Ref, ptr.Type, ptr.Ref))
}

func (b *Builder) binOp(op string, l, r *Value, resultType *Type, hint string) *Value {
	v := b.newReg(resultType)
	b.emit(fmt.Sprintf("%s = %s %s %s, %s ; %s", v.Ref, op, l.Type, l.Ref, r.Ref, hint))
	return v
}

// Arithmetic result types come from r, not l: lowerArith's float/int
// dispatch is itself keyed on the right operand's type (spec.md §4.4's
// tie-breaker), so the emitted value's type tracks the same operand
// that chose which instruction got emitted.
func (b *Builder) CreateAdd(l, r *Value, hint string) *Value  { return b.binOp("add", l, r, r.Type, hint) }
func (b *Builder) CreateFAdd(l, r *Value, hint string) *Value { return b.binOp("fadd", l, r, r.Type, hint) }
func (b *Builder) CreateSub(l, r *Value, hint string) *Value  { return b.binOp("sub", l, r, r.Type, hint) }
func (b *Builder) CreateFSub(l, r *Value, hint string) *Value { return b.binOp("fsub", l, r, r.Type, hint) }
func (b *Builder) CreateMul(l, r *Value, hint string) *Value  { return b.binOp("mul", l, r, r.Type, hint) }
func (b *Builder) CreateFMul(l, r *Value, hint string) *Value { return b.binOp("fmul", l, r, r.Type, hint) }
func (b *Builder) CreateSDiv(l, r *Value, hint string) *Value { return b.binOp("sdiv", l, r, r.Type, hint) }
func (b *Builder) CreateFDiv(l, r *Value, hint string) *Value { return b.binOp("fdiv", l, r, r.Type, hint) }

// CreateICmp emits an integer comparison; pred is an LLVM-style
// predicate mnemonic ("sgt", "slt", "sge", "sle", "eq", "ne").
func (b *Builder) CreateICmp(pred string, l, r *Value, hint string) *Value {
	v := b.newReg(TInt1)
	b.emit(fmt.Sprintf("%s = icmp %s %s %s, %s ; %s", v.Ref, pred, l.Type, l.Ref, r.Ref, hint))
	return v
}

// CreateFCmp emits a floating-point comparison; pred is an
// LLVM-style ordered predicate mnemonic ("ogt", "olt", "oge", "ole",
// "oeq", "one").
func (b *Builder) CreateFCmp(pred string, l, r *Value, hint string) *Value {
	v := b.newReg(TInt1)
	b.emit(fmt.Sprintf("%s = fcmp %s %s %s, %s ; %s", v.Ref, pred, l.Type, l.Ref, r.Ref, hint))
	return v
}

// CreateNot emits a boolean/bitwise complement (xor with all-ones).
func (b *Builder) CreateNot(v *Value) *Value {
	out := b.newReg(v.Type)
	b.emit(fmt.Sprintf("%s = xor %s %s, -1", out.Ref, v.Type, v.Ref))
	return out
}

// CreateNeg emits arithmetic negation, integer or float depending on v's type.
func (b *Builder) CreateNeg(v *Value) *Value {
	out := b.newReg(v.Type)
	if v.Type.IsFloat() {
		b.emit(fmt.Sprintf("%s = fneg %s %s", out.Ref, v.Type, v.Ref))
	} else {
		b.emit(fmt.Sprintf("%s = sub %s 0, %s", out.Ref, v.Type, v.Ref))
	}
	return out
}

// CreateStructGEP computes the address of a struct field by index,
// fixing field order to declaration order (spec.md §4.6).
func (b *Builder) CreateStructGEP(ptr *Value, fieldIndex int, resultType *Type, hint string) *Value {
	v := b.newReg(PointerTo(resultType))
	b.emit(fmt.Sprintf("%s = getelementptr inbounds %s, %s %s, i32 0, i32 %d ; %s",
		v.Ref, ptr.Type.Elem, ptr.Type, ptr.Ref, fieldIndex, hint))
	return v
}

// CreateGEP computes ptr+index (array-subscript style, one dynamic index).
func (b *Builder) CreateGEP(ptr, index *Value, resultType *Type, hint string) *Value {
	v := b.newReg(PointerTo(resultType))
	b.emit(fmt.Sprintf("%s = getelementptr inbounds %s, %s %s, %s %s ; %s",
		v.Ref, ptr.Type.Elem, ptr.Type, ptr.Ref, index.Type, index.Ref, hint))
	return v
}

// CreateArrayIndex computes the address of element index within a
// fixed-length array allocation, the two-index GEP form LLVM-style
// backends require for "[N x T]*" rather than the single-index form
// CreateGEP uses for a bare "T*".
func (b *Builder) CreateArrayIndex(ptr, index *Value, resultType *Type, hint string) *Value {
	v := b.newReg(PointerTo(resultType))
	b.emit(fmt.Sprintf("%s = getelementptr inbounds %s, %s %s, i32 0, %s %s ; %s",
		v.Ref, ptr.Type.Elem, ptr.Type, ptr.Ref, index.Type, index.Ref, hint))
	return v
}

// CreateBitCast reinterprets v's bits as t without changing size.
func (b *Builder) CreateBitCast(v *Value, t *Type) *Value {
	out := b.newReg(t)
	b.emit(fmt.Sprintf("%s = bitcast %s %s to %s", out.Ref, v.Type, v.Ref, t))
	return out
}

// CreatePointerCast reinterprets a pointer value as a different
// pointer type.
func (b *Builder) CreatePointerCast(v *Value, t *Type) *Value {
	out := b.newReg(t)
	b.emit(fmt.Sprintf("%s = bitcast %s %s to %s ; ptrcast", out.Ref, v.Type, v.Ref, t))
	return out
}

// CreateIntCast widens or narrows an integer to t, sign-extending on widen.
func (b *Builder) CreateIntCast(v *Value, t *Type) *Value {
	out := b.newReg(t)
	op := "trunc"
	if t.bitWidth() > v.Type.bitWidth() {
		op = "sext"
	}
	b.emit(fmt.Sprintf("%s = %s %s %s to %s", out.Ref, op, v.Type, v.Ref, t))
	return out
}

// CreatePtrToInt converts a pointer to an integer, used by `==`/`~=`
// to compare pointer operands as i32 (spec.md §4.4).
func (b *Builder) CreatePtrToInt(v *Value, t *Type) *Value {
	out := b.newReg(t)
	b.emit(fmt.Sprintf("%s = ptrtoint %s %s to %s", out.Ref, v.Type, v.Ref, t))
	return out
}

// CreateSIToFP converts a signed integer to float.
func (b *Builder) CreateSIToFP(v *Value, t *Type) *Value {
	out := b.newReg(t)
	b.emit(fmt.Sprintf("%s = sitofp %s %s to %s", out.Ref, v.Type, v.Ref, t))
	return out
}

// CreateFPToSI converts a float to a signed integer.
func (b *Builder) CreateFPToSI(v *Value, t *Type) *Value {
	out := b.newReg(t)
	b.emit(fmt.Sprintf("%s = fptosi %s %s to %s", out.Ref, v.Type, v.Ref, t))
	return out
}

// CreateBr emits an unconditional branch and terminates the block.
func (b *Builder) CreateBr(target *BasicBlock) {
	b.emit("br label %" + target.Name)
	b.BB.Terminated = true
}

// CreateCondBr emits a conditional branch and terminates the block.
func (b *Builder) CreateCondBr(cond *Value, then, els *BasicBlock) {
	b.emit(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", cond.Ref, then.Name, els.Name))
	b.BB.Terminated = true
}

// CreateCall emits a call to fn with args, returning its result value
// (TVoid-typed if fn has no return value).
func (b *Builder) CreateCall(fn *Function, args []*Value, hint string) *Value {
	argText := ""
	for i, a := range args {
		if i > 0 {
			argText += ", "
		}
		argText += fmt.Sprintf("%s %s", a.Type, a.Ref)
	}
	if fn.ReturnType.Kind == Void {
		b.emit(fmt.Sprintf("call %s @%s(%s) ; %s", fn.ReturnType, fn.Name, argText, hint))
		return &Value{Type: TVoid}
	}
	v := b.newReg(fn.ReturnType)
	b.emit(fmt.Sprintf("%s = call %s @%s(%s) ; %s", v.Ref, fn.ReturnType, fn.Name, argText, hint))
	return v
}

// CreateRet emits a value-returning terminator.
func (b *Builder) CreateRet(v *Value) {
	b.emit(fmt.Sprintf("ret %s %s", v.Type, v.Ref))
	b.BB.Terminated = true
}

// CreateRetVoid emits a void terminator.
func (b *Builder) CreateRetVoid() {
	b.emit("ret void")
	b.BB.Terminated = true
}

// ConstantInt returns an inline integer literal of type t; it emits no
// instruction since backend integer literals are valid operands directly.
func (b *Builder) ConstantInt(t *Type, v int64) *Value {
	return &Value{Ref: fmt.Sprintf("%d", v), Type: t}
}

// ConstantBool returns an inline i1 literal.
func (b *Builder) ConstantBool(v bool) *Value {
	if v {
		return &Value{Ref: "true", Type: TInt1}
	}
	return &Value{Ref: "false", Type: TInt1}
}

// ConstantFloat returns an inline float literal.
func (b *Builder) ConstantFloat(v float64) *Value {
	return &Value{Ref: fmt.Sprintf("%e", v), Type: TFloat32}
}

// ConstantNull returns an inline null pointer literal of type t.
func (b *Builder) ConstantNull(t *Type) *Value {
	return &Value{Ref: "null", Type: t}
}

// GlobalString defines a new string-literal global for s and returns a
// pointer to its first byte, the usual form for passing a string
// literal to a variadic function such as printf.
func (b *Builder) GlobalString(s string) *Value {
	name, arrTypeText := b.Mod.declareStringGlobal(s)
	v := b.newReg(PointerTo(TInt8))
	b.emit(fmt.Sprintf("%s = getelementptr inbounds %s, %s* @%s, i32 0, i32 0 ; %q", v.Ref, arrTypeText, arrTypeText, name, s))
	return v
}
