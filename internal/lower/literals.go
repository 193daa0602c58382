package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
)

func (l *Lowerer) lowerNumber(n *ast.Number) *irgen.Value {
	return l.B.ConstantFloat(float64(n.Value))
}

func (l *Lowerer) lowerInteger(i *ast.Integer) *irgen.Value {
	return l.B.ConstantInt(irgen.TInt32, int64(i.Value))
}

func (l *Lowerer) lowerBool(b *ast.Bool) *irgen.Value {
	return l.B.ConstantBool(b.Value)
}

func (l *Lowerer) lowerByte(b *ast.Byte) *irgen.Value {
	return l.B.ConstantInt(irgen.TInt8, int64(b.Value))
}

// lowerString emits the byte sequence as a global array and returns an
// in-bounds GEP to its first byte, typed i8* (textual type "@byte").
func (l *Lowerer) lowerString(s *ast.StringLit) *irgen.Value {
	return l.B.GlobalString(s.Value)
}
