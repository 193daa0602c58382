package lower

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/irgen"
	"github.com/lppc/luapp/internal/types"
)

// lowerTypeCast implements spec.md §4.4's TypeCast rule: a pointer
// target uses a pointer-cast; anything else uses a bit-cast, warning
// when the source and target aren't the same storage width.
func (l *Lowerer) lowerTypeCast(c *ast.TypeCast) *irgen.Value {
	v := l.Lower(c.Value)
	if v == nil {
		return nil
	}
	target, ok := types.Resolve(l.Mod, c.TargetType)
	if !ok {
		l.Diags.Error(c.Loc, "unknown type '%s'", c.TargetType)
		return nil
	}
	if target.IsPointer() {
		return l.B.CreatePointerCast(v, target)
	}
	if !v.Type.CanLosslesslyBitCast(target) {
		l.Diags.Warning(c.Loc, "converting '%s' to '%s' looses precision",
			types.TypeToString(v.Type), types.TypeToString(target))
	}
	return l.B.CreateBitCast(v, target)
}
