package typecheck

import (
	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/compiler/types"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// primitiveNames maps the surface/lexicon type-name spelling to its
// types.Type primitive constant.
var primitiveNames = map[string]string{
	"text":      types.Text,
	"int":       types.Int,
	"long":      types.Long,
	"float":     types.Float,
	"double":    types.Double,
	"bool":      types.Bool,
	"timestamp": types.DateTime,
	"datetime":  types.DateTime,
}

// resolveType converts a Core type expression to a structural types.Type
// against ctx's declared Data/Enum names. An unresolved TypeName
// reports S004 and resolves to Unknown so checking can continue.
func (c *Checker) resolveType(t core.TypeExpr) types.Type {
	if t == nil {
		return types.NewPrimitiveType(types.Unknown)
	}
	switch n := t.(type) {
	case *core.TypeName:
		if prim, ok := primitiveNames[n.Name]; ok {
			return types.NewPrimitiveType(prim)
		}
		if data, ok := c.ctx.Data[n.Name]; ok {
			return &types.Named{Name: data.Name}
		}
		if enum, ok := c.ctx.Enums[n.Name]; ok {
			return &types.EnumType{Name: enum.Name, Variants: enum.Variants}
		}
		c.report(diagnostics.Errorf("S004", n.Orig, "undefined type %q", n.Name))
		return types.NewPrimitiveType(types.Unknown)
	case *core.TypeVar:
		return &types.TypeVar{Name: n.Name}
	case *core.EffectVar:
		return &types.EffectVarType{Name: n.Name}
	case *core.Maybe:
		return &types.Maybe{Base: c.resolveType(n.Base)}
	case *core.Option:
		return &types.Option{Elem: c.resolveType(n.Elem)}
	case *core.Result:
		r := &types.Result{Ok: c.resolveType(n.Ok)}
		if n.Err != nil {
			r.Err = c.resolveType(n.Err)
		}
		return r
	case *core.List:
		return &types.List{Elem: c.resolveType(n.Elem)}
	case *core.Map:
		return &types.MapType{Key: c.resolveType(n.Key), Val: c.resolveType(n.Val)}
	case *core.FuncType:
		ft := &types.FuncType{Ret: c.resolveType(n.Ret), EffectParams: n.EffectParams, DeclaredEffects: n.DeclaredEffects}
		for _, p := range n.Params {
			ft.Params = append(ft.Params, c.resolveType(p))
		}
		return ft
	case *core.TypePii:
		return &types.Pii{Base: c.resolveType(n.Base), Level: n.Level, Category: n.Category}
	default:
		return types.NewPrimitiveType(types.Unknown)
	}
}
