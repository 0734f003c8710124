package lowering

import (
	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/core"
)

func (lw *lowerer) lowerType(t ast.TypeExpr) core.TypeExpr {
	if t == nil {
		return nil
	}
	switch n := t.(type) {
	case *ast.TypeName:
		return &core.TypeName{Name: n.Name, Orig: lw.origin(n.Loc)}
	case *ast.TypeVar:
		return &core.TypeVar{Name: n.Name, Orig: lw.origin(n.Loc)}
	case *ast.EffectVar:
		return &core.EffectVar{Name: n.Name, Orig: lw.origin(n.Loc)}
	case *ast.TypeApp:
		app := &core.TypeApp{Base: lw.lowerType(n.Base), Orig: lw.origin(n.Loc)}
		for _, a := range n.Args {
			app.Args = append(app.Args, lw.lowerType(a))
		}
		return app
	case *ast.Maybe:
		return &core.Maybe{Base: lw.lowerType(n.Base), Orig: lw.origin(n.Loc)}
	case *ast.Option:
		return &core.Option{Elem: lw.lowerType(n.Elem), Orig: lw.origin(n.Loc)}
	case *ast.Result:
		return &core.Result{Ok: lw.lowerType(n.Ok), Err: lw.lowerType(n.Err), Orig: lw.origin(n.Loc)}
	case *ast.List:
		return &core.List{Elem: lw.lowerType(n.Elem), Orig: lw.origin(n.Loc)}
	case *ast.Map:
		return &core.Map{Key: lw.lowerType(n.Key), Val: lw.lowerType(n.Val), Orig: lw.origin(n.Loc)}
	case *ast.FuncType:
		ft := &core.FuncType{Ret: lw.lowerType(n.Ret), EffectParams: n.EffectParams, Orig: lw.origin(n.Loc)}
		for _, p := range n.Params {
			ft.Params = append(ft.Params, lw.lowerType(p))
		}
		ft.DeclaredEffects = lw.lowerEffects(n.DeclaredEffects, n.Loc)
		return ft
	case *ast.TypePii:
		return &core.TypePii{
			Base:     lw.lowerType(n.Base),
			Level:    core.PiiLevel(n.Level),
			Category: core.PiiCategory(n.Category),
			Orig:     lw.origin(n.Loc),
		}
	default:
		lw.report("L104", "type expression has no Core lowering", t.Span().Start.Line, t.Span().Start.Column)
		return nil
	}
}
