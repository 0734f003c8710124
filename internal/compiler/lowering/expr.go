package lowering

import (
	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/core"
)

func (lw *lowerer) lowerExpr(e ast.Expr) core.Expr {
	switch n := e.(type) {
	case *ast.Name:
		return &core.Name{Value: n.Value, Orig: lw.origin(n.Loc)}
	case *ast.Bool:
		return &core.Bool{Value: n.Value, Orig: lw.origin(n.Loc)}
	case *ast.Int:
		return &core.Int{Value: n.Value, Orig: lw.origin(n.Loc)}
	case *ast.Long:
		return &core.Long{Value: n.Value, Orig: lw.origin(n.Loc)}
	case *ast.Double:
		return &core.Double{Value: n.Value, Orig: lw.origin(n.Loc)}
	case *ast.String:
		return &core.String{Value: n.Value, Orig: lw.origin(n.Loc)}
	case *ast.NullExpr:
		return &core.NullExpr{Orig: lw.origin(n.Loc)}
	case *ast.Call:
		out := &core.Call{Target: n.Target, Orig: lw.origin(n.Loc)}
		for _, a := range n.Args {
			out.Args = append(out.Args, lw.lowerExpr(a))
		}
		return out
	case *ast.Construct:
		out := &core.Construct{TypeName: n.TypeName, Orig: lw.origin(n.Loc)}
		for _, f := range n.Fields {
			out.Fields = append(out.Fields, core.FieldInit{Name: f.Name, Value: lw.lowerExpr(f.Value)})
		}
		return out
	case *ast.Ok:
		return &core.Ok{Value: lw.lowerExpr(n.Value), Orig: lw.origin(n.Loc)}
	case *ast.Err:
		return &core.Err{Value: lw.lowerExpr(n.Value), Orig: lw.origin(n.Loc)}
	case *ast.Some:
		return &core.Some{Value: lw.lowerExpr(n.Value), Orig: lw.origin(n.Loc)}
	case *ast.None:
		return &core.None{Orig: lw.origin(n.Loc)}
	case *ast.Lambda:
		out := &core.Lambda{RetType: lw.lowerType(n.RetType), Orig: lw.origin(n.Loc)}
		for _, p := range n.Params {
			out.Params = append(out.Params, &core.Parameter{Name: p.Name, Type: lw.lowerType(p.Type), Orig: lw.origin(p.Loc)})
		}
		for _, s := range n.Body {
			out.Body = append(out.Body, lw.lowerStmt(s))
		}
		return out
	case *ast.Await:
		return &core.Await{Value: lw.lowerExpr(n.Value), Orig: lw.origin(n.Loc)}
	case *ast.Binary:
		out := &core.Binary{Op: n.Op, Left: lw.lowerExpr(n.Left), Right: lw.lowerExpr(n.Right), Orig: lw.origin(n.Loc)}
		return foldConstant(out)
	case *ast.Unary:
		out := &core.Unary{Op: n.Op, Operand: lw.lowerExpr(n.Operand), Orig: lw.origin(n.Loc)}
		return foldConstant(out)
	default:
		lw.report("L101", "expression has no Core lowering", e.Span().Start.Line, e.Span().Start.Column)
		return &core.NullExpr{Orig: lw.origin(e.Span())}
	}
}
