package lowering

import (
	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/core"
)

func (lw *lowerer) lowerPattern(p ast.Pattern) core.Pattern {
	switch n := p.(type) {
	case *ast.NullPattern:
		return &core.NullPattern{Orig: lw.origin(n.Loc)}
	case *ast.CtorPattern:
		out := &core.CtorPattern{TypeName: n.TypeName, Names: n.Names, Orig: lw.origin(n.Loc)}
		for _, a := range n.Args {
			out.Args = append(out.Args, lw.lowerPattern(a))
		}
		return out
	case *ast.NamePattern:
		return &core.NamePattern{Name: n.Name, Orig: lw.origin(n.Loc)}
	case *ast.IntPattern:
		return &core.IntPattern{Value: n.Value, Orig: lw.origin(n.Loc)}
	default:
		lw.report("L105", "pattern has no Core lowering", p.Span().Start.Line, p.Span().Start.Column)
		return &core.NullPattern{Orig: lw.origin(p.Span())}
	}
}

func (lw *lowerer) lowerConstraint(c ast.Constraint) core.Constraint {
	switch n := c.(type) {
	case *ast.RequiredConstraint:
		return &core.RequiredConstraint{Orig: lw.origin(n.Loc)}
	case *ast.RangeConstraint:
		return &core.RangeConstraint{Min: n.Min, Max: n.Max, Orig: lw.origin(n.Loc)}
	case *ast.PatternConstraint:
		return &core.PatternConstraint{Regexp: n.Regexp, Orig: lw.origin(n.Loc)}
	default:
		lw.report("L106", "constraint has no Core lowering", c.Span().Start.Line, c.Span().Start.Column)
		return nil
	}
}
