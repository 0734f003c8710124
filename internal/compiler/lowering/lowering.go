package lowering

import (
	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// Lower desugars mod into a Core module with every node re-rooted to an
// Origin carrying file. Dotted Name references are already joined with
// "." by the parser (parsePostfix); lowering passes them through
// unchanged, leaving alias resolution to the type checker.
func Lower(mod *ast.Module, file string) (*core.Module, []Diagnostic) {
	lw := &lowerer{file: file}
	out := &core.Module{Name: mod.Name, Orig: lw.origin(mod.Loc)}
	for _, d := range mod.Decls {
		if cd := lw.lowerDecl(d); cd != nil {
			out.Decls = append(out.Decls, cd)
		}
	}
	return out, lw.diag
}

func (lw *lowerer) origin(span ast.Span) core.Origin {
	return core.Origin{
		StartLine:   span.Start.Line,
		StartColumn: span.Start.Column,
		EndLine:     span.End.Line,
		EndColumn:   span.End.Column,
		File:        lw.file,
	}
}

func (lw *lowerer) lowerDecl(d ast.Decl) core.Decl {
	switch n := d.(type) {
	case *ast.Import:
		return &core.Import{Name: n.Name, As: n.As, Orig: lw.origin(n.Loc)}
	case *ast.Data:
		return lw.lowerData(n)
	case *ast.Enum:
		return &core.Enum{Name: n.Name, Variants: n.Variants, Orig: lw.origin(n.Loc)}
	case *ast.Func:
		return lw.lowerFunc(n)
	default:
		lw.report("L101", "top-level declaration has no Core lowering", d.Span().Start.Line, d.Span().Start.Column)
		return nil
	}
}

func (lw *lowerer) lowerData(n *ast.Data) *core.Data {
	out := &core.Data{Name: n.Name, Orig: lw.origin(n.Loc)}
	for _, f := range n.Fields {
		var constraints []core.Constraint
		for _, c := range f.Constraints {
			if cc := lw.lowerConstraint(c); cc != nil {
				constraints = append(constraints, cc)
			}
		}
		out.Fields = append(out.Fields, &core.Field{
			Name:         f.Name,
			Type:         lw.lowerType(f.Type),
			Constraints:  constraints,
			TypeInferred: f.TypeInferred,
			Orig:         lw.origin(f.Loc),
		})
	}
	return out
}

func (lw *lowerer) lowerFunc(n *ast.Func) *core.Func {
	out := &core.Func{
		Name:               n.Name,
		TypeParams:         n.TypeParams,
		EffectCapsExplicit: n.EffectCapsExplicit,
		RetType:            lw.lowerType(n.RetType),
		RetTypeInferred:    n.RetTypeInferred,
		Orig:               lw.origin(n.Loc),
	}
	for _, p := range n.Params {
		out.Params = append(out.Params, &core.Parameter{Name: p.Name, Type: lw.lowerType(p.Type), Orig: lw.origin(p.Loc)})
	}
	out.Effects = lw.lowerEffects(n.Effects, n.Loc)
	out.EffectCaps = lw.lowerCapabilities(n.EffectCaps, n.Loc)
	for _, s := range n.Body {
		out.Body = append(out.Body, lw.lowerStmt(s))
	}
	return out
}
