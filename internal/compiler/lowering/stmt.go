package lowering

import (
	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/core"
)

func (lw *lowerer) lowerBlock(stmts []ast.Stmt) []core.Stmt {
	var out []core.Stmt
	for _, s := range stmts {
		out = append(out, lw.lowerStmt(s))
	}
	return out
}

func (lw *lowerer) lowerStmt(s ast.Stmt) core.Stmt {
	switch n := s.(type) {
	case *ast.Let:
		return &core.Let{Name: n.Name, Value: lw.lowerExpr(n.Value), Orig: lw.origin(n.Loc)}
	case *ast.Set:
		return &core.Set{Target: lw.lowerExpr(n.Target), Value: lw.lowerExpr(n.Value), Orig: lw.origin(n.Loc)}
	case *ast.Return:
		var v core.Expr
		if n.Value != nil {
			v = lw.lowerExpr(n.Value)
		}
		return &core.Return{Value: v, Orig: lw.origin(n.Loc)}
	case *ast.If:
		return &core.If{
			Cond: lw.lowerExpr(n.Cond),
			Then: lw.lowerBlock(n.Then),
			Else: lw.lowerBlock(n.Else),
			Orig: lw.origin(n.Loc),
		}
	case *ast.Match:
		out := &core.Match{Expr: lw.lowerExpr(n.Expr), Orig: lw.origin(n.Loc)}
		for _, c := range n.Cases {
			out.Cases = append(out.Cases, &core.MatchCase{
				Pattern: lw.lowerPattern(c.Pattern),
				Body:    lw.lowerBlock(c.Body),
				Orig:    lw.origin(c.Loc),
			})
		}
		return out
	case *ast.ForEach:
		return &core.ForEach{
			Binder:   n.Binder,
			Iterable: lw.lowerExpr(n.Iterable),
			Body:     lw.lowerBlock(n.Body),
			Orig:     lw.origin(n.Loc),
		}
	case *ast.Start:
		return &core.Start{Name: n.Name, Expr: lw.lowerExpr(n.Expr), Orig: lw.origin(n.Loc)}
	case *ast.Wait:
		return &core.Wait{Names: n.Names, Orig: lw.origin(n.Loc)}
	case *ast.Workflow:
		return lw.lowerWorkflow(n)
	case *ast.Block:
		return &core.Block{Stmts: lw.lowerBlock(n.Stmts), Orig: lw.origin(n.Loc)}
	case *ast.ExprStmt:
		return &core.ExprStmt{Expr: lw.lowerExpr(n.Expr), Orig: lw.origin(n.Loc)}
	default:
		lw.report("L101", "statement has no Core lowering", s.Span().Start.Line, s.Span().Start.Column)
		return &core.Block{Orig: lw.origin(s.Span())}
	}
}

// lowerWorkflow rewrites a surface Workflow into its closed Core shape:
// each Step's dependencies, body, and compensate block are carried
// through unchanged and retry/timeout policy is carried as-is.
// Workflow.EffectCaps and Step.EffectCaps are left empty; the
// capability checker checks steps against the enclosing Func's
// EffectCaps instead.
func (lw *lowerer) lowerWorkflow(n *ast.Workflow) *core.Workflow {
	out := &core.Workflow{Orig: lw.origin(n.Loc)}
	for _, step := range n.Steps {
		out.Steps = append(out.Steps, &core.Step{
			Name:       step.Name,
			DependsOn:  step.DependsOn,
			Body:       lw.lowerBlock(step.Body),
			Compensate: lw.lowerBlock(step.Compensate),
			Orig:       lw.origin(step.Loc),
		})
	}
	if n.Retry != nil {
		out.Retry = &core.RetryClause{MaxAttempts: n.Retry.MaxAttempts, Backoff: n.Retry.Backoff, Orig: lw.origin(n.Retry.Loc)}
	}
	if n.Timeout != nil {
		out.Timeout = &core.TimeoutClause{Within: n.Timeout.Within, Orig: lw.origin(n.Timeout.Loc)}
	}
	return out
}
