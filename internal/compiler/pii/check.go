package pii

import (
	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// Check runs the taint analyzer over every function in mod. strict
// selects the workspace's enforcement mode: under strict mode, PII
// reaching an HTTP, database, or file sink is an error rather than a
// warning; console sinks and PII_MISSING_CONSENT_CHECK stay warnings.
func Check(mod *core.Module, strict bool) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	for _, d := range mod.Decls {
		fn, ok := d.(*core.Func)
		if !ok {
			continue
		}
		diags = append(diags, checkFunc(fn, strict)...)
	}
	return diags
}

func checkFunc(fn *core.Func, strict bool) []diagnostics.Diagnostic {
	e := env{}
	piiParams := false
	for _, p := range fn.Params {
		if isPiiType(p.Type) {
			e[p.Name] = true
			piiParams = true
		}
	}

	w := &walker{strict: strict}
	w.stmts(e, fn.Body)

	if piiParams && !hasConsentCheck(fn.Body) {
		w.diags = append(w.diags, diagnostics.Warnf("PII_MISSING_CONSENT_CHECK", fn.Orig,
			"%s processes PII parameters without a recognized consent check", fn.Name))
	}

	return w.diags
}

// hasConsentCheck reports whether stmts invoke a recognized consent
// check anywhere in the function body.
func hasConsentCheck(stmts []core.Stmt) bool {
	found := false
	var walkStmts func([]core.Stmt)
	var walkExpr func(core.Expr)

	walkExpr = func(e core.Expr) {
		if found || e == nil {
			return
		}
		switch n := e.(type) {
		case *core.Call:
			if isConsentCall(n.Target) {
				found = true
				return
			}
			for _, a := range n.Args {
				walkExpr(a)
			}
		case *core.Construct:
			for _, f := range n.Fields {
				walkExpr(f.Value)
			}
		case *core.Ok:
			walkExpr(n.Value)
		case *core.Err:
			walkExpr(n.Value)
		case *core.Some:
			walkExpr(n.Value)
		case *core.Lambda:
			walkStmts(n.Body)
		case *core.Await:
			walkExpr(n.Value)
		case *core.Binary:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *core.Unary:
			walkExpr(n.Operand)
		}
	}

	walkStmts = func(stmts []core.Stmt) {
		for _, s := range stmts {
			if found {
				return
			}
			switch n := s.(type) {
			case *core.Let:
				walkExpr(n.Value)
			case *core.Set:
				walkExpr(n.Value)
			case *core.Return:
				walkExpr(n.Value)
			case *core.If:
				walkExpr(n.Cond)
				walkStmts(n.Then)
				walkStmts(n.Else)
			case *core.Match:
				walkExpr(n.Expr)
				for _, mc := range n.Cases {
					walkStmts(mc.Body)
				}
			case *core.ForEach:
				walkExpr(n.Iterable)
				walkStmts(n.Body)
			case *core.Start:
				walkExpr(n.Expr)
			case *core.Scope:
				walkStmts(n.Body)
			case *core.Workflow:
				for _, step := range n.Steps {
					walkStmts(step.Body)
					walkStmts(step.Compensate)
				}
			case *core.Block:
				walkStmts(n.Stmts)
			case *core.ExprStmt:
				walkExpr(n.Expr)
			}
		}
	}

	walkStmts(stmts)
	return found
}
