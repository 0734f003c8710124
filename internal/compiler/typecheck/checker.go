package typecheck

import (
	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/compiler/types"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// Checker walks a Core module's functions, one at a time, in a fresh
// lexical scope per function.
type Checker struct {
	ctx   *Context
	scope map[string]types.Type
	diags []diagnostics.Diagnostic
}

// Check runs the full two-pass walk over mod and returns every
// diagnostic collected by the collect pass and each function check.
func Check(mod *core.Module) []diagnostics.Diagnostic {
	ctx, diags := CollectContext(mod)
	c := &Checker{ctx: ctx, diags: diags}
	for _, d := range mod.Decls {
		if fn, ok := d.(*core.Func); ok {
			c.checkFunc(fn)
		}
	}
	return c.diags
}

func (c *Checker) report(d diagnostics.Diagnostic) { c.diags = append(c.diags, d) }

func (c *Checker) checkFunc(fn *core.Func) {
	c.scope = map[string]types.Type{}
	for _, p := range fn.Params {
		c.scope[p.Name] = c.resolveType(p.Type)
	}

	retType := c.resolveType(fn.RetType)
	returns := c.checkBlock(fn.Body)

	if fn.RetType == nil {
		return
	}
	for _, r := range returns {
		if r.value == nil {
			continue
		}
		if !types.Assignable(retType, r.value, false) {
			c.report(diagnostics.Errorf("S101", r.origin,
				"returned type %s is not assignable to declared return type %s", r.value, retType))
		}
	}
}

// returnPoint records one Return statement's expression type (nil for a
// bare `return.`) together with its origin, for the post-body
// assignability check against the declared return type.
type returnPoint struct {
	value  types.Type
	origin core.Origin
}

// checkBlock type-checks every statement in stmts in sequence and
// collects every Return reachable (directly or through nested If/Match/
// ForEach/Workflow bodies) for the caller's return-type check.
func (c *Checker) checkBlock(stmts []core.Stmt) []returnPoint {
	var out []returnPoint
	for _, s := range stmts {
		out = append(out, c.checkStmt(s)...)
	}
	return out
}

func (c *Checker) checkStmt(s core.Stmt) []returnPoint {
	switch n := s.(type) {
	case *core.Let:
		c.scope[n.Name] = c.checkExpr(n.Value)
		return nil
	case *core.Set:
		c.checkExpr(n.Target)
		c.checkExpr(n.Value)
		return nil
	case *core.Return:
		if n.Value == nil {
			return []returnPoint{{origin: n.Orig}}
		}
		return []returnPoint{{value: c.checkExpr(n.Value), origin: n.Orig}}
	case *core.If:
		c.checkExpr(n.Cond)
		out := c.checkBlock(n.Then)
		out = append(out, c.checkBlock(n.Else)...)
		return out
	case *core.Match:
		c.checkExpr(n.Expr)
		var out []returnPoint
		for _, mc := range n.Cases {
			out = append(out, c.checkBlock(mc.Body)...)
		}
		return out
	case *core.ForEach:
		c.checkExpr(n.Iterable)
		prior, had := c.scope[n.Binder]
		c.scope[n.Binder] = types.NewPrimitiveType(types.Unknown)
		out := c.checkBlock(n.Body)
		if had {
			c.scope[n.Binder] = prior
		} else {
			delete(c.scope, n.Binder)
		}
		return out
	case *core.Start:
		c.scope[n.Name] = c.checkExpr(n.Expr)
		return nil
	case *core.Wait:
		return nil
	case *core.Workflow:
		var out []returnPoint
		for _, step := range n.Steps {
			out = append(out, c.checkBlock(step.Body)...)
			out = append(out, c.checkBlock(step.Compensate)...)
		}
		return out
	case *core.Scope:
		return c.checkBlock(n.Body)
	case *core.Block:
		return c.checkBlock(n.Stmts)
	case *core.ExprStmt:
		c.checkExpr(n.Expr)
		return nil
	default:
		return nil
	}
}
