package pii

import (
	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// env is a flow-sensitive map of local names to whether their current
// value carries PII taint.
type env map[string]bool

func (e env) clone() env {
	c := make(env, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}

// isPiiType reports whether t is (or wraps) a @pii-annotated type.
func isPiiType(t core.TypeExpr) bool {
	switch n := t.(type) {
	case *core.TypePii:
		return true
	case *core.Maybe:
		return isPiiType(n.Base)
	case *core.Option:
		return isPiiType(n.Elem)
	default:
		return false
	}
}

type walker struct {
	strict bool
	diags  []diagnostics.Diagnostic
}

func (w *walker) sink(kind sinkKind, target string, orig core.Origin) {
	switch kind {
	case sinkHTTP:
		if w.strict {
			w.diags = append(w.diags, diagnostics.Errorf("PII_HTTP_UNENCRYPTED", orig,
				"tainted value passed to %s, an unencrypted HTTP call", target))
		} else {
			w.diags = append(w.diags, diagnostics.Warnf("PII_HTTP_UNENCRYPTED", orig,
				"tainted value passed to %s, an unencrypted HTTP call", target))
		}
	case sinkDatabase, sinkFile:
		d := diagnostics.Warnf("PII_SINK_UNKNOWN", orig,
			"tainted value passed to %s, a %s sink with no declared encryption", target, kind)
		if w.strict {
			d.Severity = diagnostics.SeverityError
		}
		d.Data = map[string]string{"kind": string(kind)}
		w.diags = append(w.diags, d)
	case sinkConsole:
		d := diagnostics.Warnf("PII_SINK_UNKNOWN", orig,
			"tainted value passed to %s, a console/log sink", target)
		d.Data = map[string]string{"kind": string(kind)}
		w.diags = append(w.diags, d)
	}
}

func (w *walker) stmts(e env, stmts []core.Stmt) {
	for _, s := range stmts {
		w.stmt(e, s)
	}
}

func (w *walker) stmt(e env, s core.Stmt) {
	switch n := s.(type) {
	case *core.Let:
		e[n.Name] = w.expr(e, n.Value)
	case *core.Set:
		tainted := w.expr(e, n.Value)
		if name, ok := n.Target.(*core.Name); ok {
			e[name.Value] = tainted
		}
	case *core.Return:
		if n.Value != nil {
			w.expr(e, n.Value)
		}
	case *core.If:
		w.expr(e, n.Cond)
		w.stmts(e.clone(), n.Then)
		w.stmts(e.clone(), n.Else)
	case *core.Match:
		tainted := w.expr(e, n.Expr)
		for _, mc := range n.Cases {
			branch := e.clone()
			for _, name := range patternBindings(mc.Pattern) {
				branch[name] = tainted
			}
			w.stmts(branch, mc.Body)
		}
	case *core.ForEach:
		tainted := w.expr(e, n.Iterable)
		body := e.clone()
		body[n.Binder] = tainted
		w.stmts(body, n.Body)
	case *core.Start:
		e[n.Name] = w.expr(e, n.Expr)
	case *core.Wait:
	case *core.Scope:
		w.stmts(e.clone(), n.Body)
	case *core.Workflow:
		for _, step := range n.Steps {
			stepEnv := e.clone()
			w.stmts(stepEnv, step.Body)
			w.stmts(stepEnv, step.Compensate)
		}
	case *core.Block:
		w.stmts(e.clone(), n.Stmts)
	case *core.ExprStmt:
		w.expr(e, n.Expr)
	}
}

// patternBindings returns the names a match pattern binds, all of which
// inherit the matched expression's taint.
func patternBindings(p core.Pattern) []string {
	switch n := p.(type) {
	case *core.NamePattern:
		return []string{n.Name}
	case *core.CtorPattern:
		return n.Names
	default:
		return nil
	}
}

// expr evaluates e under env, returning whether its value is tainted,
// and records a diagnostic for every sink call it observes whose
// arguments are tainted.
func (w *walker) expr(e env, expr core.Expr) bool {
	switch n := expr.(type) {
	case *core.Name:
		return e[n.Value]
	case *core.Call:
		argsTainted := false
		for _, a := range n.Args {
			if w.expr(e, a) {
				argsTainted = true
			}
		}
		if n.Target == "redact" {
			return false
		}
		if kind, ok := classifySink(n.Target); ok && argsTainted {
			w.sink(kind, n.Target, n.Orig)
		}
		if piiReturningFuncs[n.Target] {
			return true
		}
		return argsTainted
	case *core.Construct:
		tainted := false
		for _, f := range n.Fields {
			if w.expr(e, f.Value) {
				tainted = true
			}
		}
		return tainted
	case *core.Ok:
		return w.expr(e, n.Value)
	case *core.Err:
		return w.expr(e, n.Value)
	case *core.Some:
		return w.expr(e, n.Value)
	case *core.None:
		return false
	case *core.Lambda:
		body := e.clone()
		w.stmts(body, n.Body)
		return false
	case *core.Await:
		return w.expr(e, n.Value)
	case *core.Binary:
		l := w.expr(e, n.Left)
		r := w.expr(e, n.Right)
		return l || r
	case *core.Unary:
		return w.expr(e, n.Operand)
	default:
		return false
	}
}
