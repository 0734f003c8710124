package capability

import (
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// callSite is one observed use of a capability: the call that caused it
// and the qualified target, for EFF_CAP_MISSING's offending-call-sites
// data and the manifest gate's fully-qualified-name check.
type callSite struct {
	target string
	orig   core.Origin
}

// capUsage accumulates every capability observed in a statement list,
// keyed by capability with every call site that exercised it.
type capUsage map[core.CapabilityKind][]callSite

func observeCapabilities(stmts []core.Stmt) capUsage {
	u := capUsage{}
	u.stmts(stmts)
	return u
}

func (u capUsage) record(target string, orig core.Origin) {
	cap, ok := prefixCapability(target)
	if !ok {
		return
	}
	u[cap] = append(u[cap], callSite{target: target, orig: orig})
}

func prefixCapability(target string) (core.CapabilityKind, bool) {
	head := target
	if idx := strings.Index(target, "."); idx >= 0 {
		head = target[:idx]
	}
	cap, ok := prefixCapabilities[head]
	return cap, ok
}

func (u capUsage) stmts(stmts []core.Stmt) {
	for _, s := range stmts {
		u.stmt(s)
	}
}

func (u capUsage) stmt(s core.Stmt) {
	switch n := s.(type) {
	case *core.Let:
		u.expr(n.Value)
	case *core.Set:
		u.expr(n.Target)
		u.expr(n.Value)
	case *core.Return:
		if n.Value != nil {
			u.expr(n.Value)
		}
	case *core.If:
		u.expr(n.Cond)
		u.stmts(n.Then)
		u.stmts(n.Else)
	case *core.Match:
		u.expr(n.Expr)
		for _, mc := range n.Cases {
			u.stmts(mc.Body)
		}
	case *core.ForEach:
		u.expr(n.Iterable)
		u.stmts(n.Body)
	case *core.Start:
		u.expr(n.Expr)
	case *core.Workflow:
		// A nested workflow's own step bodies are checked independently
		// by checkWorkflow; its capability usage still counts toward the
		// enclosing function's observed set.
		for _, step := range n.Steps {
			u.stmts(step.Body)
			u.stmts(step.Compensate)
		}
	case *core.Scope:
		u.stmts(n.Body)
	case *core.Block:
		u.stmts(n.Stmts)
	case *core.ExprStmt:
		u.expr(n.Expr)
	}
}

func (u capUsage) expr(e core.Expr) {
	switch n := e.(type) {
	case *core.Call:
		u.record(n.Target, n.Orig)
		for _, a := range n.Args {
			u.expr(a)
		}
	case *core.Construct:
		for _, f := range n.Fields {
			u.expr(f.Value)
		}
	case *core.Ok:
		u.expr(n.Value)
	case *core.Err:
		u.expr(n.Value)
	case *core.Some:
		u.expr(n.Value)
	case *core.Lambda:
		u.stmts(n.Body)
	case *core.Await:
		u.expr(n.Value)
	case *core.Binary:
		u.expr(n.Left)
		u.expr(n.Right)
	case *core.Unary:
		u.expr(n.Operand)
	}
}
