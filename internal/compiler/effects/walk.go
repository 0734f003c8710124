package effects

import (
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// observation is what one function body contributes before call-graph
// propagation: the effect atoms visible from prefix rules and workflow
// bodies, and the set of call targets reached (local or not).
type observation struct {
	atoms map[core.EffectAtom]bool
	calls map[string]bool
}

func newObservation() *observation {
	return &observation{atoms: map[core.EffectAtom]bool{}, calls: map[string]bool{}}
}

func observeFunc(fn *core.Func) *observation {
	o := newObservation()
	o.stmts(fn.Body)
	return o
}

func (o *observation) stmts(stmts []core.Stmt) {
	for _, s := range stmts {
		o.stmt(s)
	}
}

func (o *observation) stmt(s core.Stmt) {
	switch n := s.(type) {
	case *core.Let:
		o.expr(n.Value)
	case *core.Set:
		o.expr(n.Target)
		o.expr(n.Value)
	case *core.Return:
		if n.Value != nil {
			o.expr(n.Value)
		}
	case *core.If:
		o.expr(n.Cond)
		o.stmts(n.Then)
		o.stmts(n.Else)
	case *core.Match:
		o.expr(n.Expr)
		for _, mc := range n.Cases {
			o.stmts(mc.Body)
		}
	case *core.ForEach:
		o.expr(n.Iterable)
		o.stmts(n.Body)
	case *core.Start:
		o.expr(n.Expr)
	case *core.Wait:
	case *core.Workflow:
		o.atoms[core.EffectIo] = true
		for _, step := range n.Steps {
			o.stmts(step.Body)
			o.stmts(step.Compensate)
		}
	case *core.Scope:
		o.stmts(n.Body)
	case *core.Block:
		o.stmts(n.Stmts)
	case *core.ExprStmt:
		o.expr(n.Expr)
	}
}

func (o *observation) expr(e core.Expr) {
	switch n := e.(type) {
	case *core.Call:
		o.calls[n.Target] = true
		if atom, ok := prefixAtom(n.Target); ok {
			o.atoms[atom] = true
		}
		for _, a := range n.Args {
			o.expr(a)
		}
	case *core.Construct:
		for _, f := range n.Fields {
			o.expr(f.Value)
		}
	case *core.Ok:
		o.expr(n.Value)
	case *core.Err:
		o.expr(n.Value)
	case *core.Some:
		o.expr(n.Value)
	case *core.Lambda:
		o.stmts(n.Body)
	case *core.Await:
		o.expr(n.Value)
	case *core.Binary:
		o.expr(n.Left)
		o.expr(n.Right)
	case *core.Unary:
		o.expr(n.Operand)
	}
}

// prefixAtom maps a dotted call target's head segment (e.g. "Http" in
// "Http.get") to the effect atom it contributes, per the fixed
// prefixAtoms table.
func prefixAtom(target string) (core.EffectAtom, bool) {
	head := target
	if idx := strings.Index(target, "."); idx >= 0 {
		head = target[:idx]
	}
	atom, ok := prefixAtoms[head]
	return atom, ok
}
