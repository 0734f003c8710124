package effects

import (
	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/compiler/types"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// effectParamSite is a higher-order parameter (a FuncType param carrying
// one or more named effect parameters) that a call site can resolve by
// passing a literal lambda argument.
type effectParamSite struct {
	funcOrig   core.Origin
	paramIndex int
	varNames   []string
}

// resolveEffectVars binds every function-type parameter's effect
// variables to the strongest atom observed in the lambda arguments
// actually passed at call sites across the module, and reports
// EFFECT_VAR_UNRESOLVED for any variable no call site ever resolves.
func resolveEffectVars(mod *core.Module, funcs map[string]*core.Func) []diagnostics.Diagnostic {
	sites := map[string][]effectParamSite{}
	for name, fn := range funcs {
		for i, p := range fn.Params {
			ft, ok := p.Type.(*core.FuncType)
			if !ok || len(ft.EffectParams) == 0 {
				continue
			}
			sites[name] = append(sites[name], effectParamSite{funcOrig: fn.Orig, paramIndex: i, varNames: ft.EffectParams})
		}
	}
	if len(sites) == 0 {
		return nil
	}

	subst := &types.Subst{TypeVars: map[string]types.Type{}, EffectVars: map[string]core.EffectAtom{}}
	resolved := map[string]bool{}
	for _, fn := range funcs {
		for _, call := range collectCalls(fn) {
			for _, site := range sites[call.Target] {
				if site.paramIndex >= len(call.Args) {
					continue
				}
				lambda, ok := call.Args[site.paramIndex].(*core.Lambda)
				if !ok {
					continue
				}
				o := newObservation()
				o.stmts(lambda.Body)
				strongest := core.EffectPure
				for atom := range o.atoms {
					strongest = core.Max(strongest, atom)
				}
				for _, name := range site.varNames {
					subst.ResolveEffectVar(name, strongest)
					resolved[name] = true
				}
			}
		}
	}

	var diags []diagnostics.Diagnostic
	for _, fnSites := range sites {
		for _, site := range fnSites {
			for _, name := range site.varNames {
				if !resolved[name] {
					diags = append(diags, diagnostics.Warnf("EFFECT_VAR_UNRESOLVED", site.funcOrig,
						"effect variable #%s is never resolved by a call site", name))
				}
			}
		}
	}
	return diags
}

func collectCalls(fn *core.Func) []*core.Call {
	var out []*core.Call
	var we func(e core.Expr)
	var ws func(stmts []core.Stmt)

	we = func(e core.Expr) {
		switch n := e.(type) {
		case *core.Call:
			out = append(out, n)
			for _, a := range n.Args {
				we(a)
			}
		case *core.Construct:
			for _, f := range n.Fields {
				we(f.Value)
			}
		case *core.Ok:
			we(n.Value)
		case *core.Err:
			we(n.Value)
		case *core.Some:
			we(n.Value)
		case *core.Lambda:
			ws(n.Body)
		case *core.Await:
			we(n.Value)
		case *core.Binary:
			we(n.Left)
			we(n.Right)
		case *core.Unary:
			we(n.Operand)
		}
	}
	ws = func(stmts []core.Stmt) {
		for _, s := range stmts {
			switch n := s.(type) {
			case *core.Let:
				we(n.Value)
			case *core.Set:
				we(n.Target)
				we(n.Value)
			case *core.Return:
				if n.Value != nil {
					we(n.Value)
				}
			case *core.If:
				we(n.Cond)
				ws(n.Then)
				ws(n.Else)
			case *core.Match:
				we(n.Expr)
				for _, mc := range n.Cases {
					ws(mc.Body)
				}
			case *core.ForEach:
				we(n.Iterable)
				ws(n.Body)
			case *core.Start:
				we(n.Expr)
			case *core.Workflow:
				for _, step := range n.Steps {
					ws(step.Body)
					ws(step.Compensate)
				}
			case *core.Scope:
				ws(n.Body)
			case *core.Block:
				ws(n.Stmts)
			case *core.ExprStmt:
				we(n.Expr)
			}
		}
	}
	ws(fn.Body)
	return out
}
