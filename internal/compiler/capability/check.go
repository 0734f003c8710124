package capability

import (
	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// Check walks every function in mod and reports: capabilities used but
// not declared (EFF_CAP_MISSING), capabilities declared but never used
// (EFF_CAP_SUPERFLUOUS), every workflow's structural rules (§4.9), and —
// when manifest is non-nil — every capability use not covered by an
// allow entry (CAPABILITY_NOT_ALLOWED).
func Check(mod *core.Module, manifest *Manifest) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic

	for _, d := range mod.Decls {
		fn, ok := d.(*core.Func)
		if !ok {
			continue
		}

		declared := map[core.CapabilityKind]bool{}
		for _, c := range fn.EffectCaps {
			declared[c] = true
		}
		hasIo := false
		for _, a := range fn.Effects {
			if a == core.EffectIo {
				hasIo = true
			}
		}

		usage := observeCapabilities(fn.Body)
		for cap, sites := range usage {
			if declared[cap] {
				continue
			}
			diags = append(diags, missingCapabilityDiagnostic(fn, cap, sites))
		}
		for cap := range declared {
			if _, used := usage[cap]; !used {
				diags = append(diags, diagnostics.Infof("EFF_CAP_SUPERFLUOUS", fn.Orig,
					"%s declares capability %s but never uses it", fn.Name, cap))
			}
		}

		if manifest != nil {
			for cap, sites := range usage {
				if manifest.Covers(cap, mod.Name, fn.Name) {
					continue
				}
				for _, site := range sites {
					d := diagnostics.Errorf("CAPABILITY_NOT_ALLOWED", site.orig,
						"%s is not covered by the workspace capability manifest for %s", site.target, cap)
					d.Data = map[string]string{"func": fn.Name, "module": mod.Name, "cap": string(cap)}
					diags = append(diags, d)
				}
			}
		}

		for _, wf := range findWorkflows(fn.Body) {
			diags = append(diags, checkWorkflow(wf, fn.Orig, declared, hasIo)...)
		}
	}

	return diags
}

func missingCapabilityDiagnostic(fn *core.Func, cap core.CapabilityKind, sites []callSite) diagnostics.Diagnostic {
	d := diagnostics.Errorf("EFF_CAP_MISSING", fn.Orig,
		"%s uses capability %s at %d call site(s) but does not declare it", fn.Name, cap, len(sites))
	d.Data = map[string]string{"func": fn.Name, "cap": string(cap)}
	for _, s := range sites {
		d.RelatedInformation = append(d.RelatedInformation, diagnostics.RelatedInformation{
			Message: "capability used here: " + s.target,
			Origin:  s.orig,
		})
	}
	return d
}

func findWorkflows(stmts []core.Stmt) []*core.Workflow {
	var out []*core.Workflow
	for _, s := range stmts {
		switch n := s.(type) {
		case *core.Workflow:
			out = append(out, n)
		case *core.If:
			out = append(out, findWorkflows(n.Then)...)
			out = append(out, findWorkflows(n.Else)...)
		case *core.Match:
			for _, mc := range n.Cases {
				out = append(out, findWorkflows(mc.Body)...)
			}
		case *core.ForEach:
			out = append(out, findWorkflows(n.Body)...)
		case *core.Scope:
			out = append(out, findWorkflows(n.Body)...)
		case *core.Block:
			out = append(out, findWorkflows(n.Stmts)...)
		}
	}
	return out
}
