package effects

import (
	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// Infer walks every function in mod, builds the local call graph,
// propagates effect atoms through it in dependency order, and compares
// the result against each function's declared effects. imported carries
// signatures for functions this module calls but does not define (keyed
// by qualified name); their Declared set is used as a propagation leaf.
func Infer(mod *core.Module, imported map[string]Signature) ([]Signature, []diagnostics.Diagnostic) {
	funcs := map[string]*core.Func{}
	for _, d := range mod.Decls {
		if fn, ok := d.(*core.Func); ok {
			funcs[fn.Name] = fn
		}
	}

	observations := map[string]*observation{}
	edges := map[string][]string{}
	present := map[string]bool{}
	for name, fn := range funcs {
		present[name] = true
		o := observeFunc(fn)
		observations[name] = o
		for call := range o.calls {
			if _, local := funcs[call]; local {
				edges[name] = append(edges[name], call)
			}
		}
	}

	effective := map[string]map[core.EffectAtom]bool{}
	for _, component := range tarjanSCCs(present, edges) {
		propagateComponent(component, funcs, observations, imported, effective)
	}

	var diags []diagnostics.Diagnostic
	var sigs []Signature
	for name, fn := range funcs {
		declared := map[core.EffectAtom]bool{}
		for _, a := range fn.Effects {
			declared[a] = true
		}
		required := effective[name]

		sig := Signature{Module: mod.Name, Function: name, QualifiedName: mod.Name + "." + name}
		for _, a := range fn.Effects {
			sig.Declared = append(sig.Declared, a)
		}
		for a := range required {
			sig.Inferred = append(sig.Inferred, a)
			sig.Required = append(sig.Required, a)
		}
		sigs = append(sigs, sig)

		diags = append(diags, compareDeclaredToRequired(fn, declared, required)...)
	}

	diags = append(diags, resolveEffectVars(mod, funcs)...)
	return sigs, diags
}

func propagateComponent(component []string, funcs map[string]*core.Func, observations map[string]*observation, imported map[string]Signature, effective map[string]map[core.EffectAtom]bool) {
	for _, name := range component {
		effective[name] = map[core.EffectAtom]bool{}
	}
	changed := true
	for changed {
		changed = false
		for _, name := range component {
			o := observations[name]
			set := effective[name]
			before := len(set)
			for atom := range o.atoms {
				set[atom] = true
			}
			for call := range o.calls {
				if _, local := funcs[call]; local {
					if calleeSet, known := effective[call]; known {
						for atom := range calleeSet {
							set[atom] = true
						}
					}
				} else if sig, ok := imported[call]; ok {
					for _, atom := range sig.Declared {
						set[atom] = true
					}
				}
			}
			if len(set) != before {
				changed = true
			}
		}
	}
}

// compareDeclaredToRequired emits the §4.8 missing/redundant diagnostics.
// A function that declares both Cpu and Io always gets
// EFF_INFER_REDUNDANT_CPU_WITH_IO: Io strictly subsumes Cpu in the
// effect ordering, so the Cpu declaration is never load-bearing once Io
// is present, regardless of what is actually required.
func compareDeclaredToRequired(fn *core.Func, declared, required map[core.EffectAtom]bool) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic

	cpuRedundantWithIo := declared[core.EffectCpu] && declared[core.EffectIo]
	if cpuRedundantWithIo {
		diags = append(diags, diagnostics.Warnf("EFF_INFER_REDUNDANT_CPU_WITH_IO", fn.Orig,
			"%s declares both cpu and io; io already subsumes cpu", fn.Name))
	}

	if required[core.EffectCpu] && !declared[core.EffectCpu] && !declared[core.EffectIo] {
		diags = append(diags, diagnostics.Errorf("EFF_INFER_MISSING_CPU", fn.Orig,
			"%s performs cpu work but does not declare performs cpu", fn.Name))
	}
	if required[core.EffectIo] && !declared[core.EffectIo] {
		diags = append(diags, diagnostics.Errorf("EFF_INFER_MISSING_IO", fn.Orig,
			"%s performs io but does not declare performs io", fn.Name))
	}

	if declared[core.EffectCpu] && !required[core.EffectCpu] && !cpuRedundantWithIo {
		diags = append(diags, diagnostics.Infof("EFF_INFER_REDUNDANT_CPU", fn.Orig,
			"%s declares performs cpu but no cpu work was observed", fn.Name))
	}
	if declared[core.EffectIo] && !required[core.EffectIo] {
		diags = append(diags, diagnostics.Infof("EFF_INFER_REDUNDANT_IO", fn.Orig,
			"%s declares performs io but no io work was observed", fn.Name))
	}

	return diags
}
