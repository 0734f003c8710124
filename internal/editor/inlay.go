package editor

import (
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// InlayHint is a short label an editor renders inline next to a position
// without touching the underlying source, e.g. an inferred return type.
type InlayHint struct {
	Position Position
	Label    string
}

// InlayHints returns one hint per function in mod whose return type was
// inferred rather than written (core.Func.RetTypeInferred): ": TYPE" at
// the end of the function's signature. The checker itself doesn't
// persist an inferred type back onto core.Func.RetType (it only verifies
// returned values structurally), so this recovers the simplest case a
// hint is worth showing for: a body whose only return is a bare
// parameter reference, whose declared type is then the inferred return
// type. Anything more involved (a literal, a field access, a branch with
// multiple return sites) is left unhinted rather than re-implementing
// type inference here.
func InlayHints(mod *core.Module) []InlayHint {
	var hints []InlayHint
	for _, d := range mod.Decls {
		fn, ok := d.(*core.Func)
		if !ok || !fn.RetTypeInferred {
			continue
		}
		t, ok := inferredReturnType(fn)
		if !ok {
			continue
		}
		hints = append(hints, InlayHint{
			Position: FromOrigin(fn.Orig).End,
			Label:    ": " + FormatType(t),
		})
	}
	return hints
}

func inferredReturnType(fn *core.Func) (core.TypeExpr, bool) {
	for _, stmt := range fn.Body {
		ret, ok := stmt.(*core.Return)
		if !ok || ret.Value == nil {
			continue
		}
		name, ok := ret.Value.(*core.Name)
		if !ok {
			return nil, false
		}
		for _, p := range fn.Params {
			if p.Name == name.Value {
				return p.Type, true
			}
		}
		return nil, false
	}
	return nil, false
}

// EffectSummary renders a compact "performs a, b" suffix for fn's
// inferred effect set, or "" if fn is pure — the same wording
// HoverForFunc uses, reused by code actions that surface effect gaps.
func EffectSummary(fn *core.Func) string {
	if len(fn.Effects) == 0 {
		return ""
	}
	names := make([]string, 0, len(fn.Effects))
	for _, e := range fn.Effects {
		if e == core.EffectPure {
			continue
		}
		names = append(names, e.String())
	}
	if len(names) == 0 {
		return ""
	}
	return "performs " + strings.Join(names, ", ")
}
