package types

import "github.com/aster-cloud/cnl/internal/compiler/core"

// Subtype reports whether a is a subtype of b under §4.6's rules:
// reflexive; Option<T>/Maybe<T> mutually subtype when their inner
// types are subtype-compatible; Result and Workflow covariant in both
// positions.
func Subtype(a, b Type) bool {
	if Equal(a, b, true) {
		return true
	}

	switch x := a.(type) {
	case *Maybe:
		if y, ok := b.(*Maybe); ok {
			return Subtype(x.Base, y.Base)
		}
		if y, ok := b.(*Option); ok {
			return Subtype(x.Base, y.Elem)
		}
	case *Option:
		if y, ok := b.(*Option); ok {
			return Subtype(x.Elem, y.Elem)
		}
		if y, ok := b.(*Maybe); ok {
			return Subtype(x.Elem, y.Base)
		}
	case *Result:
		y, ok := b.(*Result)
		if !ok {
			return false
		}
		if !Subtype(x.Ok, y.Ok) {
			return false
		}
		return subtypeMaybeNil(x.Err, y.Err)
	case *Workflow:
		y, ok := b.(*Workflow)
		if !ok {
			return false
		}
		if !Subtype(x.Result, y.Result) {
			return false
		}
		return subtypeMaybeNil(x.Err, y.Err)
	case *List:
		if y, ok := b.(*List); ok {
			return Subtype(x.Elem, y.Elem)
		}
	}
	return false
}

func subtypeMaybeNil(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Subtype(a, b)
}

// EffectSubtype reports whether a is weaker than or equal to b under
// the strict order Pure<Cpu<Io<Workflow.
func EffectSubtype(a, b core.EffectAtom) bool {
	return a <= b
}
