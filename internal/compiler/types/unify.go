package types

import "github.com/aster-cloud/cnl/internal/compiler/core"

// Subst is a unification result: type-variable bindings plus the
// strongest effect atom observed for each effect variable.
type Subst struct {
	TypeVars   map[string]Type
	EffectVars map[string]core.EffectAtom
}

func newSubst() *Subst {
	return &Subst{TypeVars: map[string]Type{}, EffectVars: map[string]core.EffectAtom{}}
}

// Unify structurally unifies a and b, binding type variables by most-
// general unifier and effect variables to the strongest atom observed
// across all occurrences. Numeric promotion is never applied here —
// only assignment checks promote.
func Unify(a, b Type) (*Subst, bool) {
	s := newSubst()
	ok := unify(a, b, s)
	return s, ok
}

func unify(a, b Type, s *Subst) bool {
	if tv, ok := a.(*TypeVar); ok {
		return bindTypeVar(tv.Name, b, s)
	}
	if tv, ok := b.(*TypeVar); ok {
		return bindTypeVar(tv.Name, a, s)
	}
	if ev, ok := a.(*EffectVarType); ok {
		return bindEffectVar(ev.Name, b, s)
	}
	if ev, ok := b.(*EffectVarType); ok {
		return bindEffectVar(ev.Name, a, s)
	}

	switch x := a.(type) {
	case *PrimitiveType:
		y, ok := b.(*PrimitiveType)
		return ok && x.Name == y.Name
	case *Named:
		y, ok := b.(*Named)
		return ok && x.Name == y.Name
	case *EnumType:
		y, ok := b.(*EnumType)
		return ok && x.Name == y.Name
	case *Maybe:
		y, ok := b.(*Maybe)
		return ok && unify(x.Base, y.Base, s)
	case *Option:
		y, ok := b.(*Option)
		return ok && unify(x.Elem, y.Elem, s)
	case *Result:
		y, ok := b.(*Result)
		if !ok || !unify(x.Ok, y.Ok, s) {
			return false
		}
		return unifyMaybeNil(x.Err, y.Err, s)
	case *List:
		y, ok := b.(*List)
		return ok && unify(x.Elem, y.Elem, s)
	case *MapType:
		y, ok := b.(*MapType)
		return ok && unify(x.Key, y.Key, s) && unify(x.Val, y.Val, s)
	case *FuncType:
		y, ok := b.(*FuncType)
		if !ok || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !unify(x.Params[i], y.Params[i], s) {
				return false
			}
		}
		return unifyMaybeNil(x.Ret, y.Ret, s)
	case *Workflow:
		y, ok := b.(*Workflow)
		if !ok || !unify(x.Result, y.Result, s) {
			return false
		}
		return unifyMaybeNil(x.Err, y.Err, s)
	case *Pii:
		y, ok := b.(*Pii)
		return ok && x.Level == y.Level && x.Category == y.Category && unify(x.Base, y.Base, s)
	default:
		return false
	}
}

func unifyMaybeNil(a, b Type, s *Subst) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return unify(a, b, s)
}

func bindTypeVar(name string, t Type, s *Subst) bool {
	if existing, bound := s.TypeVars[name]; bound {
		return unify(existing, t, s)
	}
	s.TypeVars[name] = t
	return true
}

func bindEffectVar(name string, t Type, s *Subst) bool {
	// An effect variable only unifies meaningfully against another
	// effect variable or a concrete effect atom carried as a FuncType's
	// DeclaredEffects; here it simply records that the variable was
	// observed, deferring the actual strongest-atom resolution to
	// effect inference which has the call-site context.
	if _, bound := s.EffectVars[name]; !bound {
		s.EffectVars[name] = core.EffectPure
	}
	return true
}

// ResolveEffectVar folds atom into the running strongest-atom binding
// for name, per "effect variables bind to the strongest atom observed".
func (s *Subst) ResolveEffectVar(name string, atom core.EffectAtom) {
	s.EffectVars[name] = core.Max(s.EffectVars[name], atom)
}
