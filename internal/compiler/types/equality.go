package types

// Equal reports structural equality. In non-strict mode Unknown equals
// anything, and Text/DateTime compare equal to each other (natural-
// language date strings are written as Text literals). A Workflow<R,E>
// compared against a non-Workflow type unwraps to R and retries, per
// §4.6's typesEqual rule, before falling through to the normal
// structural comparison.
func Equal(a, b Type, strict bool) bool {
	if a == nil || b == nil {
		return a == b
	}

	if wf, ok := a.(*Workflow); ok {
		if _, isWf := b.(*Workflow); !isWf {
			return Equal(wf.Result, b, strict)
		}
	}
	if wf, ok := b.(*Workflow); ok {
		if _, isWf := a.(*Workflow); !isWf {
			return Equal(a, wf.Result, strict)
		}
	}

	if !strict {
		if isUnknown(a) || isUnknown(b) {
			return true
		}
	}

	switch x := a.(type) {
	case *PrimitiveType:
		y, ok := b.(*PrimitiveType)
		if !ok {
			return false
		}
		if x.Name == y.Name {
			return true
		}
		if !strict && isDateTimeFamily(x.Name) && isDateTimeFamily(y.Name) {
			return true
		}
		return false
	case *TypeVar:
		y, ok := b.(*TypeVar)
		return ok && x.Name == y.Name
	case *EffectVarType:
		y, ok := b.(*EffectVarType)
		return ok && x.Name == y.Name
	case *Named:
		y, ok := b.(*Named)
		return ok && x.Name == y.Name
	case *EnumType:
		y, ok := b.(*EnumType)
		if !ok || x.Name != y.Name || len(x.Variants) != len(y.Variants) {
			return false
		}
		for i, v := range x.Variants {
			if y.Variants[i] != v {
				return false
			}
		}
		return true
	case *Maybe:
		y, ok := b.(*Maybe)
		return ok && Equal(x.Base, y.Base, strict)
	case *Option:
		y, ok := b.(*Option)
		return ok && Equal(x.Elem, y.Elem, strict)
	case *Result:
		y, ok := b.(*Result)
		if !ok || !Equal(x.Ok, y.Ok, strict) {
			return false
		}
		return equalMaybeNil(x.Err, y.Err, strict)
	case *List:
		y, ok := b.(*List)
		return ok && Equal(x.Elem, y.Elem, strict)
	case *MapType:
		y, ok := b.(*MapType)
		return ok && Equal(x.Key, y.Key, strict) && Equal(x.Val, y.Val, strict)
	case *FuncType:
		y, ok := b.(*FuncType)
		if !ok || len(x.Params) != len(y.Params) || !equalMaybeNil(x.Ret, y.Ret, strict) {
			return false
		}
		for i := range x.Params {
			if !Equal(x.Params[i], y.Params[i], strict) {
				return false
			}
		}
		return true
	case *Workflow:
		y, ok := b.(*Workflow)
		return ok && Equal(x.Result, y.Result, strict) && equalMaybeNil(x.Err, y.Err, strict)
	case *Pii:
		y, ok := b.(*Pii)
		return ok && x.Level == y.Level && x.Category == y.Category && Equal(x.Base, y.Base, strict)
	default:
		return false
	}
}

func equalMaybeNil(a, b Type, strict bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b, strict)
}

func isUnknown(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.Name == Unknown
}

func isDateTimeFamily(name string) bool {
	return name == Text || name == DateTime
}
