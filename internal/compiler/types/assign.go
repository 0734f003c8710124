package types

// numericPromotions lists the one-way promotions allowed outside
// strict mode: Int -> Float|Double, Long -> Double, Float <-> Double.
var numericPromotions = map[string]map[string]bool{
	Int:    {Float: true, Double: true},
	Long:   {Double: true},
	Float:  {Double: true},
	Double: {Float: true},
}

// Assignable reports whether a value of type value can be assigned to a
// binding of type target. Strict mode (generics, pattern matching)
// disables numeric promotion and falls back to plain Equal.
func Assignable(target, value Type, strict bool) bool {
	if Equal(target, value, strict) {
		return true
	}
	if strict {
		return false
	}

	tp, tok := target.(*PrimitiveType)
	vp, vok := value.(*PrimitiveType)
	if tok && vok && numericPromotions[vp.Name][tp.Name] {
		return true
	}

	if tm, ok := target.(*Maybe); ok {
		return Assignable(tm.Base, value, strict)
	}
	if vm, ok := value.(*Maybe); ok {
		return Assignable(target, vm.Base, strict)
	}

	return Subtype(value, target)
}
