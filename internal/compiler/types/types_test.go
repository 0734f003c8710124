package types

import (
	"testing"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Type
		strict bool
		want   bool
	}{
		{"identical primitives", NewPrimitiveType(Text), NewPrimitiveType(Text), true, true},
		{"different primitives strict", NewPrimitiveType(Text), NewPrimitiveType(Int), true, false},
		{"text and datetime non-strict", NewPrimitiveType(Text), NewPrimitiveType(DateTime), false, true},
		{"text and datetime strict", NewPrimitiveType(Text), NewPrimitiveType(DateTime), true, false},
		{"unknown matches anything non-strict", NewPrimitiveType(Unknown), NewPrimitiveType(Int), false, true},
		{"unknown strict mismatch", NewPrimitiveType(Unknown), NewPrimitiveType(Int), true, false},
		{
			"identical maybes",
			&Maybe{Base: NewPrimitiveType(Int)},
			&Maybe{Base: NewPrimitiveType(Int)},
			true, true,
		},
		{
			"workflow unwraps against plain result",
			&Workflow{Result: NewPrimitiveType(Bool)},
			NewPrimitiveType(Bool),
			true, true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b, tt.strict); got != tt.want {
				t.Errorf("Equal(%v, %v, strict=%v) = %v, want %v", tt.a, tt.b, tt.strict, got, tt.want)
			}
		})
	}
}

func TestSubtype(t *testing.T) {
	intT := NewPrimitiveType(Int)
	boolT := NewPrimitiveType(Bool)

	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"reflexive", intT, intT, true},
		{"maybe subtype of option with same base", &Maybe{Base: intT}, &Option{Elem: intT}, true},
		{"option subtype of maybe with same base", &Option{Elem: intT}, &Maybe{Base: intT}, true},
		{
			"result covariant both positions",
			&Result{Ok: intT, Err: boolT},
			&Result{Ok: intT, Err: boolT},
			true,
		},
		{
			"workflow covariant",
			&Workflow{Result: intT, Err: boolT},
			&Workflow{Result: intT, Err: boolT},
			true,
		},
		{"unrelated primitives", intT, boolT, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subtype(tt.a, tt.b); got != tt.want {
				t.Errorf("Subtype(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAssignable_NumericPromotion(t *testing.T) {
	tests := []struct {
		name          string
		target, value Type
		strict        bool
		want          bool
	}{
		{"int to float", NewPrimitiveType(Float), NewPrimitiveType(Int), false, true},
		{"int to double", NewPrimitiveType(Double), NewPrimitiveType(Int), false, true},
		{"long to double", NewPrimitiveType(Double), NewPrimitiveType(Long), false, true},
		{"float to double", NewPrimitiveType(Double), NewPrimitiveType(Float), false, true},
		{"double to float", NewPrimitiveType(Float), NewPrimitiveType(Double), false, true},
		{"float to int rejected", NewPrimitiveType(Int), NewPrimitiveType(Float), false, false},
		{"strict mode disables promotion", NewPrimitiveType(Float), NewPrimitiveType(Int), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assignable(tt.target, tt.value, tt.strict); got != tt.want {
				t.Errorf("Assignable(%v, %v, strict=%v) = %v, want %v", tt.target, tt.value, tt.strict, got, tt.want)
			}
		})
	}
}

func TestUnify_BindsTypeVarsAndEffectVars(t *testing.T) {
	intT := NewPrimitiveType(Int)
	subst, ok := Unify(&TypeVar{Name: "T"}, intT)
	if !ok {
		t.Fatal("expected unification to succeed")
	}
	if bound := subst.TypeVars["T"]; !Equal(bound, intT, true) {
		t.Errorf("TypeVars[T] = %v, want %v", bound, intT)
	}

	subst2, ok := Unify(&EffectVarType{Name: "E"}, intT)
	if !ok {
		t.Fatal("expected effect variable unification to succeed")
	}
	subst2.ResolveEffectVar("E", core.EffectIo)
	subst2.ResolveEffectVar("E", core.EffectCpu)
	if subst2.EffectVars["E"] != core.EffectIo {
		t.Errorf("EffectVars[E] = %v, want EffectIo (strongest observed)", subst2.EffectVars["E"])
	}
}

func TestExpandAlias_BreaksCycles(t *testing.T) {
	table := AliasTable{
		"A": &Named{Name: "B"},
		"B": &Named{Name: "A"},
	}
	_, ok := ExpandAlias("A", table)
	if ok {
		t.Fatal("expected cycle detection to report unresolved")
	}
}

func TestExpandAlias_ResolvesToConcreteType(t *testing.T) {
	table := AliasTable{
		"Invoice": NewPrimitiveType(Text),
	}
	got, ok := ExpandAlias("Invoice", table)
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if !Equal(got, NewPrimitiveType(Text), true) {
		t.Errorf("ExpandAlias = %v, want Text", got)
	}
}
