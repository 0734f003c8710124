// Package types implements the structural type system used by the type
// checker: primitive and compound types, structural equality,
// subtyping, unification, alias expansion, and assignability with
// numeric promotion.
package types

import (
	"fmt"
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// Type is any member of the structural type system.
type Type interface {
	String() string
}

// Primitive names. Text and DateTime are distinct kinds but compare
// equal under non-strict Equal, matching the spec's natural-language
// date-string accommodation.
const (
	Text     = "Text"
	Int      = "Int"
	Long     = "Long"
	Float    = "Float"
	Double   = "Double"
	Bool     = "Bool"
	DateTime = "DateTime"
	Unknown  = "Unknown"
)

// PrimitiveType is a built-in scalar.
type PrimitiveType struct {
	Name string
}

func NewPrimitiveType(name string) *PrimitiveType { return &PrimitiveType{Name: name} }

func (p *PrimitiveType) String() string { return p.Name }

// TypeVar is an unbound generic type parameter reference.
type TypeVar struct {
	Name string
}

func (t *TypeVar) String() string { return t.Name }

// EffectVarType is an unbound named effect placeholder, resolved during
// effect inference to the strongest EffectAtom observed at its call
// sites.
type EffectVarType struct {
	Name string
}

func (e *EffectVarType) String() string { return "effect " + e.Name }

// Named references a declared Data type by name; its fields are looked
// up in the enclosing module's type environment rather than carried
// inline, so two Named values with the same Name are always the same
// type regardless of field contents.
type Named struct {
	Name string
}

func (n *Named) String() string { return n.Name }

// EnumType lists a closed, ordered set of variant names.
type EnumType struct {
	Name     string
	Variants []string
}

func (e *EnumType) String() string {
	return fmt.Sprintf("%s[%s]", e.Name, strings.Join(e.Variants, "|"))
}

// Maybe is a nullable wrapper; Maybe<T> and Option<T> are mutually
// subtype-compatible per §4.6.
type Maybe struct {
	Base Type
}

func (m *Maybe) String() string { return "maybe " + m.Base.String() }

// Option mirrors Maybe with its own surface spelling (`option of T`).
type Option struct {
	Elem Type
}

func (o *Option) String() string { return "option of " + o.Elem.String() }

// Result is `result of Ok (or Err)?`. A nil Err means unspecified,
// treated as Unknown for compatibility purposes.
type Result struct {
	Ok  Type
	Err Type
}

func (r *Result) String() string {
	if r.Err == nil {
		return "result of " + r.Ok.String()
	}
	return fmt.Sprintf("result of %s or %s", r.Ok.String(), r.Err.String())
}

// List is `list of T`.
type List struct {
	Elem Type
}

func (l *List) String() string { return "list of " + l.Elem.String() }

// Map is `map K to V`.
type MapType struct {
	Key Type
	Val Type
}

func (m *MapType) String() string { return fmt.Sprintf("map %s to %s", m.Key.String(), m.Val.String()) }

// FuncType is a function signature value, used for Lambda and
// higher-order parameters/returns.
type FuncType struct {
	Params          []Type
	Ret             Type
	EffectParams    []string
	DeclaredEffects []core.EffectAtom
}

func (f *FuncType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	ret := "void"
	if f.Ret != nil {
		ret = f.Ret.String()
	}
	return fmt.Sprintf("func(%s) -> %s", strings.Join(parts, ", "), ret)
}

// Workflow is `Workflow<R,E>`: the result type of a workflow statement,
// unwrapped to R when compared structurally against a non-workflow type.
type Workflow struct {
	Result Type
	Err    Type
}

func (w *Workflow) String() string {
	return fmt.Sprintf("workflow of %s or %s", w.Result.String(), w.Err.String())
}

// Pii wraps a base type with a sensitivity level and category; it is
// structurally the base type everywhere except the PII taint analyzer.
type Pii struct {
	Base     Type
	Level    core.PiiLevel
	Category core.PiiCategory
}

func (p *Pii) String() string {
	return fmt.Sprintf("@pii(%s,%s) %s", p.Level, p.Category, p.Base.String())
}
