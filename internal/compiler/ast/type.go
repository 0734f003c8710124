package ast

// TypeExpr is any type-position node written in source.
type TypeExpr interface {
	Node
	typeNode()
}

// TypeName is a bare name: a primitive (`text`, `int`, ...) or a
// declared Data/Enum name.
type TypeName struct {
	Name string
	Loc  Span
}

func (t *TypeName) node()      {}
func (t *TypeName) typeNode()  {}
func (t *TypeName) Span() Span { return t.Loc }

// TypeVar is a function-level type parameter reference.
type TypeVar struct {
	Name string
	Loc  Span
}

func (t *TypeVar) node()      {}
func (t *TypeVar) typeNode()  {}
func (t *TypeVar) Span() Span { return t.Loc }

// EffectVar is a named effect-capability placeholder in a `performs`
// clause, resolved during effect inference.
type EffectVar struct {
	Name string
	Loc  Span
}

func (e *EffectVar) node()      {}
func (e *EffectVar) typeNode()  {}
func (e *EffectVar) Span() Span { return e.Loc }

// TypeApp is `Base of A1 and A2 ...`.
type TypeApp struct {
	Base TypeExpr
	Args []TypeExpr
	Loc  Span
}

func (t *TypeApp) node()      {}
func (t *TypeApp) typeNode()  {}
func (t *TypeApp) Span() Span { return t.Loc }

// Maybe is `maybe T` or the postfix `T?`.
type Maybe struct {
	Base TypeExpr
	Loc  Span
}

func (m *Maybe) node()      {}
func (m *Maybe) typeNode()  {}
func (m *Maybe) Span() Span { return m.Loc }

// Option is `option of T`.
type Option struct {
	Elem TypeExpr
	Loc  Span
}

func (o *Option) node()      {}
func (o *Option) typeNode()  {}
func (o *Option) Span() Span { return o.Loc }

// Result is `result of T (or/and E)?`. Err is nil when unspecified.
type Result struct {
	Ok  TypeExpr
	Err TypeExpr
	Loc Span
}

func (r *Result) node()      {}
func (r *Result) typeNode()  {}
func (r *Result) Span() Span { return r.Loc }

// List is `list of T`.
type List struct {
	Elem TypeExpr
	Loc  Span
}

func (l *List) node()      {}
func (l *List) typeNode()  {}
func (l *List) Span() Span { return l.Loc }

// Map is `map K to V`.
type Map struct {
	Key TypeExpr
	Val TypeExpr
	Loc Span
}

func (m *Map) node()      {}
func (m *Map) typeNode()  {}
func (m *Map) Span() Span { return m.Loc }

// FuncType is a function-type position value (used by Lambda params and
// higher-order signatures).
type FuncType struct {
	Params          []TypeExpr
	Ret             TypeExpr
	EffectParams    []string // named effect-variable placeholders, if any
	DeclaredEffects []string
	Loc             Span
}

func (f *FuncType) node()      {}
func (f *FuncType) typeNode()  {}
func (f *FuncType) Span() Span { return f.Loc }

// PiiLevel is the sensitivity tier attached to a TypePii annotation.
type PiiLevel string

const (
	PiiL1 PiiLevel = "L1"
	PiiL2 PiiLevel = "L2"
	PiiL3 PiiLevel = "L3"
)

// PiiCategory closes the set of recognized PII categories.
type PiiCategory string

const (
	PiiEmail      PiiCategory = "email"
	PiiPhone      PiiCategory = "phone"
	PiiSSN        PiiCategory = "ssn"
	PiiAddress    PiiCategory = "address"
	PiiFinancial  PiiCategory = "financial"
	PiiHealth     PiiCategory = "health"
	PiiName       PiiCategory = "name"
	PiiBiometric  PiiCategory = "biometric"
)

// TypePii is `@pii(Level, category) BaseType`.
type TypePii struct {
	Base     TypeExpr
	Level    PiiLevel
	Category PiiCategory
	Loc      Span
}

func (t *TypePii) node()      {}
func (t *TypePii) typeNode()  {}
func (t *TypePii) Span() Span { return t.Loc }
