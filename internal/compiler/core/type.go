package core

// TypeExpr is any type-position node in the Core IR.
type TypeExpr interface {
	Node
	typeCore()
}

type TypeName struct {
	Name string
	Orig Origin
}

func (t *TypeName) core()          {}
func (t *TypeName) typeCore()      {}
func (t *TypeName) Origin() Origin { return t.Orig }

type TypeVar struct {
	Name string
	Orig Origin
}

func (t *TypeVar) core()          {}
func (t *TypeVar) typeCore()      {}
func (t *TypeVar) Origin() Origin { return t.Orig }

// EffectVar is an unresolved effect placeholder surviving lowering;
// effect inference binds it to the strongest EffectAtom observed for it
// or reports EFFECT_VAR_UNRESOLVED.
type EffectVar struct {
	Name string
	Orig Origin
}

func (e *EffectVar) core()          {}
func (e *EffectVar) typeCore()      {}
func (e *EffectVar) Origin() Origin { return e.Orig }

type TypeApp struct {
	Base TypeExpr
	Args []TypeExpr
	Orig Origin
}

func (t *TypeApp) core()          {}
func (t *TypeApp) typeCore()      {}
func (t *TypeApp) Origin() Origin { return t.Orig }

type Maybe struct {
	Base TypeExpr
	Orig Origin
}

func (m *Maybe) core()          {}
func (m *Maybe) typeCore()      {}
func (m *Maybe) Origin() Origin { return m.Orig }

type Option struct {
	Elem TypeExpr
	Orig Origin
}

func (o *Option) core()          {}
func (o *Option) typeCore()      {}
func (o *Option) Origin() Origin { return o.Orig }

type Result struct {
	Ok   TypeExpr
	Err  TypeExpr
	Orig Origin
}

func (r *Result) core()          {}
func (r *Result) typeCore()      {}
func (r *Result) Origin() Origin { return r.Orig }

type List struct {
	Elem TypeExpr
	Orig Origin
}

func (l *List) core()          {}
func (l *List) typeCore()      {}
func (l *List) Origin() Origin { return l.Orig }

type Map struct {
	Key  TypeExpr
	Val  TypeExpr
	Orig Origin
}

func (m *Map) core()          {}
func (m *Map) typeCore()      {}
func (m *Map) Origin() Origin { return m.Orig }

type FuncType struct {
	Params          []TypeExpr
	Ret             TypeExpr
	EffectParams    []string
	DeclaredEffects []EffectAtom
	Orig            Origin
}

func (f *FuncType) core()          {}
func (f *FuncType) typeCore()      {}
func (f *FuncType) Origin() Origin { return f.Orig }

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
	PiiEmail     PiiCategory = "email"
	PiiPhone     PiiCategory = "phone"
	PiiSSN       PiiCategory = "ssn"
	PiiAddress   PiiCategory = "address"
	PiiFinancial PiiCategory = "financial"
	PiiHealth    PiiCategory = "health"
	PiiName      PiiCategory = "name"
	PiiBiometric PiiCategory = "biometric"
)

type TypePii struct {
	Base     TypeExpr
	Level    PiiLevel
	Category PiiCategory
	Orig     Origin
}

func (t *TypePii) core()          {}
func (t *TypePii) typeCore()      {}
func (t *TypePii) Origin() Origin { return t.Orig }
