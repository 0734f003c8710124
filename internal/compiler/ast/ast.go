// Package ast defines the Abstract Syntax Tree node types for CNL
// modules: module headers, imports, data/enum/func declarations,
// statements, expressions, patterns, type expressions, and constraints.
package ast

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

// Span is a start/end Position pair. Every node carries one; only
// synthesized constants (with no source text) may have a zero Span.
type Span struct {
	Start Position
	End   Position
}

// Node is the base interface every AST node satisfies.
type Node interface {
	Span() Span
	node()
}

// Module is the root of a parsed file: an optional dotted module name
// and an ordered list of declarations.
type Module struct {
	Name  string // "" if the module-decl header was absent
	Decls []Decl
	Loc   Span
}

func (m *Module) node()      {}
func (m *Module) Span() Span { return m.Loc }

// Decl is any top-level declaration: import, data, enum, or func.
type Decl interface {
	Node
	declNode()
}

// Import represents `import dotted.name (as alias)?`.
type Import struct {
	Name string
	As   string // "" if no alias
	Loc  Span
}

func (i *Import) node()      {}
func (i *Import) declNode()  {}
func (i *Import) Span() Span { return i.Loc }

// Data represents `define Name with field1, field2, ...`.
type Data struct {
	Name   string
	Fields []*Field
	Loc    Span
}

func (d *Data) node()      {}
func (d *Data) declNode()  {}
func (d *Data) Span() Span { return d.Loc }

// Field is one member of a Data declaration.
type Field struct {
	Name         string
	Type         TypeExpr
	Constraints  []Constraint
	TypeInferred bool // true when Type was derived, not written as `as TYPE`
	Loc          Span
}

func (f *Field) node()      {}
func (f *Field) Span() Span { return f.Loc }

// Enum represents `define Name as one of V1, V2, ...`.
type Enum struct {
	Name     string
	Variants []string
	Loc      Span
}

func (e *Enum) node()      {}
func (e *Enum) declNode()  {}
func (e *Enum) Span() Span { return e.Loc }

// Func represents a function declaration, with optional type/effect
// parameters and an explicit or inferred return type.
type Func struct {
	Name               string
	TypeParams         []string
	Params             []*Parameter
	Effects            []string // base effect atoms named in the header ("io", "cpu", ...)
	EffectCaps         []string // capability names named alongside effects
	EffectCapsExplicit bool     // true if `performs` clause was written at all
	RetType            TypeExpr // nil if omitted
	RetTypeInferred    bool
	Body               []Stmt
	Loc                Span
}

func (f *Func) node()      {}
func (f *Func) declNode()  {}
func (f *Func) Span() Span { return f.Loc }

// Parameter is one `given NAME as TYPE` entry, also reused by lambdas.
type Parameter struct {
	Name string
	Type TypeExpr
	Loc  Span
}

func (p *Parameter) node()      {}
func (p *Parameter) Span() Span { return p.Loc }
