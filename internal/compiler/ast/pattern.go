package ast

// Pattern is any match-arm pattern.
type Pattern interface {
	Node
	patternNode()
}

type NullPattern struct {
	Loc Span
}

func (n *NullPattern) node()        {}
func (n *NullPattern) patternNode() {}
func (n *NullPattern) Span() Span   { return n.Loc }

// CtorPattern destructures a constructor: `Some(x)`, `Ok(value)`,
// `Err(msg)`, or a named-field form `T { a, b }` recorded via Names.
type CtorPattern struct {
	TypeName string
	Names    []string
	Args     []Pattern
	Loc      Span
}

func (c *CtorPattern) node()        {}
func (c *CtorPattern) patternNode() {}
func (c *CtorPattern) Span() Span   { return c.Loc }

type NamePattern struct {
	Name string
	Loc  Span
}

func (n *NamePattern) node()        {}
func (n *NamePattern) patternNode() {}
func (n *NamePattern) Span() Span   { return n.Loc }

type IntPattern struct {
	Value int64
	Loc   Span
}

func (i *IntPattern) node()        {}
func (i *IntPattern) patternNode() {}
func (i *IntPattern) Span() Span   { return i.Loc }
