package ast

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Name references a binder: a parameter, local let, pattern binding, or
// a dotted field access collapsed into one identifier at parse time.
type Name struct {
	Value string
	Loc   Span
}

func (n *Name) node()      {}
func (n *Name) exprNode()  {}
func (n *Name) Span() Span { return n.Loc }

type Bool struct {
	Value bool
	Loc   Span
}

func (b *Bool) node()      {}
func (b *Bool) exprNode()  {}
func (b *Bool) Span() Span { return b.Loc }

type Int struct {
	Value int64
	Loc   Span
}

func (i *Int) node()      {}
func (i *Int) exprNode()  {}
func (i *Int) Span() Span { return i.Loc }

// Long holds a literal too wide for Int as a decimal string, avoiding
// precision loss before the type checker assigns its numeric type.
type Long struct {
	Value string
	Loc   Span
}

func (l *Long) node()      {}
func (l *Long) exprNode()  {}
func (l *Long) Span() Span { return l.Loc }

type Double struct {
	Value float64
	Loc   Span
}

func (d *Double) node()      {}
func (d *Double) exprNode()  {}
func (d *Double) Span() Span { return d.Loc }

type String struct {
	Value string
	Loc   Span
}

func (s *String) node()      {}
func (s *String) exprNode()  {}
func (s *String) Span() Span { return s.Loc }

type NullExpr struct {
	Loc Span
}

func (n *NullExpr) node()      {}
func (n *NullExpr) exprNode()  {}
func (n *NullExpr) Span() Span { return n.Loc }

// Call is a function call with positional arguments; Target may be
// dotted (e.g. "Http.get").
type Call struct {
	Target string
	Args   []Expr
	Loc    Span
}

func (c *Call) node()      {}
func (c *Call) exprNode()  {}
func (c *Call) Span() Span { return c.Loc }

// Construct is a constructor literal `T with f1 = e1, f2 = e2`.
type Construct struct {
	TypeName string
	Fields   []FieldInit
	Loc      Span
}

func (c *Construct) node()      {}
func (c *Construct) exprNode()  {}
func (c *Construct) Span() Span { return c.Loc }

// FieldInit is one `name = value` entry inside a Construct.
type FieldInit struct {
	Name  string
	Value Expr
}

type Ok struct {
	Value Expr
	Loc   Span
}

func (o *Ok) node()      {}
func (o *Ok) exprNode()  {}
func (o *Ok) Span() Span { return o.Loc }

type Err struct {
	Value Expr
	Loc   Span
}

func (e *Err) node()      {}
func (e *Err) exprNode()  {}
func (e *Err) Span() Span { return e.Loc }

type Some struct {
	Value Expr
	Loc   Span
}

func (s *Some) node()      {}
func (s *Some) exprNode()  {}
func (s *Some) Span() Span { return s.Loc }

type None struct {
	Loc Span
}

func (n *None) node()      {}
func (n *None) exprNode()  {}
func (n *None) Span() Span { return n.Loc }

// Lambda is `given P1, P2 : RetType -> BODY`.
type Lambda struct {
	Params  []*Parameter
	RetType TypeExpr // nil if omitted
	Body    []Stmt
	Loc     Span
}

func (l *Lambda) node()      {}
func (l *Lambda) exprNode()  {}
func (l *Lambda) Span() Span { return l.Loc }

// Binary is an infix operator expression. Op is the lexicon-independent
// canonical spelling the parser normalizes every phrase to: "+", "-",
// "*", "/", "<", ">", "<=", ">=", "==", "and", "or".
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
	Loc   Span
}

func (b *Binary) node()      {}
func (b *Binary) exprNode()  {}
func (b *Binary) Span() Span { return b.Loc }

// Unary is a prefix operator expression: "-" (negation) or "not".
type Unary struct {
	Op      string
	Operand Expr
	Loc     Span
}

func (u *Unary) node()      {}
func (u *Unary) exprNode()  {}
func (u *Unary) Span() Span { return u.Loc }

// Await is `await EXPR`.
type Await struct {
	Value Expr
	Loc   Span
}

func (a *Await) node()      {}
func (a *Await) exprNode()  {}
func (a *Await) Span() Span { return a.Loc }
