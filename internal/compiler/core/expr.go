package core

type Expr interface {
	Node
	exprCore()
}

type Name struct {
	Value string
	Orig  Origin
}

func (n *Name) core()          {}
func (n *Name) exprCore()      {}
func (n *Name) Origin() Origin { return n.Orig }

type Bool struct {
	Value bool
	Orig  Origin
}

func (b *Bool) core()          {}
func (b *Bool) exprCore()      {}
func (b *Bool) Origin() Origin { return b.Orig }

type Int struct {
	Value int64
	Orig  Origin
}

func (i *Int) core()          {}
func (i *Int) exprCore()      {}
func (i *Int) Origin() Origin { return i.Orig }

type Long struct {
	Value string
	Orig  Origin
}

func (l *Long) core()          {}
func (l *Long) exprCore()      {}
func (l *Long) Origin() Origin { return l.Orig }

type Double struct {
	Value float64
	Orig  Origin
}

func (d *Double) core()          {}
func (d *Double) exprCore()      {}
func (d *Double) Origin() Origin { return d.Orig }

type String struct {
	Value string
	Orig  Origin
}

func (s *String) core()          {}
func (s *String) exprCore()      {}
func (s *String) Origin() Origin { return s.Orig }

type NullExpr struct {
	Orig Origin
}

func (n *NullExpr) core()          {}
func (n *NullExpr) exprCore()      {}
func (n *NullExpr) Origin() Origin { return n.Orig }

type Call struct {
	Target string
	Args   []Expr
	Orig   Origin
}

func (c *Call) core()          {}
func (c *Call) exprCore()      {}
func (c *Call) Origin() Origin { return c.Orig }

type Construct struct {
	TypeName string
	Fields   []FieldInit
	Orig     Origin
}

func (c *Construct) core()          {}
func (c *Construct) exprCore()      {}
func (c *Construct) Origin() Origin { return c.Orig }

type FieldInit struct {
	Name  string
	Value Expr
}

type Ok struct {
	Value Expr
	Orig  Origin
}

func (o *Ok) core()          {}
func (o *Ok) exprCore()      {}
func (o *Ok) Origin() Origin { return o.Orig }

type Err struct {
	Value Expr
	Orig  Origin
}

func (e *Err) core()          {}
func (e *Err) exprCore()      {}
func (e *Err) Origin() Origin { return e.Orig }

type Some struct {
	Value Expr
	Orig  Origin
}

func (s *Some) core()          {}
func (s *Some) exprCore()      {}
func (s *Some) Origin() Origin { return s.Orig }

type None struct {
	Orig Origin
}

func (n *None) core()          {}
func (n *None) exprCore()      {}
func (n *None) Origin() Origin { return n.Orig }

type Lambda struct {
	Params  []*Parameter
	RetType TypeExpr
	Body    []Stmt
	Orig    Origin
}

func (l *Lambda) core()          {}
func (l *Lambda) exprCore()      {}
func (l *Lambda) Origin() Origin { return l.Orig }

type Await struct {
	Value Expr
	Orig  Origin
}

func (a *Await) core()          {}
func (a *Await) exprCore()      {}
func (a *Await) Origin() Origin { return a.Orig }

type Binary struct {
	Op    string
	Left  Expr
	Right Expr
	Orig  Origin
}

func (b *Binary) core()          {}
func (b *Binary) exprCore()      {}
func (b *Binary) Origin() Origin { return b.Orig }

type Unary struct {
	Op      string
	Operand Expr
	Orig    Origin
}

func (u *Unary) core()          {}
func (u *Unary) exprCore()      {}
func (u *Unary) Origin() Origin { return u.Orig }
