package core

// Pattern is any match-arm pattern in the Core IR.
type Pattern interface {
	Node
	patternCore()
}

type NullPattern struct {
	Orig Origin
}

func (n *NullPattern) core()          {}
func (n *NullPattern) patternCore()   {}
func (n *NullPattern) Origin() Origin { return n.Orig }

type CtorPattern struct {
	TypeName string
	Names    []string
	Args     []Pattern
	Orig     Origin
}

func (c *CtorPattern) core()          {}
func (c *CtorPattern) patternCore()   {}
func (c *CtorPattern) Origin() Origin { return c.Orig }

type NamePattern struct {
	Name string
	Orig Origin
}

func (n *NamePattern) core()          {}
func (n *NamePattern) patternCore()   {}
func (n *NamePattern) Origin() Origin { return n.Orig }

type IntPattern struct {
	Value int64
	Orig  Origin
}

func (i *IntPattern) core()          {}
func (i *IntPattern) patternCore()   {}
func (i *IntPattern) Origin() Origin { return i.Orig }
