package typecheck

import (
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/compiler/types"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

func (c *Checker) checkExpr(e core.Expr) types.Type {
	switch n := e.(type) {
	case *core.Name:
		return c.resolveName(n)
	case *core.Bool:
		return types.NewPrimitiveType(types.Bool)
	case *core.Int:
		return types.NewPrimitiveType(types.Int)
	case *core.Long:
		return types.NewPrimitiveType(types.Long)
	case *core.Double:
		return types.NewPrimitiveType(types.Double)
	case *core.String:
		return types.NewPrimitiveType(types.Text)
	case *core.NullExpr:
		return &types.Maybe{Base: types.NewPrimitiveType(types.Unknown)}
	case *core.Call:
		return c.checkCall(n)
	case *core.Construct:
		return c.checkConstruct(n)
	case *core.Ok:
		return &types.Result{Ok: c.checkExpr(n.Value)}
	case *core.Err:
		return &types.Result{Ok: types.NewPrimitiveType(types.Unknown), Err: c.checkExpr(n.Value)}
	case *core.Some:
		return &types.Option{Elem: c.checkExpr(n.Value)}
	case *core.None:
		return &types.Option{Elem: types.NewPrimitiveType(types.Unknown)}
	case *core.Lambda:
		return c.checkLambda(n)
	case *core.Await:
		return c.checkAwait(n)
	case *core.Binary:
		return c.checkBinary(n)
	case *core.Unary:
		return c.checkUnary(n)
	default:
		return types.NewPrimitiveType(types.Unknown)
	}
}

// resolveName walks a dotted Name against the current scope and the
// Data fields it names. When the base segment is unresolved and
// exactly one Data declaration has a field matching the next segment,
// that Data is used as a heuristic hint for the base's type.
func (c *Checker) resolveName(n *core.Name) types.Type {
	parts := strings.Split(n.Value, ".")
	cur, ok := c.scope[parts[0]]
	if !ok {
		if len(parts) > 1 {
			if hint, found := c.heuristicFieldHint(parts[1]); found {
				cur = hint
			}
		}
		if cur == nil {
			c.report(diagnostics.Errorf("S005", n.Orig, "undefined name %q", parts[0]))
			return types.NewPrimitiveType(types.Unknown)
		}
	}

	for _, seg := range parts[1:] {
		named, isNamed := cur.(*types.Named)
		if !isNamed {
			if isUnknownType(cur) {
				return cur
			}
			c.report(diagnostics.Errorf("S006", n.Orig, "cannot access field %q on non-data type %s", seg, cur))
			return types.NewPrimitiveType(types.Unknown)
		}
		data, ok := c.ctx.Data[named.Name]
		if !ok {
			return types.NewPrimitiveType(types.Unknown)
		}
		field := findField(data, seg)
		if field == nil {
			c.report(diagnostics.Errorf("S007", n.Orig, "%s has no field %q", named.Name, seg))
			return types.NewPrimitiveType(types.Unknown)
		}
		cur = c.resolveType(field.Type)
	}
	return cur
}

func (c *Checker) heuristicFieldHint(fieldName string) (types.Type, bool) {
	var match string
	count := 0
	for name, d := range c.ctx.Data {
		if findField(d, fieldName) != nil {
			match = name
			count++
		}
	}
	if count == 1 {
		return &types.Named{Name: match}, true
	}
	return nil, false
}

func findField(d *core.Data, name string) *core.Field {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func isUnknownType(t types.Type) bool {
	p, ok := t.(*types.PrimitiveType)
	return ok && p.Name == types.Unknown
}

// checkCall resolves a (possibly dotted, interop) call's return type
// and flags mixed Int/Long/Double arguments passed to an interop call
// as AMBIGUOUS_INTEROP_NUMERIC — §4.7's overload-ambiguity warning.
func (c *Checker) checkCall(n *core.Call) types.Type {
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.checkExpr(a)
	}

	if strings.Contains(n.Target, ".") {
		seenNumeric := map[string]bool{}
		for _, t := range argTypes {
			if p, ok := t.(*types.PrimitiveType); ok {
				switch p.Name {
				case types.Int, types.Long, types.Double, types.Float:
					seenNumeric[p.Name] = true
				}
			}
		}
		if len(seenNumeric) > 1 {
			c.report(diagnostics.Warnf("AMBIGUOUS_INTEROP_NUMERIC", n.Orig,
				"call to %q mixes numeric argument types; overload resolution is ambiguous", n.Target))
		}
	}

	if fn, ok := c.ctx.Funcs[n.Target]; ok {
		return c.resolveType(fn.RetType)
	}
	return types.NewPrimitiveType(types.Unknown)
}

func (c *Checker) checkConstruct(n *core.Construct) types.Type {
	data, ok := c.ctx.Data[n.TypeName]
	if !ok {
		c.report(diagnostics.Errorf("S004", n.Orig, "undefined type %q", n.TypeName))
		for _, f := range n.Fields {
			c.checkExpr(f.Value)
		}
		return types.NewPrimitiveType(types.Unknown)
	}

	provided := map[string]bool{}
	for _, f := range n.Fields {
		provided[f.Name] = true
		valType := c.checkExpr(f.Value)
		field := findField(data, f.Name)
		if field == nil {
			c.report(diagnostics.Warnf("UNKNOWN_FIELD", n.Orig, "%s has no field %q", data.Name, f.Name))
			continue
		}
		expected := c.resolveType(field.Type)
		if !types.Assignable(expected, valType, false) {
			c.report(diagnostics.Errorf("S102", n.Orig,
				"field %q expects %s, got %s", f.Name, expected, valType))
		}
	}
	for _, f := range data.Fields {
		if provided[f.Name] {
			continue
		}
		if fieldRequired(f) {
			c.report(diagnostics.Warnf("MISSING_REQUIRED_FIELD", n.Orig, "%s is missing required field %q", data.Name, f.Name))
		}
	}
	return &types.Named{Name: data.Name}
}

func fieldRequired(f *core.Field) bool {
	for _, con := range f.Constraints {
		if _, ok := con.(*core.RequiredConstraint); ok {
			return true
		}
	}
	return false
}

func (c *Checker) checkLambda(n *core.Lambda) types.Type {
	saved := c.scope
	child := make(map[string]types.Type, len(saved)+len(n.Params))
	for k, v := range saved {
		child[k] = v
	}
	ft := &types.FuncType{Ret: c.resolveType(n.RetType)}
	for _, p := range n.Params {
		pt := c.resolveType(p.Type)
		child[p.Name] = pt
		ft.Params = append(ft.Params, pt)
	}
	c.scope = child
	c.checkBlock(n.Body)
	c.scope = saved
	return ft
}

// checkAwait unwraps a Maybe/Result/Workflow-shaped value to its inner
// type; awaiting anything else is suspicious but not fatal.
func (c *Checker) checkAwait(n *core.Await) types.Type {
	inner := c.checkExpr(n.Value)
	switch t := inner.(type) {
	case *types.Maybe:
		return t.Base
	case *types.Result:
		return t.Ok
	case *types.Workflow:
		return t.Result
	default:
		if isUnknownType(inner) {
			return inner
		}
		c.report(diagnostics.Warnf("S103", n.Orig, "await of a non-async-like type %s", inner))
		return inner
	}
}

func (c *Checker) checkBinary(n *core.Binary) types.Type {
	left := c.checkExpr(n.Left)
	right := c.checkExpr(n.Right)
	switch n.Op {
	case "and", "or", "==", "!=", "<", "<=", ">", ">=":
		return types.NewPrimitiveType(types.Bool)
	default: // + - * /
		if types.Assignable(left, right, false) {
			return left
		}
		if types.Assignable(right, left, false) {
			return right
		}
		c.report(diagnostics.Errorf("S104", n.Orig, "operator %q operands have incompatible types %s and %s", n.Op, left, right))
		return types.NewPrimitiveType(types.Unknown)
	}
}

func (c *Checker) checkUnary(n *core.Unary) types.Type {
	operand := c.checkExpr(n.Operand)
	if n.Op == "not" {
		return types.NewPrimitiveType(types.Bool)
	}
	return operand
}
