package lowering

import (
	"math"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// foldConstant folds a lowered Binary/Unary node over Int or Double
// literal operands when the result cannot overflow; anything else
// (division, mixed operands, a result that would overflow) is left as
// the unfolded node for the type checker and effect inference to see.
func foldConstant(e core.Expr) core.Expr {
	switch n := e.(type) {
	case *core.Unary:
		if n.Op != "-" {
			return n
		}
		switch v := n.Operand.(type) {
		case *core.Int:
			if v.Value == math.MinInt64 {
				return n
			}
			return &core.Int{Value: -v.Value, Orig: n.Orig}
		case *core.Double:
			return &core.Double{Value: -v.Value, Orig: n.Orig}
		}
		return n
	case *core.Binary:
		left, lok := n.Left.(*core.Int)
		right, rok := n.Right.(*core.Int)
		if lok && rok {
			if v, ok := foldIntOp(n.Op, left.Value, right.Value); ok {
				return &core.Int{Value: v, Orig: n.Orig}
			}
			return n
		}
		dleft, ldok := n.Left.(*core.Double)
		dright, rdok := n.Right.(*core.Double)
		if ldok && rdok {
			if v, ok := foldDoubleOp(n.Op, dleft.Value, dright.Value); ok {
				return &core.Double{Value: v, Orig: n.Orig}
			}
			return n
		}
		return n
	default:
		return e
	}
}

func foldIntOp(op string, a, b int64) (int64, bool) {
	switch op {
	case "+":
		sum := a + b
		if (b > 0 && sum < a) || (b < 0 && sum > a) {
			return 0, false
		}
		return sum, true
	case "-":
		diff := a - b
		if (b < 0 && diff < a) || (b > 0 && diff > a) {
			return 0, false
		}
		return diff, true
	case "*":
		if a == 0 || b == 0 {
			return 0, true
		}
		prod := a * b
		if prod/b != a {
			return 0, false
		}
		return prod, true
	default:
		// division is never folded: by-zero is a runtime concern, not a
		// lowering one.
		return 0, false
	}
}

func foldDoubleOp(op string, a, b float64) (float64, bool) {
	var v float64
	switch op {
	case "+":
		v = a + b
	case "-":
		v = a - b
	case "*":
		v = a * b
	default:
		return 0, false
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
