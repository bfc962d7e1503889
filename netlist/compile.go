package netlist

import (
	"fmt"

	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/solver"
)

// compile.go is the convert(expr) boundary: it walks an
// expr.Expr tree and emits its bit-blasted realization over a VarMap's
// literals, using the gate templates in bits.go. It recognizes exactly the
// operators package expr defines; anything else (the temporal wrappers
// Always/NextTime/Until) belongs to property lowering, not the netlist, and
// is rejected here.

// exprWidth reports the bit width a bitvector-valued expression denotes.
func exprWidth(vm *VarMap, e expr.Expr) (int, error) {
	switch n := e.(type) {
	case expr.Var:
		bits, ok := vm.Bits(n.Name)
		if !ok {
			return 0, fmt.Errorf("undefined signal %q", n.Name)
		}
		return len(bits), nil
	case expr.Next:
		return exprWidth(vm, n.Inner)
	case expr.Const:
		return n.Width, nil
	case expr.Arith:
		return n.Width, nil
	default:
		return 0, fmt.Errorf("expression %s is not bitvector-valued", e)
	}
}

// padOrTrunc adjusts lits (LSB-first) to exactly width bits, zero-extending
// or truncating as needed.
func padOrTrunc(sat *solver.SAT, lits []z.Lit, width int) []z.Lit {
	if len(lits) == width {
		return lits
	}
	if len(lits) > width {
		return lits[:width]
	}
	out := make([]z.Lit, width)
	copy(out, lits)
	for i := len(lits); i < width; i++ {
		out[i] = sat.False()
	}
	return out
}

// compileBV bit-blasts a bitvector-valued expression to width literals,
// LSB-first.
func compileBV(sat *solver.SAT, vm *VarMap, e expr.Expr, width int) ([]z.Lit, error) {
	switch n := e.(type) {
	case expr.Var:
		if _, ok := vm.Bits(n.Name); !ok {
			return nil, fmt.Errorf("undefined signal %q", n.Name)
		}
		return padOrTrunc(sat, vm.CurrentLits(n.Name), width), nil

	case expr.Next:
		v, ok := n.Inner.(expr.Var)
		if !ok {
			return nil, fmt.Errorf("next() applies only to a variable, got %s", n.Inner)
		}
		if _, ok := vm.Bits(v.Name); !ok {
			return nil, fmt.Errorf("undefined signal %q", v.Name)
		}
		return padOrTrunc(sat, vm.NextLits(v.Name), width), nil

	case expr.Const:
		return constBits(sat, n.Value, width), nil

	case expr.Arith:
		left, err := compileBV(sat, vm, n.Left, n.Width)
		if err != nil {
			return nil, err
		}
		right, err := compileBV(sat, vm, n.Right, n.Width)
		if err != nil {
			return nil, err
		}
		var res []z.Lit
		switch n.Op {
		case expr.OpAdd:
			res = addBits(sat, left, right)
		case expr.OpSub:
			res = subBits(sat, left, right)
		case expr.OpMod:
			c, ok := n.Right.(expr.Const)
			if !ok {
				return nil, fmt.Errorf("modulus must be a constant, got %s", n.Right)
			}
			res = modBits(sat, left, c.Value, n.Width)
		default:
			return nil, fmt.Errorf("unknown arithmetic operator in %s", n)
		}
		return padOrTrunc(sat, res, width), nil

	default:
		return nil, fmt.Errorf("expression %s is not bitvector-valued", e)
	}
}

// compileBool bit-blasts a boolean-valued expression to a single literal.
func compileBool(sat *solver.SAT, vm *VarMap, e expr.Expr) (z.Lit, error) {
	switch n := e.(type) {
	case expr.Const:
		if n.Value != 0 {
			return sat.True(), nil
		}
		return sat.False(), nil

	case expr.Var:
		bits, ok := vm.Bits(n.Name)
		if !ok {
			return z.LitNull, fmt.Errorf("undefined signal %q", n.Name)
		}
		if len(bits) != 1 {
			return z.LitNull, fmt.Errorf("variable %q used as a boolean has width %d", n.Name, len(bits))
		}
		return vm.CurrentLits(n.Name)[0], nil

	case expr.Not:
		inner, err := compileBool(sat, vm, n.Inner)
		if err != nil {
			return z.LitNull, err
		}
		return inner.Not(), nil

	case expr.And:
		l, err := compileBool(sat, vm, n.Left)
		if err != nil {
			return z.LitNull, err
		}
		r, err := compileBool(sat, vm, n.Right)
		if err != nil {
			return z.LitNull, err
		}
		return sat.And(l, r), nil

	case expr.Or:
		l, err := compileBool(sat, vm, n.Left)
		if err != nil {
			return z.LitNull, err
		}
		r, err := compileBool(sat, vm, n.Right)
		if err != nil {
			return z.LitNull, err
		}
		return sat.Or(l, r), nil

	case expr.Cmp:
		wl, errL := exprWidth(vm, n.Left)
		wr, errR := exprWidth(vm, n.Right)
		width := wl
		if errL != nil {
			if errR != nil {
				return z.LitNull, errR
			}
			width = wr
		} else if errR == nil && wr > width {
			width = wr
		}
		l, err := compileBV(sat, vm, n.Left, width)
		if err != nil {
			return z.LitNull, err
		}
		r, err := compileBV(sat, vm, n.Right, width)
		if err != nil {
			return z.LitNull, err
		}
		switch n.Op {
		case expr.OpEq:
			return eqBits(sat, l, r), nil
		case expr.OpNeq:
			return eqBits(sat, l, r).Not(), nil
		case expr.OpLt:
			return ltBits(sat, l, r), nil
		case expr.OpLte:
			return lteBits(sat, l, r), nil
		case expr.OpGt:
			return gtBits(sat, l, r), nil
		case expr.OpGte:
			return gteBits(sat, l, r), nil
		default:
			return z.LitNull, fmt.Errorf("unknown comparison operator in %s", n)
		}

	default:
		return z.LitNull, fmt.Errorf("expression %s is not boolean-valued", e)
	}
}
