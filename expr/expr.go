// Package expr is the expression language shared by the transition
// representation (package hdl) and property lowering (package property).
//
// A value of Expr is either boolean-valued (a predicate) or bitvector-valued
// (an arithmetic term); which one is determined by where it appears in the
// tree, the same way an elaborated HDL expression tree would be typed by a
// front-end we don't implement here. Identity of state variables is carried
// by Var nodes; "current" vs. "next" is carried by whether a Var sits inside
// a Next node.
package expr

import "fmt"

// Expr is any node in the expression tree.
type Expr interface {
	fmt.Stringer
	isExpr()
}

type leaf struct{}

func (leaf) isExpr() {}

// Var references a state or input variable by name, at the "current" time
// frame unless wrapped in Next.
type Var struct {
	leaf
	Name  string
	Width int
}

func (v Var) String() string { return v.Name }

// Next marks that Inner refers to the following time frame. In a Trans
// predicate, Next(Var{"q"}) is q'.
type Next struct {
	leaf
	Inner Expr
}

func (n Next) String() string { return fmt.Sprintf("next(%s)", n.Inner) }

// Const is an unsigned bitvector literal of the given width.
type Const struct {
	leaf
	Value uint64
	Width int
}

func (c Const) String() string { return fmt.Sprintf("%d", c.Value) }

// Bool constructs the boolean constants as 1-bit Consts.
func Bool(b bool) Const {
	if b {
		return Const{Value: 1, Width: 1}
	}
	return Const{Value: 0, Width: 1}
}

// ---- boolean connectives ----

type Not struct {
	leaf
	Inner Expr
}

func (n Not) String() string { return fmt.Sprintf("!%s", n.Inner) }

type And struct {
	leaf
	Left, Right Expr
}

func (a And) String() string { return fmt.Sprintf("(%s & %s)", a.Left, a.Right) }

type Or struct {
	leaf
	Left, Right Expr
}

func (o Or) String() string { return fmt.Sprintf("(%s | %s)", o.Left, o.Right) }

// Implies is sugar for Or{Not{Left}, Right}.
func Implies(left, right Expr) Expr {
	return Or{Left: Not{Inner: left}, Right: right}
}

// AndAll conjoins a (possibly empty) list of predicates; an empty list is
// the constant true.
func AndAll(es ...Expr) Expr {
	if len(es) == 0 {
		return Bool(true)
	}
	acc := es[0]
	for _, e := range es[1:] {
		acc = And{Left: acc, Right: e}
	}
	return acc
}

// ---- bitvector comparisons (predicate-valued) ----

type cmpOp int

const (
	OpEq cmpOp = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
)

var cmpSym = map[cmpOp]string{OpEq: "==", OpNeq: "!=", OpLt: "<", OpLte: "<=", OpGt: ">", OpGte: ">="}

type Cmp struct {
	leaf
	Op          cmpOp
	Left, Right Expr
}

func (c Cmp) String() string { return fmt.Sprintf("(%s %s %s)", c.Left, cmpSym[c.Op], c.Right) }

func Eq(l, r Expr) Expr  { return Cmp{Op: OpEq, Left: l, Right: r} }
func Neq(l, r Expr) Expr { return Cmp{Op: OpNeq, Left: l, Right: r} }
func Lt(l, r Expr) Expr  { return Cmp{Op: OpLt, Left: l, Right: r} }
func Lte(l, r Expr) Expr { return Cmp{Op: OpLte, Left: l, Right: r} }
func Gt(l, r Expr) Expr  { return Cmp{Op: OpGt, Left: l, Right: r} }
func Gte(l, r Expr) Expr { return Cmp{Op: OpGte, Left: l, Right: r} }

// ---- bitvector arithmetic (bitvector-valued) ----

type arithOp int

const (
	OpAdd arithOp = iota
	OpSub
	OpMod
)

var arithSym = map[arithOp]string{OpAdd: "+", OpSub: "-", OpMod: "%"}

type Arith struct {
	leaf
	Op          arithOp
	Left, Right Expr
	Width       int
}

func (a Arith) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left, arithSym[a.Op], a.Right)
}

func Add(l, r Expr, width int) Expr { return Arith{Op: OpAdd, Left: l, Right: r, Width: width} }
func Sub(l, r Expr, width int) Expr { return Arith{Op: OpSub, Left: l, Right: r, Width: width} }
func Mod(l, r Expr, width int) Expr { return Arith{Op: OpMod, Left: l, Right: r, Width: width} }

// ---- temporal wrappers (top-level property skeleton) ----

// Always is "the property must hold in every frame", the implicit wrapper
// applied when a property has no temporal operator of its own.
type Always struct {
	leaf
	Inner Expr
}

func (a Always) String() string { return fmt.Sprintf("always %s", a.Inner) }

// NextTime is "○ Q" / SVA's "next Q": Q must hold one frame ahead.
type NextTime struct {
	leaf
	Inner Expr
}

func (n NextTime) String() string { return fmt.Sprintf("next %s", n.Inner) }

// Until is the bounded "Q until R".
type Until struct {
	leaf
	Left, Right Expr
}

func (u Until) String() string { return fmt.Sprintf("(%s until %s)", u.Left, u.Right) }

// WrapImplicitAlways gives e an implicit Always wrapper unless it is
// already temporally quantified at the top, as SVA does for bare
// assertions. Idempotent: WrapImplicitAlways(Always{Q}) == Always{Q}.
func WrapImplicitAlways(e Expr) Expr {
	switch e.(type) {
	case Always, NextTime, Until:
		return e
	default:
		return Always{Inner: e}
	}
}
