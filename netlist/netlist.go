// Package netlist compiles a transition system (package hdl) into a
// gate-level netlist: a variable map, a latch list, and a
// transition-constraint set, all expressed over literals of a shared
// solver.SAT circuit (github.com/irifrance/gini's logic.C, see
// solver.SAT.Circuit). The feedback cycles a netlist naturally contains
// (latch through combinational logic back to the same latch) cost nothing
// here: gini's z.Lit is a small dense integer naming an arena-allocated
// circuit node, so edges are index pairs and no node owns another.
package netlist

import (
	"fmt"

	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/bmcerr"
	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/solver"
	"github.com/rfielding/ebmc-go/stats"
)

// Netlist is the gate-level realization of a hdl.System.
type Netlist struct {
	VarMap       *VarMap
	Latches      []LatchEntry
	InitConstrs  []z.Lit // bit-blasted conjuncts of Init, over frame-0 Current literals
	TransConstrs []z.Lit // bit-blasted conjuncts of Trans that are not latch equations

	// LatchRHS and TransExprs retain the parsed (pre-bit-blast) conjuncts
	// so package unwind can recompile the transition relation fresh
	// against each new frame's literals via CompileFrame, instead of
	// re-parsing the hdl.Module at every frame.
	LatchRHS   map[string]expr.Expr
	TransExprs []expr.Expr

	sat *solver.SAT
}

// NumberOfNodes reports the circuit node count for the "Latches: N,
// nodes: M" statistics line.
func (n *Netlist) NumberOfNodes() int {
	return n.sat.Circuit().Len()
}

// Build compiles module's System into a Netlist. It returns ModelMalformed-
// class errors (see package bmcerr) for the two failure modes reachable
// from this Expr-tree representation: a module with an empty transition
// relation, and a next-state equation that references an undeclared
// signal. A combinational loop cannot arise here, since this
// representation has no named intermediate combinational wires to alias
// into a cycle; every combinational sub-expression is a tree node owned by
// exactly one equation.
func Build(m *hdl.Module, sat *solver.SAT) (*Netlist, error) {
	sys := m.System()
	vm := newVarMap()

	// Every declared variable gets a fresh current-frame literal per bit
	// up front; next-frame literals for inputs/combinational vars default
	// to the same literal (no latch), and are overwritten below for any
	// variable a Trans equation actually defines as a latch.
	declare := func(v hdl.VarDecl) {
		bits := make([]Bit, v.Width)
		for i := range bits {
			l := sat.NewLit()
			bits[i] = Bit{Current: l, Next: l}
		}
		vm.declare(v.Name, bits, false)
	}
	for _, v := range sys.StateVars() {
		declare(v)
	}
	for _, v := range sys.InputVars() {
		declare(v)
	}

	conjuncts := flattenAnd(sys.Trans())
	var transConstrs []z.Lit
	var transExprs []expr.Expr
	latchRHS := make(map[string]expr.Expr)
	definedLatch := make(map[string]bool)

	for _, c := range conjuncts {
		name, rhs, ok := latchEquation(c)
		if ok {
			bits, exists := vm.Bits(name)
			if !exists {
				return nil, fmt.Errorf("%w: next-state equation for undeclared signal %q", bmcerr.ErrModelMalformed, name)
			}
			nextLits, err := compileBV(sat, vm, rhs, len(bits))
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", bmcerr.ErrModelMalformed, name, err)
			}
			newBits := make([]Bit, len(bits))
			for i, b := range bits {
				newBits[i] = Bit{Current: b.Current, Next: nextLits[i]}
			}
			vm.declare(name, newBits, true)
			definedLatch[name] = true
			latchRHS[name] = rhs
			continue
		}
		lit, err := compileBool(sat, vm, c)
		if err != nil {
			return nil, fmt.Errorf("%w: transition constraint: %v", bmcerr.ErrModelMalformed, err)
		}
		transConstrs = append(transConstrs, lit)
		transExprs = append(transExprs, c)
	}

	stateVars := sys.StateVars()
	if len(stateVars) > 0 && len(definedLatch) == 0 {
		return nil, fmt.Errorf("%w: module %q has state variables but no next-state equations (no transition value)", bmcerr.ErrModelMalformed, m.Name())
	}

	var initConstrs []z.Lit
	for _, c := range flattenAnd(sys.Init()) {
		lit, err := compileBool(sat, vm, c)
		if err != nil {
			return nil, fmt.Errorf("%w: init predicate: %v", bmcerr.ErrModelMalformed, err)
		}
		initConstrs = append(initConstrs, lit)
	}

	var latches []LatchEntry
	for _, name := range vm.Names() {
		if !vm.IsLatch(name) {
			continue
		}
		bits, _ := vm.Bits(name)
		for i, b := range bits {
			latches = append(latches, LatchEntry{Name: name, Bit: i, Lit: b})
		}
	}

	nl := &Netlist{
		VarMap:       vm,
		Latches:      latches,
		InitConstrs:  initConstrs,
		TransConstrs: transConstrs,
		LatchRHS:     latchRHS,
		TransExprs:   transExprs,
		sat:          sat,
	}

	stats.Global.SetLatches(len(latches))
	stats.Global.SetNodes(nl.NumberOfNodes())

	return nl, nil
}

// flattenAnd decomposes nested And nodes into a flat conjunct list; a nil
// or true expression yields no conjuncts.
func flattenAnd(e expr.Expr) []expr.Expr {
	switch n := e.(type) {
	case nil:
		return nil
	case expr.And:
		return append(flattenAnd(n.Left), flattenAnd(n.Right)...)
	case expr.Const:
		if n.Value != 0 {
			return nil
		}
		return []expr.Expr{n}
	default:
		return []expr.Expr{e}
	}
}

// latchEquation recognizes "next(v) == rhs" or "rhs == next(v)" conjuncts.
func latchEquation(e expr.Expr) (name string, rhs expr.Expr, ok bool) {
	cmp, isCmp := e.(expr.Cmp)
	if !isCmp || cmp.Op != expr.OpEq {
		return "", nil, false
	}
	if n, isNext := cmp.Left.(expr.Next); isNext {
		if v, isVar := n.Inner.(expr.Var); isVar {
			return v.Name, cmp.Right, true
		}
	}
	if n, isNext := cmp.Right.(expr.Next); isNext {
		if v, isVar := n.Inner.(expr.Var); isVar {
			return v.Name, cmp.Left, true
		}
	}
	return "", nil, false
}
