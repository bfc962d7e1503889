package netlist

import (
	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/solver"
)

// CompileFrame recompiles nl's retained latch equations and transition
// constraints against cur (the literal vector naming each declared
// variable's value "at this frame") and returns the literals naming each
// latch's value at the following frame, plus the transition-constraint
// roots tying the two frames together. This is the per-step primitive the
// bit-level unwinder (package unwind) calls once per additional frame,
// reusing the same gate templates (package bits.go) frame 0 used, rather
// than re-parsing the hdl.Module.
//
// cur must have an entry for every name in nl.VarMap.Names(); entries for
// non-latch variables are carried through unchanged in the returned map
// (the unwinder is responsible for deciding whether an input gets a fresh
// literal at the next frame or is held constant).
func CompileFrame(sat *solver.SAT, nl *Netlist, cur map[string][]z.Lit) (next map[string][]z.Lit, roots []z.Lit, err error) {
	vm := newVarMap()
	for _, name := range nl.VarMap.Names() {
		bits, _ := nl.VarMap.Bits(name)
		lits := cur[name]
		bs := make([]Bit, len(bits))
		for i := range bits {
			l := lits[i]
			bs[i] = Bit{Current: l, Next: l}
		}
		vm.declare(name, bs, false)
	}

	next = make(map[string][]z.Lit, len(cur))
	for name, lits := range cur {
		next[name] = append([]z.Lit{}, lits...)
	}

	for name, rhs := range nl.LatchRHS {
		bits, _ := vm.Bits(name)
		nextLits, cerr := compileBV(sat, vm, rhs, len(bits))
		if cerr != nil {
			err = cerr
			return
		}
		newBits := make([]Bit, len(bits))
		for i, b := range bits {
			newBits[i] = Bit{Current: b.Current, Next: nextLits[i]}
		}
		vm.declare(name, newBits, true)
		next[name] = nextLits
	}

	for _, c := range nl.TransExprs {
		lit, cerr := compileBool(sat, vm, c)
		if cerr != nil {
			err = cerr
			return
		}
		roots = append(roots, lit)
	}
	return next, roots, nil
}

// CompileBoolAt bit-blasts a boolean-valued, non-temporal expression (a
// property's instantaneous predicate, or an auxiliary assertion) against
// vars, the literal vector naming each declared variable's value at some
// single frame. Unlike CompileFrame, it does not evaluate latch equations:
// it is for evaluating predicates *at* a frame, not advancing *across* one.
func CompileBoolAt(sat *solver.SAT, nl *Netlist, vars map[string][]z.Lit, e expr.Expr) (z.Lit, error) {
	vm := newVarMap()
	for _, name := range nl.VarMap.Names() {
		bits, _ := nl.VarMap.Bits(name)
		lits := vars[name]
		bs := make([]Bit, len(bits))
		for i := range bits {
			bs[i] = Bit{Current: lits[i], Next: lits[i]}
		}
		vm.declare(name, bs, false)
	}
	return compileBool(sat, vm, e)
}
