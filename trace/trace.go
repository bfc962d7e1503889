// Package trace extracts a counterexample from a solved SAT instance: one
// concrete (or don't-care, "x") value per declared variable per frame, and
// serializes it as text or as a VCD waveform.
package trace

import (
	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/netlist"
	"github.com/rfielding/ebmc-go/solver"
	"github.com/rfielding/ebmc-go/unwind"
)

// FrameValues is one time step's variable assignment, keyed by variable
// name, each value a bit string (MSB..LSB, 'x' for don't-care).
type FrameValues struct {
	Index int
	Vars  map[string]string
}

// Trace is a full counterexample: a concrete assignment for every declared
// variable across frames 0..Bound.
type Trace struct {
	Bound  int
	Frames []FrameValues
}

// RelevantVars computes the set of variable names that actually appear
// (directly or via next()) in nl's retained transition constraints or in
// propSource. A variable outside this set cannot influence whether the
// property holds or the transition relation is satisfied, so Extract
// reports a non-latch variable outside it as don't-care ("x") rather than
// a solver artifact of no semantic significance; latches are always
// reported with their model values. Free bits are never coerced to 0.
func RelevantVars(nl *netlist.Netlist, propSource expr.Expr) map[string]bool {
	set := make(map[string]bool)
	for _, e := range nl.TransExprs {
		collectVars(e, set)
	}
	for _, rhs := range nl.LatchRHS {
		collectVars(rhs, set)
	}
	collectVars(propSource, set)
	return set
}

func collectVars(e expr.Expr, set map[string]bool) {
	switch n := e.(type) {
	case expr.Var:
		set[n.Name] = true
	case expr.Next:
		collectVars(n.Inner, set)
	case expr.Not:
		collectVars(n.Inner, set)
	case expr.And:
		collectVars(n.Left, set)
		collectVars(n.Right, set)
	case expr.Or:
		collectVars(n.Left, set)
		collectVars(n.Right, set)
	case expr.Cmp:
		collectVars(n.Left, set)
		collectVars(n.Right, set)
	case expr.Arith:
		collectVars(n.Left, set)
		collectVars(n.Right, set)
	case expr.Always:
		collectVars(n.Inner, set)
	case expr.NextTime:
		collectVars(n.Inner, set)
	case expr.Until:
		collectVars(n.Left, set)
		collectVars(n.Right, set)
	}
}

// Extract reads off frames 0..upTo from a Satisfiable model, marking any
// non-latch (input) variable not present in relevant as "x" at every
// frame, and every other variable's bits with the model's concrete values.
func Extract(sat *solver.SAT, nl *netlist.Netlist, u *unwind.BMCUnwinder, upTo int, relevant map[string]bool) *Trace {
	frames := make([]FrameValues, 0, upTo+1)
	for t := 0; t <= upTo; t++ {
		vals := make(map[string]string)
		for _, name := range nl.VarMap.Names() {
			lits := u.VarsAt(t, name)
			if lits == nil {
				continue
			}
			if !nl.VarMap.IsLatch(name) && !relevant[name] {
				vals[name] = dontCareBits(len(lits))
				continue
			}
			vals[name] = bitString(sat, lits)
		}
		frames = append(frames, FrameValues{Index: t, Vars: vals})
	}
	return &Trace{Bound: upTo, Frames: frames}
}

func dontCareBits(width int) string {
	b := make([]byte, width)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}

// bitString renders lits (LSB-first) as an MSB-first '0'/'1' string.
func bitString(sat *solver.SAT, lits []z.Lit) string {
	b := make([]byte, len(lits))
	for i, l := range lits {
		c := byte('0')
		if sat.Value(l) {
			c = '1'
		}
		b[len(lits)-1-i] = c
	}
	return string(b)
}
