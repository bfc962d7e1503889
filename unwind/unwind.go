// Package unwind builds the bounded unrolling of a transition system
// across k+1 time frames: the word-level path renames variables per frame
// and conjoins Init(v0) with Trans(vt, vt+1) for each step; the bit-level
// path replicates the compiled netlist once per frame, wiring each frame's
// latch "current" literal to the previous frame's "next" literal.
package unwind

import (
	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/netlist"
	"github.com/rfielding/ebmc-go/solver"
)

// Frame is one time step of a bit-level unwinding: the literal vector for
// every declared variable at this step.
type Frame struct {
	Index int
	Vars  map[string][]z.Lit
}

// BMCUnwinder replicates a netlist across frames, wiring latch bits between
// successive frames. Inputs get a fresh, independent
// literal vector at every frame (they are free at each step); latches carry
// forward the previous frame's computed next-state value.
type BMCUnwinder struct {
	sat    *solver.SAT
	nl     *netlist.Netlist
	frames []Frame
	roots  []z.Lit
}

// NewBMCUnwinder starts a bit-level unwinding of nl over sat. Frame 0 reuses
// the netlist's own literals and is constrained by InitConstrs only; the
// transition constraints of the frame 0 -> frame 1 step are added by the
// first Extend.
func NewBMCUnwinder(sat *solver.SAT, nl *netlist.Netlist) *BMCUnwinder {
	u := &BMCUnwinder{sat: sat, nl: nl}
	u.frames = append(u.frames, frameZero(nl))
	u.roots = append(u.roots, nl.InitConstrs...)
	return u
}

func frameZero(nl *netlist.Netlist) Frame {
	vars := make(map[string][]z.Lit)
	for _, name := range nl.VarMap.Names() {
		vars[name] = nl.VarMap.CurrentLits(name)
	}
	return Frame{Index: 0, Vars: vars}
}

// Frames returns the frames built so far, index 0 through the current bound.
func (u *BMCUnwinder) Frames() []Frame { return append([]Frame{}, u.frames...) }

// Bound is the index of the latest frame (i.e. k, for a k+1-frame unwinding).
func (u *BMCUnwinder) Bound() int { return len(u.frames) - 1 }

// Extend adds one more frame. Latches get the previous frame's computed
// next-state literal as their new current value; every other declared
// variable (inputs, and any purely combinational signal) gets a freshly
// allocated literal, since such variables are unconstrained per step.
func (u *BMCUnwinder) Extend() error {
	prev := u.frames[len(u.frames)-1]

	next, roots, err := netlist.CompileFrame(u.sat, u.nl, prev.Vars)
	if err != nil {
		return err
	}

	newVars := make(map[string][]z.Lit)
	for _, name := range u.nl.VarMap.Names() {
		if u.nl.VarMap.IsLatch(name) {
			newVars[name] = next[name]
			continue
		}
		bits, _ := u.nl.VarMap.Bits(name)
		lits := make([]z.Lit, len(bits))
		for i := range lits {
			lits[i] = u.sat.NewLit()
		}
		newVars[name] = lits
	}

	u.frames = append(u.frames, Frame{Index: len(u.frames), Vars: newVars})
	u.roots = append(u.roots, roots...)
	return nil
}

// Roots returns every constraint literal accumulated across all frames
// built so far: Init for frame 0 plus Trans for every frame transition,
// i.e. Init(v0) ∧ ⋀ Trans(vt, vt+1).
func (u *BMCUnwinder) Roots() []z.Lit { return append([]z.Lit{}, u.roots...) }

// VarsAt returns the literal vector for variable name at frame t, or nil if
// t exceeds the current bound.
func (u *BMCUnwinder) VarsAt(t int, name string) []z.Lit {
	if t < 0 || t >= len(u.frames) {
		return nil
	}
	return u.frames[t].Vars[name]
}
