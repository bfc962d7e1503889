package unwind

import (
	"fmt"

	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/netlist"
	"github.com/rfielding/ebmc-go/solver"
)

// WordUnwinder is the word-level unwinder: it emits
// "T.init(v0) ∧ ⋀ T.trans(vt, vt+1)" by renaming hdl.System's Init/Trans
// predicates to fresh, time-frame-specific literals at each step, instead
// of replicating a precompiled gate-level netlist the way BMCUnwinder (the
// bit-level path) does. Variable renaming across frames is exactly package
// netlist's CompileOverFrame, called once per frame with that frame's
// literal vectors.
type WordUnwinder struct {
	sat    *solver.SAT
	sys    *hdl.System
	widths map[string]int
	frames []map[string][]z.Lit
	roots  []z.Lit
}

// NewWordUnwinder starts a word-level unwinding of sys over sat: frame 0
// gets a fresh literal vector per declared state/input variable,
// constrained by sys.Init().
func NewWordUnwinder(sat *solver.SAT, sys *hdl.System) (*WordUnwinder, error) {
	widths := wordVarWidths(sys)
	frame0 := freshWordFrame(sat, widths)

	u := &WordUnwinder{
		sat:    sat,
		sys:    sys,
		widths: widths,
		frames: []map[string][]z.Lit{frame0},
	}

	initLit, err := netlist.CompileOverFrame(sat, widths, frame0, nil, sys.Init())
	if err != nil {
		return nil, fmt.Errorf("unwind: word-level init at frame 0: %w", err)
	}
	u.roots = append(u.roots, initLit)
	return u, nil
}

func wordVarWidths(sys *hdl.System) map[string]int {
	widths := make(map[string]int)
	for _, v := range sys.StateVars() {
		widths[v.Name] = v.Width
	}
	for _, v := range sys.InputVars() {
		widths[v.Name] = v.Width
	}
	return widths
}

func freshWordFrame(sat *solver.SAT, widths map[string]int) map[string][]z.Lit {
	frame := make(map[string][]z.Lit, len(widths))
	for name, w := range widths {
		lits := make([]z.Lit, w)
		for i := range lits {
			lits[i] = sat.NewLit()
		}
		frame[name] = lits
	}
	return frame
}

// Bound is the index of the latest frame built so far.
func (u *WordUnwinder) Bound() int { return len(u.frames) - 1 }

// VarsAt returns the literal vector naming variable name at frame t, or nil
// if t exceeds the current bound or name is undeclared.
func (u *WordUnwinder) VarsAt(t int, name string) []z.Lit {
	if t < 0 || t >= len(u.frames) {
		return nil
	}
	return u.frames[t][name]
}

// Roots returns every constraint literal accumulated so far: Init(v0)
// conjoined with Trans(vt, vt+1) for every frame transition built.
func (u *WordUnwinder) Roots() []z.Lit { return append([]z.Lit{}, u.roots...) }

// Extend adds one more frame: a fresh literal vector per declared variable,
// tied to the previous frame by sys.Trans(v_t, v_{t+1}).
func (u *WordUnwinder) Extend() error {
	cur := u.frames[len(u.frames)-1]
	next := freshWordFrame(u.sat, u.widths)

	lit, err := netlist.CompileOverFrame(u.sat, u.widths, cur, next, u.sys.Trans())
	if err != nil {
		return fmt.Errorf("unwind: word-level trans at frame %d: %w", len(u.frames)-1, err)
	}

	u.frames = append(u.frames, next)
	u.roots = append(u.roots, lit)
	return nil
}
