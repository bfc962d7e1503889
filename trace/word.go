package trace

import (
	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/solver"
	"github.com/rfielding/ebmc-go/unwind"
)

// RelevantVarsWord is RelevantVars' word-level counterpart: it scans sys's
// Trans predicate directly, since the word-level path has no precompiled
// latch-equation list to consult the way the bit-level path's Netlist does.
func RelevantVarsWord(sys *hdl.System, propSource expr.Expr) map[string]bool {
	set := make(map[string]bool)
	collectVars(sys.Trans(), set)
	collectVars(propSource, set)
	return set
}

// ExtractWord is Extract's word-level counterpart, reading frames directly
// off a unwind.WordUnwinder instead of a bit-level BMCUnwinder/Netlist pair.
func ExtractWord(sat *solver.SAT, sys *hdl.System, u *unwind.WordUnwinder, upTo int, relevant map[string]bool) *Trace {
	stateNames := make(map[string]bool, len(sys.StateVars()))
	for _, v := range sys.StateVars() {
		stateNames[v.Name] = true
	}
	decls := append(append([]hdl.VarDecl{}, sys.StateVars()...), sys.InputVars()...)

	frames := make([]FrameValues, 0, upTo+1)
	for t := 0; t <= upTo; t++ {
		vals := make(map[string]string)
		for _, v := range decls {
			lits := u.VarsAt(t, v.Name)
			if lits == nil {
				continue
			}
			if !stateNames[v.Name] && !relevant[v.Name] {
				vals[v.Name] = dontCareBits(len(lits))
				continue
			}
			vals[v.Name] = bitString(sat, lits)
		}
		frames = append(frames, FrameValues{Index: t, Vars: vals})
	}
	return &Trace{Bound: upTo, Frames: frames}
}
