// Package bruteforce is an independent soundness oracle: a small
// explicit-state reachability search over Init/Trans, evaluated directly
// with expr.EvalBool/EvalBV rather than through a solver, used in tests to
// cross-check the BMC engine's verdict on the small fixture modules
// (package examples) where exhaustive enumeration is tractable. It is not
// part of the production checking path; it exists to catch a miscompiled
// netlist or a wrong bit-blasting template the solver-based path alone
// couldn't reveal.
package bruteforce

import (
	"fmt"
	"sort"

	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/hdl"
)

// State is a concrete assignment to every state (latch) variable.
type State map[string]uint64

// key renders a State as a stable, comparable string for deduplication.
func (s State) key() string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	out := ""
	for _, n := range names {
		out += fmt.Sprintf("%s=%d;", n, s[n])
	}
	return out
}

// allAssignments enumerates every bit-combination for vars; intended only
// for the small (a handful of bits total) fixture modules this package's
// tests exercise.
func allAssignments(vars []hdl.VarDecl) []map[string]uint64 {
	if len(vars) == 0 {
		return []map[string]uint64{{}}
	}
	v := vars[0]
	rest := allAssignments(vars[1:])
	out := make([]map[string]uint64, 0, len(rest)<<uint(v.Width))
	for val := uint64(0); val < uint64(1)<<uint(v.Width); val++ {
		for _, r := range rest {
			m := make(map[string]uint64, len(r)+1)
			for k, vv := range r {
				m[k] = vv
			}
			m[v.Name] = val
			out = append(out, m)
		}
	}
	return out
}

func merge(a, b map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// initStates enumerates every latch assignment satisfying sys.Init().
func initStates(sys *hdl.System) ([]State, error) {
	var states []State
	for _, assign := range allAssignments(sys.StateVars()) {
		ok, err := expr.EvalBool(sys.Init(), expr.Env{Cur: assign})
		if err != nil {
			return nil, err
		}
		if ok {
			states = append(states, State(assign))
		}
	}
	return states, nil
}

// step enumerates every successor of cur reachable via some input
// assignment, by brute-forcing both the input and the candidate next-state
// assignment and keeping the ones Trans accepts.
func step(sys *hdl.System, cur State) ([]State, error) {
	seen := make(map[string]bool)
	var out []State
	for _, inp := range allAssignments(sys.InputVars()) {
		curEnv := merge(cur, inp)
		for _, nxt := range allAssignments(sys.StateVars()) {
			ok, err := expr.EvalBool(sys.Trans(), expr.Env{Cur: curEnv, Next: nxt})
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			s := State(nxt)
			if k := s.key(); !seen[k] {
				seen[k] = true
				out = append(out, s)
			}
		}
	}
	return out, nil
}

// Explore returns the reachable-state frontier at every depth 0..depth,
// i.e. Explore(sys, k)[t] is the set of states reachable in exactly t steps
// (deduplicated, but not unioned across depths).
func Explore(sys *hdl.System, depth int) ([][]State, error) {
	levels := make([][]State, 0, depth+1)
	cur, err := initStates(sys)
	if err != nil {
		return nil, err
	}
	levels = append(levels, cur)
	for t := 1; t <= depth; t++ {
		seen := make(map[string]bool)
		var next []State
		for _, s := range levels[t-1] {
			succ, err := step(sys, s)
			if err != nil {
				return nil, err
			}
			for _, n := range succ {
				if k := n.key(); !seen[k] {
					seen[k] = true
					next = append(next, n)
				}
			}
		}
		levels = append(levels, next)
	}
	return levels, nil
}

// CheckAlways evaluates inner (an Always-property's un-wrapped predicate)
// against every state in every reachable-state level 0..depth, returning
// the first violation found. holds is true iff no violation was found
// within depth steps, the same set of states a BMC run at that bound
// would have checked.
func CheckAlways(sys *hdl.System, inner expr.Expr, depth int) (holds bool, violating State, atDepth int, err error) {
	levels, err := Explore(sys, depth)
	if err != nil {
		return false, nil, 0, err
	}
	for t, level := range levels {
		for _, s := range level {
			ok, evalErr := expr.EvalBool(inner, expr.Env{Cur: s})
			if evalErr != nil {
				return false, nil, 0, evalErr
			}
			if !ok {
				return false, s, t, nil
			}
		}
	}
	return true, nil, 0, nil
}
