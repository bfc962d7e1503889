package bmc

import (
	"fmt"
	"sort"
	"time"

	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/property"
	"github.com/rfielding/ebmc-go/solver"
	"github.com/rfielding/ebmc-go/stats"
	"github.com/rfielding/ebmc-go/unwind"
)

// RunWord is the word-level counterpart to Run: the identical per-bound,
// per-property assumption/assert/solve loop, driven against a
// unwind.WordUnwinder and property.LowerWord instead of the bit-level
// unwind.BMCUnwinder and property.Lower. The two paths stay structurally
// distinct, sharing the solver but not a lowering interface.
func RunWord(sat *solver.SAT, sys *hdl.System, u *unwind.WordUnwinder, props []*property.Property, opts RunOptions) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(props))
	pending := make([]*property.Property, 0, len(props))
	for _, p := range props {
		if p.Status == property.Disabled {
			continue
		}
		pending = append(pending, p)
	}

	for bound := 0; bound <= opts.MaxBound && len(pending) > 0; bound++ {
		if bound > u.Bound() {
			if err := u.Extend(); err != nil {
				return nil, err
			}
		}

		var still []*property.Property
		for _, p := range pending {
			lowered, err := property.LowerWord(sat, sys, u, p)
			if err != nil {
				return nil, fmt.Errorf("lowering property %q: %w", p.Name, err)
			}

			negation := negateAtBound(sat, lowered, bound)
			sat.SetFrozen(negation)
			sat.Commit(append(append([]z.Lit{}, u.Roots()...), negation)...)
			sat.SetAssumptions(append(append([]z.Lit{}, u.Roots()...), negation))

			start := time.Now()
			res := sat.Solve()
			stats.Global.RecordSolve(time.Since(start))
			stats.Global.RecordPropertyChecked()

			switch res {
			case solver.Satisfiable:
				p.Status = property.Failure
				p.FailedAtFrame = bound
				outcomes = append(outcomes, Outcome{Property: p, Result: res, Bound: bound})
			case solver.Unsatisfiable:
				if bound == opts.MaxBound {
					p.Status = property.Success
					outcomes = append(outcomes, Outcome{Property: p, Result: res, Bound: bound})
				} else {
					still = append(still, p)
				}
			default:
				return nil, fmt.Errorf("property %q: solver error at bound %d", p.Name, bound)
			}
		}
		pending = still
	}

	for _, p := range pending {
		p.Status = property.Success
		outcomes = append(outcomes, Outcome{Property: p, Result: solver.Unsatisfiable, Bound: opts.MaxBound})
	}

	order := make(map[*property.Property]int, len(props))
	for i, p := range props {
		order[p] = i
	}
	sort.SliceStable(outcomes, func(i, j int) bool {
		return order[outcomes[i].Property] < order[outcomes[j].Property]
	})

	return outcomes, nil
}

// ReplaySATWord is ReplaySAT's word-level counterpart, re-solving a failed
// property's negation against the WordUnwinder so its counterexample model
// is current again before extraction. u must already be extended to at
// least p.FailedAtFrame.
func ReplaySATWord(sat *solver.SAT, sys *hdl.System, u *unwind.WordUnwinder, p *property.Property) error {
	if p.Status != property.Failure {
		return fmt.Errorf("property %q: no failure to replay (status %v)", p.Name, p.Status)
	}
	lowered, err := property.LowerWord(sat, sys, u, p)
	if err != nil {
		return fmt.Errorf("lowering property %q: %w", p.Name, err)
	}
	negation := negateAtBound(sat, lowered, p.FailedAtFrame)
	sat.Commit(append(append([]z.Lit{}, u.Roots()...), negation)...)
	sat.SetAssumptions(append(append([]z.Lit{}, u.Roots()...), negation))
	if res := sat.Solve(); res != solver.Satisfiable {
		return fmt.Errorf("property %q: expected SAT replaying the failure at bound %d, got %v", p.Name, p.FailedAtFrame, res)
	}
	return nil
}
