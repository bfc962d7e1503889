// Package bmc is the per-property driver loop: for each property, assert
// its negation as an assumption literal under the current bound's
// unwinding, solve, and classify the result. SAT means a counterexample
// exists (FAILURE); UNSAT means the property holds up to this bound and
// the sweep either moves to the next bound or concludes SUCCESS.
package bmc

import (
	"fmt"
	"sort"
	"time"

	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/netlist"
	"github.com/rfielding/ebmc-go/property"
	"github.com/rfielding/ebmc-go/solver"
	"github.com/rfielding/ebmc-go/stats"
	"github.com/rfielding/ebmc-go/unwind"
)

// Outcome is one property's result from a single bound's run.
type Outcome struct {
	Property *property.Property
	Result   solver.Result
	Bound    int
}

// RunOptions configures one invocation of Run.
type RunOptions struct {
	// MaxBound is the highest bound to unwind to; Run stops extending once
	// every property has reached a definite verdict or this bound is hit,
	// whichever comes first. Each property is re-solved at every bound
	// 0..MaxBound, stopping early on a FAILURE so the counterexample
	// reported is the shortest one.
	MaxBound int
}

// Run drives properties to a verdict against nl, growing the unwinding of
// u one frame at a time up to opts.MaxBound, or until every property has a
// definite SUCCESS/FAILURE. Properties already Disabled are skipped
// entirely. Returns one Outcome per non-disabled property, in input order.
func Run(sat *solver.SAT, nl *netlist.Netlist, u *unwind.BMCUnwinder, props []*property.Property, opts RunOptions) ([]Outcome, error) {
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
			lowered, err := property.Lower(sat, nl, u, p)
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

	// Properties are still pending here only when opts.MaxBound is negative,
	// so that no bound was checked; they are reported SUCCESS at that bound
	// rather than left UNKNOWN.
	for _, p := range pending {
		p.Status = property.Success
		outcomes = append(outcomes, Outcome{Property: p, Result: solver.Unsatisfiable, Bound: opts.MaxBound})
	}

	// Verdicts arrive in bound order; report them in input order.
	order := make(map[*property.Property]int, len(props))
	for i, p := range props {
		order[p] = i
	}
	sort.SliceStable(outcomes, func(i, j int) bool {
		return order[outcomes[i].Property] < order[outcomes[j].Property]
	})

	return outcomes, nil
}

// ReplaySAT re-solves a failed property's negation at its recorded failing
// bound, so the solver's model reflects that counterexample again before a
// trace is extracted: the model left behind by Run belongs to whichever
// property was solved last, not necessarily this one. u must already be
// extended to at least p.FailedAtFrame.
func ReplaySAT(sat *solver.SAT, nl *netlist.Netlist, u *unwind.BMCUnwinder, p *property.Property) error {
	if p.Status != property.Failure {
		return fmt.Errorf("property %q: no failure to replay (status %v)", p.Name, p.Status)
	}
	lowered, err := property.Lower(sat, nl, u, p)
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

// negateAtBound builds "there exists some frame 0..bound at which the
// property's per-frame literal is false": the existential negation of an
// Always-shaped property, asserted satisfiable to search for a
// counterexample.
func negateAtBound(sat *solver.SAT, lowered *property.Lowered, bound int) z.Lit {
	n := bound + 1
	if n > len(lowered.PerFrame) {
		n = len(lowered.PerFrame)
	}
	negs := make([]z.Lit, n)
	for i := 0; i < n; i++ {
		negs[i] = lowered.PerFrame[i].Not()
	}
	return sat.Or(negs...)
}
