// Package solver is the narrow incremental-decision-procedure boundary the
// checker consumes: fresh literal allocation, clause acceptance,
// set-frozen, set-assumptions, solve, model-value, and a conflict query
// over failed assumptions. The only backend implemented here is SAT,
// backed by github.com/irifrance/gini. gini's logic.C circuit builder (a
// structurally-hashed AND-inverter graph with Tseitin-to-CNF) doubles as
// the convert(expr) → lit bit-blasting boundary, so both the word-level
// and bit-level unwinders funnel through the same CNF emission path.
package solver

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/logic"
	"github.com/irifrance/gini/z"
)

// Result is the classification of a Solve() call.
type Result int

const (
	Unknown Result = iota
	Satisfiable
	Unsatisfiable
	Error
)

func (r Result) String() string {
	switch r {
	case Satisfiable:
		return "SAT"
	case Unsatisfiable:
		return "UNSAT"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SAT is the capability interface consumed by packages unwind, property and
// bmc. It is intentionally small and does not leak gini types beyond z.Lit.
type SAT struct {
	g      *gini.Gini
	c      *logic.C
	frozen map[z.Lit]bool
	marked []int8 // CnfSince incremental marking, carried across calls
}

// New creates a fresh incremental SAT instance with its own circuit for
// derived gates (And/Or/property conjunctions).
func New() *SAT {
	return &SAT{
		g:      gini.New(),
		c:      logic.NewC(),
		frozen: make(map[z.Lit]bool),
	}
}

// NewLit allocates a fresh literal, i.e. a new circuit input.
func (s *SAT) NewLit() z.Lit {
	return s.c.Lit()
}

// Circuit exposes the shared AIG used to build derived combinational gates
// (And/Or/Xor) for both the netlist builder and the word-level property
// compiler's bit-blasting boundary.
func (s *SAT) Circuit() *logic.C {
	return s.c
}

// True and False are the circuit's fixed constant literals.
func (s *SAT) True() z.Lit  { return s.c.T }
func (s *SAT) False() z.Lit { return s.c.F }

// Commit pushes every circuit gate reachable from roots into the solver as
// clauses, incrementally (already-emitted nodes are not re-emitted). Call
// this once the circuit's roots for the current frame/property are known.
func (s *SAT) Commit(roots ...z.Lit) {
	newMarks, _ := s.c.CnfSince(s.g, s.marked, roots...)
	s.marked = newMarks
}

// AddClause adds a raw clause (already over literals from this solver's
// numbering, e.g. produced by the bit-level netlist CNF emitter) directly
// to the backend, bypassing the circuit.
func (s *SAT) AddClause(lits ...z.Lit) {
	for _, l := range lits {
		s.g.Add(l)
	}
	s.g.Add(0)
}

// SetFrozen marks l as one that must survive incremental simplification
// across Solve calls. gini's CDCL core does not eliminate variables absent
// an explicit preprocessing pass, so this is bookkeeping rather than an
// operation with solver-visible effect, kept so callers (property
// lowering) can rely on the contract regardless of backend.
func (s *SAT) SetFrozen(l z.Lit) {
	s.frozen[l] = true
}

// IsFrozen reports whether l was ever frozen.
func (s *SAT) IsFrozen(l z.Lit) bool { return s.frozen[l] }

// SetAssumptions replaces the assumption set for the next Solve call.
func (s *SAT) SetAssumptions(lits []z.Lit) {
	s.g.Assume(lits...)
}

// Solve invokes the decision procedure under the current assumptions.
func (s *SAT) Solve() Result {
	switch s.g.Solve() {
	case 1:
		return Satisfiable
	case -1:
		return Unsatisfiable
	default:
		return Error
	}
}

// Value returns the model value of l after a Satisfiable Solve.
func (s *SAT) Value(l z.Lit) bool {
	return s.g.Value(l)
}

// And builds the conjunction of lits via the shared circuit; the driver
// uses it to realize ¬(⋀_t Lₜ) as a single assumption literal.
func (s *SAT) And(lits ...z.Lit) z.Lit {
	if len(lits) == 0 {
		return s.True()
	}
	acc := lits[0]
	for _, l := range lits[1:] {
		acc = s.c.And(acc, l)
	}
	return acc
}

// Or is De Morgan over And.
func (s *SAT) Or(lits ...z.Lit) z.Lit {
	if len(lits) == 0 {
		return s.False()
	}
	negs := make([]z.Lit, len(lits))
	for i, l := range lits {
		negs[i] = l.Not()
	}
	return s.And(negs...).Not()
}

// ConflictContains reports, after an Unsatisfiable Solve() under
// assumptions including l, whether l participated in the conflict (i.e.
// is among the failed assumptions). UNSAT-core-based state-cube
// generation builds on this query; gini exposes it as Why().
func (s *SAT) ConflictContains(l z.Lit) bool {
	for _, m := range s.g.Why(nil) {
		if m == l {
			return true
		}
	}
	return false
}
