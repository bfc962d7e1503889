// Package property lowers a named, parsed property expression into a
// per-frame literal vector over an unwinding, and tracks its solving
// lifecycle: UNKNOWN at acquisition, SUCCESS or FAILURE once solved, or
// DISABLED if excluded by a --property selection.
package property

import (
	"fmt"

	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/netlist"
	"github.com/rfielding/ebmc-go/solver"
	"github.com/rfielding/ebmc-go/unwind"
)

// Status is a property's verdict lifecycle state.
type Status int

const (
	Unknown Status = iota
	Success
	Failure
	Disabled
)

func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Disabled:
		return "DISABLED"
	default:
		return "UNKNOWN"
	}
}

// Property is the record a run's properties are tracked by, from
// acquisition in the symbol table (hdl.PropertySource) through to a
// rendered verdict (package report). Counterexample is an opaque
// interface{} slot that no package in this module sets: counterexample
// traces are extracted on demand by package trace (from the solver model
// after bmc.ReplaySAT/ReplaySATWord) and are not stored on the Property.
type Property struct {
	Name           string
	Source         expr.Expr // the original (already implicit-always-wrapped) expression
	Status         Status
	FailedAtFrame  int // -1 until Status == Failure
	Counterexample interface{}
}

// NewFromSource adapts a hdl.PropertySource into a Property record in the
// UNKNOWN state, applying WrapImplicitAlways (idempotent) in case the
// source bypassed the Builder.
func NewFromSource(src hdl.PropertySource) *Property {
	return &Property{
		Name:          src.Name,
		Source:        expr.WrapImplicitAlways(src.Expr),
		Status:        Unknown,
		FailedAtFrame: -1,
	}
}

// Lowered is a property's bit-level lowering: one literal per frame,
// "property holds at frame t", the shape the bmc driver assumption/assert
// loop consumes.
type Lowered struct {
	Prop     *Property
	PerFrame []z.Lit // index t: literal true iff the property's instantaneous predicate holds at frame t
}

// Lower bit-blasts prop against every frame currently built in u, handling
// the three temporal skeletons expr.WrapImplicitAlways can produce:
//
//   - Always{Q}:    PerFrame[t] = Q holds at frame t, for every built frame.
//   - NextTime{Q}:  PerFrame[t] = Q holds at frame t+1; the last built
//     frame k has no successor yet, so PerFrame[k] is the constant true.
//   - Until{Q,R}:   PerFrame[t] = R holds at frame t, or Q holds at frame t
//     and Until(Q,R) holds from frame t+1 onward, computed back-to-front
//     over the frames currently available. PerFrame at the last built frame
//     is the constant true, so an Until whose R has no witness within the
//     unwound frames is not reported as violated.
func Lower(sat *solver.SAT, nl *netlist.Netlist, u *unwind.BMCUnwinder, prop *Property) (*Lowered, error) {
	n := u.Bound() + 1
	switch t := prop.Source.(type) {
	case expr.Always:
		perFrame := make([]z.Lit, n)
		for i := 0; i < n; i++ {
			lit, err := compileAtFrame(sat, nl, u, i, t.Inner)
			if err != nil {
				return nil, fmt.Errorf("property %q at frame %d: %w", prop.Name, i, err)
			}
			perFrame[i] = lit
		}
		return &Lowered{Prop: prop, PerFrame: perFrame}, nil

	case expr.NextTime:
		perFrame := make([]z.Lit, n)
		for i := 0; i < n; i++ {
			if i+1 >= n {
				perFrame[i] = sat.True() // no witness frame yet; vacuously unassessed
				continue
			}
			lit, err := compileAtFrame(sat, nl, u, i+1, t.Inner)
			if err != nil {
				return nil, fmt.Errorf("property %q at frame %d: %w", prop.Name, i, err)
			}
			perFrame[i] = lit
		}
		return &Lowered{Prop: prop, PerFrame: perFrame}, nil

	case expr.Until:
		perFrame := make([]z.Lit, n)
		perFrame[n-1] = sat.True() // no further witness available at the last built frame
		for i := n - 2; i >= 0; i-- {
			rHere, err := compileAtFrame(sat, nl, u, i, t.Right)
			if err != nil {
				return nil, fmt.Errorf("property %q at frame %d: %w", prop.Name, i, err)
			}
			qHere, err := compileAtFrame(sat, nl, u, i, t.Left)
			if err != nil {
				return nil, fmt.Errorf("property %q at frame %d: %w", prop.Name, i, err)
			}
			perFrame[i] = sat.Or(rHere, sat.And(qHere, perFrame[i+1]))
		}
		return &Lowered{Prop: prop, PerFrame: perFrame}, nil

	default:
		return nil, fmt.Errorf("property %q: expression %s is not top-level temporally quantified (missing implicit always)", prop.Name, prop.Source)
	}
}

// compileAtFrame bit-blasts a boolean-valued expression against frame t's
// variable literals, by building a one-off VarMap view over the unwinder's
// per-frame vectors.
func compileAtFrame(sat *solver.SAT, nl *netlist.Netlist, u *unwind.BMCUnwinder, t int, e expr.Expr) (z.Lit, error) {
	vars := make(map[string][]z.Lit, len(nl.VarMap.Names()))
	for _, name := range nl.VarMap.Names() {
		lits := u.VarsAt(t, name)
		if lits == nil {
			return z.LitNull, fmt.Errorf("frame %d has not been unwound yet", t)
		}
		vars[name] = lits
	}
	return netlist.CompileBoolAt(sat, nl, vars, e)
}
