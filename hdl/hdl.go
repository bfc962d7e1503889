// Package hdl is the in-memory transition representation of an elaborated
// hardware module, and the symbol table such modules are read out of.
// Parsing and type-checking an actual hardware description language is a
// front-end concern this checker consumes, not implements: callers
// construct a SymbolTable directly, the same way a front-end would after
// elaboration, via the fluent Builder below.
package hdl

import (
	"fmt"

	"github.com/rfielding/ebmc-go/expr"
)

// VarKind distinguishes state (latched) from input (free) variables.
type VarKind int

const (
	StateVar VarKind = iota
	InputVar
)

func (k VarKind) String() string {
	if k == StateVar {
		return "state"
	}
	return "input"
}

// VarDecl declares one variable of the transition system.
type VarDecl struct {
	Name  string
	Width int
	Kind  VarKind
}

// System is the transition representation: an initial-state predicate, a
// transition predicate over current- and next-state variables, and the
// variable declarations that give those predicates meaning.
//
// System is immutable once built except through ConjoinInit and
// ConjoinTrans, which ApplyReset uses to conjoin a reset predicate into
// Init and its negated next-state form into Trans.
type System struct {
	init       expr.Expr
	trans      expr.Expr
	stateVars  []VarDecl
	inputVars  []VarDecl
	auxConstrs []expr.Expr
}

// NewSystem constructs a transition system. Panics if a variable name is
// declared twice; this is a programming error in the caller (the
// "elaborated" module builder), not a user-facing ModelMalformed condition.
func NewSystem(init, trans expr.Expr, stateVars, inputVars []VarDecl) *System {
	seen := make(map[string]bool, len(stateVars)+len(inputVars))
	for _, v := range append(append([]VarDecl{}, stateVars...), inputVars...) {
		if seen[v.Name] {
			panic(fmt.Sprintf("hdl: duplicate variable declaration %q", v.Name))
		}
		seen[v.Name] = true
	}
	return &System{
		init:      init,
		trans:     trans,
		stateVars: append([]VarDecl{}, stateVars...),
		inputVars: append([]VarDecl{}, inputVars...),
	}
}

func (s *System) Init() expr.Expr        { return s.init }
func (s *System) Trans() expr.Expr       { return s.trans }
func (s *System) StateVars() []VarDecl   { return append([]VarDecl{}, s.stateVars...) }
func (s *System) InputVars() []VarDecl   { return append([]VarDecl{}, s.inputVars...) }
func (s *System) AuxConstraints() []expr.Expr {
	return append([]expr.Expr{}, s.auxConstrs...)
}

// VarDecl looks up a declared variable by name across state and input sets.
func (s *System) VarDecl(name string) (VarDecl, bool) {
	for _, v := range s.stateVars {
		if v.Name == name {
			return v, true
		}
	}
	for _, v := range s.inputVars {
		if v.Name == name {
			return v, true
		}
	}
	return VarDecl{}, false
}

// ConjoinInit is the sole permitted mutator of Init.
func (s *System) ConjoinInit(p expr.Expr) {
	s.init = expr.And{Left: s.init, Right: p}
}

// ConjoinTrans is the sole permitted mutator of Trans.
func (s *System) ConjoinTrans(p expr.Expr) {
	s.trans = expr.And{Left: s.trans, Right: p}
}

// nextOf rewrites every Var leaf of p into Next(Var), used to build
// "next(reset)" from a current-state reset predicate.
func nextOf(p expr.Expr) expr.Expr {
	switch n := p.(type) {
	case expr.Var:
		return expr.Next{Inner: n}
	case expr.Next:
		return n // already a next-reference; leave as-is
	case expr.Const:
		return n
	case expr.Not:
		return expr.Not{Inner: nextOf(n.Inner)}
	case expr.And:
		return expr.And{Left: nextOf(n.Left), Right: nextOf(n.Right)}
	case expr.Or:
		return expr.Or{Left: nextOf(n.Left), Right: nextOf(n.Right)}
	case expr.Cmp:
		return expr.Cmp{Op: n.Op, Left: nextOf(n.Left), Right: nextOf(n.Right)}
	case expr.Arith:
		return expr.Arith{Op: n.Op, Left: nextOf(n.Left), Right: nextOf(n.Right), Width: n.Width}
	default:
		return p
	}
}

// ApplyReset amends the system with a user-supplied reset predicate R:
// Init becomes Init ∧ R, and Trans becomes Trans ∧ ¬next(R), so R holds in
// frame 0 of every execution and in no later frame.
func (s *System) ApplyReset(reset expr.Expr) {
	s.ConjoinInit(reset)
	s.ConjoinTrans(expr.Not{Inner: nextOf(reset)})
}
