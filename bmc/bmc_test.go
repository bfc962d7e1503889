package bmc

import (
	"testing"

	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/netlist"
	"github.com/rfielding/ebmc-go/property"
	"github.com/rfielding/ebmc-go/solver"
	"github.com/rfielding/ebmc-go/unwind"
)

func counterModule() *hdl.Module {
	q := expr.Var{Name: "q", Width: 2}
	return hdl.NewBuilder("counter", "").
		State("q", 2).
		Init(expr.Eq(q, expr.Const{Value: 0, Width: 2})).
		Trans(expr.Eq(expr.Next{Inner: q}, expr.Mod(expr.Add(q, expr.Const{Value: 1, Width: 2}, 2), expr.Const{Value: 4, Width: 2}, 2))).
		Build()
}

func TestRunHoldingInvariantSucceeds(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(counterModule(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	u := unwind.NewBMCUnwinder(sat, nl)

	q := expr.Var{Name: "q", Width: 2}
	inrange := property.NewFromSource(hdl.PropertySource{Name: "inrange", Expr: expr.Lt(q, expr.Const{Value: 4, Width: 3})})

	outcomes, err := Run(sat, nl, u, []*property.Property{inrange}, RunOptions{MaxBound: 4})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if inrange.Status != property.Success {
		t.Fatalf("expected inrange to hold (a 2-bit counter never exceeds 3), got %v", inrange.Status)
	}
}

func TestRunViolatedInvariantFails(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(counterModule(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	u := unwind.NewBMCUnwinder(sat, nl)

	q := expr.Var{Name: "q", Width: 2}
	neverTwo := property.NewFromSource(hdl.PropertySource{Name: "never-two", Expr: expr.Neq(q, expr.Const{Value: 2, Width: 2})})

	outcomes, err := Run(sat, nl, u, []*property.Property{neverTwo}, RunOptions{MaxBound: 4})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if neverTwo.Status != property.Failure {
		t.Fatalf("expected never-two to fail (a mod-4 counter does reach 2), got %v", neverTwo.Status)
	}
	if neverTwo.FailedAtFrame != 2 {
		t.Fatalf("expected counterexample at frame 2 (q: 0,1,2), got %d", neverTwo.FailedAtFrame)
	}
}

func TestDisabledPropertySkipped(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(counterModule(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	u := unwind.NewBMCUnwinder(sat, nl)

	p := property.NewFromSource(hdl.PropertySource{Name: "skip-me", Expr: expr.Bool(false)})
	p.Status = property.Disabled

	outcomes, err := Run(sat, nl, u, []*property.Property{p}, RunOptions{MaxBound: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 0 {
		t.Fatalf("expected a disabled property to produce no outcome, got %d", len(outcomes))
	}
	if p.Status != property.Disabled {
		t.Fatalf("expected disabled property to remain Disabled, got %v", p.Status)
	}
}

func TestReplaySATRestoresModelForEarlierFailure(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(counterModule(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	u := unwind.NewBMCUnwinder(sat, nl)

	q := expr.Var{Name: "q", Width: 2}
	neverTwo := property.NewFromSource(hdl.PropertySource{Name: "never-two", Expr: expr.Neq(q, expr.Const{Value: 2, Width: 2})})
	neverThree := property.NewFromSource(hdl.PropertySource{Name: "never-three", Expr: expr.Neq(q, expr.Const{Value: 3, Width: 2})})

	if _, err := Run(sat, nl, u, []*property.Property{neverTwo, neverThree}, RunOptions{MaxBound: 4}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if neverTwo.FailedAtFrame != 2 || neverThree.FailedAtFrame != 3 {
		t.Fatalf("expected failures at frames 2 and 3, got %d and %d", neverTwo.FailedAtFrame, neverThree.FailedAtFrame)
	}

	// The model left behind belongs to never-three; replaying never-two
	// must bring back a model where q reaches 2 at frame 2.
	if err := ReplaySAT(sat, nl, u, neverTwo); err != nil {
		t.Fatalf("ReplaySAT: %v", err)
	}
	got := 0
	for i, l := range u.VarsAt(2, "q") {
		if sat.Value(l) {
			got |= 1 << i
		}
	}
	if got != 2 {
		t.Fatalf("expected q=2 at frame 2 after replay, got %d", got)
	}
}
