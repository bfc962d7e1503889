package unwind

import (
	"testing"

	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/netlist"
	"github.com/rfielding/ebmc-go/solver"
)

func counterModule() *hdl.Module {
	q := expr.Var{Name: "q", Width: 2}
	return hdl.NewBuilder("counter", "").
		State("q", 2).
		Init(expr.Eq(q, expr.Const{Value: 0, Width: 2})).
		Trans(expr.Eq(expr.Next{Inner: q}, expr.Mod(expr.Add(q, expr.Const{Value: 1, Width: 2}, 2), expr.Const{Value: 4, Width: 2}, 2))).
		Build()
}

func TestUnwinderGrowsBoundAndRoots(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(counterModule(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	u := NewBMCUnwinder(sat, nl)
	if u.Bound() != 0 {
		t.Fatalf("expected bound 0 right after construction, got %d", u.Bound())
	}
	for i := 0; i < 3; i++ {
		if err := u.Extend(); err != nil {
			t.Fatalf("Extend: %v", err)
		}
	}
	if u.Bound() != 3 {
		t.Fatalf("expected bound 3 after 3 Extend calls, got %d", u.Bound())
	}
	if len(u.Roots()) == 0 {
		t.Fatalf("expected accumulated roots to be non-empty")
	}
	if u.VarsAt(3, "q") == nil {
		t.Fatalf("expected frame 3 to have literals for q")
	}
	if u.VarsAt(4, "q") != nil {
		t.Fatalf("expected no frame 4 yet")
	}
}
