package ldg

import (
	"testing"

	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/netlist"
	"github.com/rfielding/ebmc-go/solver"
)

// ringModule builds a 3-latch ring: a' = c, b' = a, c' = b (a rotate),
// so each latch's next-state function depends on exactly one other latch.
func ringModule() *hdl.Module {
	a := expr.Var{Name: "a", Width: 1}
	b := expr.Var{Name: "b", Width: 1}
	c := expr.Var{Name: "c", Width: 1}
	return hdl.NewBuilder("ring", "").
		State("a", 1).State("b", 1).State("c", 1).
		Init(expr.Eq(a, expr.Const{Value: 1, Width: 1})).
		Init(expr.Eq(b, expr.Const{Value: 0, Width: 1})).
		Init(expr.Eq(c, expr.Const{Value: 0, Width: 1})).
		Trans(expr.Eq(expr.Next{Inner: a}, c)).
		Trans(expr.Eq(expr.Next{Inner: b}, a)).
		Trans(expr.Eq(expr.Next{Inner: c}, b)).
		Build()
}

func TestBuildProducesOneEdgePerLatchDependency(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(ringModule(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g := Build(nl)
	if len(g.Nodes()) != 3 {
		t.Fatalf("expected 3 latch nodes, got %d", len(g.Nodes()))
	}
	succ := g.Successors("a")
	if len(succ) != 1 || succ[0] != "c" {
		t.Fatalf("expected a -> c, got %v", succ)
	}
}

func TestRingIsOneStronglyConnectedComponent(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(ringModule(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g := Build(nl)
	sccs := g.StronglyConnectedComponents()
	if len(sccs) != 1 {
		t.Fatalf("expected a single SCC for a rotate ring, got %d: %v", len(sccs), sccs)
	}
	if len(sccs[0]) != 3 {
		t.Fatalf("expected the SCC to contain all 3 latches, got %v", sccs[0])
	}
}

func TestComputeCTForThreeSingleBitLatches(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(ringModule(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	bound, ok := ComputeCT(nl)
	if !ok {
		t.Fatalf("expected ComputeCT to succeed for 3 latch bits")
	}
	if bound != 8 {
		t.Fatalf("expected 2^3 = 8 distinct states, got %d", bound)
	}
}

func TestDumpTextNonEmpty(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(ringModule(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g := Build(nl)
	if g.DumpText() == "" {
		t.Fatalf("expected non-empty dump")
	}
}
