package property

import (
	"testing"

	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/netlist"
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

func TestNewFromSourceWrapsImplicitAlways(t *testing.T) {
	q := expr.Var{Name: "q", Width: 2}
	src := hdl.PropertySource{Name: "p0", Expr: expr.Lt(q, expr.Const{Value: 4, Width: 3})}
	p := NewFromSource(src)
	if _, ok := p.Source.(expr.Always); !ok {
		t.Fatalf("expected implicit always wrapper, got %T", p.Source)
	}
	if p.Status != Unknown {
		t.Fatalf("expected fresh property to be Unknown, got %v", p.Status)
	}
}

func TestLowerAlwaysProducesOneLiteralPerFrame(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(counterModule(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	u := unwind.NewBMCUnwinder(sat, nl)
	for i := 0; i < 3; i++ {
		if err := u.Extend(); err != nil {
			t.Fatalf("Extend: %v", err)
		}
	}

	q := expr.Var{Name: "q", Width: 2}
	prop := NewFromSource(hdl.PropertySource{Name: "inrange", Expr: expr.Lt(q, expr.Const{Value: 4, Width: 3})})

	lowered, err := Lower(sat, nl, u, prop)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if len(lowered.PerFrame) != u.Bound()+1 {
		t.Fatalf("expected %d per-frame literals, got %d", u.Bound()+1, len(lowered.PerFrame))
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{Unknown: "UNKNOWN", Success: "SUCCESS", Failure: "FAILURE", Disabled: "DISABLED"}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("Status(%d).String() = %q, want %q", s, got, want)
		}
	}
}
