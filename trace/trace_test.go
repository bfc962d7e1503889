package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/netlist"
	"github.com/rfielding/ebmc-go/solver"
	"github.com/rfielding/ebmc-go/unwind"
)

// counterWithFreeInput builds a 2-bit mod-4 counter that also carries an
// unconstrained, irrelevant input bit, to exercise don't-care rendering.
func counterWithFreeInput() *hdl.Module {
	q := expr.Var{Name: "q", Width: 2}
	return hdl.NewBuilder("counter", "").
		State("q", 2).
		Input("noise", 1).
		Init(expr.Eq(q, expr.Const{Value: 0, Width: 2})).
		Trans(expr.Eq(expr.Next{Inner: q}, expr.Mod(expr.Add(q, expr.Const{Value: 1, Width: 2}, 2), expr.Const{Value: 4, Width: 2}, 2))).
		Build()
}

func TestExtractMarksIrrelevantInputDontCare(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(counterWithFreeInput(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	u := unwind.NewBMCUnwinder(sat, nl)
	for i := 0; i < 2; i++ {
		if err := u.Extend(); err != nil {
			t.Fatalf("Extend: %v", err)
		}
	}

	q := expr.Var{Name: "q", Width: 2}
	propSrc := expr.Lt(q, expr.Const{Value: 4, Width: 3})
	relevant := RelevantVars(nl, propSrc)
	if relevant["noise"] {
		t.Fatalf("expected 'noise' to be irrelevant to trans/property, got relevant=true")
	}

	sat.Commit(u.Roots()...)
	sat.SetAssumptions(u.Roots())
	if sat.Solve() != solver.Satisfiable {
		t.Fatalf("expected the unwinding's own constraints to be satisfiable")
	}

	tr := Extract(sat, nl, u, u.Bound(), relevant)
	for _, frame := range tr.Frames {
		if frame.Vars["noise"] != "x" {
			t.Fatalf("expected noise to be don't-care at frame %d, got %q", frame.Index, frame.Vars["noise"])
		}
		if strings.Contains(frame.Vars["q"], "x") {
			t.Fatalf("expected q to be concrete at frame %d, got %q", frame.Index, frame.Vars["q"])
		}
	}
}

func TestWriteVCDProducesWellFormedHeader(t *testing.T) {
	sat := solver.New()
	nl, err := netlist.Build(counterWithFreeInput(), sat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	u := unwind.NewBMCUnwinder(sat, nl)
	sat.Commit(u.Roots()...)
	sat.SetAssumptions(u.Roots())
	if sat.Solve() != solver.Satisfiable {
		t.Fatalf("expected satisfiable")
	}

	relevant := RelevantVars(nl, expr.Bool(true))
	tr := Extract(sat, nl, u, u.Bound(), relevant)

	var buf bytes.Buffer
	if err := tr.WriteVCD(&buf, "counter"); err != nil {
		t.Fatalf("WriteVCD: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "$enddefinitions $end") {
		t.Fatalf("expected a well-formed VCD header, got:\n%s", out)
	}
	if !strings.Contains(out, "$dumpvars") {
		t.Fatalf("expected a $dumpvars block for frame 0, got:\n%s", out)
	}
	if !strings.Contains(out, "#0") {
		t.Fatalf("expected a time-0 block, got:\n%s", out)
	}
}
