package trace

import (
	"strings"
	"testing"

	"github.com/rfielding/ebmc-go/bmc"
	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/property"
	"github.com/rfielding/ebmc-go/solver"
	"github.com/rfielding/ebmc-go/unwind"
)

func TestExtractWordReadsCounterexampleFrames(t *testing.T) {
	sys := counterWithFreeInput().System()
	sat := solver.New()
	u, err := unwind.NewWordUnwinder(sat, sys)
	if err != nil {
		t.Fatalf("NewWordUnwinder: %v", err)
	}

	q := expr.Var{Name: "q", Width: 2}
	neverTwo := property.NewFromSource(hdl.PropertySource{Name: "never-two", Expr: expr.Neq(q, expr.Const{Value: 2, Width: 2})})
	if _, err := bmc.RunWord(sat, sys, u, []*property.Property{neverTwo}, bmc.RunOptions{MaxBound: 3}); err != nil {
		t.Fatalf("RunWord: %v", err)
	}
	if neverTwo.Status != property.Failure || neverTwo.FailedAtFrame != 2 {
		t.Fatalf("expected a failure at frame 2, got %v at %d", neverTwo.Status, neverTwo.FailedAtFrame)
	}

	relevant := RelevantVarsWord(sys, neverTwo.Source)
	tr := ExtractWord(sat, sys, u, neverTwo.FailedAtFrame, relevant)
	want := []string{"00", "01", "10"}
	for i, w := range want {
		if got := tr.Frames[i].Vars["q"]; got != w {
			t.Fatalf("frame %d: expected q=%s, got %q", i, w, got)
		}
	}
	if !strings.Contains(tr.Frames[0].Vars["noise"], "x") {
		t.Fatalf("expected the irrelevant input to be don't-care, got %q", tr.Frames[0].Vars["noise"])
	}
}
