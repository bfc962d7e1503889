package hdl

import (
	"errors"
	"testing"

	"github.com/rfielding/ebmc-go/expr"
)

func counterModule(name string) *Module {
	q := expr.Var{Name: "q", Width: 2}
	return NewBuilder(name, "sva").
		State("q", 2).
		Init(expr.Eq(q, expr.Const{Value: 0, Width: 2})).
		Trans(expr.Eq(expr.Next{Inner: q}, expr.Mod(expr.Add(q, expr.Const{Value: 1, Width: 2}, 2), expr.Const{Value: 4, Width: 2}, 2))).
		Property("never-three", expr.Neq(q, expr.Const{Value: 3, Width: 2})).
		Build()
}

func TestBuilderWrapsPropertiesInAlways(t *testing.T) {
	m := counterModule("counter")
	props := m.Properties()
	if len(props) != 1 {
		t.Fatalf("expected 1 property, got %d", len(props))
	}
	if _, ok := props[0].Expr.(expr.Always); !ok {
		t.Fatalf("expected the builder to apply the implicit always, got %T", props[0].Expr)
	}
}

func TestApplyResetConfinesResetToFrameZero(t *testing.T) {
	sys := counterModule("counter").System()
	reset := expr.Eq(expr.Var{Name: "q", Width: 2}, expr.Const{Value: 0, Width: 2})
	sys.ApplyReset(reset)

	// Init must now reject any state with q != 0.
	ok, err := expr.EvalBool(sys.Init(), expr.Env{Cur: map[string]uint64{"q": 1}})
	if err != nil {
		t.Fatalf("EvalBool(init): %v", err)
	}
	if ok {
		t.Fatalf("expected init ∧ R to reject q=1")
	}

	// Trans must now reject any step landing back in the reset state.
	ok, err = expr.EvalBool(sys.Trans(), expr.Env{
		Cur:  map[string]uint64{"q": 3},
		Next: map[string]uint64{"q": 0},
	})
	if err != nil {
		t.Fatalf("EvalBool(trans): %v", err)
	}
	if ok {
		t.Fatalf("expected trans ∧ ¬next(R) to reject a step into q'=0")
	}
}

func TestGetMainResolution(t *testing.T) {
	st := NewSymbolTable()
	st.AddModule(counterModule("counter"))

	if _, err := st.GetMain("counter"); err != nil {
		t.Fatalf("expected the named lookup to succeed: %v", err)
	}
	if _, err := st.GetMain(""); err != nil {
		t.Fatalf("expected the sole module to be the implicit main: %v", err)
	}

	st.AddModule(counterModule("other"))
	if _, err := st.GetMain(""); !errors.Is(err, ErrAmbiguousMain) {
		t.Fatalf("expected ErrAmbiguousMain with two unnamed candidates, got %v", err)
	}
	if _, err := st.GetMain("ghost"); !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}
