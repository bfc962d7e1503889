package expr

import "testing"

func TestWrapImplicitAlwaysIdempotent(t *testing.T) {
	q := Var{Name: "q", Width: 2}
	bare := Neq(q, Const{Value: 3, Width: 2})

	wrapped := WrapImplicitAlways(bare)
	if _, ok := wrapped.(Always); !ok {
		t.Fatalf("expected an Always wrapper, got %T", wrapped)
	}
	if got := WrapImplicitAlways(wrapped); got != wrapped {
		t.Fatalf("re-wrapping an already-always property must be the identity, got %v", got)
	}
}

func TestWrapImplicitAlwaysLeavesTemporalOperatorsAlone(t *testing.T) {
	q := Var{Name: "q", Width: 1}
	for _, e := range []Expr{
		NextTime{Inner: q},
		Until{Left: q, Right: Not{Inner: q}},
	} {
		if got := WrapImplicitAlways(e); got != e {
			t.Fatalf("expected %v to stay unwrapped, got %v", e, got)
		}
	}
}

func TestAndAllEmptyIsTrue(t *testing.T) {
	ok, err := EvalBool(AndAll(), Env{})
	if err != nil {
		t.Fatalf("EvalBool: %v", err)
	}
	if !ok {
		t.Fatalf("an empty conjunction must be true")
	}
}

func TestEvalCounterStep(t *testing.T) {
	q := Var{Name: "q", Width: 2}
	step := Eq(Next{Inner: q}, Mod(Add(q, Const{Value: 1, Width: 2}, 2), Const{Value: 4, Width: 2}, 2))

	for cur := uint64(0); cur < 4; cur++ {
		want := (cur + 1) % 4
		ok, err := EvalBool(step, Env{Cur: map[string]uint64{"q": cur}, Next: map[string]uint64{"q": want}})
		if err != nil {
			t.Fatalf("EvalBool(q=%d): %v", cur, err)
		}
		if !ok {
			t.Fatalf("expected q=%d -> q'=%d to satisfy the step relation", cur, want)
		}
		ok, err = EvalBool(step, Env{Cur: map[string]uint64{"q": cur}, Next: map[string]uint64{"q": (want + 1) % 4}})
		if err != nil {
			t.Fatalf("EvalBool(q=%d): %v", cur, err)
		}
		if ok {
			t.Fatalf("expected q=%d -> q'=%d to violate the step relation", cur, (want+1)%4)
		}
	}
}

func TestEvalAddWrapsAtWidth(t *testing.T) {
	got, err := EvalBV(Add(Const{Value: 3, Width: 2}, Const{Value: 1, Width: 2}, 2), Env{})
	if err != nil {
		t.Fatalf("EvalBV: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 3+1 to wrap to 0 at width 2, got %d", got)
	}
}
