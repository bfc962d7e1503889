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

// LowerWord is the word-level variant of Lower: it compiles prop
// directly against sys's declared variables at each frame of a
// unwind.WordUnwinder, via netlist.CompileOverFrame, instead of against a
// precompiled bit-level Netlist's VarMap. The three recognized temporal
// skeletons (Always, NextTime, Until) are handled with the identical shape
// Lower uses; only the per-frame compilation boundary differs between the
// two paths, which is exactly what keeps them "structurally distinct" while
// sharing one solver dependency end to end.
func LowerWord(sat *solver.SAT, sys *hdl.System, u *unwind.WordUnwinder, prop *Property) (*Lowered, error) {
	widths := wordWidths(sys)
	n := u.Bound() + 1

	compileAt := func(t int, e expr.Expr) (z.Lit, error) {
		if t >= n {
			return z.LitNull, fmt.Errorf("frame %d has not been unwound yet", t)
		}
		vars := make(map[string][]z.Lit, len(widths))
		for name := range widths {
			vars[name] = u.VarsAt(t, name)
		}
		return netlist.CompileOverFrame(sat, widths, vars, nil, e)
	}

	switch t := prop.Source.(type) {
	case expr.Always:
		perFrame := make([]z.Lit, n)
		for i := 0; i < n; i++ {
			lit, err := compileAt(i, t.Inner)
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
				perFrame[i] = sat.True()
				continue
			}
			lit, err := compileAt(i+1, t.Inner)
			if err != nil {
				return nil, fmt.Errorf("property %q at frame %d: %w", prop.Name, i, err)
			}
			perFrame[i] = lit
		}
		return &Lowered{Prop: prop, PerFrame: perFrame}, nil

	case expr.Until:
		perFrame := make([]z.Lit, n)
		perFrame[n-1] = sat.True()
		for i := n - 2; i >= 0; i-- {
			rHere, err := compileAt(i, t.Right)
			if err != nil {
				return nil, fmt.Errorf("property %q at frame %d: %w", prop.Name, i, err)
			}
			qHere, err := compileAt(i, t.Left)
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

func wordWidths(sys *hdl.System) map[string]int {
	widths := make(map[string]int)
	for _, v := range sys.StateVars() {
		widths[v.Name] = v.Width
	}
	for _, v := range sys.InputVars() {
		widths[v.Name] = v.Width
	}
	return widths
}
