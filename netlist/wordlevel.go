package netlist

import (
	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/solver"
)

// CompileOverFrame is the word-level path's convert(expr) -> lit boundary:
// it bit-blasts e directly against a caller-supplied current/next literal
// pairing for each declared variable, without requiring a precompiled
// Netlist's latch decomposition. The bit-level path (Build, CompileFrame,
// CompileBoolAt) precompiles each latch's next-state function once and
// replicates it per frame; the word-level path (package unwind's
// WordUnwinder) instead renames the whole Init/Trans predicate fresh at
// every frame, so it has no latch list to consult, only the raw variable
// widths and this frame's literals. Both funnel through the same
// compileBool/compileBV templates in compile.go and bits.go.
//
// next may be nil for variables with no next-frame literal at this call
// site (e.g. a property's instantaneous predicate, which never contains
// Next()); such a variable's Next() reference, if present, resolves to its
// own current literal rather than erroring.
func CompileOverFrame(sat *solver.SAT, widths map[string]int, cur, next map[string][]z.Lit, e expr.Expr) (z.Lit, error) {
	vm := newVarMap()
	for name, w := range widths {
		curLits := cur[name]
		nextLits := next[name]
		bits := make([]Bit, w)
		for i := 0; i < w; i++ {
			c := curLits[i]
			n := c
			if nextLits != nil {
				n = nextLits[i]
			}
			bits[i] = Bit{Current: c, Next: n}
		}
		vm.declare(name, bits, nextLits != nil)
	}
	return compileBool(sat, vm, e)
}
