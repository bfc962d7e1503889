package solver

import (
	"bufio"
	"fmt"
	"io"

	"github.com/irifrance/gini/z"
)

// dimacsAdder implements gini/inter.Adder (a single Add(z.Lit) method,
// z.Lit(0) terminating a clause, as logic.C.ToCnf's own dst.Add(0) use shows)
// by buffering clauses in DIMACS integer form, so WriteDIMACS can learn the
// final variable and clause counts before emitting the "p cnf" header CNF
// file format requires up front.
type dimacsAdder struct {
	clauses [][]int
	cur     []int
	maxVar  int
}

func (a *dimacsAdder) Add(m z.Lit) {
	if m == z.LitNull {
		a.clauses = append(a.clauses, a.cur)
		a.cur = nil
		return
	}
	d := m.Dimacs()
	v := d
	if v < 0 {
		v = -v
	}
	if v > a.maxVar {
		a.maxVar = v
	}
	a.cur = append(a.cur, d)
}

// WriteDIMACS dumps the CNF reachable from roots (the --dimacs mode)
// in standard DIMACS CNF form: a "p cnf <vars> <clauses>" header followed
// by one zero-terminated clause per line. Tseitinization is gini's own
// (logic.C.ToCnfFrom); this just gives its adder output a file shape.
func (s *SAT) WriteDIMACS(w io.Writer, roots ...z.Lit) error {
	var a dimacsAdder
	s.c.ToCnfFrom(&a, roots...)

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", a.maxVar, len(a.clauses)); err != nil {
		return err
	}
	for _, clause := range a.clauses {
		for _, lit := range clause {
			if _, err := fmt.Fprintf(bw, "%d ", lit); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw, "0"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
