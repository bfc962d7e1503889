package solver

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/irifrance/gini/z"
)

func TestSolveConjunctionSatisfiable(t *testing.T) {
	s := New()
	a, b := s.NewLit(), s.NewLit()
	both := s.And(a, b)
	s.Commit(both)
	s.SetAssumptions([]z.Lit{both})
	if got := s.Solve(); got != Satisfiable {
		t.Fatalf("expected SAT, got %v", got)
	}
	if !s.Value(a) || !s.Value(b) {
		t.Fatalf("expected both conjuncts true in the model")
	}
}

func TestContradictionUnsatisfiable(t *testing.T) {
	s := New()
	a := s.NewLit()
	bad := s.And(a, a.Not())
	s.Commit(bad)
	s.SetAssumptions([]z.Lit{bad})
	if got := s.Solve(); got != Unsatisfiable {
		t.Fatalf("expected UNSAT for a & !a, got %v", got)
	}
}

func TestAssumptionsDoNotLeakAcrossSolves(t *testing.T) {
	s := New()
	a := s.NewLit()
	s.Commit(a)

	s.SetAssumptions([]z.Lit{a.Not()})
	if got := s.Solve(); got != Satisfiable {
		t.Fatalf("expected SAT under !a, got %v", got)
	}
	if s.Value(a) {
		t.Fatalf("expected a false under the !a assumption")
	}

	// The previous assumption must be forgotten, not asserted.
	s.SetAssumptions([]z.Lit{a})
	if got := s.Solve(); got != Satisfiable {
		t.Fatalf("expected SAT under a after releasing !a, got %v", got)
	}
	if !s.Value(a) {
		t.Fatalf("expected a true under the a assumption")
	}
}

func TestConflictContainsFailedAssumption(t *testing.T) {
	s := New()
	a, b := s.NewLit(), s.NewLit()
	s.AddClause(a)

	s.SetAssumptions([]z.Lit{a.Not(), b})
	if got := s.Solve(); got != Unsatisfiable {
		t.Fatalf("expected UNSAT assuming !a against unit a, got %v", got)
	}
	if !s.ConflictContains(a.Not()) {
		t.Fatalf("expected !a in the final conflict")
	}
}

func TestWriteDIMACSHeaderMatchesBody(t *testing.T) {
	s := New()
	a, b := s.NewLit(), s.NewLit()
	g := s.And(a, b)

	var buf bytes.Buffer
	if err := s.WriteDIMACS(&buf, g); err != nil {
		t.Fatalf("WriteDIMACS: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	fields := strings.Fields(lines[0])
	if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
		t.Fatalf("expected a 'p cnf <vars> <clauses>' header, got %q", lines[0])
	}
	nClauses, err := strconv.Atoi(fields[3])
	if err != nil {
		t.Fatalf("clause count: %v", err)
	}
	if got := len(lines) - 1; got != nClauses {
		t.Fatalf("header promises %d clauses, body has %d", nClauses, got)
	}
	for _, line := range lines[1:] {
		if !strings.HasSuffix(line, "0") {
			t.Fatalf("expected zero-terminated clause, got %q", line)
		}
	}
}
