package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rfielding/ebmc-go/bmc"
	"github.com/rfielding/ebmc-go/message"
	"github.com/rfielding/ebmc-go/property"
	"github.com/rfielding/ebmc-go/solver"
)

func sampleOutcomes() []bmc.Outcome {
	p1 := &property.Property{Name: "p1", Status: property.Success}
	p2 := &property.Property{Name: "p2", Status: property.Failure, FailedAtFrame: 3}
	return []bmc.Outcome{
		{Property: p1, Result: solver.Unsatisfiable, Bound: 4},
		{Property: p2, Result: solver.Satisfiable, Bound: 3},
	}
}

func TestWriteTextIncludesEveryProperty(t *testing.T) {
	var out, errOut bytes.Buffer
	msg := message.New(&out, &errOut, message.LevelStatistics)
	WriteText(msg, sampleOutcomes(), "Latches: 2, nodes: 40")
	text := out.String()
	if !strings.Contains(text, "p1") || !strings.Contains(text, "SUCCESS") {
		t.Fatalf("expected p1 SUCCESS in output, got:\n%s", text)
	}
	if !strings.Contains(text, "p2") || !strings.Contains(text, "FAILURE") {
		t.Fatalf("expected p2 FAILURE in output, got:\n%s", text)
	}
}

func TestWriteXMLWellFormed(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, sampleOutcomes()); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<bmc-report>") {
		t.Fatalf("expected <bmc-report> root element, got:\n%s", out)
	}
	if !strings.Contains(out, `property="p1"`) {
		t.Fatalf("expected property attr for p1, got:\n%s", out)
	}
}
