package netlist

import (
	"fmt"
	"strings"
)

// dump.go renders a compiled Netlist for human inspection, building up the
// whole document in a strings.Builder and returning the string. Three
// formats are supported: plain text (--show-netlist), DOT (--dot-netlist),
// and a readable SMV-flavored textual rendering (--smv-netlist).

// DumpText renders the variable map and constraint counts as plain text.
func (n *Netlist) DumpText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "netlist: %d latches, %d nodes\n", len(n.Latches), n.NumberOfNodes())
	sb.WriteString("variables:\n")
	for _, name := range n.VarMap.Names() {
		bits, _ := n.VarMap.Bits(name)
		kind := "input/comb"
		if n.VarMap.IsLatch(name) {
			kind = "latch"
		}
		fmt.Fprintf(&sb, "  %-16s width=%-3d %s\n", name, len(bits), kind)
	}
	fmt.Fprintf(&sb, "init constraints: %d\n", len(n.InitConstrs))
	fmt.Fprintf(&sb, "trans constraints: %d\n", len(n.TransConstrs))
	return sb.String()
}

// DumpDOT renders the variable map as a Graphviz digraph: one node per
// declared variable, styled by latch-vs-combinational, with an edge from a
// synthetic TRANS node to every latch it defines. The richer per-variable
// fan-in graph is package ldg's latch dependency graph.
func (n *Netlist) DumpDOT(name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", name)
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  TRANS [shape=box];\n")
	for _, vname := range n.VarMap.Names() {
		shape := "ellipse"
		if n.VarMap.IsLatch(vname) {
			shape = "circle"
		}
		fmt.Fprintf(&sb, "  %q [shape=%s];\n", vname, shape)
	}
	for _, l := range n.Latches {
		if l.Bit == 0 {
			fmt.Fprintf(&sb, "  TRANS -> %q;\n", l.Name)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

// DumpSMV renders the variable map in a readable NuSMV/SMV-flavored module
// declaration. It is not meant to round-trip through an SMV parser, only
// to give the textual output a recognizable shape.
func (n *Netlist) DumpSMV(moduleName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "MODULE %s\n", moduleName)
	sb.WriteString("VAR\n")
	for _, vname := range n.VarMap.Names() {
		bits, _ := n.VarMap.Bits(vname)
		fmt.Fprintf(&sb, "  %s : word[%d];\n", vname, len(bits))
	}
	sb.WriteString("ASSIGN\n")
	for _, vname := range n.VarMap.Names() {
		if !n.VarMap.IsLatch(vname) {
			continue
		}
		fmt.Fprintf(&sb, "  next(%s) := <bit-blasted next-state function>;\n", vname)
	}
	return sb.String()
}
