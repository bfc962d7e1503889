// Package ldg builds the latch dependency graph: a directed graph whose
// nodes are a netlist's latch variables and whose edges record "latch A's
// next-state function reads latch B's current value". It is the structural
// artifact --show-ldg dumps and --compute-ct derives a recurrence-diameter
// upper bound from.
//
// The graph is a map-of-maps adjacency store mutated under a write lock
// and queried under a read lock, keyed by latch name.
package ldg

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rfielding/ebmc-go/expr"
	"github.com/rfielding/ebmc-go/netlist"
)

// Graph is the latch dependency graph: an edge A -> B means A's next-state
// function reads B's current value.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]bool
	edges map[string]map[string]bool
	order []string
}

// New returns an empty dependency graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]bool), edges: make(map[string]map[string]bool)}
}

// AddNode registers a latch name, a no-op if already present.
func (g *Graph) AddNode(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(name)
}

func (g *Graph) addNodeLocked(name string) {
	if g.nodes[name] {
		return
	}
	g.nodes[name] = true
	g.order = append(g.order, name)
	g.edges[name] = make(map[string]bool)
}

// AddEdge records that from's next-state function depends on to's current
// value, auto-adding either endpoint if absent.
func (g *Graph) AddEdge(from, to string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(from)
	g.addNodeLocked(to)
	g.edges[from][to] = true
}

// Nodes returns latch names in insertion order.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string{}, g.order...)
}

// Successors returns the latches name's next-state function depends on.
func (g *Graph) Successors(name string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.edges[name]))
	for to := range g.edges[name] {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}

// Build derives the latch dependency graph from a compiled Netlist's
// retained latch equations: one node per latch, one edge per latch read by
// another latch's next-state expression.
func Build(nl *netlist.Netlist) *Graph {
	g := New()
	for name := range nl.LatchRHS {
		g.AddNode(name)
	}
	for name, rhs := range nl.LatchRHS {
		for _, ref := range referencedVars(rhs) {
			if _, isLatch := nl.LatchRHS[ref]; isLatch {
				g.AddEdge(name, ref)
			}
		}
	}
	return g
}

func referencedVars(e expr.Expr) []string {
	set := make(map[string]bool)
	var walk func(expr.Expr)
	walk = func(e expr.Expr) {
		switch n := e.(type) {
		case expr.Var:
			set[n.Name] = true
		case expr.Next:
			walk(n.Inner)
		case expr.Not:
			walk(n.Inner)
		case expr.And:
			walk(n.Left)
			walk(n.Right)
		case expr.Or:
			walk(n.Left)
			walk(n.Right)
		case expr.Cmp:
			walk(n.Left)
			walk(n.Right)
		case expr.Arith:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(e)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	return out
}

// DumpText renders the dependency graph as a plain adjacency listing, the
// --show-ldg output format.
func (g *Graph) DumpText() string {
	var sb strings.Builder
	for _, name := range g.Nodes() {
		succ := g.Successors(name)
		if len(succ) == 0 {
			fmt.Fprintf(&sb, "%s: (no dependencies)\n", name)
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", name, strings.Join(succ, ", "))
	}
	return sb.String()
}

// StronglyConnectedComponents partitions the graph's nodes into maximal sets
// where every node can reach every other (Tarjan's algorithm). ComputeCT
// does not use it: its bound depends only on the total latch bit count.
func (g *Graph) StronglyConnectedComponents() [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	index := 0
	indices := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var sccs [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for to := range g.edges[v] {
			if _, seen := indices[to]; !seen {
				strongconnect(to)
				if lowlink[to] < lowlink[v] {
					lowlink[v] = lowlink[to]
				}
			} else if onStack[to] {
				if indices[to] < lowlink[v] {
					lowlink[v] = indices[to]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var comp []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			sort.Strings(comp)
			sccs = append(sccs, comp)
		}
	}

	for _, name := range g.order {
		if _, seen := indices[name]; !seen {
			strongconnect(name)
		}
	}
	return sccs
}
