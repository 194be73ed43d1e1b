package grammar

import (
	"github.com/dekarrin/parsegen/internal/symbol"
	"github.com/dekarrin/parsegen/internal/util"
)

// digraphAnalysis computes FIRST/FOLLOW with the DeRemer & Pennello DIGRAPH
// algorithm: build a relation over nonterminals (x R y means F(x) must
// include F(y)), contract its strongly connected components with Tarjan's
// algorithm, and propagate values once per SCC in reverse topological
// order instead of re-scanning every production to a naive fixed point.
// Offered alongside naiveAnalysis per spec.md §4.2's requirement that both
// strategies be real implementations of the same Analysis interface, not
// one real and one stubbed. The SCC search is a recursive depth-first
// Tarjan walk over a plain slice stack, adapted from the general closure
// shape of the teacher's automaton.go subset-construction loop
// (EpsilonClosureOfSet) rather than repeated-pass iteration.
type digraphAnalysis struct {
	g        *Grammar
	nullable []bool
	first    []FirstSet
	follow   []util.BitSet
}

// NewDigraphAnalysis builds Nullable/FIRST/FOLLOW for g using the
// Tarjan-SCC digraph algorithm.
func NewDigraphAnalysis(g *Grammar) Analysis {
	a := &digraphAnalysis{g: g}
	a.nullable = computeNullable(g)
	a.computeFirst()
	a.computeFollow()
	return a
}

func (a *digraphAnalysis) Nullable(nt symbol.Symbol) bool { return a.nullable[nt.Index] }

func (a *digraphAnalysis) firstOfSymbol(s symbol.Symbol) FirstSet {
	if s.IsNonterminal() {
		return a.first[s.Index]
	}
	fs := emptyFirstSet(a.g.NumActionColumns())
	if s.IsTerminal() || s.IsEOF() {
		fs.addTerminal(a.g, s)
	}
	return fs
}

func (a *digraphAnalysis) First(syms ...symbol.Symbol) FirstSet {
	return firstOfString(a.g, func(s symbol.Symbol) bool { return a.nullable[s.Index] }, a.firstOfSymbol, syms)
}

func (a *digraphAnalysis) Follow(nt symbol.Symbol) util.BitSet { return a.follow[nt.Index] }

// computeFirst builds, per nonterminal A, a direct-contribution set (the
// terminals any production A -> ... contributes outright) and an edge A->B
// whenever B is a nonterminal appearing at the head of a nullable prefix in
// some production body of A (so FIRST(A) must include FIRST(B)). The
// digraph solver then resolves the whole relation in one SCC pass.
func (a *digraphAnalysis) computeFirst() {
	n := a.g.NumNonterminals()
	nTerm := a.g.NumTerminals()
	direct := make([]util.BitSet, n)
	edges := make([][]int, n)
	for i := range direct {
		direct[i] = util.NewBitSet(nTerm)
	}

	for _, prod := range a.g.productions {
		head := prod.Head.Index
		for _, s := range prod.Body {
			if s.IsEpsilon() {
				continue
			}
			if s.IsTerminal() {
				direct[head].Add(s.Index)
				break
			}
			// s is a nonterminal: FIRST(head) includes FIRST(s).
			edges[head] = append(edges[head], s.Index)
			if !a.nullable[s.Index] {
				break
			}
		}
	}

	solved := solveDigraph(n, edges, direct)
	a.first = make([]FirstSet, n)
	for i, bs := range solved {
		a.first[i] = FirstSet{Terminals: bs, Epsilon: a.nullable[i]}
	}
}

// computeFollow builds, per nonterminal A, a direct-contribution set (the
// action columns directly visible after some occurrence of A) and an edge
// A->B whenever B is a nonterminal whose own FOLLOW set must flow into
// FOLLOW(A): this happens when B is the head of a production B -> αAβ with
// β nullable (including β empty).
func (a *digraphAnalysis) computeFollow() {
	n := a.g.NumNonterminals()
	nCols := a.g.NumActionColumns()
	direct := make([]util.BitSet, n)
	edges := make([][]int, n)
	for i := range direct {
		direct[i] = util.NewBitSet(nCols)
	}
	direct[a.g.AugmentedStart().Index].Add(a.g.ActionColumn(symbol.EOFSymbol))

	for _, prod := range a.g.productions {
		for i, s := range prod.Body {
			if !s.IsNonterminal() {
				continue
			}
			rest := prod.Body[i+1:]
			fs := a.First(rest...)
			direct[s.Index].AddAll(fs.Terminals)
			if fs.Epsilon {
				edges[s.Index] = append(edges[s.Index], prod.Head.Index)
			}
		}
	}

	a.follow = solveDigraph(n, edges, direct)
}

// solveDigraph is DeRemer & Pennello's DIGRAPH procedure: given a relation
// edges[x] = {y : x R y} and initial per-node values, it computes, for
// every node, the union of its own initial value with the values of every
// node reachable along an edge, collapsing cycles (which all resolve to
// the same final value) via Tarjan's strongly-connected-components
// algorithm so each node is finalized exactly once.
func solveDigraph(n int, edges [][]int, initial []util.BitSet) []util.BitSet {
	d := &digraphSolver{
		edges:   edges,
		initial: initial,
		result:  make([]util.BitSet, n),
		index:   make([]int, n),
		low:     make([]int, n),
		onStack: make([]bool, n),
		done:    make([]bool, n),
	}
	for i := range d.index {
		d.index[i] = -1
	}
	for v := 0; v < n; v++ {
		if d.index[v] < 0 {
			d.strongConnect(v)
		}
	}
	return d.result
}

type digraphSolver struct {
	edges   [][]int
	initial []util.BitSet
	result  []util.BitSet

	index   []int
	low     []int
	onStack []bool
	done    []bool
	stack   []int
	counter int
}

func (d *digraphSolver) strongConnect(v int) {
	d.index[v] = d.counter
	d.low[v] = d.counter
	d.counter++
	d.stack = append(d.stack, v)
	d.onStack[v] = true

	for _, w := range d.edges[v] {
		if d.index[w] < 0 {
			d.strongConnect(w)
			if d.low[w] < d.low[v] {
				d.low[v] = d.low[w]
			}
		} else if d.onStack[w] {
			if d.index[w] < d.low[v] {
				d.low[v] = d.index[w]
			}
		}
	}

	if d.low[v] != d.index[v] {
		return
	}

	// v is the root of an SCC: pop its members and assign them all the
	// same value, the union of every member's initial set plus every
	// value reachable along an edge leaving the SCC (which, since edges
	// are only followed to already-finalized nodes or other SCC members,
	// is exactly d.result of each member's successors once those
	// successors have been finalized below).
	var members []int
	for {
		n := len(d.stack) - 1
		w := d.stack[n]
		d.stack = d.stack[:n]
		d.onStack[w] = false
		members = append(members, w)
		if w == v {
			break
		}
	}

	union := initialUnion(d.initial, members)
	for _, m := range members {
		for _, succ := range d.edges[m] {
			if !contains(members, succ) {
				union.AddAll(d.result[succ])
			}
		}
	}
	for _, m := range members {
		d.result[m] = union.Copy()
		d.done[m] = true
	}
}

func initialUnion(initial []util.BitSet, members []int) util.BitSet {
	union := initial[members[0]].Copy()
	for _, m := range members[1:] {
		union.AddAll(initial[m])
	}
	return union
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
