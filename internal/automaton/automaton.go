// Package automaton builds the canonical LR(0), LR(1), and LALR(1) viable
// prefix automata of spec.md §5, plus four interchangeable space/time
// representations of the resulting DFA (§9) and a Graphviz/DOT exporter
// (§6).
//
// Grounded on ictiobus/automaton/automaton.go's closure/goto/subset
// construction shape (ToDFA, EpsilonClosureOfSet, MOVE,
// NewLALR1ViablePrefixDFA's brute-force merge-by-core strategy), adapted
// from the teacher's generic NFA/DFA[E] automaton to a parser-specific
// automaton whose states are canonical item sets over symbol.Symbol
// indices instead of string-keyed FATransitions.
package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/parsegen/internal/grammar"
	"github.com/dekarrin/parsegen/internal/item"
	"github.com/dekarrin/parsegen/internal/symbol"
	"github.com/dekarrin/parsegen/internal/util"
)

// State is one node of the viable-prefix automaton: a canonical,
// deduplicated set of LR1 items. LR0 automata store items with an unused
// zero-value Lookahead so the same State type serves both constructions.
type State struct {
	Index int
	Items []item.LR1
}

// Automaton is the canonical collection of states produced by subset
// construction over the grammar's item sets, together with the GOTO
// transition function between them. State 0 is always the initial state,
// the closure of the augmented item S' -> .S (with lookahead EOF for
// LR1/LALR1 constructions).
type Automaton struct {
	Grammar *grammar.Grammar
	States  []State
	// Trans[state][sym] is the destination state index reached by GOTO.
	Trans []map[symbol.Symbol]int
}

// Next returns the destination state of the transition out of state on
// sym, or -1 if there is none.
func (a *Automaton) Next(state int, sym symbol.Symbol) int {
	if next, ok := a.Trans[state][sym]; ok {
		return next
	}
	return -1
}

// TransitionSymbols returns every symbol with an outgoing transition from
// state, sorted for deterministic iteration (terminals then nonterminals,
// each by index).
func (a *Automaton) TransitionSymbols(state int) []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(a.Trans[state]))
	for s := range a.Trans[state] {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].Kind != syms[j].Kind {
			return syms[i].Kind < syms[j].Kind
		}
		return syms[i].Index < syms[j].Index
	})
	return syms
}

// lr0Key and lr1Key canonicalize an item for set/map dedup purposes.
func lr0Key(i item.LR0) string { return fmt.Sprintf("%d.%d", i.Prod, i.Dot) }

func lr1Key(i item.LR1) string {
	return fmt.Sprintf("%d.%d,%s%d", i.Prod, i.Dot, i.Lookahead.Kind, i.Lookahead.Index)
}

// stateKey canonicalizes a (deduplicated, sorted) item set so equal sets
// produce equal keys regardless of discovery order.
func stateKey(items []item.LR1) string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = lr1Key(it)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += k + "|"
	}
	return out
}

// closureLR0 computes the closure of a seed LR0 item set (Dragon book
// 4.40): repeatedly add, for every item A -> α.Bβ with B a nonterminal,
// every item B -> .γ for each production of B.
func closureLR0(g *grammar.Grammar, seed []item.LR0) []item.LR0 {
	seen := util.NewKeySet[string]()
	var out []item.LR0
	var worklist []item.LR0

	add := func(i item.LR0) {
		k := lr0Key(i)
		if seen.Has(k) {
			return
		}
		seen.Add(k)
		out = append(out, i)
		worklist = append(worklist, i)
	}
	for _, i := range seed {
		add(i)
	}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		next, ok := cur.NextSymbol(g)
		if !ok || !next.IsNonterminal() {
			continue
		}
		for _, prod := range g.ProductionsForHead(next) {
			add(item.LR0{Prod: prod.Index, Dot: 0})
		}
	}
	return out
}

// closureLR1 computes the closure of a seed LR1 item set (Dragon book
// 4.54): like closureLR0, but a generated item B -> .γ carries a lookahead
// set computed as FIRST(βa) for every (item A -> α.Bβ, lookahead a) that
// produced it.
func closureLR1(g *grammar.Grammar, analysis grammar.Analysis, seed []item.LR1) []item.LR1 {
	seen := util.NewKeySet[string]()
	var out []item.LR1
	var worklist []item.LR1

	add := func(i item.LR1) {
		k := lr1Key(i)
		if seen.Has(k) {
			return
		}
		seen.Add(k)
		out = append(out, i)
		worklist = append(worklist, i)
	}
	for _, i := range seed {
		add(i)
	}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		next, ok := cur.NextSymbol(g)
		if !ok || !next.IsNonterminal() {
			continue
		}
		body := g.Production(cur.Prod).Body
		beta := append(append([]symbol.Symbol{}, body[cur.Dot+1:]...), cur.Lookahead)
		fs := analysis.First(beta...)
		for _, prod := range g.ProductionsForHead(next) {
			for _, a := range fs.Terminals.Elements() {
				add(item.LR1{LR0: item.LR0{Prod: prod.Index, Dot: 0}, Lookahead: g.ColumnSymbol(a)})
			}
		}
	}
	return out
}

// gotoLR0 computes GOTO(items, sym): the closure of every item whose dot
// can advance across sym.
func gotoLR0(g *grammar.Grammar, items []item.LR0, sym symbol.Symbol) []item.LR0 {
	var moved []item.LR0
	for _, i := range items {
		if next, ok := i.NextSymbol(g); ok && next == sym {
			moved = append(moved, i.Advance())
		}
	}
	if len(moved) == 0 {
		return nil
	}
	return closureLR0(g, moved)
}

func gotoLR1(g *grammar.Grammar, analysis grammar.Analysis, items []item.LR1, sym symbol.Symbol) []item.LR1 {
	var moved []item.LR1
	for _, i := range items {
		if next, ok := i.NextSymbol(g); ok && next == sym {
			moved = append(moved, item.LR1{LR0: i.Advance(), Lookahead: i.Lookahead})
		}
	}
	if len(moved) == 0 {
		return nil
	}
	return closureLR1(g, analysis, moved)
}

// BuildLR0 constructs the canonical collection of LR(0) sets of items
// (Dragon book Algorithm 4.44's automaton), used directly by the LR(0) and
// SLR(1) table builders.
func BuildLR0(g *grammar.Grammar) *Automaton {
	seed := closureLR0(g, []item.LR0{{Prod: 0, Dot: 0}})
	return buildCollection(g, wrapLR0(seed), func(items []item.LR1, sym symbol.Symbol) []item.LR1 {
		return wrapLR0(gotoLR0(g, unwrapLR0(items), sym))
	})
}

// BuildLR1 constructs the canonical collection of LR(1) sets of items
// (Dragon book Algorithm 4.56), used by the canonical LR(1) table builder
// and as the basis for LALR(1) state merging.
func BuildLR1(g *grammar.Grammar, analysis grammar.Analysis) *Automaton {
	seed := closureLR1(g, analysis, []item.LR1{{LR0: item.LR0{Prod: 0, Dot: 0}, Lookahead: symbol.EOFSymbol}})
	return buildCollection(g, seed, func(items []item.LR1, sym symbol.Symbol) []item.LR1 {
		return gotoLR1(g, analysis, items, sym)
	})
}

// BuildLALR1 constructs the LALR(1) automaton by building the full
// canonical LR(1) collection and merging every pair of states whose LR0
// cores are identical, unioning their lookaheads. This is the teacher's
// NewLALR1ViablePrefixDFA strategy (brute-force merge-by-core) rather than
// the lookahead-propagation algorithm (Dragon book 4.63): simpler, and
// produces an identical table, at the cost of briefly materializing the
// full canonical LR(1) collection first.
func BuildLALR1(g *grammar.Grammar, analysis grammar.Analysis) *Automaton {
	lr1 := BuildLR1(g, analysis)

	coreOf := func(items []item.LR1) string {
		// One key per distinct LR0 item, however many lookaheads it carries.
		seen := util.NewKeySet[string]()
		var keys []string
		for _, it := range items {
			k := lr0Key(it.LR0)
			if !seen.Has(k) {
				seen.Add(k)
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		out := ""
		for _, k := range keys {
			out += k + "|"
		}
		return out
	}

	// Map each old state index to a merged-state index, grouping by core.
	coreToMerged := make(map[string]int)
	oldToMerged := make([]int, len(lr1.States))
	var merged []State
	for _, st := range lr1.States {
		core := coreOf(st.Items)
		mi, ok := coreToMerged[core]
		if !ok {
			mi = len(merged)
			coreToMerged[core] = mi
			merged = append(merged, State{Index: mi})
		}
		oldToMerged[st.Index] = mi
		merged[mi].Items = mergeLookaheads(merged[mi].Items, st.Items)
	}

	out := &Automaton{Grammar: g, States: merged, Trans: make([]map[symbol.Symbol]int, len(merged))}
	for i := range out.Trans {
		out.Trans[i] = make(map[symbol.Symbol]int)
	}
	for _, st := range lr1.States {
		from := oldToMerged[st.Index]
		for sym, to := range lr1.Trans[st.Index] {
			out.Trans[from][sym] = oldToMerged[to]
		}
	}
	return out
}

// mergeLookaheads unions b's items into a, adding a's own items first and
// dropping exact duplicates (same core and same lookahead); items that share
// a core but differ in lookahead are all kept.
func mergeLookaheads(a, b []item.LR1) []item.LR1 {
	seen := make(map[string]bool)
	var out []item.LR1
	for _, i := range a {
		k := lr1Key(i)
		if !seen[k] {
			seen[k] = true
			out = append(out, i)
		}
	}
	for _, i := range b {
		k := lr1Key(i)
		if !seen[k] {
			seen[k] = true
			out = append(out, i)
		}
	}
	return out
}

// buildCollection runs the generic subset-construction BFS shared by the
// LR0 and LR1 builders: starting from seed, repeatedly compute GOTO over
// every symbol with an outgoing transition until no new states appear.
func buildCollection(g *grammar.Grammar, seed []item.LR1, gotoFn func([]item.LR1, symbol.Symbol) []item.LR1) *Automaton {
	a := &Automaton{Grammar: g}
	keyToIndex := make(map[string]int)

	addState := func(items []item.LR1) int {
		k := stateKey(items)
		if idx, ok := keyToIndex[k]; ok {
			return idx
		}
		idx := len(a.States)
		keyToIndex[k] = idx
		a.States = append(a.States, State{Index: idx, Items: items})
		a.Trans = append(a.Trans, make(map[symbol.Symbol]int))
		return idx
	}
	addState(seed)

	for i := 0; i < len(a.States); i++ {
		st := a.States[i]
		syms := outgoingSymbols(g, st.Items)
		for _, sym := range syms {
			next := gotoFn(st.Items, sym)
			if len(next) == 0 {
				continue
			}
			to := addState(next)
			a.Trans[i][sym] = to
		}
	}
	return a
}

func outgoingSymbols(g *grammar.Grammar, items []item.LR1) []symbol.Symbol {
	seen := make(map[symbol.Symbol]bool)
	var out []symbol.Symbol
	for _, i := range items {
		if next, ok := i.NextSymbol(g); ok {
			if !seen[next] {
				seen[next] = true
				out = append(out, next)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Index < out[j].Index
	})
	return out
}

func wrapLR0(items []item.LR0) []item.LR1 {
	out := make([]item.LR1, len(items))
	for i, it := range items {
		out[i] = item.LR1{LR0: it}
	}
	return out
}

func unwrapLR0(items []item.LR1) []item.LR0 {
	out := make([]item.LR0, len(items))
	for i, it := range items {
		out[i] = it.LR0
	}
	return out
}
