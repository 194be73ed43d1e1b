package grammar

import (
	"github.com/dekarrin/parsegen/internal/symbol"
	"github.com/dekarrin/parsegen/internal/util"
)

// FirstSet is FIRST of a grammar symbol or symbol string: a bitset of
// terminal indices plus a flag recording whether the empty string is also
// derivable (spec.md §4.2). Epsilon is tracked out of band rather than as a
// reserved bit so the Terminals bitset can be used directly as an
// ACTION-row lookahead set without masking.
type FirstSet struct {
	Terminals util.BitSet
	Epsilon   bool
}

func emptyFirstSet(nTerm int) FirstSet {
	return FirstSet{Terminals: util.NewBitSet(nTerm)}
}

// addTerminal records s (a terminal or EOF) in the set by its ACTION-column
// index rather than its raw Symbol.Index: EOF's Index is always the
// zero-valued placeholder shared with terminal index 0, so only the column
// index (g.ActionColumn(s)) distinguishes it from a real terminal.
func (f *FirstSet) addTerminal(g *Grammar, s symbol.Symbol) bool {
	col := g.ActionColumn(s)
	if f.Terminals.Has(col) {
		return false
	}
	f.Terminals.Add(col)
	return true
}

// mergeExceptEpsilon copies o's terminals into f and reports whether f
// changed; o's Epsilon flag is not propagated, since callers decide
// separately whether to continue past this symbol.
func (f *FirstSet) mergeExceptEpsilon(o FirstSet) bool {
	return f.Terminals.AddAll(o.Terminals)
}

// Analysis is the common surface of both set-computation strategies spec.md
// §4.2 requires: a naive worklist fixed point (analysis_naive.go) and the
// Tarjan-SCC digraph algorithm of DeRemer & Pennello (analysis_digraph.go).
// Both are pure functions of the grammar they were built from and are safe
// for concurrent read-only use once constructed.
type Analysis interface {
	// Nullable reports whether nt can derive the empty string.
	Nullable(nt symbol.Symbol) bool
	// First returns FIRST of the symbol string syms, per the usual
	// concatenation rule: FIRST(X1...Xn) is the union of FIRST(Xi) for the
	// longest nullable prefix, plus FIRST(Xk) of the first non-nullable
	// Xk, with Epsilon set only if every Xi is nullable.
	First(syms ...symbol.Symbol) FirstSet
	// Follow returns FOLLOW(nt) as a bitset over ACTION columns (terminal
	// indices 0..NumTerminals()-1 plus the EOF column at NumTerminals()).
	Follow(nt symbol.Symbol) util.BitSet
}

// firstOfString implements the FIRST-of-a-string rule shared by both
// strategies, given a Nullable predicate and a single-symbol FIRST lookup.
func firstOfString(g *Grammar, nullable func(symbol.Symbol) bool, firstOf func(symbol.Symbol) FirstSet, syms []symbol.Symbol) FirstSet {
	result := emptyFirstSet(g.NumTerminals())
	result.Epsilon = true
	for _, s := range syms {
		if s.IsEpsilon() {
			continue
		}
		if s.IsTerminal() || s.IsEOF() {
			result.Epsilon = false
			result.addTerminal(g, s)
			break
		}
		sf := firstOf(s)
		result.mergeExceptEpsilon(sf)
		if !nullable(s) {
			result.Epsilon = false
			break
		}
	}
	return result
}
