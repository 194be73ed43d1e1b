package grammar

import (
	"github.com/dekarrin/parsegen/internal/symbol"
	"github.com/dekarrin/parsegen/internal/util"
)

// naiveAnalysis computes Nullable/FIRST/FOLLOW by repeated worklist
// iteration to a fixed point, the textbook algorithm (Dragon book 4.4) and
// the one the teacher's ictiobus/grammar package implements (observed
// through grammar_test.go's FIRST/FOLLOW assertions). It is the default
// strategy and the one to reach for when the grammar is small or the
// computation runs once.
type naiveAnalysis struct {
	g        *Grammar
	nullable []bool
	first    []FirstSet // indexed by nonterminal index
	follow   []util.BitSet
}

// NewNaiveAnalysis builds Nullable/FIRST/FOLLOW for g using plain
// fixed-point iteration.
func NewNaiveAnalysis(g *Grammar) Analysis {
	a := &naiveAnalysis{g: g}
	a.nullable = computeNullable(g)
	a.computeFirst()
	a.computeFollow()
	return a
}

func (a *naiveAnalysis) Nullable(nt symbol.Symbol) bool { return a.nullable[nt.Index] }

func (a *naiveAnalysis) firstOfSymbol(s symbol.Symbol) FirstSet {
	if s.IsNonterminal() {
		return a.first[s.Index]
	}
	fs := emptyFirstSet(a.g.NumActionColumns())
	if s.IsTerminal() || s.IsEOF() {
		fs.addTerminal(a.g, s)
	}
	return fs
}

func (a *naiveAnalysis) First(syms ...symbol.Symbol) FirstSet {
	return firstOfString(a.g, func(s symbol.Symbol) bool { return a.nullable[s.Index] }, a.firstOfSymbol, syms)
}

func (a *naiveAnalysis) Follow(nt symbol.Symbol) util.BitSet { return a.follow[nt.Index] }

func (a *naiveAnalysis) computeFirst() {
	nTerm := a.g.NumTerminals()
	a.first = make([]FirstSet, a.g.NumNonterminals())
	for i := range a.first {
		a.first[i] = emptyFirstSet(nTerm)
	}

	changed := true
	for changed {
		changed = false
		for _, prod := range a.g.productions {
			fs := firstOfString(a.g, func(s symbol.Symbol) bool { return a.nullable[s.Index] }, a.firstOfSymbol, prod.Body)
			cur := &a.first[prod.Head.Index]
			if cur.mergeExceptEpsilon(fs) {
				changed = true
			}
		}
	}
}

func (a *naiveAnalysis) computeFollow() {
	nCols := a.g.NumActionColumns()
	a.follow = make([]util.BitSet, a.g.NumNonterminals())
	for i := range a.follow {
		a.follow[i] = util.NewBitSet(nCols)
	}
	// FOLLOW(S') always contains EOF.
	a.follow[a.g.AugmentedStart().Index].Add(a.g.ActionColumn(symbol.EOFSymbol))

	changed := true
	for changed {
		changed = false
		for _, prod := range a.g.productions {
			for i, s := range prod.Body {
				if !s.IsNonterminal() {
					continue
				}
				rest := prod.Body[i+1:]
				fs := a.First(rest...)
				if a.follow[s.Index].AddAll(a.toActionColumns(fs)) {
					changed = true
				}
				if fs.Epsilon {
					if a.follow[s.Index].AddAll(a.follow[prod.Head.Index]) {
						changed = true
					}
				}
			}
		}
	}
}

// toActionColumns reinterprets a FirstSet's terminal bitset (indexed by
// terminal index) as an ACTION-column bitset (same indices, since terminals
// occupy columns 0..NumTerminals()-1 and only EOF needs translation, which
// FIRST never produces directly).
func (a *naiveAnalysis) toActionColumns(fs FirstSet) util.BitSet {
	return fs.Terminals
}
