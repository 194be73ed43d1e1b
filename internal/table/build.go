package table

import (
	"github.com/dekarrin/parsegen/internal/automaton"
	"github.com/dekarrin/parsegen/internal/grammar"
	"github.com/dekarrin/parsegen/internal/symbol"
)

// ComputeLR0ParsingTable builds the table implied directly by the LR(0)
// automaton: every completed item A -> α. proposes a reduce by that
// production on every terminal/EOF column (an LR(0) table has no
// lookahead-based reduce restriction at all), which is why LR(0) grammars
// are the most conflict-prone of the four constructions. Grounded on
// Dragon book Algorithm 4.44 and the teacher's canonical-collection/GOTO
// wiring pattern in ictiobus/parse/lr.go.
func ComputeLR0ParsingTable(g *grammar.Grammar) *Table {
	a := automaton.BuildLR0(g)
	t := newTable(g, a)
	t.buildShiftsAndGotos()
	t.markAccept()
	for _, st := range a.States {
		for _, it := range st.Items {
			if !it.AtEnd(g) || it.Prod == 0 {
				continue
			}
			for _, term := range g.Terminals() {
				t.propose(st.Index, term, Action{Kind: Reduce, Prod: it.Prod})
			}
			t.propose(st.Index, symbol.EOFSymbol, Action{Kind: Reduce, Prod: it.Prod})
		}
	}
	return t
}

// ComputeSLRParsingTable builds the SLR(1) table: like LR(0), but a
// completed item A -> α. only proposes a reduce on terminals in
// FOLLOW(A), cutting down on the reduce actions an LR(0) table would
// propose blindly. Algorithm 4.46 in the Dragon book; grounded on
// ictiobus/parse/slr.go's constructSimpleLRParseTable.
func ComputeSLRParsingTable(g *grammar.Grammar, analysis grammar.Analysis) *Table {
	a := automaton.BuildLR0(g)
	t := newTable(g, a)
	t.buildShiftsAndGotos()
	t.markAccept()
	for _, st := range a.States {
		for _, it := range st.Items {
			if !it.AtEnd(g) || it.Prod == 0 {
				continue
			}
			follow := analysis.Follow(g.Production(it.Prod).Head)
			for _, col := range follow.Elements() {
				t.propose(st.Index, g.ColumnSymbol(col), Action{Kind: Reduce, Prod: it.Prod})
			}
		}
	}
	return t
}

// ComputeLR1ParsingTable builds the canonical LR(1) table: a completed
// item [A -> α., a] proposes a reduce only on its own carried lookahead a,
// since the canonical LR(1) automaton already split apart states that an
// SLR(1) table would have conflated. Algorithm 4.56 in the Dragon book;
// grounded on ictiobus/parse/clr1.go's constructCanonicalLR1ParseTable,
// with the conflict-as-data correction of spec.md §7 (the teacher's
// version returns an error on the first conflict it finds).
func ComputeLR1ParsingTable(g *grammar.Grammar, analysis grammar.Analysis) *Table {
	a := automaton.BuildLR1(g, analysis)
	return buildFromLR1Automaton(g, a)
}

// ComputeLALRParsingTable builds the LALR(1) table over the core-merged
// LALR(1) automaton, using the same per-item lookahead reduce rule as
// canonical LR(1). Algorithm 4.63 in the Dragon book describes computing
// LALR(1) lookaheads directly; this builder instead reuses
// automaton.BuildLALR1's merge-by-core construction (see its doc comment)
// and applies the identical table-filling logic as ComputeLR1ParsingTable.
func ComputeLALRParsingTable(g *grammar.Grammar, analysis grammar.Analysis) *Table {
	a := automaton.BuildLALR1(g, analysis)
	return buildFromLR1Automaton(g, a)
}

func buildFromLR1Automaton(g *grammar.Grammar, a *automaton.Automaton) *Table {
	t := newTable(g, a)
	t.buildShiftsAndGotos()
	t.markAccept()
	for _, st := range a.States {
		for _, it := range st.Items {
			if !it.AtEnd(g) || it.Prod == 0 {
				continue
			}
			t.propose(st.Index, it.Lookahead, Action{Kind: Reduce, Prod: it.Prod})
		}
	}
	return t
}
