package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/parsegen/internal/catalog"
	"github.com/dekarrin/parsegen/internal/grammar"
	"github.com/dekarrin/parsegen/internal/table"
)

// buildDragon448 is Dragon book 4.48: an SLR(1)-ambiguous grammar
//
//	S -> L = R | R
//	L -> * R | id
//	R -> L
//
// This grammar is not SLR(1) (state with items [R -> L., lookahead '='
// proposed from FOLLOW(R) includes '=' too) but is a textbook example used
// to demonstrate that LR(1)/LALR(1) resolve a conflict SLR(1) cannot.
func buildDragon448(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "L", "=", "R")
	b.AddProduction("S", "R")
	b.AddProduction("L", "*", "R")
	b.AddProduction("L", "id")
	b.AddProduction("R", "L")
	g, err := b.Build()
	assert.NoError(t, err)
	return g
}

func TestSLRTable_Dragon448HasConflict(t *testing.T) {
	g := buildDragon448(t)
	analysis := grammar.NewNaiveAnalysis(g)
	tab := table.ComputeSLRParsingTable(g, analysis)

	assert.NotEmpty(t, tab.Conflicts, "SLR(1) table for this grammar must report a shift/reduce conflict on '='")
}

func TestLALRTable_Dragon448HasNoConflict(t *testing.T) {
	g := buildDragon448(t)
	analysis := grammar.NewNaiveAnalysis(g)
	tab := table.ComputeLALRParsingTable(g, analysis)

	assert.Empty(t, tab.Conflicts, "LALR(1) resolves the SLR(1) conflict for this grammar by splitting lookahead contexts")
}

// buildDanglingElse is the classic dangling-else ambiguous grammar:
//
//	S -> if E then S | if E then S else S | other
func buildDanglingElse(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "if", "E", "then", "S")
	b.AddProduction("S", "if", "E", "then", "S", "else", "S")
	b.AddProduction("S", "other")
	b.AddProduction("E", "cond")
	g, err := b.Build()
	assert.NoError(t, err)
	return g
}

func TestLALRTable_DanglingElseResolvesToShift(t *testing.T) {
	g := buildDanglingElse(t)
	analysis := grammar.NewNaiveAnalysis(g)
	tab := table.ComputeLALRParsingTable(g, analysis)

	assert.NotEmpty(t, tab.Conflicts)
	for _, c := range tab.Conflicts {
		assert.Equal(t, table.ShiftReduce, c.Kind)
		assert.Equal(t, table.Shift, c.Resolved.Kind, "shift/reduce conflicts must resolve in favor of shift")
	}
}

// buildStanfordShiftReduce loads the catalog's S -> E, E -> E+T|T,
// T -> (E)|id|id[E] grammar: LR(0) sees shift/reduce conflicts (T -> id.
// against T -> id.[E] on '[', and S -> E. against E -> E.+T on '+') that
// FOLLOW restriction resolves away once SLR(1) is used.
func buildStanfordShiftReduce(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := catalog.Build(catalog.StanfordShiftReduce)
	assert.NoError(t, err)
	return g
}

func TestLR0Table_HasConflictWhereSLRDoesNot(t *testing.T) {
	g := buildStanfordShiftReduce(t)
	analysis := grammar.NewNaiveAnalysis(g)

	lr0 := table.ComputeLR0ParsingTable(g)
	slr := table.ComputeSLRParsingTable(g, analysis)

	assert.NotEmpty(t, lr0.Conflicts, "LR(0) proposes reduce on every column, not just FOLLOW, so this grammar conflicts under LR(0)")
	assert.Empty(t, slr.Conflicts, "SLR(1) restricts reduce to FOLLOW and resolves the LR(0) conflict")
}
