package automaton_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/parsegen/internal/automaton"
	"github.com/dekarrin/parsegen/internal/catalog"
	"github.com/dekarrin/parsegen/internal/grammar"
)

// buildParenGrammar loads the catalog's parenthesized-list grammar, whose
// LR(0) automaton has no conflicts:
//
//	S -> ( L ) | id
//	L -> L , S | S
func buildParenGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := catalog.Build(catalog.ParenList)
	assert.NoError(t, err)
	return g
}

func TestBuildLR0_StartStateClosesAugmentedItem(t *testing.T) {
	g := buildParenGrammar(t)
	a := automaton.BuildLR0(g)

	assert.NotEmpty(t, a.States)
	assert.Equal(t, 0, a.States[0].Index)
	// The start state must contain the seed item S' -> .S and, by closure,
	// every item of the form S -> . ... since S is the head there.
	assert.GreaterOrEqual(t, len(a.States[0].Items), 3)
}

func TestBuildLR1_HasAtLeastAsManyStatesAsLR0(t *testing.T) {
	g := buildParenGrammar(t)
	analysis := grammar.NewNaiveAnalysis(g)
	lr0 := automaton.BuildLR0(g)
	lr1 := automaton.BuildLR1(g, analysis)

	// LR1 splits states by lookahead context, so it never has fewer states
	// than LR0 for a grammar with any recursive nonterminal.
	assert.GreaterOrEqual(t, len(lr1.States), len(lr0.States))
}

func TestBuildLALR1_MatchesLR0StateCount(t *testing.T) {
	g := buildParenGrammar(t)
	analysis := grammar.NewNaiveAnalysis(g)
	lr0 := automaton.BuildLR0(g)
	lalr := automaton.BuildLALR1(g, analysis)

	// LALR merges LR1 states by core, so it always has exactly as many
	// states as LR0 (cores are shared by construction).
	assert.Equal(t, len(lr0.States), len(lalr.States))
}

func TestRepresentations_AgreeWithAutomatonTransitions(t *testing.T) {
	g := buildParenGrammar(t)
	a := automaton.BuildLR0(g)

	dense := automaton.NewDenseMatrix(a)
	adj := automaton.NewAdjacencyList(a)
	hashed := automaton.NewHashedAdjacencyList(a)
	da := automaton.NewDoubleArray(a)

	for s, row := range a.Trans {
		for sym, want := range row {
			for _, rep := range []automaton.Representation{dense, adj, hashed, da} {
				got, ok := rep.Next(s, sym)
				assert.True(t, ok)
				assert.Equal(t, want, got)
			}
		}
	}
}

func TestToDotLanguage_ContainsExpectedStructure(t *testing.T) {
	g := buildParenGrammar(t)
	a := automaton.BuildLR0(g)

	dot := automaton.ToDotLanguage(a, automaton.Portrait)

	assert.True(t, strings.Contains(dot, "digraph automaton"))
	assert.True(t, strings.Contains(dot, `size="8.25,11"`))
	assert.True(t, strings.Contains(dot, "n999999"))
	assert.True(t, strings.Contains(dot, "n999999 -> n0"))
	assert.False(t, strings.Contains(dot, "n0 [label="), "state 0 is the error sink and must not be drawn as a node")
}
