package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/parsegen/internal/grammar"
	"github.com/dekarrin/parsegen/internal/symbol"
)

// buildExprGrammar builds the classic Dragon book 4.28 expression grammar:
//
//	E  -> T E'
//	E' -> + T E' | ε
//	T  -> F T'
//	T' -> * F T' | ε
//	F  -> ( E ) | id
func buildExprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder()
	b.SetStart("E")
	b.AddProduction("E", "T", "E'")
	b.AddProduction("E'", "+", "T", "E'")
	b.AddProduction("E'")
	b.AddProduction("T", "F", "T'")
	b.AddProduction("T'", "*", "F", "T'")
	b.AddProduction("T'")
	b.AddProduction("F", "(", "E", ")")
	b.AddProduction("F", "id")

	g, err := b.Build()
	assert.NoError(t, err)
	return g
}

func TestBuilder_AugmentsStart(t *testing.T) {
	g := buildExprGrammar(t)

	assert.Equal(t, "S'", g.NonterminalName(g.AugmentedStart()))
	assert.Equal(t, "E", g.SymbolName(g.StartSymbol()))
	assert.Equal(t, g.StartSymbol(), g.Production(0).Body[0])
}

func TestGrammar_Validate_ReducedGrammarPasses(t *testing.T) {
	g := buildExprGrammar(t)
	assert.NoError(t, g.Validate())
}

func TestGrammar_Validate_CatchesUnreachableNonterminal(t *testing.T) {
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "a")
	b.AddProduction("Dead", "b")
	g, err := b.Build()
	assert.NoError(t, err)

	assert.Error(t, g.Validate())
}

func TestGrammar_Validate_CatchesUnproductiveNonterminal(t *testing.T) {
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "A")
	b.AddProduction("A", "S") // A only ever derives itself, never a terminal string
	g, err := b.Build()
	assert.NoError(t, err)

	assert.Error(t, g.Validate())
}

func TestAnalyses_AgreeOnNullable(t *testing.T) {
	g := buildExprGrammar(t)
	naive := grammar.NewNaiveAnalysis(g)
	digraph := grammar.NewDigraphAnalysis(g)

	ep := findNonterminal(g, "E'")
	assert.True(t, naive.Nullable(ep))
	assert.True(t, digraph.Nullable(ep))

	e := findNonterminal(g, "E")
	assert.False(t, naive.Nullable(e))
	assert.False(t, digraph.Nullable(e))
}

func TestAnalyses_AgreeOnFirstOfStart(t *testing.T) {
	g := buildExprGrammar(t)
	naive := grammar.NewNaiveAnalysis(g)
	digraph := grammar.NewDigraphAnalysis(g)

	e := findNonterminal(g, "E")
	wantNames := []string{"(", "id"}

	for _, a := range []grammar.Analysis{naive, digraph} {
		fs := a.First(e)
		assert.False(t, fs.Epsilon)
		var gotNames []string
		for _, i := range fs.Terminals.Elements() {
			gotNames = append(gotNames, g.SymbolName(g.ColumnSymbol(i)))
		}
		assert.ElementsMatch(t, wantNames, gotNames)
	}
}

func TestAnalyses_AgreeOnFollowOfExpr(t *testing.T) {
	g := buildExprGrammar(t)
	naive := grammar.NewNaiveAnalysis(g)
	digraph := grammar.NewDigraphAnalysis(g)

	e := findNonterminal(g, "E")
	want := []string{")", "$"}

	for _, a := range []grammar.Analysis{naive, digraph} {
		follow := a.Follow(e)
		var got []string
		for _, i := range follow.Elements() {
			got = append(got, g.SymbolName(g.ColumnSymbol(i)))
		}
		assert.ElementsMatch(t, want, got)
	}
}

func findNonterminal(g *grammar.Grammar, name string) symbol.Symbol {
	for _, nt := range g.Nonterminals() {
		if g.NonterminalName(nt) == name {
			return nt
		}
	}
	panic("no such nonterminal: " + name)
}
