package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/parsegen/internal/catalog"
	"github.com/dekarrin/parsegen/internal/driver"
	"github.com/dekarrin/parsegen/internal/grammar"
	"github.com/dekarrin/parsegen/internal/table"
)

func TestAll_EveryExampleBuilds(t *testing.T) {
	for _, ex := range catalog.All() {
		g, err := catalog.Build(ex)
		assert.NoError(t, err, "example %s", ex)
		assert.NotNil(t, g)
		assert.NoError(t, g.Validate(), "example %s should be a reduced grammar", ex)
	}
}

func TestBuild_UnknownExampleErrors(t *testing.T) {
	_, err := catalog.Build(catalog.Example("no-such-thing"))
	assert.Error(t, err)
}

func findTerminal(t *testing.T, g *grammar.Grammar, name string) driver.Token {
	t.Helper()
	for _, term := range g.Terminals() {
		if g.SymbolName(term) == name {
			return driver.Token{Terminal: term, Lexeme: name}
		}
	}
	t.Fatalf("no such terminal: %s", name)
	return driver.Token{}
}

// TestDragon452_AllTablesConflictFree holds spec.md §8 scenario 2's
// requirement that the a*ba*b grammar (S -> BB, B -> aB|b) is conflict-free
// under all four table constructions.
func TestDragon452_AllTablesConflictFree(t *testing.T) {
	g, err := catalog.Build(catalog.Dragon452)
	assert.NoError(t, err)

	naive := grammar.NewNaiveAnalysis(g)
	assert.Empty(t, table.ComputeLR0ParsingTable(g).Conflicts)
	assert.Empty(t, table.ComputeSLRParsingTable(g, naive).Conflicts)
	assert.Empty(t, table.ComputeLR1ParsingTable(g, naive).Conflicts)
	assert.Empty(t, table.ComputeLALRParsingTable(g, naive).Conflicts)
}

// TestDragon452_AcceptsBaabWithDocumentedReductionOrder checks the exact
// reduction sequence spec.md §8 scenario 2 documents for input "baab": the
// leading "b" reduces by B -> b, then the trailing "aab" reduces bottom-up
// (B -> b for its final "b", then B -> aB twice), then S -> BB.
func TestDragon452_AcceptsBaabWithDocumentedReductionOrder(t *testing.T) {
	g, err := catalog.Build(catalog.Dragon452)
	assert.NoError(t, err)

	analysis := grammar.NewNaiveAnalysis(g)
	tab := table.ComputeLALRParsingTable(g, analysis)
	assert.Empty(t, tab.Conflicts)

	stream := driver.NewSliceTokenStream([]driver.Token{
		findTerminal(t, g, "b"),
		findTerminal(t, g, "a"),
		findTerminal(t, g, "a"),
		findTerminal(t, g, "b"),
	})
	result := driver.Run(tab, stream)
	assert.True(t, result.Accepted)
	assert.NoError(t, result.Err)

	var reducedHeads []string
	for _, step := range result.Steps {
		if step.Kind == driver.StepReduce {
			reducedHeads = append(reducedHeads, g.SymbolName(g.Production(step.Prod).Head))
		}
	}
	assert.Equal(t, []string{"B", "B", "B", "B", "S"}, reducedHeads)
}

// TestDragon454_AcceptsDccd checks spec.md §8 scenario 3: "dccd" accepted
// by the LR(1) parser for the c*dc*d grammar S -> CC, C -> cC|d.
func TestDragon454_AcceptsDccd(t *testing.T) {
	g, err := catalog.Build(catalog.Dragon454)
	assert.NoError(t, err)

	analysis := grammar.NewNaiveAnalysis(g)
	tab := table.ComputeLR1ParsingTable(g, analysis)
	assert.Empty(t, tab.Conflicts)

	stream := driver.NewSliceTokenStream([]driver.Token{
		findTerminal(t, g, "d"),
		findTerminal(t, g, "c"),
		findTerminal(t, g, "c"),
		findTerminal(t, g, "d"),
	})
	result := driver.Run(tab, stream)
	assert.True(t, result.Accepted)
	assert.NoError(t, result.Err)
}

func TestStanfordReduceReduce_IsAGenuineAmbiguity(t *testing.T) {
	g, err := catalog.Build(catalog.StanfordReduceReduce)
	assert.NoError(t, err)

	analysis := grammar.NewNaiveAnalysis(g)
	tab := table.ComputeLALRParsingTable(g, analysis)

	assert.NotEmpty(t, tab.Conflicts, "A -> id and B -> id share a FOLLOW set, so even LALR(1) can't disambiguate them")
	for _, c := range tab.Conflicts {
		assert.Equal(t, table.ReduceReduce, c.Kind)
	}
}
