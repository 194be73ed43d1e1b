package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/parsegen/internal/catalog"
	"github.com/dekarrin/parsegen/internal/driver"
	"github.com/dekarrin/parsegen/internal/grammar"
	"github.com/dekarrin/parsegen/internal/table"
)

// buildCGrammar loads the catalog's c*dc*d grammar (spec.md §8 scenario 3):
//
//	S -> C C
//	C -> c C | d
func buildCGrammar(t *testing.T) (*grammar.Grammar, *table.Table) {
	t.Helper()
	g, err := catalog.Build(catalog.Dragon454)
	assert.NoError(t, err)

	analysis := grammar.NewNaiveAnalysis(g)
	tab := table.ComputeLALRParsingTable(g, analysis)
	assert.Empty(t, tab.Conflicts)
	return g, tab
}

func tok(g *grammar.Grammar, name string) driver.Token {
	for _, term := range g.Terminals() {
		if g.SymbolName(term) == name {
			return driver.Token{Terminal: term, Lexeme: name}
		}
	}
	panic("no such terminal: " + name)
}

func TestDriver_AcceptsCCD(t *testing.T) {
	g, tab := buildCGrammar(t)
	stream := driver.NewSliceTokenStream([]driver.Token{tok(g, "c"), tok(g, "d"), tok(g, "d")})

	result := driver.Run(tab, stream)

	assert.True(t, result.Accepted)
	assert.NoError(t, result.Err)
	assert.Equal(t, driver.StepAccept, result.Steps[len(result.Steps)-1].Kind)
}

func TestDriver_RejectsMalformedInput(t *testing.T) {
	g, tab := buildCGrammar(t)
	stream := driver.NewSliceTokenStream([]driver.Token{tok(g, "c"), tok(g, "c")})

	result := driver.Run(tab, stream)

	assert.False(t, result.Accepted)
	assert.Error(t, result.Err)
}

func TestRender_ProducesNonEmptyTrace(t *testing.T) {
	g, tab := buildCGrammar(t)
	stream := driver.NewSliceTokenStream([]driver.Token{tok(g, "d"), tok(g, "d")})

	result := driver.Run(tab, stream)
	text := driver.Render(g, result)

	assert.NotEmpty(t, text)
	assert.Contains(t, text, "accept")
}
