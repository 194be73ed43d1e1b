// Package item implements the LR0Item/LR1Item model of spec.md §5: a
// production paired with a dot position, and, for LR1Item, a single
// lookahead terminal. Grounded on ictiobus/grammar/item.go's
// LR0Item{NonTerminal, Left, Right}/LR1Item{LR0Item, Lookahead} shape,
// re-expressed over production indices and symbol.Symbol rather than
// strings and []string split-at-dot slices, per the enum-indexed model.
package item

import (
	"fmt"

	"github.com/dekarrin/parsegen/internal/grammar"
	"github.com/dekarrin/parsegen/internal/symbol"
)

// LR0 is a production index paired with a dot position in [0, len(body)].
type LR0 struct {
	Prod int
	Dot  int
}

// AtEnd reports whether the dot has reached the end of the production's
// body, i.e. this item calls for a reduction.
func (i LR0) AtEnd(g *grammar.Grammar) bool {
	return i.Dot >= len(g.Production(i.Prod).Body)
}

// NextSymbol returns the symbol immediately after the dot and true, or the
// zero Symbol and false if the dot is at the end.
func (i LR0) NextSymbol(g *grammar.Grammar) (symbol.Symbol, bool) {
	body := g.Production(i.Prod).Body
	if i.Dot >= len(body) {
		return symbol.Symbol{}, false
	}
	return body[i.Dot], true
}

// Advance returns the item with the dot moved one position to the right.
// Callers must check NextSymbol first; Advance does not bounds-check.
func (i LR0) Advance() LR0 { return LR0{Prod: i.Prod, Dot: i.Dot + 1} }

// String renders "A -> α.β" using real symbol names.
func (i LR0) String(g *grammar.Grammar) string {
	prod := g.Production(i.Prod)
	s := g.SymbolName(prod.Head) + " ->"
	for pos := 0; pos <= len(prod.Body); pos++ {
		if pos == i.Dot {
			s += " ."
		}
		if pos < len(prod.Body) {
			s += " " + g.SymbolName(prod.Body[pos])
		}
	}
	return s
}

// LR1 is an LR0 core paired with a single lookahead terminal (or EOF). Two
// LR1 items with the same core and different lookaheads are distinct items.
// LALR(1) state merging puts them into one state but keeps each of them as
// its own item.
type LR1 struct {
	LR0
	Lookahead symbol.Symbol
}

// String renders "A -> α.β, a" using real symbol and lookahead names.
func (i LR1) String(g *grammar.Grammar) string {
	return fmt.Sprintf("%s, %s", i.LR0.String(g), g.SymbolName(i.Lookahead))
}

// Core discards the lookahead, used when grouping LR1 items by LR0 core
// (e.g. to merge LALR(1) states by identical cores).
func (i LR1) Core() LR0 { return i.LR0 }
