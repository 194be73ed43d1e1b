// Package grammar implements the grammar model of spec.md §3-4.1: terminals,
// nonterminals, productions indexed 0..P-1 with a synthetic augmented start
// production S' -> S at index 0, and the Nullable/FIRST/FOLLOW set
// analyzers of §4.2.
//
// Grounded on ictiobus/grammar's observed API (Grammar{}, AddTerm, AddRule,
// Validate, FIRST, FOLLOW — see grammar_test.go, since grammar.go itself was
// filtered out of the retrieval pack) re-expressed over symbol.Symbol
// indices instead of strings, per spec.md's Open Question adopting the
// enum-keyed model uniformly.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/parsegen/internal/perr"
	"github.com/dekarrin/parsegen/internal/symbol"
)

// Production is an immutable right-hand side tied to a head nonterminal and
// a stable index. Production 0 is always the augmented start production
// S' -> S (spec.md §3). Body may be empty (an epsilon production).
type Production struct {
	Index int
	Head  symbol.Symbol
	Body  []symbol.Symbol
}

// IsEpsilon reports whether this production's body is empty.
func (p Production) IsEpsilon() bool { return len(p.Body) == 0 }

// Equal compares productions by index, since a Grammar's productions are
// immutable and indices are assigned once at construction.
func (p Production) Equal(o Production) bool { return p.Index == o.Index }

// Grammar owns the terminal universe T (excluding epsilon, including EOF
// only implicitly via symbol.EOFSymbol — EOF is not part of the dense
// terminal index space, see Grammar.ActionColumn), the nonterminal universe V
// (including the augmented start S' at index 0), and the production list P.
// A Grammar is built once by Builder.Build and is immutable thereafter
// (spec.md §3 Lifecycles).
type Grammar struct {
	terminalNames    []string
	nonterminalNames []string // index 0 is always S'
	startIndex       int      // nonterminal index of the user's declared start S
	productions      []Production
	byHead           map[int][]int // nonterminal index -> production indices
}

// NumTerminals returns |T|, not counting EOF.
func (g *Grammar) NumTerminals() int { return len(g.terminalNames) }

// NumNonterminals returns |V|, including the augmented start S'.
func (g *Grammar) NumNonterminals() int { return len(g.nonterminalNames) }

// NumActionColumns returns the width of the ACTION table's terminal
// dimension: one column per user terminal, plus one reserved column for
// EOF (spec.md §3: "Eof is classified as a terminal for ACTION-column
// purposes").
func (g *Grammar) NumActionColumns() int { return len(g.terminalNames) + 1 }

// ActionColumn returns the dense column index of sym within the ACTION
// table's terminal dimension. EOF occupies the last column. Panics if sym
// is not a valid action-column symbol (see Symbol.IsActionColumn).
func (g *Grammar) ActionColumn(sym symbol.Symbol) int {
	switch sym.Kind {
	case symbol.Terminal:
		return sym.Index
	case symbol.EOF:
		return len(g.terminalNames)
	default:
		panic(fmt.Sprintf("not an action-column symbol: %s", g.SymbolName(sym)))
	}
}

// ColumnSymbol is the inverse of ActionColumn.
func (g *Grammar) ColumnSymbol(col int) symbol.Symbol {
	if col == len(g.terminalNames) {
		return symbol.EOFSymbol
	}
	return symbol.NewTerminal(col)
}

// Terminals returns every user terminal, in index order (EOF excluded).
func (g *Grammar) Terminals() []symbol.Symbol {
	out := make([]symbol.Symbol, len(g.terminalNames))
	for i := range g.terminalNames {
		out[i] = symbol.NewTerminal(i)
	}
	return out
}

// Nonterminals returns every nonterminal including the augmented start S',
// in index order.
func (g *Grammar) Nonterminals() []symbol.Symbol {
	out := make([]symbol.Symbol, len(g.nonterminalNames))
	for i := range g.nonterminalNames {
		out[i] = symbol.NewNonterminal(i)
	}
	return out
}

// UserNonterminals returns every nonterminal the caller declared, excluding
// the augmented start S'.
func (g *Grammar) UserNonterminals() []symbol.Symbol {
	all := g.Nonterminals()
	return all[1:]
}

// StartSymbol returns the user's declared start nonterminal S (not S').
func (g *Grammar) StartSymbol() symbol.Symbol { return symbol.NewNonterminal(g.startIndex) }

// AugmentedStart returns S', always nonterminal index 0.
func (g *Grammar) AugmentedStart() symbol.Symbol { return symbol.NewNonterminal(0) }

// Productions returns every production, index order, starting with the
// augmented production 0: S' -> S.
func (g *Grammar) Productions() []Production { return g.productions }

// Production looks up a production by its stable index.
func (g *Grammar) Production(i int) Production { return g.productions[i] }

// ProductionsForHead returns every production whose head is nt, in index
// order.
func (g *Grammar) ProductionsForHead(nt symbol.Symbol) []Production {
	idxs := g.byHead[nt.Index]
	out := make([]Production, len(idxs))
	for i, pi := range idxs {
		out[i] = g.productions[pi]
	}
	return out
}

// TerminalName returns the declared name of a terminal symbol.
func (g *Grammar) TerminalName(sym symbol.Symbol) string { return g.terminalNames[sym.Index] }

// NonterminalName returns the declared name of a nonterminal symbol (S' is
// named "S'").
func (g *Grammar) NonterminalName(sym symbol.Symbol) string { return g.nonterminalNames[sym.Index] }

// SymbolName renders any symbol for display: its declared name for
// terminals/nonterminals, "ε" for epsilon, "$" for EOF.
func (g *Grammar) SymbolName(sym symbol.Symbol) string {
	switch sym.Kind {
	case symbol.Terminal:
		return g.TerminalName(sym)
	case symbol.Nonterminal:
		return g.NonterminalName(sym)
	case symbol.Epsilon:
		return "ε"
	case symbol.EOF:
		return "$"
	default:
		return fmt.Sprintf("?%d", sym.Index)
	}
}

// ProductionString renders a production using real symbol names, e.g.
// "E -> E + T".
func (g *Grammar) ProductionString(p Production) string {
	var sb strings.Builder
	sb.WriteString(g.SymbolName(p.Head))
	sb.WriteString(" ->")
	if p.IsEpsilon() {
		sb.WriteString(" ε")
	}
	for _, s := range p.Body {
		sb.WriteRune(' ')
		sb.WriteString(g.SymbolName(s))
	}
	return sb.String()
}

// Validate reports InvalidGrammar if the grammar is not reduced: some
// nonterminal derives no terminal string, or some nonterminal (or the start
// symbol itself) is unreachable from S'. Per spec.md §4.1 this is advisory:
// construction itself already succeeded, so callers that don't care about
// reducedness can ignore the error and still run every analysis.
func (g *Grammar) Validate() error {
	reachable := g.reachableNonterminals()
	for i := 1; i < len(g.nonterminalNames); i++ { // skip S', always reachable by construction
		if !reachable[i] {
			return &perr.InvalidGrammar{Reason: fmt.Sprintf("nonterminal %q is not reachable from the start symbol", g.nonterminalNames[i])}
		}
	}

	derivesTerminal := g.nonterminalsDerivingTerminals()
	for i := 1; i < len(g.nonterminalNames); i++ {
		if !derivesTerminal[i] {
			return &perr.InvalidGrammar{Reason: fmt.Sprintf("nonterminal %q derives no terminal string", g.nonterminalNames[i])}
		}
	}

	return nil
}

func (g *Grammar) reachableNonterminals() map[int]bool {
	reachable := map[int]bool{0: true, g.startIndex: true}
	queue := []int{g.startIndex}
	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]
		for _, pi := range g.byHead[nt] {
			for _, s := range g.productions[pi].Body {
				if s.IsNonterminal() && !reachable[s.Index] {
					reachable[s.Index] = true
					queue = append(queue, s.Index)
				}
			}
		}
	}
	return reachable
}

func (g *Grammar) nonterminalsDerivingTerminals() map[int]bool {
	derives := make(map[int]bool)
	changed := true
	for changed {
		changed = false
		for nt, prodIdxs := range g.byHead {
			if derives[nt] {
				continue
			}
			for _, pi := range prodIdxs {
				ok := true
				for _, s := range g.productions[pi].Body {
					if s.IsNonterminal() && !derives[s.Index] {
						ok = false
						break
					}
				}
				if ok {
					derives[nt] = true
					changed = true
					break
				}
			}
		}
	}
	return derives
}
