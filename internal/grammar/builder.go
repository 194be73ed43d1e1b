package grammar

import (
	"fmt"

	"github.com/dekarrin/parsegen/internal/perr"
	"github.com/dekarrin/parsegen/internal/symbol"
)

type pendingProduction struct {
	head string
	body []string // empty body means an epsilon production
}

// Builder assembles a Grammar from declared names. Names are resolved to
// dense symbol.Symbol indices at Build time, which is also when the
// synthetic augmented production S' -> S is inserted at index 0 (spec.md
// §3, §4.1). Grounded on the teacher's DSL builder pattern in
// ictiobus/grammar (AddTerm/AddRule observed via grammar_test.go), adapted
// here to a Go-native Builder instead of a string DSL so callers construct
// grammars the idiomatic way.
type Builder struct {
	start        string
	terminals    []string
	termIndex    map[string]int
	nonterminals []string
	ntIndex      map[string]int
	prods        []pendingProduction
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		termIndex: make(map[string]int),
		ntIndex:   make(map[string]int),
	}
}

// Terminal declares (or re-references) a terminal by name and returns its
// symbol. Declaring the same name twice returns the same symbol.
func (b *Builder) Terminal(name string) symbol.Symbol {
	if i, ok := b.termIndex[name]; ok {
		return symbol.NewTerminal(i)
	}
	i := len(b.terminals)
	b.terminals = append(b.terminals, name)
	b.termIndex[name] = i
	return symbol.NewTerminal(i)
}

// Nonterminal declares (or re-references) a nonterminal by name and returns
// its symbol. Index 0 is reserved for the augmented start S', so the first
// user nonterminal declared lands at index 1.
func (b *Builder) Nonterminal(name string) symbol.Symbol {
	if i, ok := b.ntIndex[name]; ok {
		return symbol.NewNonterminal(i)
	}
	if len(b.nonterminals) == 0 {
		b.nonterminals = append(b.nonterminals, "") // reserve index 0 for S'
	}
	i := len(b.nonterminals)
	b.nonterminals = append(b.nonterminals, name)
	b.ntIndex[name] = i
	return symbol.NewNonterminal(i)
}

// SetStart declares the grammar's start symbol S. Build inserts S' -> S as
// production 0.
func (b *Builder) SetStart(name string) {
	b.Nonterminal(name)
	b.start = name
}

// AddProduction records head -> body1 body2 ... bodyN. An empty body
// declares an epsilon production. Body names are resolved at Build time: a
// name that heads some production (or was declared via Nonterminal) is a
// nonterminal, wherever it first appears; any other name is a terminal,
// declared or not, matching the teacher's AddRule convenience of inferring
// terminal-ness.
func (b *Builder) AddProduction(head string, body ...string) {
	b.Nonterminal(head)
	b.prods = append(b.prods, pendingProduction{head: head, body: body})
}

// Build resolves all declared names and productions into an immutable
// Grammar, returning *perr.InvalidGrammar if the start symbol was never
// set, a production references an undeclared name that cannot be inferred
// as a terminal, or the grammar is otherwise malformed.
func (b *Builder) Build() (*Grammar, error) {
	if b.start == "" {
		return nil, &perr.InvalidGrammar{Reason: "no start symbol declared"}
	}

	g := &Grammar{
		nonterminalNames: append([]string(nil), b.nonterminals...),
		startIndex:       b.ntIndex[b.start],
		byHead:           make(map[int][]int),
	}
	g.nonterminalNames[0] = "S'"

	// Production 0 is always the augmented start.
	augmented := Production{Index: 0, Head: symbol.NewNonterminal(0), Body: []symbol.Symbol{g.StartSymbol()}}
	g.productions = append(g.productions, augmented)
	g.byHead[0] = []int{0}

	for _, pp := range b.prods {
		headIdx, ok := b.ntIndex[pp.head]
		if !ok {
			return nil, &perr.InvalidGrammar{Reason: fmt.Sprintf("production head %q was never declared as a nonterminal", pp.head)}
		}
		body := make([]symbol.Symbol, len(pp.body))
		for i, name := range pp.body {
			body[i] = b.resolve(name)
		}
		idx := len(g.productions)
		prod := Production{Index: idx, Head: symbol.NewNonterminal(headIdx), Body: body}
		g.productions = append(g.productions, prod)
		g.byHead[headIdx] = append(g.byHead[headIdx], idx)
	}
	// Copied only now: resolve registers every body name not yet known as a
	// new terminal.
	g.terminalNames = append([]string(nil), b.terminals...)

	for _, prod := range g.productions {
		for _, s := range prod.Body {
			if s.IsTerminal() && s.Index >= len(g.terminalNames) {
				return nil, &perr.InvalidGrammar{Reason: fmt.Sprintf("production %s references an unknown terminal", g.ProductionString(prod))}
			}
			if s.IsNonterminal() && s.Index >= len(g.nonterminalNames) {
				return nil, &perr.InvalidGrammar{Reason: fmt.Sprintf("production %s references an unknown nonterminal", g.ProductionString(prod))}
			}
		}
	}

	return g, nil
}

// resolve returns the symbol for name, preferring an already-declared
// nonterminal or terminal; an entirely new name is registered as a
// terminal, matching AddProduction's doc comment.
func (b *Builder) resolve(name string) symbol.Symbol {
	if i, ok := b.ntIndex[name]; ok {
		return symbol.NewNonterminal(i)
	}
	if i, ok := b.termIndex[name]; ok {
		return symbol.NewTerminal(i)
	}
	return b.Terminal(name)
}
