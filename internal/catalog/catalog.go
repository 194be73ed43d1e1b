// Package catalog holds the concrete scenario grammars of spec.md §8, built
// once via grammar.Builder so both the test suite and the CLI's --example
// flag share a single definition of each. Grounded on
// ictiobus/parse/clr1_test.go and slr_test.go's pattern of building a
// handful of named reference grammars and asserting exact table shapes
// against them.
package catalog

import "github.com/dekarrin/parsegen/internal/grammar"

// Example names the catalog's selectable grammars.
type Example string

const (
	// Dragon448 is S -> L=R|R, L -> *R|id, R -> L: the textbook example of
	// a grammar that is not SLR(1) but is LALR(1)/LR(1).
	Dragon448 Example = "dragon-4.48"
	// Dragon452 is S -> BB, B -> aB|b: the a*ba*b grammar of spec.md §8
	// scenario 2. Conflict-free under all four table constructions (LR(0),
	// SLR(1), LR(1), LALR(1)); "baab" is accepted by reducing B -> b for
	// the leading "b", then B -> b, B -> aB, B -> aB for the trailing "aab",
	// then S -> BB.
	Dragon452 Example = "dragon-4.52"
	// Dragon454 is S -> CC, C -> cC|d: the c*dc*d grammar of spec.md §8
	// scenario 3. "dccd" is accepted by the LR(1) parser.
	Dragon454 Example = "dragon-4.54"
	// ParenList is the parenthesized-list grammar: S -> (L)|id, L ->
	// L,S|S. It is LR(0): the completed L -> S. and the item L -> L. , S
	// never share a state (one is reached on S, the other on L), so no
	// table construction reports a conflict for it.
	ParenList Example = "paren-list"
	// ArithExpr is the left-recursive arithmetic expression grammar E ->
	// E+T|T, T -> T*F|F, F -> (E)|id, a running example for LR table
	// construction throughout Dragon book chapter 4.
	ArithExpr Example = "arith-expr"
	// StanfordShiftReduce is S->E; E->E+T|T; T->(E)|id|id[E]: after
	// shifting "id", LR(0) cannot tell whether the item is a completed
	// T->id or a T->id[E] in progress, producing a shift/reduce conflict
	// on '[' that SLR(1) resolves because '[' never appears in FOLLOW(T).
	StanfordShiftReduce Example = "stanford-shift-reduce"
	// StanfordReduceReduce is a minimal grammar with two productions whose
	// bodies can both derive the same terminal string, producing a
	// genuine reduce/reduce conflict no precedence rule can silently
	// resolve correctly (grounded on the same FOLLOW-sharing idea as
	// spec.md §8 scenario 5's T->id/V->id overlap, simplified so the
	// conflict stays reduce/reduce and never mixes in the scenario's
	// separate shift/reduce conflict on '[').
	StanfordReduceReduce Example = "stanford-reduce-reduce"
	// DanglingElse is the classic S -> if E then S | if E then S else S |
	// other ambiguous grammar.
	DanglingElse Example = "dangling-else"
)

// All lists every catalog example, in a stable order suitable for a CLI
// --list-examples flag.
func All() []Example {
	return []Example{Dragon448, Dragon452, Dragon454, ParenList, ArithExpr, StanfordShiftReduce, StanfordReduceReduce, DanglingElse}
}

// Build returns the grammar named by ex, or an error if ex is not a known
// catalog entry.
func Build(ex Example) (*grammar.Grammar, error) {
	switch ex {
	case Dragon448:
		return buildDragon448()
	case Dragon452:
		return buildDragon452()
	case Dragon454:
		return buildDragon454()
	case ParenList:
		return buildParenList()
	case ArithExpr:
		return buildArithExpr()
	case StanfordShiftReduce:
		return buildStanfordShiftReduce()
	case StanfordReduceReduce:
		return buildStanfordReduceReduce()
	case DanglingElse:
		return buildDanglingElse()
	default:
		return nil, &unknownExampleError{ex}
	}
}

type unknownExampleError struct{ ex Example }

func (e *unknownExampleError) Error() string { return "catalog: unknown example " + string(e.ex) }

func buildDragon448() (*grammar.Grammar, error) {
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "L", "=", "R")
	b.AddProduction("S", "R")
	b.AddProduction("L", "*", "R")
	b.AddProduction("L", "id")
	b.AddProduction("R", "L")
	return b.Build()
}

func buildDragon452() (*grammar.Grammar, error) {
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "B", "B")
	b.AddProduction("B", "a", "B")
	b.AddProduction("B", "b")
	return b.Build()
}

func buildDragon454() (*grammar.Grammar, error) {
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "C", "C")
	b.AddProduction("C", "c", "C")
	b.AddProduction("C", "d")
	return b.Build()
}

func buildParenList() (*grammar.Grammar, error) {
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "(", "L", ")")
	b.AddProduction("S", "id")
	b.AddProduction("L", "L", ",", "S")
	b.AddProduction("L", "S")
	return b.Build()
}

func buildArithExpr() (*grammar.Grammar, error) {
	b := grammar.NewBuilder()
	b.SetStart("E")
	b.AddProduction("E", "E", "+", "T")
	b.AddProduction("E", "T")
	b.AddProduction("T", "T", "*", "F")
	b.AddProduction("T", "F")
	b.AddProduction("F", "(", "E", ")")
	b.AddProduction("F", "id")
	return b.Build()
}

func buildStanfordShiftReduce() (*grammar.Grammar, error) {
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "E")
	b.AddProduction("E", "E", "+", "T")
	b.AddProduction("E", "T")
	b.AddProduction("T", "(", "E", ")")
	b.AddProduction("T", "id")
	b.AddProduction("T", "id", "[", "E", "]")
	return b.Build()
}

func buildStanfordReduceReduce() (*grammar.Grammar, error) {
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "A")
	b.AddProduction("S", "B")
	b.AddProduction("A", "id")
	b.AddProduction("B", "id")
	return b.Build()
}

func buildDanglingElse() (*grammar.Grammar, error) {
	b := grammar.NewBuilder()
	b.SetStart("S")
	b.AddProduction("S", "if", "E", "then", "S")
	b.AddProduction("S", "if", "E", "then", "S", "else", "S")
	b.AddProduction("S", "other")
	b.AddProduction("E", "cond")
	return b.Build()
}
