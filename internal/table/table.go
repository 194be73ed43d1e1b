// Package table builds the ACTION/GOTO parsing table of spec.md §5-7: dense
// per-state action rows with Shift/Reduce/Accept/Error entries, a GOTO
// column per nonterminal, and — critically — a conflict model recorded as
// data on the finished table rather than as a construction failure, which
// corrects the teacher's behavior of returning an error the moment a
// shift-reduce or reduce-reduce conflict is found (ictiobus/parse/slr.go,
// clr1.go, lalr.go all return (nil, err) on conflict; spec.md §7 requires
// the table to still be usable, with conflicts resolved by a fixed
// precedence rule and reported via Table.Conflicts).
package table

import (
	"fmt"

	"github.com/dekarrin/parsegen/internal/automaton"
	"github.com/dekarrin/parsegen/internal/grammar"
	"github.com/dekarrin/parsegen/internal/perr"
	"github.com/dekarrin/parsegen/internal/symbol"
)

// ActionKind distinguishes the four kinds of ACTION table entry.
type ActionKind int

const (
	Error ActionKind = iota
	Shift
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table cell.
type Action struct {
	Kind  ActionKind
	State int // destination state, meaningful only for Shift
	Prod  int // production index to reduce by, meaningful only for Reduce
}

// ConflictKind distinguishes the two conflict shapes spec.md §7 names.
type ConflictKind int

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict records a single cell where more than one action was proposed.
// Resolved is the action that made it into the table; Lost is every action
// that was proposed but discarded (for reduce/reduce, the lowest
// production index wins and every other candidate is recorded as lost).
type Conflict struct {
	State    int
	Terminal symbol.Symbol
	Kind     ConflictKind
	Resolved Action
	Lost     []Action
}

// Table is a finished ACTION/GOTO parsing table: the grammar it was built
// over, a dense action row per state, a dense goto row per state, and
// every conflict encountered during construction. A Table with a non-empty
// Conflicts list is still fully usable by the driver — spec.md §7 treats
// conflict resolution (prefer shift, prefer the lowest-indexed production)
// as the table's own deterministic behavior, not a reason to fail.
type Table struct {
	Grammar   *grammar.Grammar
	Automaton *automaton.Automaton
	// Action[state][col] where col = Grammar.ActionColumn(terminal-or-EOF).
	Action [][]Action
	// Goto[state][nt.Index] is the destination state, or -1 if absent.
	Goto      [][]int
	Conflicts []Conflict
}

func newTable(g *grammar.Grammar, a *automaton.Automaton) *Table {
	t := &Table{Grammar: g, Automaton: a}
	t.Action = make([][]Action, len(a.States))
	t.Goto = make([][]int, len(a.States))
	for i := range t.Action {
		t.Action[i] = make([]Action, g.NumActionColumns())
		t.Goto[i] = make([]int, g.NumNonterminals())
		for j := range t.Goto[i] {
			t.Goto[i][j] = -1
		}
	}
	return t
}

// propose records a candidate action for (state, term), resolving in favor
// of the existing cell's priority when one is already occupied: Accept
// always wins (it only ever comes from the augmented production and never
// collides in a correctly-built automaton), a Shift beats a Reduce
// (spec.md §7's fixed shift/reduce precedence), and between two Reduces
// the lower production index wins. Every losing proposal is captured as a
// Conflict.
func (t *Table) propose(state int, term symbol.Symbol, candidate Action) {
	col := t.Grammar.ActionColumn(term)
	existing := t.Action[state][col]

	if existing.Kind == Error {
		t.Action[state][col] = candidate
		return
	}
	if sameAction(existing, candidate) {
		return
	}

	kind := ShiftReduce
	if existing.Kind == Reduce && candidate.Kind == Reduce {
		kind = ReduceReduce
	}

	winner, loser := existing, candidate
	switch {
	case existing.Kind == Accept:
		// keep existing
	case existing.Kind == Shift && candidate.Kind == Reduce:
		// keep existing (shift wins)
	case existing.Kind == Reduce && candidate.Kind == Shift:
		winner, loser = candidate, existing // shift wins
	case existing.Kind == Reduce && candidate.Kind == Reduce:
		if candidate.Prod < existing.Prod {
			winner, loser = candidate, existing
		}
	default:
		// unreachable for a well-formed automaton; keep existing
	}

	t.Action[state][col] = winner
	t.Conflicts = append(t.Conflicts, Conflict{
		State:    state,
		Terminal: term,
		Kind:     kind,
		Resolved: winner,
		Lost:     []Action{loser},
	})
}

func sameAction(a, b Action) bool {
	return a.Kind == b.Kind && a.State == b.State && a.Prod == b.Prod
}

// buildShiftsAndGotos fills in every Shift action and every Goto cell from
// the automaton's transition function: shifting on a terminal/EOF column,
// going to on a nonterminal.
func (t *Table) buildShiftsAndGotos() {
	for s, row := range t.Automaton.Trans {
		for sym, to := range row {
			if sym.IsNonterminal() {
				t.Goto[s][sym.Index] = to
				continue
			}
			t.propose(s, sym, Action{Kind: Shift, State: to})
		}
	}
}

// markAccept finds every automaton state containing the completed
// augmented item S' -> S. and installs Accept on EOF there.
func (t *Table) markAccept() {
	for _, st := range t.Automaton.States {
		for _, it := range st.Items {
			if it.Prod == 0 && it.AtEnd(t.Grammar) {
				t.propose(st.Index, symbol.EOFSymbol, Action{Kind: Accept})
			}
		}
	}
}

// DescribeConflicts renders every recorded conflict as a human-readable
// line through perr.GrammarConflict, e.g. `shift/reduce conflict in state 4
// on "+": shift to state 8 wins over [reduce by S -> E]`. Used by the CLI.
func (t *Table) DescribeConflicts() []string {
	out := make([]string, len(t.Conflicts))
	for i, c := range t.Conflicts {
		gc := &perr.GrammarConflict{
			State:    c.State,
			Terminal: t.Grammar.SymbolName(c.Terminal),
			Kind:     c.Kind.String(),
			Detail:   t.describeResolution(c),
		}
		out[i] = gc.Error()
	}
	return out
}

func (t *Table) describeResolution(c Conflict) string {
	resolved := t.describeAction(c.Resolved)
	losts := make([]string, len(c.Lost))
	for i, l := range c.Lost {
		losts[i] = t.describeAction(l)
	}
	return fmt.Sprintf("%s wins over %v", resolved, losts)
}

func (t *Table) describeAction(a Action) string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift to state %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce by %s", t.Grammar.ProductionString(t.Grammar.Production(a.Prod)))
	case Accept:
		return "accept"
	default:
		return "error"
	}
}
