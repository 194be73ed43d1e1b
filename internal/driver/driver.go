package driver

import (
	"fmt"

	"github.com/dekarrin/parsegen/internal/perr"
	"github.com/dekarrin/parsegen/internal/symbol"
	"github.com/dekarrin/parsegen/internal/table"
	"github.com/dekarrin/parsegen/internal/util"
)

// expectedTokensText finds every action column in state that isn't an
// error and renders the names in sorted order as a friendly list, e.g.
// "a '+'" for a single option or "')', '*', and '+'" for several. Grounded on
// ictiobus/parse/lr.go's findExpectedTokens/getExpectedString, which
// builds the same kind of message via util.MakeTextList and
// util.ArticleFor.
func expectedTokensText(t *table.Table, state int) string {
	names := util.NewKeySet[string]()
	for col, act := range t.Action[state] {
		if act.Kind == table.Error {
			continue
		}
		names.Add(t.Grammar.SymbolName(t.Grammar.ColumnSymbol(col)))
	}
	if names.Empty() {
		return "nothing (this state has no valid continuation)"
	}
	sorted := util.Alphabetized(names)
	if len(sorted) == 1 {
		return fmt.Sprintf("%s '%s'", util.ArticleFor(sorted[0], false), sorted[0])
	}
	quoted := make([]string, len(sorted))
	for i, n := range sorted {
		quoted[i] = "'" + n + "'"
	}
	return util.MakeTextList(quoted)
}

// StepKind distinguishes one entry of a captured parse trace.
type StepKind int

const (
	StepShift StepKind = iota
	StepReduce
	StepAccept
	StepError
)

func (k StepKind) String() string {
	switch k {
	case StepShift:
		return "shift"
	case StepReduce:
		return "reduce"
	case StepAccept:
		return "accept"
	default:
		return "error"
	}
}

// Step is one move of the shift-reduce driver, captured before any
// rendering happens (spec.md §5 Design Notes: trace-capture-then-render).
type Step struct {
	Kind  StepKind
	State int
	Token Token
	// Prod is the production reduced by; meaningful only for StepReduce.
	Prod int
	// Stack is a snapshot of the state stack immediately after this step,
	// oldest state first.
	Stack []int
}

// Result is the full outcome of a parser run: every captured step, whether
// the input was accepted, and the terminal error if it was not.
type Result struct {
	Steps    []Step
	Accepted bool
	Err      error
}

// Run drives t over stream using Algorithm 4.44 (Dragon book): push state
// 0, and on each iteration consult ACTION[top, lookahead] to shift, reduce,
// accept, or stop with a *perr.SyntaxError. The entire trace is
// accumulated in the returned Result before Run returns; use Render to
// turn it into text only when a caller actually wants to print it.
func Run(t *table.Table, stream TokenStream) Result {
	var stack util.Stack[int]
	stack.Push(0)

	lookahead, haveToken := stream.Next()
	eof := symbol.EOFSymbol
	currentSymbol := func() symbol.Symbol {
		if haveToken {
			return lookahead.Terminal
		}
		return eof
	}

	var result Result
	snapshot := func() []int { return append([]int(nil), stack.Of...) }

	for {
		state := stack.Peek()
		col := t.Grammar.ActionColumn(currentSymbol())
		action := t.Action[state][col]

		switch action.Kind {
		case table.Shift:
			stack.Push(action.State)
			result.Steps = append(result.Steps, Step{Kind: StepShift, State: action.State, Token: lookahead, Stack: snapshot()})
			lookahead, haveToken = stream.Next()

		case table.Reduce:
			prod := t.Grammar.Production(action.Prod)
			for range prod.Body {
				stack.Pop()
			}
			from := stack.Peek()
			to := t.Goto[from][prod.Head.Index]
			stack.Push(to)
			result.Steps = append(result.Steps, Step{Kind: StepReduce, State: to, Prod: action.Prod, Stack: snapshot()})

		case table.Accept:
			result.Steps = append(result.Steps, Step{Kind: StepAccept, State: state, Stack: snapshot()})
			result.Accepted = true
			return result

		default:
			tokenText := "$"
			if haveToken {
				tokenText = lookahead.Lexeme
			}
			err := &perr.SyntaxError{
				Message: fmt.Sprintf("unexpected token %s; expected %s", tokenText, expectedTokensText(t, state)),
				State:   state,
				Token:   tokenText,
			}
			result.Steps = append(result.Steps, Step{Kind: StepError, State: state, Token: lookahead, Stack: snapshot()})
			result.Err = err
			return result
		}
	}
}
