package driver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/parsegen/internal/grammar"
)

// Render turns a captured trace into the fixed-width "step | stack |
// lookahead | action" grid the teacher's lrParser.Parse prints directly while
// parsing, reusing rosed's InsertTableOpts the same way table.Table.String
// does. Separating this from Run (spec.md §5 Design Notes) means a caller
// can inspect result.Steps programmatically without ever paying for this
// formatting pass.
func Render(g *grammar.Grammar, result Result) string {
	data := [][]string{{"step", "stack", "lookahead", "action"}}
	for i, step := range result.Steps {
		data = append(data, []string{
			strconv.Itoa(i),
			renderStack(step.Stack),
			lookaheadText(step),
			actionText(g, step),
		})
	}
	return rosed.Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func renderStack(stack []int) string {
	parts := make([]string, len(stack))
	for i, s := range stack {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " ")
}

func lookaheadText(step Step) string {
	if step.Kind == StepReduce {
		return ""
	}
	if step.Token.Lexeme == "" {
		return "$"
	}
	return step.Token.Lexeme
}

func actionText(g *grammar.Grammar, step Step) string {
	switch step.Kind {
	case StepShift:
		return fmt.Sprintf("shift to %d", step.State)
	case StepReduce:
		return fmt.Sprintf("reduce by %s", g.ProductionString(g.Production(step.Prod)))
	case StepAccept:
		return "accept"
	default:
		return "error"
	}
}
