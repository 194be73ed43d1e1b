package table

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/parsegen/internal/grammar"
)

// String renders the full ACTION/GOTO table as a fixed-width text grid,
// one row per state, "A:<term>" columns followed by a "|" separator and
// "G:<nonterm>" columns. Grounded directly on ictiobus/parse/slr.go's
// slrTable.String(), which builds the same [][]string grid and hands it to
// rosed's InsertTableOpts with TableHeaders and NoTrailingLineSeparators.
func (t *Table) String() string {
	g := t.Grammar
	var data [][]string

	var header []string
	header = append(header, "state", "|")
	for _, term := range g.Terminals() {
		header = append(header, fmt.Sprintf("A:%s", g.SymbolName(term)))
	}
	header = append(header, "A:$", "|")
	for _, nt := range g.UserNonterminals() {
		header = append(header, fmt.Sprintf("G:%s", g.SymbolName(nt)))
	}
	data = append(data, header)

	for s := range t.Action {
		row := []string{fmt.Sprintf("%d", s), "|"}
		for _, act := range t.Action[s] {
			row = append(row, t.cellString(act))
		}
		row = append(row, "|")
		for _, nt := range g.UserNonterminals() {
			cell := ""
			if dest := t.Goto[s][nt.Index]; dest >= 0 {
				cell = fmt.Sprintf("%d", dest)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func (t *Table) cellString(act Action) string {
	switch act.Kind {
	case Shift:
		return fmt.Sprintf("s%d", act.State)
	case Reduce:
		return fmt.Sprintf("r%s", t.Grammar.ProductionString(t.Grammar.Production(act.Prod)))
	case Accept:
		return "acc"
	default:
		return ""
	}
}

// PrintFirstAndFollowSets renders FIRST and FOLLOW for every nonterminal
// of g using analysis, in the same fixed-width grid style as Table.String,
// so CLI output from both facilities looks consistent (spec.md §6).
func PrintFirstAndFollowSets(g *grammar.Grammar, analysis grammar.Analysis) string {
	data := [][]string{{"nonterminal", "nullable", "FIRST", "FOLLOW"}}
	for _, nt := range g.UserNonterminals() {
		fs := analysis.First(nt)
		follow := analysis.Follow(nt)

		data = append(data, []string{
			g.SymbolName(nt),
			fmt.Sprintf("%v", analysis.Nullable(nt)),
			renderColumns(g, fs.Terminals.Elements()),
			renderColumns(g, follow.Elements()),
		})
	}
	return rosed.Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func renderColumns(g *grammar.Grammar, cols []int) string {
	out := "{"
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += g.SymbolName(g.ColumnSymbol(c))
	}
	return out + "}"
}
