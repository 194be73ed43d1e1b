// Command parsegen is the CLI front end for the parser-construction
// toolkit: load or select a grammar, build an LR0/SLR1/LR1/LALR1 table,
// print it or export its automaton as Graphviz DOT, and optionally drive
// an interactive trace REPL over a line of input tokens.
//
// Grounded on the teacher's cmd/tqi interactive-shell pattern (readline
// loop, one command parsed per line) and its config loading via
// BurntSushi/toml, both retrieved from _examples/dekarrin-tunaq before the
// rest of that command tree was trimmed (see DESIGN.md).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/dekarrin/parsegen/internal/automaton"
	"github.com/dekarrin/parsegen/internal/catalog"
	"github.com/dekarrin/parsegen/internal/driver"
	"github.com/dekarrin/parsegen/internal/grammar"
	"github.com/dekarrin/parsegen/internal/symbol"
	"github.com/dekarrin/parsegen/internal/table"
)

type grammarFile struct {
	Start       string `toml:"start"`
	Productions []struct {
		Head string   `toml:"head"`
		Body []string `toml:"body"`
	} `toml:"productions"`
}

func loadGrammarFile(path string) (*grammar.Grammar, error) {
	var gf grammarFile
	if _, err := toml.DecodeFile(path, &gf); err != nil {
		return nil, fmt.Errorf("loading grammar file: %w", err)
	}
	b := grammar.NewBuilder()
	b.SetStart(gf.Start)
	for _, p := range gf.Productions {
		b.AddProduction(p.Head, p.Body...)
	}
	return b.Build()
}

func main() {
	var (
		grammarPath  = pflag.StringP("grammar", "g", "", "path to a TOML grammar file")
		example      = pflag.StringP("example", "e", "", "name of a catalog example grammar")
		method       = pflag.StringP("method", "m", "lalr", "table construction method: lr0, slr, lr1, lalr")
		analysisName = pflag.String("analysis", "naive", "FIRST/FOLLOW strategy: naive, digraph")
		input        = pflag.StringP("input", "i", "", "space-separated terminal names to parse")
		dot          = pflag.Bool("dot", false, "print the automaton as Graphviz DOT instead of the table")
		landscape    = pflag.Bool("landscape", false, "use landscape page size hints with --dot")
		repl         = pflag.Bool("repl", false, "start an interactive trace REPL after building the table")
		listExamples = pflag.Bool("list-examples", false, "print every catalog example name and exit")
		printSets    = pflag.Bool("sets", false, "print FIRST/FOLLOW sets instead of the table")
	)
	pflag.Parse()

	if *listExamples {
		for _, ex := range catalog.All() {
			fmt.Println(ex)
		}
		return
	}

	g, err := resolveGrammar(*grammarPath, *example)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parsegen:", err)
		os.Exit(1)
	}

	analysis := resolveAnalysis(g, *analysisName)

	if *printSets {
		fmt.Println(table.PrintFirstAndFollowSets(g, analysis))
		return
	}

	tab, err := buildTable(g, analysis, *method)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parsegen:", err)
		os.Exit(1)
	}

	if len(tab.Conflicts) > 0 {
		fmt.Fprintln(os.Stderr, "warning: table has", len(tab.Conflicts), "conflict(s):")
		for _, line := range tab.DescribeConflicts() {
			fmt.Fprintln(os.Stderr, " ", line)
		}
	}

	if *dot {
		dir := automaton.Portrait
		if *landscape {
			dir = automaton.Landscape
		}
		fmt.Println(automaton.ToDotLanguage(tab.Automaton, dir))
		return
	}

	if *repl {
		runREPL(g, tab)
		return
	}

	if *input != "" {
		result, err := parseInput(g, tab, *input)
		if err != nil {
			fmt.Fprintln(os.Stderr, "parsegen:", err)
		}
		fmt.Println(driver.Render(g, result))
		return
	}

	fmt.Println(tab.String())
}

func resolveGrammar(grammarPath, example string) (*grammar.Grammar, error) {
	switch {
	case grammarPath != "":
		return loadGrammarFile(grammarPath)
	case example != "":
		return catalog.Build(catalog.Example(example))
	default:
		return catalog.Build(catalog.Dragon454)
	}
}

func resolveAnalysis(g *grammar.Grammar, name string) grammar.Analysis {
	if name == "digraph" {
		return grammar.NewDigraphAnalysis(g)
	}
	return grammar.NewNaiveAnalysis(g)
}

func buildTable(g *grammar.Grammar, analysis grammar.Analysis, method string) (*table.Table, error) {
	switch strings.ToLower(method) {
	case "lr0":
		return table.ComputeLR0ParsingTable(g), nil
	case "slr":
		return table.ComputeSLRParsingTable(g, analysis), nil
	case "lr1":
		return table.ComputeLR1ParsingTable(g, analysis), nil
	case "lalr":
		return table.ComputeLALRParsingTable(g, analysis), nil
	default:
		return nil, fmt.Errorf("unknown method %q (want lr0, slr, lr1, or lalr)", method)
	}
}

func parseInput(g *grammar.Grammar, tab *table.Table, input string) (driver.Result, error) {
	names := strings.Fields(input)
	toks := make([]driver.Token, 0, len(names))
	for _, name := range names {
		sym, ok := findTerminal(g, name)
		if !ok {
			return driver.Result{}, fmt.Errorf("unknown terminal %q", name)
		}
		toks = append(toks, driver.Token{Terminal: sym, Lexeme: name})
	}
	stream := driver.NewSliceTokenStream(toks)
	return driver.Run(tab, stream), nil
}

func findTerminal(g *grammar.Grammar, name string) (symbol.Symbol, bool) {
	for _, term := range g.Terminals() {
		if g.SymbolName(term) == name {
			return term, true
		}
	}
	return symbol.Symbol{}, false
}

// runREPL starts an interactive trace stepper: each line of input is
// tokenized by whitespace, run through the driver in one shot, and its
// rendered trace printed, letting a user try several inputs against the
// same table without restarting the program.
func runREPL(g *grammar.Grammar, tab *table.Table) {
	rl, err := readline.New("parsegen> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "parsegen: readline:", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("enter space-separated terminal names, or :quit to exit")
	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			return
		}

		result, err := parseInput(g, tab, line)
		if err != nil {
			fmt.Println("parsegen:", err)
			continue
		}
		fmt.Println(driver.Render(g, result))
		if result.Accepted {
			fmt.Println("accepted")
		} else {
			fmt.Println("rejected:", result.Err)
		}
	}
}
