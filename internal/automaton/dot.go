package automaton

import (
	"fmt"
	"strings"
	"text/template"
)

// Direction selects the Graphviz page size hint for ToDotLanguage, per
// spec.md §6.
type Direction int

const (
	// Portrait emits size="8.25,11".
	Portrait Direction = iota
	// Landscape emits size="11,8.25".
	Landscape
)

func (d Direction) size() string {
	if d == Landscape {
		return "11,8.25"
	}
	return "8.25,11"
}

const dotTemplate = `digraph automaton {
	rankdir=LR;
	size="{{.Size}}";
	node [shape=box];
	n999999 [label="", style=invis, width=0, height=0];
	n999999 -> n0;
{{range .States}}	n{{.Index}} [label="{{.Label}}"{{if .Accepting}}, peripheries=2{{end}}];
{{end}}{{range .Edges}}	n{{.From}} -> n{{.To}} [label="{{.Label}}"];
{{end}}}
`

type dotState struct {
	Index     int
	Label     string
	Accepting bool
}

type dotEdge struct {
	From, To int
	Label    string
}

type dotData struct {
	Size   string
	States []dotState
	Edges  []dotEdge
}

// ToDotLanguage renders a as a Graphviz DOT digraph for documentation and
// debugging (spec.md §6): one box node per automaton state labeled with
// its item set, an invisible pseudo-node n999999 with an edge into the
// start state (so Graphviz draws an entry arrow with no visible source),
// and peripheries=2 on every accepting state. State 0, the conventional
// error sink, and any transition into it are omitted from the rendered
// nodes and edges. direction selects the page size hint only, not edge
// layout.
func ToDotLanguage(a *Automaton, direction Direction) string {
	data := dotData{Size: direction.size()}
	for _, st := range a.States {
		if st.Index == 0 {
			continue
		}
		data.States = append(data.States, dotState{
			Index:     st.Index,
			Label:     itemSetLabel(a, st),
			Accepting: isAccepting(a, st),
		})
	}
	for s, row := range a.Trans {
		for sym, to := range row {
			if to == 0 {
				continue
			}
			data.Edges = append(data.Edges, dotEdge{From: s, To: to, Label: a.Grammar.SymbolName(sym)})
		}
	}

	tmpl := template.Must(template.New("dot").Parse(dotTemplate))
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		panic(fmt.Sprintf("automaton: dot template: %v", err))
	}
	return sb.String()
}

func itemSetLabel(a *Automaton, st State) string {
	lines := make([]string, len(st.Items))
	for i, it := range st.Items {
		lines[i] = it.String(a.Grammar)
	}
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = strings.ReplaceAll(strings.ReplaceAll(l, "\\", "\\\\"), "\"", "\\\"")
	}
	return strings.Join(escaped, "\\n")
}

// isAccepting reports whether st contains a completed item over the
// augmented start production (S' -> S.), the accepting configuration in
// every one of the four automaton flavors built here.
func isAccepting(a *Automaton, st State) bool {
	for _, it := range st.Items {
		if it.Prod == 0 && it.AtEnd(a.Grammar) {
			return true
		}
	}
	return false
}
