// Package perr holds the three structured error kinds spec.md §7 names:
// InvalidGrammar (constructional), GrammarConflict (structural, used only
// for rendering — table construction itself never fails on a conflict),
// and SyntaxError (runtime). Grounded on the teacher's informal error
// shape (ictiobus/parse's fmt.Errorf("grammar is not SLR(1): %w", ...) and
// icterrors.NewSyntaxErrorFromToken, whose defining package was filtered
// out of the retrieval pack and is reconstructed here from call-site use).
package perr

import "fmt"

// InvalidGrammar reports a constructional defect: an unknown symbol in a
// production body, a missing start symbol, or a duplicate index, any of
// which fail grammar construction synchronously (spec.md §4.1, §7).
type InvalidGrammar struct {
	Reason string
}

func (e *InvalidGrammar) Error() string {
	return fmt.Sprintf("invalid grammar: %s", e.Reason)
}

// GrammarConflict renders a single ACTION/GOTO table conflict for
// diagnostics. It is never returned as a table-construction failure — per
// spec.md §7 a conflict is data on the table (Table.Conflicts), not an
// error — but the same shape is reused here so conflicts print
// consistently wherever they're surfaced (CLI, tests, logs).
type GrammarConflict struct {
	State    int
	Terminal string
	Kind     string // "shift/reduce" or "reduce/reduce"
	Detail   string
}

func (e *GrammarConflict) Error() string {
	return fmt.Sprintf("%s conflict in state %d on %q: %s", e.Kind, e.State, e.Terminal, e.Detail)
}

// SyntaxError is returned by the driver when it consults an error cell. It
// carries the offending token and the state the driver was in; the trace
// accumulated up to that point is not part of the error (driver.Run returns
// it alongside, in Result.Steps).
type SyntaxError struct {
	Message string
	State   int
	Token   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in state %d: %s", e.State, e.Message)
}
