// Package driver implements the shift-reduce parser driver of spec.md §5's
// Design Notes: Algorithm 4.44 run over a finished table.Table, with the
// trace captured as a structured []Step first and rendered to text only on
// request, so a caller that just wants accept/reject never pays for
// formatting. Grounded on ictiobus/parse/lr.go's lrParser.Parse, adapted
// from its direct-print trace to the capture-then-render split.
package driver

import "github.com/dekarrin/parsegen/internal/symbol"

// Token is one classified input token: which terminal it instantiates, and
// the literal text it came from (kept for diagnostics and for the rendered
// trace's lookahead column). Grounded on ictiobus/types.Token's
// Class/Lexeme split, re-expressed over symbol.Symbol instead of a
// TokenClass interface.
type Token struct {
	Terminal symbol.Symbol
	Lexeme   string
}

// TokenStream supplies one token at a time to the driver. Next returns
// false once the stream is exhausted; the driver supplies its own EOF
// lookahead at that point rather than requiring the stream to emit one.
// Grounded on ictiobus/types.TokenStream's Next/Peek/HasNext surface,
// trimmed to the single method the driver actually needs.
type TokenStream interface {
	Next() (Token, bool)
}

// SliceTokenStream is a TokenStream over a fixed, pre-lexed slice — the
// common case for tests and for the CLI's example grammars, where tokens
// are already known terminal names rather than text run through a lexer.
type SliceTokenStream struct {
	toks []Token
	pos  int
}

// NewSliceTokenStream returns a TokenStream over toks.
func NewSliceTokenStream(toks []Token) *SliceTokenStream {
	return &SliceTokenStream{toks: toks}
}

func (s *SliceTokenStream) Next() (Token, bool) {
	if s.pos >= len(s.toks) {
		return Token{}, false
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok, true
}
