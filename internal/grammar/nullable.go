package grammar

// computeNullable is the fixed-point closure shared by both analysis
// strategies: a nonterminal is nullable if some production of its has a
// body that is empty or consists entirely of nullable symbols. Terminals
// and EOF are never nullable. Grounded on the teacher's ictiobus
// FIRST/FOLLOW computation structure (grammar_test.go exercises this
// indirectly through g.FIRST), expressed here as a standalone worklist
// fixed point per spec.md §4.2.
func computeNullable(g *Grammar) []bool {
	nullable := make([]bool, g.NumNonterminals())
	changed := true
	for changed {
		changed = false
		for _, prod := range g.productions {
			if nullable[prod.Head.Index] {
				continue
			}
			if prod.IsEpsilon() {
				nullable[prod.Head.Index] = true
				changed = true
				continue
			}
			allNullable := true
			for _, s := range prod.Body {
				if s.IsEpsilon() {
					continue
				}
				if !s.IsNonterminal() || !nullable[s.Index] {
					allNullable = false
					break
				}
			}
			if allNullable {
				nullable[prod.Head.Index] = true
				changed = true
			}
		}
	}
	return nullable
}
