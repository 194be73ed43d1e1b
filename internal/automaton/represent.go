package automaton

import (
	"sort"

	"github.com/dekarrin/parsegen/internal/symbol"
)

// Representation is the shared read surface spec.md §9 asks every DFA
// encoding to expose, regardless of how it stores transitions internally:
// dense matrix, adjacency list, hashed adjacency list, or a compressed
// double-array trie. All four answer Next identically; they trade
// construction cost and memory footprint against lookup speed. The parser
// driver reads the table.Table, not any of these.
type Representation interface {
	NumStates() int
	// Columns returns every symbol that appears as a transition label
	// anywhere in the automaton, in a fixed order shared by all four
	// representations (used by encoders that need a dense column index).
	Columns() []symbol.Symbol
	// Next returns the destination state for (state, sym) and true, or
	// (0, false) if there is no such transition.
	Next(state int, sym symbol.Symbol) (int, bool)
}

// columnsOf collects every symbol used as a transition label across the
// whole automaton, sorted by (Kind, Index) for determinism.
func columnsOf(a *Automaton) []symbol.Symbol {
	seen := make(map[symbol.Symbol]bool)
	var out []symbol.Symbol
	for _, row := range a.Trans {
		for sym := range row {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// --- dense matrix -----------------------------------------------------

// DenseMatrix stores one int per (state, column) pair in a flat slice,
// trading memory for the fastest possible lookup: a single multiply and
// index. Grounded on the flat actionEntry/goToEntry arrays of the
// nihei9-vartan parsing table builder (other_examples), the pack's clearest
// example of a dense index-addressed table.
type DenseMatrix struct {
	numStates int
	cols      []symbol.Symbol
	colIndex  map[symbol.Symbol]int
	cells     []int // numStates * len(cols), -1 means absent
}

// NewDenseMatrix builds a DenseMatrix from a.
func NewDenseMatrix(a *Automaton) *DenseMatrix {
	cols := columnsOf(a)
	colIndex := make(map[symbol.Symbol]int, len(cols))
	for i, c := range cols {
		colIndex[c] = i
	}
	cells := make([]int, len(a.States)*len(cols))
	for i := range cells {
		cells[i] = -1
	}
	m := &DenseMatrix{numStates: len(a.States), cols: cols, colIndex: colIndex, cells: cells}
	for s, row := range a.Trans {
		for sym, to := range row {
			m.cells[s*len(cols)+colIndex[sym]] = to
		}
	}
	return m
}

func (m *DenseMatrix) NumStates() int              { return m.numStates }
func (m *DenseMatrix) Columns() []symbol.Symbol     { return m.cols }
func (m *DenseMatrix) Next(state int, sym symbol.Symbol) (int, bool) {
	ci, ok := m.colIndex[sym]
	if !ok {
		return 0, false
	}
	v := m.cells[state*len(m.cols)+ci]
	if v < 0 {
		return 0, false
	}
	return v, true
}

// --- adjacency list -----------------------------------------------------

// AdjacencyList stores one small map per state, the natural representation
// for a sparse automaton where most states have only a handful of outgoing
// transitions. This mirrors the Automaton's own Trans field directly.
type AdjacencyList struct {
	cols []symbol.Symbol
	rows []map[symbol.Symbol]int
}

// NewAdjacencyList builds an AdjacencyList from a.
func NewAdjacencyList(a *Automaton) *AdjacencyList {
	rows := make([]map[symbol.Symbol]int, len(a.Trans))
	for i, row := range a.Trans {
		cp := make(map[symbol.Symbol]int, len(row))
		for k, v := range row {
			cp[k] = v
		}
		rows[i] = cp
	}
	return &AdjacencyList{cols: columnsOf(a), rows: rows}
}

func (l *AdjacencyList) NumStates() int          { return len(l.rows) }
func (l *AdjacencyList) Columns() []symbol.Symbol { return l.cols }
func (l *AdjacencyList) Next(state int, sym symbol.Symbol) (int, bool) {
	v, ok := l.rows[state][sym]
	return v, ok
}

// --- hashed adjacency list -----------------------------------------------

// hashedKey packs a state index and a symbol into one map key, the
// "hashed adjacency list" layout: a single flat hash table for every
// transition in the automaton instead of one map per state, trading a
// little lookup overhead (one hash of a larger composite key) for a
// single shared bucket array rather than NumStates small ones.
type hashedKey struct {
	state int
	kind  symbol.Kind
	index int
}

// HashedAdjacencyList stores every transition in one shared map keyed by
// (state, symbol) instead of one map per state.
type HashedAdjacencyList struct {
	numStates int
	cols      []symbol.Symbol
	table     map[hashedKey]int
}

// NewHashedAdjacencyList builds a HashedAdjacencyList from a.
func NewHashedAdjacencyList(a *Automaton) *HashedAdjacencyList {
	table := make(map[hashedKey]int)
	for s, row := range a.Trans {
		for sym, to := range row {
			table[hashedKey{state: s, kind: sym.Kind, index: sym.Index}] = to
		}
	}
	return &HashedAdjacencyList{numStates: len(a.States), cols: columnsOf(a), table: table}
}

func (h *HashedAdjacencyList) NumStates() int          { return h.numStates }
func (h *HashedAdjacencyList) Columns() []symbol.Symbol { return h.cols }
func (h *HashedAdjacencyList) Next(state int, sym symbol.Symbol) (int, bool) {
	v, ok := h.table[hashedKey{state: state, kind: sym.Kind, index: sym.Index}]
	return v, ok
}

// --- compressed double-array ---------------------------------------------

// DoubleArray is the base/check trie encoding used by Aho-Corasick and CJK
// morphological analyzer implementations to compress a sparse transition
// table into parallel int arrays: the transition (s, c) lives in slot
// base[s]+c, valid only if check[base[s]+c] == s, and its destination is
// stored in next[base[s]+c]. It is the most
// memory-efficient of the four representations for automata with long
// runs of similarly-shaped states, at the cost of a more expensive
// construction pass.
type DoubleArray struct {
	numStates int
	cols      []symbol.Symbol
	colIndex  map[symbol.Symbol]int
	base      []int
	check     []int
	next      []int
}

// NewDoubleArray builds a DoubleArray from a using a straightforward
// first-fit placement: for each state, find the smallest base offset such
// that every one of its transitions lands on a free (check == -1) cell,
// then claim those cells.
func NewDoubleArray(a *Automaton) *DoubleArray {
	cols := columnsOf(a)
	colIndex := make(map[symbol.Symbol]int, len(cols))
	for i, c := range cols {
		colIndex[c] = i
	}
	numCols := len(cols)

	d := &DoubleArray{numStates: len(a.States), cols: cols, colIndex: colIndex}
	d.base = make([]int, len(a.States))
	d.check = make([]int, 0, len(a.States)*numCols)

	ensureLen := func(n int) {
		for len(d.check) < n {
			d.check = append(d.check, -1)
			d.next = append(d.next, 0)
		}
	}

	for s, row := range a.Trans {
		if len(row) == 0 {
			d.base[s] = 0
			continue
		}
		var colOffsets []int
		for sym := range row {
			colOffsets = append(colOffsets, colIndex[sym])
		}
		sort.Ints(colOffsets)

		base := 0
	searchBase:
		for {
			for _, c := range colOffsets {
				slot := base + c
				ensureLen(slot + 1)
				if d.check[slot] != -1 {
					base++
					continue searchBase
				}
			}
			break
		}
		d.base[s] = base
		for sym, to := range row {
			slot := base + colIndex[sym]
			ensureLen(slot + 1)
			d.check[slot] = s
			// A double array's transition target is normally recovered
			// from the destination state's own base in a shared trie; this
			// automaton isn't a character trie, so the destination is kept
			// alongside check in a parallel slice instead of re-derived.
			d.next[slot] = to
		}
	}
	return d
}

func (d *DoubleArray) NumStates() int          { return d.numStates }
func (d *DoubleArray) Columns() []symbol.Symbol { return d.cols }
func (d *DoubleArray) Next(state int, sym symbol.Symbol) (int, bool) {
	ci, ok := d.colIndex[sym]
	if !ok {
		return 0, false
	}
	slot := d.base[state] + ci
	if slot < 0 || slot >= len(d.check) || d.check[slot] != state {
		return 0, false
	}
	return d.next[slot], true
}
