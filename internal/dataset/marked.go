package dataset

import "slices"

// MarkedSet is the set of starred symbols. Symbols are matched exactly.
type MarkedSet map[string]struct{}

func NewMarkedSet(symbols []string) MarkedSet {
	m := make(MarkedSet, len(symbols))
	for _, s := range symbols {
		m[s] = struct{}{}
	}
	return m
}

func (m MarkedSet) Has(symbol string) bool {
	_, ok := m[symbol]
	return ok
}

// Toggle flips membership and reports whether symbol is now marked.
func (m MarkedSet) Toggle(symbol string) bool {
	if m.Has(symbol) {
		delete(m, symbol)
		return false
	}
	m[symbol] = struct{}{}
	return true
}

// Symbols returns the members in ascending order.
func (m MarkedSet) Symbols() []string {
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

func (m MarkedSet) rank(symbol string) int {
	if m.Has(symbol) {
		return 1
	}
	return 0
}
