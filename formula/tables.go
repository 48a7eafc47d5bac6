package formula

import (
	"math"
	"sort"
)

// Registry is the set of element symbols considered valid.
// It is never mutated after construction.
type Registry struct {
	symbols map[string]struct{}
}

// NewRegistry builds a registry from symbols. Duplicates collapse.
func NewRegistry(symbols ...string) *Registry {
	r := &Registry{symbols: make(map[string]struct{}, len(symbols))}
	for _, s := range symbols {
		r.symbols[s] = struct{}{}
	}
	return r
}

// Contains reports whether symbol is a valid element.
func (r *Registry) Contains(symbol string) bool {
	if r == nil {
		return false
	}
	_, ok := r.symbols[symbol]
	return ok
}

// Len returns the number of valid symbols.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.symbols)
}

// Symbols returns the registry contents sorted.
func (r *Registry) Symbols() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.symbols))
	for s := range r.symbols {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// SortKeys assigns each element a numeric ordering key, e.g. its
// Mendeleev number. Elements without a key sort after all keyed ones.
type SortKeys struct {
	keys map[string]float64
}

// NewSortKeys copies keys into an immutable table. NaN keys are dropped:
// they compare false against everything and would break ordering.
func NewSortKeys(keys map[string]float64) *SortKeys {
	t := &SortKeys{keys: make(map[string]float64, len(keys))}
	for k, v := range keys {
		if math.IsNaN(v) {
			continue
		}
		t.keys[k] = v
	}
	return t
}

// Key returns the ordering key of symbol, or +Inf when it has none.
func (t *SortKeys) Key(symbol string) float64 {
	if t == nil {
		return math.Inf(1)
	}
	if v, ok := t.keys[symbol]; ok {
		return v
	}
	return math.Inf(1)
}

// Len returns the number of keyed symbols.
func (t *SortKeys) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}
