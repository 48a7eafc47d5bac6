// Package positions counts which elements appear at which position in
// fixed-arity formulas, e.g. the A, B and X sites of ternary compounds.
package positions

import (
	"regexp"
	"sort"

	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/table"
)

// symbolPattern matches one- or two-letter element symbols only.
var symbolPattern = regexp.MustCompile(`[A-Z][a-z]?`)

// Split returns the element symbols of s in order, or nil when s does not
// have exactly arity symbols.
func Split(s string, arity int) []string {
	symbols := symbolPattern.FindAllString(s, -1)
	if len(symbols) != arity {
		return nil
	}
	return symbols
}

// Count is how often one element sits at one position.
type Count struct {
	Position int    `json:"position" yaml:"position"` // 1-based
	Element  string `json:"element" yaml:"element"`
	Count    int    `json:"count" yaml:"count"`
}

// SheetCounts holds the counts for one sheet.
type SheetCounts struct {
	Sheet    string  `json:"sheet" yaml:"sheet"`
	Formulas int     `json:"formulas" yaml:"formulas"` // formulas that had exactly arity symbols
	Counts   []Count `json:"counts" yaml:"counts"`
}

// ByPosition groups counts as position -> element -> count.
func (s SheetCounts) ByPosition() map[int]map[string]int {
	out := make(map[int]map[string]int)
	for _, c := range s.Counts {
		if out[c.Position] == nil {
			out[c.Position] = make(map[string]int)
		}
		out[c.Position][c.Element] = c.Count
	}
	return out
}

// CountTable tallies formulas in column of t.
func CountTable(t *table.Table, column string, arity int) (SheetCounts, error) {
	idx, err := t.RequireColumn(column)
	if err != nil {
		return SheetCounts{}, err
	}

	type key struct {
		pos     int
		element string
	}
	tally := make(map[key]int)
	sc := SheetCounts{Sheet: t.Name}
	for _, row := range t.Rows {
		symbols := Split(table.Cell(row, idx), arity)
		if symbols == nil {
			continue
		}
		sc.Formulas++
		for i, sym := range symbols {
			tally[key{i + 1, sym}]++
		}
	}

	sc.Counts = make([]Count, 0, len(tally))
	for k, n := range tally {
		sc.Counts = append(sc.Counts, Count{Position: k.pos, Element: k.element, Count: n})
	}
	sort.Slice(sc.Counts, func(i, j int) bool {
		a, b := sc.Counts[i], sc.Counts[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Element < b.Element
	})
	return sc, nil
}

// CountWorkbook tallies every sheet that has column; other sheets are skipped.
func CountWorkbook(wb *table.Workbook, column string, arity int) ([]SheetCounts, error) {
	if arity < 1 {
		return nil, errors.NewInvalidRequestError("arity must be at least 1, got %d", arity)
	}
	var out []SheetCounts
	for _, sheet := range wb.Sheets {
		if sheet.ColumnIndex(column) < 0 {
			continue
		}
		sc, err := CountTable(sheet, column, arity)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}
