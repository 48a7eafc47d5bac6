package positions

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/table"
)

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"Cs", "Pb", "I"}, Split("CsPbI3", 3))
	assert.Equal(t, []string{"Na", "Cl", "O"}, Split("NaClO4", 3))
	assert.Nil(t, Split("Fe2O3", 3))
	assert.Nil(t, Split("", 3))
	assert.Equal(t, []string{"Fe", "O"}, Split("Fe2O3", 2))
}

func TestCountTable(t *testing.T) {
	tbl := &table.Table{
		Name:   "ternary",
		Header: []string{"Formula"},
		Rows: [][]string{
			{"CsPbI3"},
			{"CsPbBr3"},
			{"MAPbI3"}, // M, A, Pb, I: four symbols, skipped
			{"KPbI3"},
			{"Fe2O3"},
			{""},
		},
	}

	sc, err := CountTable(tbl, "Formula", 3)
	require.NoError(t, err)
	assert.Equal(t, "ternary", sc.Sheet)
	assert.Equal(t, 3, sc.Formulas)

	want := map[int]map[string]int{
		1: {"Cs": 2, "K": 1},
		2: {"Pb": 3},
		3: {"I": 2, "Br": 1},
	}
	if diff := cmp.Diff(want, sc.ByPosition()); diff != "" {
		t.Errorf("ByPosition() mismatch (-want +got):\n%s", diff)
	}

	// most frequent first within a position
	assert.Equal(t, Count{Position: 1, Element: "Cs", Count: 2}, sc.Counts[0])
	assert.Equal(t, Count{Position: 1, Element: "K", Count: 1}, sc.Counts[1])
}

func TestCountWorkbookSkipsSheetsWithoutFormula(t *testing.T) {
	wb := &table.Workbook{Sheets: []*table.Table{
		{Name: "notes", Header: []string{"Comment"}, Rows: [][]string{{"x"}}},
		{Name: "data", Header: []string{"Formula"}, Rows: [][]string{{"CsPbI3"}}},
	}}

	out, err := CountWorkbook(wb, "Formula", 3)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "data", out[0].Sheet)
}

func TestCountWorkbookBadArity(t *testing.T) {
	_, err := CountWorkbook(&table.Workbook{}, "Formula", 0)
	assert.True(t, errors.IsInvalidRequestError(err))
}
