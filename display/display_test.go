package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/stoich/clean"
	"github.com/teranos/stoich/db"
	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/positions"
)

func init() {
	pterm.DisableColor()
}

func TestShouldOutputJSON(t *testing.T) {
	root := &cobra.Command{Use: "stoich"}
	root.PersistentFlags().Bool("json", false, "")
	child := &cobra.Command{Use: "clean"}
	root.AddCommand(child)

	assert.False(t, ShouldOutputJSON(child))
	assert.False(t, ShouldOutputJSON(nil))

	require.NoError(t, root.PersistentFlags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(child))
}

func TestEncode(t *testing.T) {
	v := map[string]int{"rows_in": 3}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, v))
	assert.Equal(t, "{\n  \"rows_in\": 3\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, FormatYAML, v))
	assert.Equal(t, "rows_in: 3\n", buf.String())

	err := Encode(&buf, "xml", v)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestSummary(t *testing.T) {
	s := &clean.Summary{
		Mode:   clean.ModeClean,
		Output: "in_processed.csv",
		Sheets: []clean.SheetSummary{{
			Sheet:      "in",
			RowsIn:     3,
			RowsOut:    1,
			Rejections: map[string]int{"unknown_element": 1, "too_many_elements": 1},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, s))
	out := buf.String()
	assert.Contains(t, out, "Rows in")
	assert.Contains(t, out, "too_many_elements")
	assert.Contains(t, out, "in_processed.csv")
	assert.Less(t, strings.Index(out, "too_many_elements"), strings.Index(out, "unknown_element"))
}

func TestPositions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Positions(&buf, []positions.SheetCounts{{
		Sheet:    "ternary",
		Formulas: 1,
		Counts:   []positions.Count{{Position: 1, Element: "Cs", Count: 1}},
	}}))
	assert.Contains(t, buf.String(), "ternary")
	assert.Contains(t, buf.String(), "Cs")

	buf.Reset()
	require.NoError(t, Positions(&buf, nil))
	assert.Contains(t, buf.String(), "No sheet")
}

func TestRuns(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	runs := []db.Run{{
		ID:         "0f8fad5b-d9cb-469f-a165-70867728950e",
		Command:    "clean",
		Input:      "in.csv",
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
		RowsIn:     10,
		RowsOut:    7,
	}}

	var buf bytes.Buffer
	require.NoError(t, Runs(&buf, runs))
	assert.Contains(t, buf.String(), "0f8fad5b")
	assert.Contains(t, buf.String(), "7/10")
	assert.Contains(t, buf.String(), "1.5s")

	buf.Reset()
	require.NoError(t, Run(&buf, runs[0]))
	assert.Contains(t, buf.String(), runs[0].ID)

	buf.Reset()
	require.NoError(t, Runs(&buf, nil))
	assert.Contains(t, buf.String(), "No runs")
}
