package clean

import (
	"sort"
	"time"

	"github.com/teranos/stoich/db"
)

// SheetSummary counts what happened to one sheet.
type SheetSummary struct {
	Sheet      string         `json:"sheet" yaml:"sheet"`
	RowsIn     int            `json:"rows_in" yaml:"rows_in"`
	RowsOut    int            `json:"rows_out" yaml:"rows_out"`
	Rejections map[string]int `json:"rejections,omitempty" yaml:"rejections,omitempty"`
}

func (s *SheetSummary) reject(reason string) {
	if s.Rejections == nil {
		s.Rejections = make(map[string]int)
	}
	s.Rejections[reason]++
}

// GroupSummary describes one grouped output file.
type GroupSummary struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Rows int    `json:"rows" yaml:"rows"`
}

// Summary reports a whole run.
type Summary struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	Mode       Mode           `json:"mode" yaml:"mode"`
	Input      string         `json:"input" yaml:"input"`
	Output     string         `json:"output,omitempty" yaml:"output,omitempty"`
	Sheets     []SheetSummary `json:"sheets" yaml:"sheets"`
	Groups     []GroupSummary `json:"groups,omitempty" yaml:"groups,omitempty"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time      `json:"finished_at" yaml:"finished_at"`
}

// Totals sums rows and rejections over all sheets.
func (s *Summary) Totals() (rowsIn, rowsOut int, rejections map[string]int) {
	rejections = make(map[string]int)
	for _, sh := range s.Sheets {
		rowsIn += sh.RowsIn
		rowsOut += sh.RowsOut
		for reason, n := range sh.Rejections {
			rejections[reason] += n
		}
	}
	return rowsIn, rowsOut, rejections
}

// Outputs lists every file the run wrote.
func (s *Summary) Outputs() []string {
	var out []string
	if s.Output != "" {
		out = append(out, s.Output)
	}
	for _, g := range s.Groups {
		out = append(out, g.Path)
	}
	return out
}

// Run converts the summary into a ledger record.
func (s *Summary) Run() db.Run {
	rowsIn, rowsOut, rejections := s.Totals()
	return db.Run{
		ID:         s.RunID,
		Command:    string(s.Mode),
		Input:      s.Input,
		Outputs:    s.Outputs(),
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		RowsIn:     rowsIn,
		RowsOut:    rowsOut,
		Rejections: rejections,
	}
}

// SortedReasons returns rejection reasons in a stable display order.
func SortedReasons(rejections map[string]int) []string {
	reasons := make([]string, 0, len(rejections))
	for r := range rejections {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	return reasons
}
