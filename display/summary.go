package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/stoich/clean"
	"github.com/teranos/stoich/db"
	"github.com/teranos/stoich/positions"
)

// Summary prints a run summary: one row per sheet, then rejection totals
// and the files written.
func Summary(w io.Writer, s *clean.Summary) error {
	data := pterm.TableData{{"Sheet", "Rows in", "Rows out", "Dropped"}}
	for _, sh := range s.Sheets {
		data = append(data, []string{
			sh.Sheet,
			strconv.Itoa(sh.RowsIn),
			strconv.Itoa(sh.RowsOut),
			strconv.Itoa(sh.RowsIn - sh.RowsOut),
		})
	}
	if err := renderTable(w, data); err != nil {
		return err
	}

	_, _, rejections := s.Totals()
	for _, reason := range clean.SortedReasons(rejections) {
		fmt.Fprintf(w, "  %-24s %d\n", reason, rejections[reason])
	}

	for _, path := range s.Outputs() {
		fmt.Fprintln(w, pterm.Success.Sprintf("Wrote %s", path))
	}
	return nil
}

// Positions prints per-position element counts, one table per sheet.
func Positions(w io.Writer, sheets []positions.SheetCounts) error {
	if len(sheets) == 0 {
		fmt.Fprintln(w, pterm.Warning.Sprint("No sheet has a formula column"))
		return nil
	}
	for _, sc := range sheets {
		fmt.Fprintln(w, pterm.Info.Sprintf("Sheet: %s (%d formulas)", sc.Sheet, sc.Formulas))
		data := pterm.TableData{{"Position", "Element", "Count"}}
		for _, c := range sc.Counts {
			data = append(data, []string{strconv.Itoa(c.Position), c.Element, strconv.Itoa(c.Count)})
		}
		if err := renderTable(w, data); err != nil {
			return err
		}
	}
	return nil
}

// Runs prints ledger entries, newest first as given.
func Runs(w io.Writer, runs []db.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, pterm.Info.Sprint("No runs recorded"))
		return nil
	}
	data := pterm.TableData{{"ID", "Command", "Input", "Rows", "Started", "Took"}}
	for _, r := range runs {
		data = append(data, []string{
			r.ID[:min(8, len(r.ID))],
			r.Command,
			r.Input,
			fmt.Sprintf("%d/%d", r.RowsOut, r.RowsIn),
			r.StartedAt.Local().Format(time.DateTime),
			r.Duration().Round(time.Millisecond).String(),
		})
	}
	return renderTable(w, data)
}

// Run prints one ledger entry in full.
func Run(w io.Writer, r db.Run) error {
	fmt.Fprintf(w, "Run:      %s\n", r.ID)
	fmt.Fprintf(w, "Command:  %s\n", r.Command)
	fmt.Fprintf(w, "Input:    %s\n", r.Input)
	fmt.Fprintf(w, "Started:  %s\n", r.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Took:     %s\n", r.Duration().Round(time.Millisecond))
	fmt.Fprintf(w, "Rows:     %d in, %d out\n", r.RowsIn, r.RowsOut)
	for _, reason := range clean.SortedReasons(r.Rejections) {
		fmt.Fprintf(w, "  %-24s %d\n", reason, r.Rejections[reason])
	}
	if len(r.Outputs) > 0 {
		fmt.Fprintf(w, "Outputs:  %s\n", strings.Join(r.Outputs, "\n          "))
	}
	return nil
}

func renderTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
