// Package table reads and writes the spreadsheets stoich cleans: CSV files
// with a single sheet and XLSX workbooks with any number of sheets.
package table

import (
	"path/filepath"
	"strings"

	"github.com/teranos/stoich/errors"
)

// Table is one sheet: a header row and the data rows below it.
// Rows may be shorter than Header; missing cells read as "".
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
	// Lines holds the 1-based source record number of each row, counting
	// the header and any dropped blank rows. Nil for derived tables.
	Lines []int
}

// ColumnIndex returns the index of the column named name, or -1.
// Header cells are compared after trimming surrounding whitespace.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// RequireColumn is ColumnIndex that fails with ErrMissingColumn.
func (t *Table) RequireColumn(name string) (int, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return -1, errors.WithHintf(errors.NewMissingColumnError(t.Name, name),
			"columns present: %s", strings.Join(t.Header, ", "))
	}
	return idx, nil
}

// Cell returns row[col], or "" when the row is too short or col < 0.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// SourceRow returns the 1-based source record number of Rows[i]. Without
// Lines it assumes a header followed by no blank rows.
func (t *Table) SourceRow(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	if t.Header == nil {
		return i + 1
	}
	return i + 2
}

// WithRows returns a copy of t sharing its header but holding rows.
func (t *Table) WithRows(rows [][]string) *Table {
	return &Table{Name: t.Name, Header: t.Header, Rows: rows}
}

// Workbook is an ordered set of sheets read from or written to Path.
type Workbook struct {
	Path   string
	Sheets []*Table
}

// SheetNames lists sheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the sheet called name.
func (wb *Workbook) Sheet(name string) (*Table, error) {
	for _, s := range wb.Sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, errors.WithHintf(errors.Wrapf(errors.ErrMissingSheet, "%s has no sheet %q", wb.Path, name),
		"available sheets: %s", strings.Join(wb.SheetNames(), ", "))
}

// OutputPath derives a sibling path: data/in.csv + "_processed" -> data/in_processed.csv
func OutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

// Format identifies a file type by extension.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return "", errors.WithHint(errors.Wrapf(errors.ErrUnsupportedFormat, "%s: legacy .xls workbooks", path),
			"re-save the workbook as .xlsx")
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedFormat, "%s: unknown extension %q", path, filepath.Ext(path))
	}
}
