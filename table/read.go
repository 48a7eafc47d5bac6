package table

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/teranos/stoich/errors"
)

type readOptions struct {
	noHeader bool
}

// ReadOption customizes ReadFile.
type ReadOption func(*readOptions)

// WithoutHeader keeps the first row as data and leaves Header nil.
func WithoutHeader() ReadOption {
	return func(o *readOptions) { o.noHeader = true }
}

// ReadFile loads every sheet of the file at path. CSV and TSV files yield a
// single sheet named after the file. Rows with no non-blank cell are dropped.
func ReadFile(path string, opts ...ReadOption) (*Workbook, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var sheets []rawSheet
	switch format {
	case FormatXLSX:
		sheets, err = readXLSX(path)
	case FormatTSV:
		sheets, err = readDelimited(path, '\t')
	default:
		sheets, err = readDelimited(path, ',')
	}
	if err != nil {
		return nil, err
	}

	wb := &Workbook{Path: path}
	for _, s := range sheets {
		wb.Sheets = append(wb.Sheets, s.toTable(o.noHeader))
	}
	return wb, nil
}

type rawSheet struct {
	name    string
	records [][]string
}

func (s rawSheet) toTable(noHeader bool) *Table {
	t := &Table{Name: s.name}
	records := make([][]string, 0, len(s.records))
	lines := make([]int, 0, len(s.records))
	for i, r := range s.records {
		if !blankRecord(r) {
			records = append(records, r)
			lines = append(lines, i+1)
		}
	}
	if noHeader || len(records) == 0 {
		t.Rows, t.Lines = records, lines
		return t
	}
	t.Header = records[0]
	t.Rows, t.Lines = records[1:], lines[1:]
	return t
}

func blankRecord(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func readDelimited(path string, delim rune) ([]rawSheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	records, err := decodeDelimited(f, delim)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []rawSheet{{name: name, records: records}}, nil
}

// decodeDelimited tolerates ragged rows and stray quotes, which spreadsheet
// exports produce routinely.
func decodeDelimited(r io.Reader, delim rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func readXLSX(path string) ([]rawSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open workbook %s", path)
	}
	defer f.Close()

	var sheets []rawSheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read sheet %q of %s", name, path)
		}
		sheets = append(sheets, rawSheet{name: name, records: rows})
	}
	return sheets, nil
}
