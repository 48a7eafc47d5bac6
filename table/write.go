package table

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/xuri/excelize/v2"

	"github.com/teranos/stoich/errors"
)

// lockRetry is how often WriteFile polls a held lock.
const lockRetry = 50 * time.Millisecond

// WriteFile writes wb to path in the format implied by its extension.
// The file is replaced atomically, and a sibling ".lock" file serializes
// concurrent writers of the same path.
func WriteFile(ctx context.Context, path string, wb *Workbook) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if format != FormatXLSX && len(wb.Sheets) != 1 {
		return errors.WithHint(
			errors.Wrapf(errors.ErrUnsupportedFormat, "%s: %d sheets cannot be written as %s", path, len(wb.Sheets), format),
			"write to an .xlsx output instead")
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return errors.Wrapf(err, "failed to lock %s", path)
	}
	if !locked {
		return errors.Newf("could not acquire lock on %s", path)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(path + ".lock")
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".stoich-*"+filepath.Ext(path))
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	switch format {
	case FormatXLSX:
		err = encodeXLSX(tmp, wb)
	case FormatTSV:
		err = encodeDelimited(tmp, wb.Sheets[0], '\t')
	default:
		err = encodeDelimited(tmp, wb.Sheets[0], ',')
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "failed to move output into place at %s", path)
	}
	return nil
}

func encodeDelimited(w io.Writer, t *Table, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	if t.Header != nil {
		if err := cw.Write(t.Header); err != nil {
			return err
		}
	}
	width := len(t.Header)
	for _, row := range t.Rows {
		if err := cw.Write(padRow(row, width)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// padRow extends short rows so every CSV record has the header's width.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func encodeXLSX(w io.Writer, wb *Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Name); err != nil {
				return errors.Wrapf(err, "rename first sheet to %q", t.Name)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return errors.Wrapf(err, "create sheet %q", t.Name)
		}

		rowNum := 1
		if t.Header != nil {
			if err := setRow(f, t.Name, rowNum, t.Header); err != nil {
				return err
			}
			rowNum++
		}
		for _, row := range t.Rows {
			if err := setRow(f, t.Name, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, sheet string, rowNum int, row []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = cellValue(v)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(err, "write row %d of sheet %q", rowNum, sheet)
	}
	return nil
}

// cellValue stores numbers as numbers when that round-trips exactly, so
// "3" stays a numeric cell while "3.0" and "007" stay text.
func cellValue(s string) interface{} {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || strconv.FormatFloat(v, 'f', -1, 64) != s {
		return s
	}
	return v
}
