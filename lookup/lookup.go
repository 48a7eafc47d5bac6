// Package lookup loads the reference tables formulas are judged against:
// the set of valid element symbols and the per-element sort keys.
package lookup

import (
	"context"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/formula"
	"github.com/teranos/stoich/logger"
	"github.com/teranos/stoich/table"
)

// Loader reads lookup tables from local or remote sources.
type Loader struct {
	// Prompter chooses a sheet when a workbook has several; nil disables prompting
	Prompter SheetPrompter
	logger   *zap.SugaredLogger
}

// NewLoader creates a loader. A nil logger falls back to the global one.
func NewLoader(prompter SheetPrompter, log *zap.SugaredLogger) *Loader {
	if log == nil {
		log = logger.ComponentLogger("lookup")
	}
	return &Loader{Prompter: prompter, logger: log}
}

// Registry loads the element registry from the first column of source.
// The table has no header row; blank cells are ignored.
func (l *Loader) Registry(ctx context.Context, source, sheet string) (*formula.Registry, error) {
	t, err := l.loadSheet(ctx, source, sheet, table.WithoutHeader())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load element registry")
	}

	var symbols []string
	for _, row := range t.Rows {
		if sym := strings.TrimSpace(table.Cell(row, 0)); sym != "" {
			symbols = append(symbols, sym)
		}
	}
	if len(symbols) == 0 {
		return nil, errors.NewInvalidRequestError("element table %s lists no symbols", source)
	}

	registry := formula.NewRegistry(symbols...)
	l.logger.Debugw("Element registry loaded",
		logger.FieldFile, source,
		logger.FieldSheet, t.Name,
		logger.FieldCount, registry.Len(),
	)
	return registry, nil
}

// SortKeys loads symbol to key pairs: column 0 is the symbol and column
// holds the numeric key. The first row is a header. Rows whose key is not
// numeric (NaN included) are skipped, leaving that symbol to sort last; a repeated symbol
// takes the key of its last row.
func (l *Loader) SortKeys(ctx context.Context, source, sheet string, column int) (*formula.SortKeys, error) {
	t, err := l.loadSheet(ctx, source, sheet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sort keys")
	}

	if column < 1 || column >= len(t.Header) {
		return nil, errors.WithHintf(
			errors.NewInvalidRequestError("sort key column %d is out of range for %s", column, source),
			"the table has %d columns: %s", len(t.Header), strings.Join(t.Header, ", "))
	}

	keys := make(map[string]float64, len(t.Rows))
	skipped := 0
	for _, row := range t.Rows {
		sym := strings.TrimSpace(table.Cell(row, 0))
		if sym == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(table.Cell(row, column)), 64)
		if err != nil || math.IsNaN(v) {
			skipped++
			continue
		}
		keys[sym] = v
	}

	l.logger.Debugw("Sort keys loaded",
		logger.FieldFile, source,
		logger.FieldColumn, t.Header[column],
		logger.FieldCount, len(keys),
		"skipped", skipped,
	)
	return formula.NewSortKeys(keys), nil
}

func (l *Loader) loadSheet(ctx context.Context, source, sheet string, opts ...table.ReadOption) (*table.Table, error) {
	src, err := Resolve(ctx, source, l.logger)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	wb, err := table.ReadFile(src.Path, opts...)
	if err != nil {
		return nil, err
	}
	return selectSheet(wb, sheet, l.Prompter)
}
