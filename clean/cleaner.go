// Package clean runs the row pipeline: filter formulas against the element
// registry, canonicalize the survivors and optionally split by group.
package clean

import (
	"context"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/stoich/am"
	"github.com/teranos/stoich/db"
	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/formula"
	"github.com/teranos/stoich/logger"
	"github.com/teranos/stoich/table"
)

// Recorder stores finished runs. *db.RunStore satisfies it.
type Recorder interface {
	Record(ctx context.Context, run db.Run) error
}

// Cleaner applies one configuration to any number of tables.
// It is safe for concurrent use once built.
type Cleaner struct {
	cfg        *am.Config
	registry   *formula.Registry
	keys       *formula.SortKeys
	policy     formula.Policy
	sitePolicy formula.Policy
	workers    int
	recorder   Recorder
	logger     *zap.SugaredLogger
}

// Option customizes a Cleaner.
type Option func(*Cleaner)

// WithRecorder records every successful Run.
func WithRecorder(r Recorder) Option {
	return func(c *Cleaner) { c.recorder = r }
}

// WithLogger overrides the package logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Cleaner) { c.logger = l }
}

// New builds a Cleaner. registry may be nil when only sorting, keys may be
// nil when only filtering; Run checks the mode against what it was given.
func New(cfg *am.Config, registry *formula.Registry, keys *formula.SortKeys, opts ...Option) *Cleaner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	c := &Cleaner{
		cfg:        cfg,
		registry:   registry,
		keys:       keys,
		policy:     formula.Policy{MaxElements: cfg.Filter.MaxElements, AllowEmpty: cfg.Filter.AllowEmpty},
		sitePolicy: formula.Policy{MaxElements: cfg.Filter.MaxSiteElements, AllowEmpty: true},
		workers:    workers,
		logger:     logger.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rowResult is the outcome for one input row.
type rowResult struct {
	row     []string
	dropped bool
	reason  string
	column  string
	value   string
}

// FilterTable drops rows whose formula (or any site cell) fails the policy.
func (c *Cleaner) FilterTable(ctx context.Context, t *table.Table) (*table.Table, SheetSummary, error) {
	return c.process(ctx, t, ModeFilter)
}

// SortTable rewrites every formula into canonical order. No row is dropped.
func (c *Cleaner) SortTable(ctx context.Context, t *table.Table) (*table.Table, SheetSummary, error) {
	return c.process(ctx, t, ModeSort)
}

// CleanTable filters, then canonicalizes the rows that remain.
func (c *Cleaner) CleanTable(ctx context.Context, t *table.Table) (*table.Table, SheetSummary, error) {
	return c.process(ctx, t, ModeClean)
}

func (c *Cleaner) process(ctx context.Context, t *table.Table, mode Mode) (*table.Table, SheetSummary, error) {
	summary := SheetSummary{Sheet: t.Name, RowsIn: len(t.Rows)}

	if mode.Filters() && c.registry == nil {
		return nil, summary, errors.New("filtering requires an element registry")
	}
	if mode.Sorts() && c.keys == nil {
		return nil, summary, errors.New("sorting requires a sort key table")
	}

	formulaIdx, err := t.RequireColumn(c.cfg.Filter.FormulaColumn)
	if err != nil {
		return nil, summary, err
	}
	siteCols := c.siteColumns(t)

	results, err := evaluateRows(ctx, len(t.Rows), c.workers, func(i int) rowResult {
		return c.evaluate(t, t.Rows[i], formulaIdx, siteCols, mode)
	})
	if err != nil {
		return nil, summary, err
	}

	log := c.logger.With(logger.FieldSheet, t.Name)
	rows := make([][]string, 0, len(results))
	for i, res := range results {
		if res.dropped {
			summary.reject(res.reason)
			log.Debugw("Row dropped",
				logger.FieldRow, t.SourceRow(i),
				logger.FieldColumn, res.column,
				logger.FieldFormula, res.value,
				logger.FieldReason, res.reason)
			continue
		}
		rows = append(rows, res.row)
	}
	summary.RowsOut = len(rows)

	return t.WithRows(rows), summary, nil
}

// siteColumns returns the indices after the anchor column, or nil when
// site checking is off or the anchor is absent.
func (c *Cleaner) siteColumns(t *table.Table) []int {
	if c.cfg.Filter.MaxSiteElements <= 0 {
		return nil
	}
	anchor := t.ColumnIndex(c.cfg.Filter.SiteAnchorColumn)
	if anchor < 0 {
		return nil
	}
	cols := make([]int, 0, len(t.Header)-anchor-1)
	for i := anchor + 1; i < len(t.Header); i++ {
		cols = append(cols, i)
	}
	return cols
}

func (c *Cleaner) evaluate(t *table.Table, row []string, formulaIdx int, siteCols []int, mode Mode) rowResult {
	cell := table.Cell(row, formulaIdx)

	if mode.Filters() {
		if v := c.policy.Evaluate(formula.Parse(cell), c.registry); !v.Accepted() {
			return rowResult{row: row, dropped: true, reason: string(v.Reason), column: t.Header[formulaIdx], value: cell}
		}
		for _, col := range siteCols {
			site := table.Cell(row, col)
			if strings.TrimSpace(site) == "" {
				continue
			}
			if v := c.sitePolicy.Evaluate(formula.Parse(site), c.registry); !v.Accepted() {
				return rowResult{row: row, dropped: true, reason: "site_" + string(v.Reason), column: t.Header[col], value: site}
			}
		}
	}

	if !mode.Sorts() {
		return rowResult{row: row}
	}
	out := make([]string, len(row))
	copy(out, row)
	if formulaIdx < len(out) {
		out[formulaIdx] = formula.Canonicalize(cell, c.keys)
	}
	return rowResult{row: out}
}
