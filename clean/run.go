package clean

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/logger"
	"github.com/teranos/stoich/table"
)

// Run reads input, applies mode to every sheet and writes the results next
// to the input (or to output.path). Every sheet is checked before anything
// is written, so a structural error leaves no partial output behind.
func (c *Cleaner) Run(ctx context.Context, mode Mode, input string) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		Mode:      mode,
		Input:     input,
		StartedAt: time.Now().UTC(),
	}
	ctx = logger.WithRunID(ctx, summary.RunID)
	log := c.logger.With(logger.FieldRunID, summary.RunID, logger.FieldCommand, string(mode))

	wb, err := table.ReadFile(input)
	if err != nil {
		return nil, err
	}
	log.Debugw("Read input", logger.FieldFile, input, logger.FieldCount, len(wb.Sheets))

	out := &table.Workbook{Path: input}
	if mode == ModeGroup {
		out.Sheets = wb.Sheets
		for _, sheet := range wb.Sheets {
			summary.Sheets = append(summary.Sheets, SheetSummary{Sheet: sheet.Name, RowsIn: len(sheet.Rows), RowsOut: len(sheet.Rows)})
		}
	} else {
		for _, sheet := range wb.Sheets {
			processed, sheetSummary, err := c.process(ctx, sheet, mode)
			if err != nil {
				return nil, errors.Wrapf(err, "processing %s", input)
			}
			out.Sheets = append(out.Sheets, processed)
			summary.Sheets = append(summary.Sheets, sheetSummary)
		}
	}

	var groups map[string]*table.Workbook
	var groupNames []string
	if mode == ModeGroup || c.cfg.Output.SplitGroups {
		groups, groupNames, err = c.splitWorkbook(out)
		if err != nil {
			return nil, errors.Wrapf(err, "grouping %s", input)
		}
	}

	base := input
	if mode != ModeGroup {
		out.Path = c.cfg.Output.Path
		if out.Path == "" {
			out.Path = table.OutputPath(input, mode.Suffix())
		}
		if err := table.WriteFile(ctx, out.Path, out); err != nil {
			return nil, err
		}
		summary.Output = out.Path
		base = out.Path
		log.Infow("Wrote output", logger.FieldFile, out.Path)
	}

	for _, name := range groupNames {
		gwb := groups[name]
		gwb.Path = table.OutputPath(base, "_"+name)
		if err := table.WriteFile(ctx, gwb.Path, gwb); err != nil {
			return nil, err
		}
		rows := 0
		for _, s := range gwb.Sheets {
			rows += len(s.Rows)
		}
		summary.Groups = append(summary.Groups, GroupSummary{Name: name, Path: gwb.Path, Rows: rows})
		log.Debugw("Wrote group", logger.FieldGroup, name, logger.FieldFile, gwb.Path, logger.FieldCount, rows)
	}

	summary.FinishedAt = time.Now().UTC()
	rowsIn, rowsOut, _ := summary.Totals()
	log.Infow("Run complete",
		logger.FieldAccepted, rowsOut,
		logger.FieldRejected, rowsIn-rowsOut,
		logger.FieldDurationMS, summary.FinishedAt.Sub(summary.StartedAt).Milliseconds())

	if c.recorder != nil {
		if err := c.recorder.Record(ctx, summary.Run()); err != nil {
			// Output is already on disk; a ledger failure should not fail the run.
			log.Warnw("Failed to record run in ledger", logger.FieldError, err)
		}
	}
	return summary, nil
}

// splitWorkbook groups every sheet of wb. Each group gets a workbook holding
// only the sheets that have rows in that group, in original sheet order.
func (c *Cleaner) splitWorkbook(wb *table.Workbook) (map[string]*table.Workbook, []string, error) {
	groups := make(map[string]*table.Workbook)
	var names []string
	for _, sheet := range wb.Sheets {
		split, err := SplitGroups(sheet, c.cfg.Output.GroupColumn, c.cfg.Output.DefaultGroup)
		if err != nil {
			return nil, nil, err
		}
		for _, g := range split {
			gwb, ok := groups[g.Name]
			if !ok {
				gwb = &table.Workbook{}
				groups[g.Name] = gwb
				names = append(names, g.Name)
			}
			gwb.Sheets = append(gwb.Sheets, g.Table)
		}
	}
	sort.Strings(names)
	return groups, names, nil
}
