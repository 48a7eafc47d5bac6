package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/stoich/am"
	"github.com/teranos/stoich/clean"
	"github.com/teranos/stoich/db"
	"github.com/teranos/stoich/display"
	"github.com/teranos/stoich/formula"
	"github.com/teranos/stoich/logger"
	"github.com/teranos/stoich/lookup"
	"github.com/teranos/stoich/watch"
)

// CleanCmd filters and canonicalizes
var CleanCmd = newPipelineCmd(clean.ModeClean,
	"Filter rows and canonicalize formulas",
	`Drop rows whose formula uses an unknown element or more distinct elements
than filter.max_elements, then rewrite the surviving formulas in canonical
element order. Writes <input>_processed.<ext>; with --split each group is
also written to <input>_processed_<group>.<ext>.`)

// FilterCmd only filters
var FilterCmd = newPipelineCmd(clean.ModeFilter,
	"Drop rows with unknown or too many elements",
	`Drop rows whose formula fails the element checks and keep formulas as
written. Writes <input>_filtered.<ext>.`)

// SortCmd only canonicalizes
var SortCmd = newPipelineCmd(clean.ModeSort,
	"Rewrite formulas in canonical element order",
	`Rewrite every formula so its elements follow the sort key table. No row is
dropped. Writes <input>_sorted.<ext>.`)

// GroupCmd only splits
var GroupCmd = newPipelineCmd(clean.ModeGroup,
	"Split rows into one file per group",
	`Split rows by output.group_column (default "Notes"). Blank values go to
output.default_group (default "rt"). Writes <input>_<group>.<ext> per group.`)

func newPipelineCmd(mode clean.Mode, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(mode) + " <input>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, mode, args[0])
		},
	}

	f := cmd.Flags()
	if mode.Filters() {
		f.String("elements", "", "Element table: local path or URL")
		f.String("elements-sheet", "", "Sheet of the element workbook")
		f.Int("max-elements", 0, "Maximum distinct elements per formula")
		f.Int("max-site-elements", 0, "Maximum distinct elements per site cell (0 = unchecked)")
	}
	if mode.Sorts() {
		f.String("sort-keys", "", "Sort key table: local path or URL")
		f.String("sort-keys-sheet", "", "Sheet of the sort key workbook")
		f.Int("sort-column", 0, "Zero-based column holding the sort key")
	}
	if mode != clean.ModeGroup {
		f.StringP("output", "o", "", "Output path (default: derived from input)")
		f.Bool("split", false, "Also write one file per group")
	}
	f.Int("workers", 0, "Row evaluation workers (0 = one per CPU)")
	f.Bool("ledger", false, "Record the run in the ledger database")
	f.Bool("watch", false, "Rerun whenever the input or configuration changes")
	return cmd
}

func runPipeline(cmd *cobra.Command, mode clean.Mode, input string) error {
	ctx := logger.WithComponent(cmd.Context(), "clean")

	if watching, _ := cmd.Flags().GetBool("watch"); watching {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		w, err := watch.New(func(ctx context.Context) ([]string, error) {
			summary, err := runOnce(ctx, cmd, mode, input)
			if err != nil {
				return nil, err
			}
			return summary.Outputs(), nil
		}, watch.Options{
			Paths:    append([]string{input}, configPaths(cmd)...),
			Debounce: time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
			OnChange: cfg.Watch.OnChange,
			Logger:   logger.LoggerFromContext(ctx),
		})
		if err != nil {
			return err
		}
		logger.Infow("Watching for changes", logger.FieldFile, input)
		return w.Run(ctx)
	}

	_, err := runOnce(ctx, cmd, mode, input)
	return err
}

// runOnce reloads configuration and lookup tables, so a watch rerun picks
// up edits to any of them.
func runOnce(ctx context.Context, cmd *cobra.Command, mode clean.Mode, input string) (*clean.Summary, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	registry, keys, err := loadTables(ctx, cfg, mode)
	if err != nil {
		return nil, err
	}

	opts := []clean.Option{clean.WithLogger(logger.LoggerFromContext(ctx))}
	if cfg.Ledger.Enabled {
		conn, err := db.OpenWithMigrations(cfg.Ledger.Path, logger.Logger)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		opts = append(opts, clean.WithRecorder(db.NewRunStore(conn)))
	}

	summary, err := clean.New(cfg, registry, keys, opts...).Run(ctx, mode, input)
	if err != nil {
		return nil, err
	}

	if display.ShouldOutputJSON(cmd) {
		return summary, display.Encode(cmd.OutOrStdout(), display.FormatJSON, summary)
	}
	return summary, display.Summary(cmd.OutOrStdout(), summary)
}

// loadTables loads only the lookup tables mode needs.
func loadTables(ctx context.Context, cfg *am.Config, mode clean.Mode) (*formula.Registry, *formula.SortKeys, error) {
	loader := lookup.NewLoader(lookup.DefaultPrompter(), logger.LoggerFromContext(ctx))

	var registry *formula.Registry
	var keys *formula.SortKeys
	var err error
	if mode.Filters() {
		registry, err = loader.Registry(ctx, cfg.Elements.Source, cfg.Elements.Sheet)
		if err != nil {
			return nil, nil, err
		}
	}
	if mode.Sorts() {
		keys, err = loader.SortKeys(ctx, cfg.SortKeys.Source, cfg.SortKeys.Sheet, cfg.SortKeys.Column)
		if err != nil {
			return nil, nil, err
		}
	}
	return registry, keys, nil
}
