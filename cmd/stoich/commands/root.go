// Package commands holds the stoich cobra command tree.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/logger"
)

// RootCmd is the stoich entry point
var RootCmd = &cobra.Command{
	Use:   "stoich",
	Short: "Clean and reorganize tables of chemical formulas",
	Long: `stoich cleans spreadsheets of chemical compound formulas.

Rows whose formula uses an unknown element or too many distinct elements are
dropped, surviving formulas are rewritten in canonical element order, and rows
can be split into one file per group.

Available commands:
  clean      - Filter and canonicalize (<input>_processed)
  filter     - Filter only (<input>_filtered)
  sort       - Canonicalize only (<input>_sorted)
  group      - Split rows by the Notes column (<input>_<group>)
  positions  - Count elements per position in fixed-arity formulas
  ledger     - Show the run history
  am         - Manage stoich configuration ("I am")

Examples:
  stoich clean compounds.xlsx
  stoich clean compounds.csv --max-elements 4 --split
  stoich sort compounds.csv --sort-keys https://example.org/mendeleev.csv
  stoich positions compounds_processed.xlsx --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	RootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	RootCmd.PersistentFlags().Bool("json", false, "Output results (and logs) as JSON")
	RootCmd.PersistentFlags().String("config", "", "Read configuration from this file only (default: ~/.stoich/am.toml, then ./am.toml)")

	RootCmd.AddCommand(CleanCmd)
	RootCmd.AddCommand(FilterCmd)
	RootCmd.AddCommand(SortCmd)
	RootCmd.AddCommand(GroupCmd)
	RootCmd.AddCommand(PositionsCmd)
	RootCmd.AddCommand(LedgerCmd)
	RootCmd.AddCommand(AmCmd)
	RootCmd.AddCommand(VersionCmd)
}
