package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/stoich/display"
	"github.com/teranos/stoich/positions"
	"github.com/teranos/stoich/table"
)

// PositionsCmd counts elements per formula position
var PositionsCmd = &cobra.Command{
	Use:   "positions <input>",
	Short: "Count elements per position in fixed-arity formulas",
	Long: `For every sheet with a Formula column, split each formula into element
symbols and, for formulas with exactly --arity symbols, count how often each
element occupies each position. Sheets without a Formula column are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runPositions,
}

func init() {
	PositionsCmd.Flags().Int("arity", 0, "Number of symbols a formula must have to be counted (default from positions.arity)")
}

func runPositions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	wb, err := table.ReadFile(args[0])
	if err != nil {
		return err
	}
	counts, err := positions.CountWorkbook(wb, cfg.Filter.FormulaColumn, cfg.Positions.Arity)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.Encode(cmd.OutOrStdout(), display.FormatJSON, counts)
	}
	return display.Positions(cmd.OutOrStdout(), counts)
}
