package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/stoich/db"
	"github.com/teranos/stoich/display"
	"github.com/teranos/stoich/logger"
)

// LedgerCmd shows recorded runs
var LedgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show the history of recorded runs",
	Long: `Runs are recorded when ledger.enabled is true or --ledger is passed.
The ledger is a sqlite database at ledger.path (default stoich.db).

Examples:
  stoich ledger ls              # Most recent runs
  stoich ledger ls --limit 50
  stoich ledger show <run-id>   # Full detail for one run`,
}

var ledgerLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recent runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runLedgerLs,
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerShow,
}

func init() {
	ledgerLsCmd.Flags().Int("limit", 20, "Maximum number of runs to list")

	LedgerCmd.AddCommand(ledgerLsCmd)
	LedgerCmd.AddCommand(ledgerShowCmd)
}

func openRunStore(cmd *cobra.Command) (*db.RunStore, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	conn, err := db.OpenWithMigrations(cfg.Ledger.Path, logger.Logger)
	if err != nil {
		return nil, nil, err
	}
	return db.NewRunStore(conn), func() { conn.Close() }, nil
}

func runLedgerLs(cmd *cobra.Command, args []string) error {
	store, closeFn, err := openRunStore(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.Encode(cmd.OutOrStdout(), display.FormatJSON, runs)
	}
	return display.Runs(cmd.OutOrStdout(), runs)
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	store, closeFn, err := openRunStore(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	run, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.Encode(cmd.OutOrStdout(), display.FormatJSON, run)
	}
	return display.Run(cmd.OutOrStdout(), run)
}
