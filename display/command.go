// Package display renders run results for people (pterm) and for
// programs (JSON or YAML).
package display

import (
	"github.com/spf13/cobra"
)

// ShouldOutputJSON reports whether the command was asked for JSON, either
// through its own --json flag or the root's persistent one.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("json")
		return v
	}
	v, _ := cmd.Root().PersistentFlags().GetBool("json")
	return v
}
