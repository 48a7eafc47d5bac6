package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/stoich/display"
	"github.com/teranos/stoich/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show stoich version information",
	Long:  `Display version, build time, commit hash, and platform information for the stoich binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()

		if display.ShouldOutputJSON(cmd) {
			return display.Encode(cmd.OutOrStdout(), display.FormatJSON, info)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		return nil
	},
}
