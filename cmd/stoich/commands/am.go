package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/stoich/am"
	"github.com/teranos/stoich/display"
	"github.com/teranos/stoich/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage stoich configuration",
	Long: `am — Manage stoich configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (STOICH_* prefix, e.g. STOICH_FILTER_MAX_ELEMENTS)
3. Project config (./am.toml, searched upward)
4. User config (~/.stoich/am.toml)
5. Default values

Examples:
  stoich am show                    # Show current configuration
  stoich am show --format json      # Show configuration in JSON format
  stoich am get filter.max_elements # Get specific config value
  stoich am validate                # Validate current configuration
  stoich am init                    # Write a starter ./am.toml`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current stoich configuration from all sources",
	Args:  cobra.NoArgs,
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., filter.max_elements, sort_keys.column)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Args:  cobra.NoArgs,
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Args:  cobra.NoArgs,
	RunE:  runAmWhere,
}

var amInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter am.toml with every default spelled out",
	Long: `Write a starter configuration (default ./am.toml). An existing file is
kept as <path>.back1 before being replaced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAmInit,
}

func init() {
	amShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	v, err := configViper(cmd)
	if err != nil {
		return err
	}
	cfg, err := am.LoadWithViper(v)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		return display.Encode(out, display.FormatJSON, cfg)
	case "yaml":
		fmt.Fprintln(out, "# stoich configuration")
		return display.Encode(out, display.FormatYAML, cfg)
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# stoich configuration\n%s", data)
		return nil
	}
	return errors.NewInvalidRequestError("unsupported format: %s (supported: toml, json, yaml)", format)
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v, err := configViper(cmd)
	if err != nil {
		return err
	}
	if !v.IsSet(key) {
		return errors.NewNotFoundError("configuration key %q not found", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprint("Configuration is valid"))
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintln(out, "  2. [USER]     ~/.stoich/am.toml")
	fmt.Fprintln(out, "  3. [PROJECT]  ./am.toml (searches up directories)")
	fmt.Fprintln(out, "  4. [ENV]      STOICH_* environment variables")
	fmt.Fprintln(out)

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		fmt.Fprintf(out, "Using --config %s only\n", path)
		return nil
	}

	sources := am.Sources()
	if display.ShouldOutputJSON(cmd) {
		return display.Encode(out, display.FormatJSON, sources)
	}
	for _, src := range sources {
		status := "missing"
		if src.Exists {
			status = "loaded"
		}
		fmt.Fprintf(out, "  [%s] %s (%s)\n", src.Source, src.Path, status)
	}
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := am.ProjectConfigName
	if len(args) == 1 {
		path = args[0]
	}

	v := viper.New()
	am.SetDefaults(v)
	cfg, err := am.LoadWithViper(v)
	if err != nil {
		return err
	}
	if err := am.WriteStarter(path, cfg); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Wrote %s", path))
	return nil
}
