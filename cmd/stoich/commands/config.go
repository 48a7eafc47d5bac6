package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/stoich/am"
	"github.com/teranos/stoich/errors"
)

// flagKeys maps command-line flags onto configuration keys. Flags beat
// every other source.
var flagKeys = map[string]string{
	"elements":          "elements.source",
	"elements-sheet":    "elements.sheet",
	"sort-keys":         "sort_keys.source",
	"sort-keys-sheet":   "sort_keys.sheet",
	"sort-column":       "sort_keys.column",
	"max-elements":      "filter.max_elements",
	"max-site-elements": "filter.max_site_elements",
	"output":            "output.path",
	"split":             "output.split_groups",
	"workers":           "workers",
	"ledger":            "ledger.enabled",
	"arity":             "positions.arity",
}

// configViper returns the Viper for this invocation: the --config file
// alone when given, otherwise the user/project cascade, re-read from disk.
func configViper(cmd *cobra.Command) (*viper.Viper, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return am.FileViper(path)
	}
	am.Reset()
	return am.GetViper(), nil
}

// configPaths lists the files the current configuration was read from.
func configPaths(cmd *cobra.Command) []string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return []string{path}
	}
	var paths []string
	for _, src := range am.Sources() {
		if src.Exists {
			paths = append(paths, src.Path)
		}
	}
	return paths
}

// loadConfig builds and validates the configuration, with any flags the
// command defines bound on top.
func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	v, err := configViper(cmd)
	if err != nil {
		return nil, err
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return nil, errors.Wrap(bindErr, "failed to bind flags")
	}

	cfg, err := am.LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}
