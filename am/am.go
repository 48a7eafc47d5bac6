// Package am loads stoich configuration ("I am") from defaults, TOML files
// and STOICH_* environment variables.
package am

// Config represents the complete stoich configuration. It is read once per
// run and passed by pointer into the pipeline; nothing mutates it afterwards.
type Config struct {
	Elements  ElementsConfig  `mapstructure:"elements" toml:"elements" json:"elements" yaml:"elements"`
	SortKeys  SortKeysConfig  `mapstructure:"sort_keys" toml:"sort_keys" json:"sort_keys" yaml:"sort_keys"`
	Filter    FilterConfig    `mapstructure:"filter" toml:"filter" json:"filter" yaml:"filter"`
	Output    OutputConfig    `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Positions PositionsConfig `mapstructure:"positions" toml:"positions" json:"positions" yaml:"positions"`
	Ledger    LedgerConfig    `mapstructure:"ledger" toml:"ledger" json:"ledger" yaml:"ledger"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`

	Workers  int    `mapstructure:"workers" toml:"workers" json:"workers" yaml:"workers"`    // row evaluation workers, 0 = one per CPU
	Requires string `mapstructure:"requires" toml:"requires" json:"requires" yaml:"requires"` // semver constraint on the stoich version
}

// ElementsConfig locates the table of valid element symbols
type ElementsConfig struct {
	Source string `mapstructure:"source" toml:"source" json:"source" yaml:"source"` // local path or go-getter URL
	Sheet  string `mapstructure:"sheet" toml:"sheet" json:"sheet" yaml:"sheet"`     // workbook sheet (empty = only sheet, or prompt)
}

// SortKeysConfig locates the per-element ordering key table
type SortKeysConfig struct {
	Source string `mapstructure:"source" toml:"source" json:"source" yaml:"source"`
	Sheet  string `mapstructure:"sheet" toml:"sheet" json:"sheet" yaml:"sheet"`
	Column int    `mapstructure:"column" toml:"column" json:"column" yaml:"column"` // zero-based column holding the key; column 0 is the symbol
}

// FilterConfig bounds which formulas survive filtering
type FilterConfig struct {
	MaxElements      int    `mapstructure:"max_elements" toml:"max_elements" json:"max_elements" yaml:"max_elements"`
	MaxSiteElements  int    `mapstructure:"max_site_elements" toml:"max_site_elements" json:"max_site_elements" yaml:"max_site_elements"` // 0 = site columns not checked
	AllowEmpty       bool   `mapstructure:"allow_empty" toml:"allow_empty" json:"allow_empty" yaml:"allow_empty"`
	FormulaColumn    string `mapstructure:"formula_column" toml:"formula_column" json:"formula_column" yaml:"formula_column"`
	SiteAnchorColumn string `mapstructure:"site_anchor_column" toml:"site_anchor_column" json:"site_anchor_column" yaml:"site_anchor_column"` // site columns follow this one
}

// OutputConfig controls where results go and how they are split
type OutputConfig struct {
	Path         string `mapstructure:"path" toml:"path" json:"path" yaml:"path"` // empty = derived from input name
	GroupColumn  string `mapstructure:"group_column" toml:"group_column" json:"group_column" yaml:"group_column"`
	DefaultGroup string `mapstructure:"default_group" toml:"default_group" json:"default_group" yaml:"default_group"`
	SplitGroups  bool   `mapstructure:"split_groups" toml:"split_groups" json:"split_groups" yaml:"split_groups"`
}

// PositionsConfig configures per-position element counting
type PositionsConfig struct {
	Arity int `mapstructure:"arity" toml:"arity" json:"arity" yaml:"arity"` // only formulas with exactly this many symbols count
}

// LedgerConfig configures the sqlite run history
type LedgerConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" toml:"path" json:"path" yaml:"path"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	DebounceMS int    `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
	OnChange   string `mapstructure:"on_change" toml:"on_change" json:"on_change" yaml:"on_change"` // command run after each successful rerun
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
