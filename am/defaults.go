package am

import "github.com/spf13/viper"

// Default values. Filenames match the tables the lab keeps next to its data.
const (
	DefaultElementsSource = "periodic_table.xlsx"
	DefaultSortKeysSource = "element_Mendeleev_numbers.csv"
	DefaultFormulaColumn  = "Formula"
	DefaultSiteAnchor     = "Num Elements"
	DefaultGroupColumn    = "Notes"
	DefaultGroup          = "rt"
	DefaultLedgerPath     = "stoich.db"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("elements.source", DefaultElementsSource)
	v.SetDefault("elements.sheet", "")

	v.SetDefault("sort_keys.source", DefaultSortKeysSource)
	v.SetDefault("sort_keys.sheet", "")
	v.SetDefault("sort_keys.column", 1)

	v.SetDefault("filter.max_elements", 3)
	v.SetDefault("filter.max_site_elements", 0)
	v.SetDefault("filter.allow_empty", false)
	v.SetDefault("filter.formula_column", DefaultFormulaColumn)
	v.SetDefault("filter.site_anchor_column", DefaultSiteAnchor)

	v.SetDefault("output.path", "")
	v.SetDefault("output.group_column", DefaultGroupColumn)
	v.SetDefault("output.default_group", DefaultGroup)
	v.SetDefault("output.split_groups", false)

	v.SetDefault("positions.arity", 3)

	v.SetDefault("ledger.enabled", false)
	v.SetDefault("ledger.path", DefaultLedgerPath)

	v.SetDefault("watch.debounce_ms", 500)
	v.SetDefault("watch.on_change", "")

	v.SetDefault("workers", 1)
	v.SetDefault("requires", "")
}
