package am

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/version"
)

// Validate checks that the configuration is usable before any table is read
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Elements.Source) == "" {
		return errors.NewInvalidRequestError("elements.source cannot be empty")
	}

	// Column 0 holds the element symbol, so the key must come from a later column
	if c.SortKeys.Column < 1 {
		return errors.NewInvalidRequestError("sort_keys.column must be >= 1, got %d", c.SortKeys.Column)
	}

	if c.Filter.MaxElements < 1 {
		return errors.NewInvalidRequestError("filter.max_elements must be >= 1, got %d", c.Filter.MaxElements)
	}
	// max_site_elements: 0 = site columns are not checked
	if c.Filter.MaxSiteElements < 0 {
		return errors.NewInvalidRequestError("filter.max_site_elements must be >= 0, got %d", c.Filter.MaxSiteElements)
	}
	if strings.TrimSpace(c.Filter.FormulaColumn) == "" {
		return errors.NewInvalidRequestError("filter.formula_column cannot be empty")
	}

	if c.Output.DefaultGroup == "" || strings.ContainsAny(c.Output.DefaultGroup, `/\`) {
		return errors.NewInvalidRequestError("output.default_group must be a non-empty name without path separators, got %q", c.Output.DefaultGroup)
	}

	if c.Positions.Arity < 1 {
		return errors.NewInvalidRequestError("positions.arity must be >= 1, got %d", c.Positions.Arity)
	}

	if c.Ledger.Enabled && strings.TrimSpace(c.Ledger.Path) == "" {
		return errors.NewInvalidRequestError("ledger.path cannot be empty when the ledger is enabled")
	}

	if c.Watch.DebounceMS < 0 {
		return errors.NewInvalidRequestError("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	// workers: 0 = one per CPU
	if c.Workers < 0 {
		return errors.NewInvalidRequestError("workers must be >= 0, got %d", c.Workers)
	}

	return c.checkRequires(version.Version)
}

// checkRequires enforces the requires constraint. Development builds
// carry no semantic version and always pass.
func (c *Config) checkRequires(current string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return errors.Wrap(errors.NewInvalidRequestError("requires %q is not a valid version constraint", c.Requires), err.Error())
	}
	if current == "" || current == "dev" {
		return nil
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return errors.Wrapf(err, "stoich version %q is not semantic", current)
	}
	if !constraint.Check(v) {
		return errors.WithHint(
			errors.NewInvalidRequestError("stoich %s does not satisfy requires %q", current, c.Requires),
			"upgrade stoich or relax the constraint in am.toml")
	}
	return nil
}
