package clean

import "github.com/teranos/stoich/errors"

// Mode selects which steps a run applies.
type Mode string

const (
	// ModeClean filters rows and canonicalizes the survivors
	ModeClean Mode = "clean"
	// ModeFilter only drops rows
	ModeFilter Mode = "filter"
	// ModeSort only canonicalizes, keeping every row
	ModeSort Mode = "sort"
	// ModeGroup only splits rows by the grouping column
	ModeGroup Mode = "group"
)

// Filters reports whether the mode drops rejected rows.
func (m Mode) Filters() bool { return m == ModeClean || m == ModeFilter }

// Sorts reports whether the mode canonicalizes formulas.
func (m Mode) Sorts() bool { return m == ModeClean || m == ModeSort }

// Suffix is appended to the input file name to build the output name.
func (m Mode) Suffix() string {
	switch m {
	case ModeFilter:
		return "_filtered"
	case ModeSort:
		return "_sorted"
	default:
		return "_processed"
	}
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeClean, ModeFilter, ModeSort, ModeGroup:
		return m, nil
	}
	return "", errors.NewInvalidRequestError("unknown mode %q", s)
}
