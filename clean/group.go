package clean

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/teranos/stoich/table"
)

// Group is the subset of a table sharing one grouping value.
type Group struct {
	Name  string
	Table *table.Table
}

// GroupName sanitizes a grouping cell into a file-name-safe group name.
// Blank values fall into defaultGroup; path separators become "_".
func GroupName(value, defaultGroup string) string {
	v := strings.TrimSpace(norm.NFC.String(value))
	if v == "" {
		return defaultGroup
	}
	return strings.NewReplacer("/", "_", `\`, "_").Replace(v)
}

// SplitGroups partitions t by column. Groups come back sorted by name and
// rows keep their input order inside each group. A value equal to
// defaultGroup merges with the blank values.
func SplitGroups(t *table.Table, column, defaultGroup string) ([]Group, error) {
	idx, err := t.RequireColumn(column)
	if err != nil {
		return nil, err
	}

	byName := make(map[string][][]string)
	for _, row := range t.Rows {
		name := GroupName(table.Cell(row, idx), defaultGroup)
		byName[name] = append(byName[name], row)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{Name: name, Table: t.WithRows(byName[name])})
	}
	return groups, nil
}
