package lookup

import (
	"os"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/table"
)

// SheetPrompter picks one sheet out of a multi-sheet lookup workbook.
type SheetPrompter interface {
	SelectSheet(source string, sheets []string) (string, error)
}

// TerminalPrompter asks interactively with a pterm select menu.
type TerminalPrompter struct{}

// SelectSheet shows the sheet list and returns the chosen name.
func (TerminalPrompter) SelectSheet(source string, sheets []string) (string, error) {
	pterm.Info.Printfln("%s has %d sheets", source, len(sheets))
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(sheets).
		WithDefaultText("Select the sheet to use").
		Show()
	if err != nil {
		return "", errors.Wrap(err, "sheet selection aborted")
	}
	return choice, nil
}

// DefaultPrompter returns a TerminalPrompter when stdin is a terminal and
// nil otherwise, so batch runs fail fast instead of blocking on input.
func DefaultPrompter() SheetPrompter {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return TerminalPrompter{}
	}
	return nil
}

// selectSheet resolves which sheet of wb to use. A configured name must
// exist; a single-sheet workbook needs no choice; otherwise the prompter
// decides, and without one the choice is a fatal ErrMissingSheet.
func selectSheet(wb *table.Workbook, configured string, prompter SheetPrompter) (*table.Table, error) {
	if configured != "" {
		return wb.Sheet(configured)
	}
	switch len(wb.Sheets) {
	case 0:
		return nil, errors.Wrapf(errors.ErrMissingSheet, "%s contains no sheets", wb.Path)
	case 1:
		return wb.Sheets[0], nil
	}

	names := wb.SheetNames()
	if prompter == nil {
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrMissingSheet, "%s has %d sheets and none was configured", wb.Path, len(names)),
			"set the sheet in am.toml; available sheets: %s", strings.Join(names, ", "))
	}
	choice, err := prompter.SelectSheet(wb.Path, names)
	if err != nil {
		return nil, err
	}
	return wb.Sheet(choice)
}
