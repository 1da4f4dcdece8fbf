package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tabwatch/internal/tui"
	"github.com/vvka-141/tabwatch/internal/tui/editor"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

var editCmd = &cobra.Command{
	Use:   "edit [path]",
	Short: "Edit a data file in the terminal",
	Long: `Edit opens the newest valid file in the data directory (or the given
path) in an interactive table editor.

Keys:
  ↑↓←→ / hjkl  move between cells
  enter        edit the selected cell (enter applies, esc cancels)
  a / d        add a row / delete the selected row
  s            save to the original file
  r            reload from disk (finds the newest file again)
  q            quit (asks first when there are unsaved changes)

Delimited files are saved as UTF-8 with their original delimiter.
.xls files can be viewed but not saved.

Requires an interactive terminal.`,
	Args:              OptionalFilePath,
	ValidArgsFunction: completeDataFiles,
	RunE:              runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if !tui.IsInteractive() {
		return fmt.Errorf("%w: edit needs an interactive terminal, use 'tabwatch show' instead", tabwatch.ErrUnsupportedOperation)
	}

	return runWithApp(cmd, func(a *app) error {
		snap, err := a.snapshotFor(args)
		if err != nil {
			return err
		}

		refresh := a.service.Refresh
		if len(args) == 1 {
			path := args[0]
			refresh = func() (*tabwatch.Snapshot, error) { return a.service.Open(path) }
		}

		_, err = tui.Run(editor.New(snap, a.saver, refresh))
		return err
	})
}
