// Package cli wires the triage commands. The bare `triage` command opens the
// interactive board; subcommands cover scripted access to the same data.
package cli

import (
	"github.com/spf13/cobra"

	"triage-cli/internal/store"
	"triage-cli/internal/tui"
)

// App carries flag state shared by every command.
type App struct {
	Dir string
}

func (a *App) storeDir() (string, error) {
	if a.Dir != "" {
		return a.Dir, nil
	}
	return store.DefaultDir()
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:           "triage",
		Short:         "A small terminal to-do board with drag-and-drop triage",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.storeDir()
			if err != nil {
				return err
			}
			return tui.Run(dir)
		},
	}
	root.PersistentFlags().StringVar(&app.Dir, "dir", "", "data directory (defaults to the nearest .triage)")

	root.AddCommand(newPathCmd(app))
	root.AddCommand(newListCmd(app))
	root.AddCommand(newAddCmd(app))
	root.AddCommand(newMoveCmd(app))
	root.AddCommand(newEventsCmd(app))
	return root
}

func newPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the resolved data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.storeDir()
			if err != nil {
				return err
			}
			cmd.Println(dir)
			return nil
		},
	}
}
