// Package prefs provides the command that shows and changes display preferences.
package prefs

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/eventmaster/internal/cmd/application"
	"github.com/agentstation/eventmaster/internal/cmd/output"
	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/errors"
)

// NewCommand creates the prefs command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		GroupID: "management",
		Short:   "Show or change display preferences",
		Example: `  eventmaster prefs
  eventmaster prefs --dark --view tiles
  eventmaster prefs --dark=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := app.Board()
			if err != nil {
				return err
			}

			prefs := board.Preferences()
			changed := false
			if cmd.Flags().Changed("dark") {
				prefs.DarkMode, _ = cmd.Flags().GetBool("dark")
				changed = true
			}
			if cmd.Flags().Changed("view") {
				raw, _ := cmd.Flags().GetString("view")
				mode, err := annotations.ParseViewMode(raw)
				if err != nil {
					return errors.WrapValidation("view", err)
				}
				prefs.ViewMode = mode
				changed = true
			}

			if changed {
				if err := board.SetPreferences(prefs); err != nil {
					return err
				}
				app.Logger().Debug().
					Bool("dark_mode", prefs.DarkMode).
					Str("view_mode", string(prefs.ViewMode)).
					Msg("Preferences saved")
			}

			table := output.Data{
				Headers: []string{"Preference", "Value"},
				Rows: [][]string{
					{"Dark mode", boolText(prefs.DarkMode)},
					{"View", string(prefs.ViewMode)},
				},
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), prefs, table)
		},
	}

	cmd.Flags().Bool("dark", false, "use the dark theme")
	cmd.Flags().String("view", "", "layout: list, tiles")

	return cmd
}

func boolText(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
