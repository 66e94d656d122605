// Package reset provides the command that clears the board.
package reset

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/eventmaster/internal/cmd/application"
)

// NewCommand creates the reset command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reset",
		GroupID: "management",
		Short:   "Clear the merged schedule and all annotations",
		Long: `Reset removes the stored schedule together with every pin, check-off and
note. Preferences are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !confirm(cmd) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted")
				return nil
			}

			board, err := app.Board()
			if err != nil {
				return err
			}
			if err := board.Reset(); err != nil {
				return err
			}

			app.Logger().Info().Msg("Board reset")
			fmt.Fprintln(cmd.ErrOrStderr(), "Schedule and annotations cleared")
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func confirm(cmd *cobra.Command) bool {
	fmt.Fprint(cmd.ErrOrStderr(), "Clear the schedule and all annotations? [y/N] ")
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "j", "ja":
		return true
	default:
		return false
	}
}
