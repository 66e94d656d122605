// Package annotate provides the commands that pin, check off and note events.
package annotate

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/cmd/application"
	"github.com/agentstation/eventmaster/internal/cmd/output"
	"github.com/agentstation/eventmaster/pkg/annotations"
)

// NewPinCommand creates the pin command.
func NewPinCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "pin <id>",
		GroupID: "annotate",
		Short:   "Toggle whether an event is pinned to the top",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return apply(cmd, app, args[0], func(b eventmaster.Board) (annotations.Annotation, error) {
				return b.TogglePin(args[0])
			})
		},
	}
}

// NewDoneCommand creates the done command.
func NewDoneCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete"},
		GroupID: "annotate",
		Short:   "Toggle whether an event is checked off",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return apply(cmd, app, args[0], func(b eventmaster.Board) (annotations.Annotation, error) {
				return b.ToggleComplete(args[0])
			})
		},
	}
}

// NewNoteCommand creates the note command.
func NewNoteCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note <id> [text...]",
		GroupID: "annotate",
		Short:   "Set the personal note of an event",
		Example: `  eventmaster note evt-3 Wasser auf die Tische
  eventmaster note evt-3 --clear`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clearNote, _ := cmd.Flags().GetBool("clear")
			if !clearNote && len(args) < 2 {
				return fmt.Errorf("note text required (use --clear to remove the note)")
			}
			note := ""
			if !clearNote {
				note = strings.Join(args[1:], " ")
			}
			return apply(cmd, app, args[0], func(b eventmaster.Board) (annotations.Annotation, error) {
				return b.SetNote(args[0], note)
			})
		},
	}

	cmd.Flags().Bool("clear", false, "remove the note")

	return cmd
}

func apply(cmd *cobra.Command, app application.Application, id string, fn func(eventmaster.Board) (annotations.Annotation, error)) error {
	board, err := app.Board()
	if err != nil {
		return err
	}
	if _, err := fn(board); err != nil {
		return err
	}

	app.Logger().Debug().Str("event_id", id).Msg("Annotation updated")

	item, err := board.Item(id)
	if err != nil {
		return err
	}
	return output.Print(cmd.OutOrStdout(), app.OutputFormat(), item, output.Items{item})
}
