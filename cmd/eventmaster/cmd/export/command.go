// Package export provides commands that write the schedule in other formats.
package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/eventmaster/internal/cmd/application"
	"github.com/agentstation/eventmaster/internal/ical"
	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/errors"
)

// NewCommand creates the export command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export [format]",
		GroupID: "core",
		Short:   "Export the merged schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown export format: %s", args[0])
		},
	}

	cmd.AddCommand(NewICSCommand(app))

	return cmd
}

// NewICSCommand creates the export ics subcommand.
func NewICSCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export the schedule as an iCalendar file",
		Example: `  eventmaster export ics > tag.ics
  eventmaster export ics --out tag.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, _ := cmd.Flags().GetString("out")
			return runICS(cmd, app, out)
		},
	}

	cmd.Flags().String("out", "", "write to file instead of stdout")

	return cmd
}

func runICS(cmd *cobra.Command, app application.Application, out string) error {
	board, err := app.Board()
	if err != nil {
		return err
	}
	if board.Schedule().Len() == 0 {
		return errors.NewValidationError("schedule", nil, "no schedule merged yet")
	}

	var buf bytes.Buffer
	skipped, err := ical.New(app.Location()).Write(&buf, board.Schedule(), board.Annotations())
	if err != nil {
		return err
	}
	if skipped > 0 {
		app.Logger().Warn().Int("skipped", skipped).Msg("Events without readable date or time left out of calendar")
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d events to %s\n", board.Schedule().Len()-skipped, out)
	return nil
}
