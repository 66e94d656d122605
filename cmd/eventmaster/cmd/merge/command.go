// Package merge provides the command that runs a merge of the seating and media lists.
package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/cmd/application"
	"github.com/agentstation/eventmaster/internal/cmd/output"
	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/logging"
	"github.com/agentstation/eventmaster/pkg/view"
)

// NewCommand creates the merge command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "merge <seating.pdf> <media.pdf>",
		GroupID: "core",
		Short:   "Merge the booked-rooms list and the media order list",
		Long: `Merge extracts both PDF documents with the configured LLM and combines
them into one schedule. Seating rows are authoritative; media orders are
matched to them by room and start time.

The new schedule replaces the stored one. A failed run keeps the previous
schedule.`,
		Example: `  eventmaster merge raeume.pdf medien.pdf
  eventmaster merge raeume.pdf medien.pdf --parallel -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args[0], args[1])
		},
	}

	cmd.Flags().Bool("parallel", false, "extract both documents concurrently")
	cmd.Flags().Duration("timeout", constants.MergeTimeout, "maximum duration of the merge run")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, seatingPath, mediaPath string) error {
	logger := app.Logger()

	seating, err := readDocument(seatingPath)
	if err != nil {
		return err
	}
	media, err := readDocument(mediaPath)
	if err != nil {
		return err
	}

	ex, err := app.Extractor(cmd.Context())
	if err != nil {
		return err
	}

	opts := []eventmaster.Option{eventmaster.WithExtractor(ex)}
	if cmd.Flags().Changed("parallel") {
		parallel, _ := cmd.Flags().GetBool("parallel")
		opts = append(opts, eventmaster.WithParallelExtraction(parallel))
	}
	board, err := app.Board(opts...)
	if err != nil {
		return err
	}
	board.OnStatus(func(s events.Status) {
		logger.Info().Str("step", s.Step.String()).Msg(s.Message)
	})

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(logging.WithLogger(cmd.Context(), logger), timeout)
	defer cancel()

	start := time.Now()
	schedule, err := board.Merge(ctx, seating, media)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("Merged %d events", schedule.Len())
	if date := schedule.DisplayDate(); date != "" {
		if weekday := events.Weekday(date); weekday != "" {
			date = weekday + ", " + date
		}
		summary += " for " + date
	}
	logger.Debug().
		Int("dropped_seating", schedule.Stats.DroppedSeating).
		Int("matched_media", schedule.Stats.MatchedMedia).
		Dur("duration", time.Since(start)).
		Msg("Merge finished")
	fmt.Fprintln(cmd.ErrOrStderr(), summary)

	items := board.View(view.Query{})
	return output.Print(cmd.OutOrStdout(), app.OutputFormat(), items, output.Items(items))
}

func readDocument(path string) (eventmaster.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return eventmaster.Document{}, errors.WrapIO("read", path, err)
	}
	return eventmaster.Document{Name: filepath.Base(path), Data: data}, nil
}
