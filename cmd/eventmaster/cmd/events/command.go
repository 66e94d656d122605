// Package events provides the commands that show the merged schedule.
package events

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/eventmaster/internal/cmd/application"
	"github.com/agentstation/eventmaster/internal/cmd/output"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/view"
)

// NewListCommand creates the list command.
func NewListCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List merged events",
		Long: `List shows the merged schedule. Pinned events come first, then open
events before completed ones, then the selected sort order.`,
		Example: `  eventmaster list
  eventmaster list --tab setup
  eventmaster list --search beamer --sort room -o wide`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tab, _ := cmd.Flags().GetString("tab")
			search, _ := cmd.Flags().GetString("search")
			sortKey, _ := cmd.Flags().GetString("sort")
			return runList(cmd, app, tab, search, sortKey)
		},
	}

	cmd.Flags().String("tab", "all", "tab to show: all, setup")
	cmd.Flags().StringP("search", "s", "", "filter by room, booking, media item or note")
	cmd.Flags().String("sort", "time", "sort order: time, room")

	return cmd
}

func runList(cmd *cobra.Command, app application.Application, tab, search, sortKey string) error {
	q, err := parseQuery(tab, search, sortKey)
	if err != nil {
		return err
	}

	board, err := app.Board()
	if err != nil {
		return err
	}

	items := board.View(q)
	if board.Schedule().Len() == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No schedule merged yet. Run 'eventmaster merge' first.")
	} else {
		header := fmt.Sprintf("%d of %d events", len(items), board.Schedule().Len())
		if date := board.Schedule().DisplayDate(); date != "" {
			header = date + ": " + header
		}
		fmt.Fprintln(cmd.ErrOrStderr(), header)
	}

	return output.Print(cmd.OutOrStdout(), app.OutputFormat(), items, output.Items(items))
}

func parseQuery(tab, search, sortKey string) (view.Query, error) {
	t, err := view.ParseTab(tab)
	if err != nil {
		return view.Query{}, errors.WrapValidation("tab", err)
	}
	s, err := view.ParseSort(sortKey)
	if err != nil {
		return view.Query{}, errors.WrapValidation("sort", err)
	}
	return view.Query{Tab: t, Search: search, Sort: s}, nil
}

// NewShowCommand creates the show command.
func NewShowCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		GroupID: "core",
		Short:   "Show one merged event",
		Example: `  eventmaster show evt-3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := app.Board()
			if err != nil {
				return err
			}

			item, err := board.Item(args[0])
			if err != nil {
				return err
			}

			detail := output.Detail{Item: item}
			if prev, err := board.Previous(item.Event.ID); err == nil {
				detail.Previous = &prev
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), item, detail)
		},
	}
}
