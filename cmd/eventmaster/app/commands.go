package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/eventmaster/cmd/eventmaster/cmd/annotate"
	"github.com/agentstation/eventmaster/cmd/eventmaster/cmd/events"
	"github.com/agentstation/eventmaster/cmd/eventmaster/cmd/export"
	"github.com/agentstation/eventmaster/cmd/eventmaster/cmd/merge"
	"github.com/agentstation/eventmaster/cmd/eventmaster/cmd/prefs"
	"github.com/agentstation/eventmaster/cmd/eventmaster/cmd/reset"
	"github.com/agentstation/eventmaster/cmd/eventmaster/cmd/serve"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(merge.NewCommand(a))
	rootCmd.AddCommand(events.NewListCommand(a))
	rootCmd.AddCommand(events.NewShowCommand(a))
	rootCmd.AddCommand(export.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Annotation commands
	rootCmd.AddCommand(annotate.NewPinCommand(a))
	rootCmd.AddCommand(annotate.NewDoneCommand(a))
	rootCmd.AddCommand(annotate.NewNoteCommand(a))

	// Management commands
	rootCmd.AddCommand(reset.NewCommand(a))
	rootCmd.AddCommand(prefs.NewCommand(a))

	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("eventmaster %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
