// Package application provides the application interface for eventmaster commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            board, err := app.Board()
//	            if err != nil {
//	                return err
//	            }
//	            // ... use board
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    BoardFunc: func(...eventmaster.Option) (eventmaster.Board, error) {
//	        return testBoard, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/extract"
	"github.com/agentstation/eventmaster/internal/metrics"
)

// Application provides the application interface that commands need.
// The App struct from cmd/eventmaster/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Board returns the merge board backed by the configured state directory.
	// Without options the default instance is returned (lazy-initialized, cached).
	// With options a new instance is created on top of the default settings.
	Board(opts ...eventmaster.Option) (eventmaster.Board, error)

	// Extractor returns the configured LLM extractor. It fails when no API
	// key is configured.
	Extractor(ctx context.Context) (extract.Extractor, error)

	// Metrics returns the process-wide metrics registry.
	Metrics() *metrics.Metrics

	// Location returns the time zone event times are interpreted in.
	Location() *time.Location

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
