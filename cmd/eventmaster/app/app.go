// Package app provides the application context and dependency management
// for the eventmaster CLI. It centralizes configuration, logging and the
// merge board shared by all commands.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/cmd/application"
	"github.com/agentstation/eventmaster/internal/extract"
	"github.com/agentstation/eventmaster/internal/metrics"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
)

// App represents the eventmaster application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config  *Config
	logger  *zerolog.Logger
	metrics *metrics.Metrics

	// Lazy-initialized singletons
	mu        sync.RWMutex
	board     eventmaster.Board
	extractor extract.Extractor
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		metrics: metrics.New(),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Metrics returns the metrics registry.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Location returns the configured time zone, falling back to UTC when it
// cannot be loaded.
func (a *App) Location() *time.Location {
	loc, err := a.config.Location()
	if err != nil {
		a.logger.Warn().Err(err).Str("timezone", a.config.Timezone).Msg("Falling back to UTC")
		return time.UTC
	}
	return loc
}

// Extractor returns the cached Gemini extractor, creating it on first use.
func (a *App) Extractor(ctx context.Context) (extract.Extractor, error) {
	a.mu.RLock()
	if a.extractor != nil {
		ex := a.extractor
		a.mu.RUnlock()
		return ex, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.extractor != nil {
		return a.extractor, nil
	}

	gemini, err := extract.NewGemini(ctx, extract.GeminiConfig{
		APIKey:         a.config.APIKey,
		Model:          a.config.Model,
		MaxPromptChars: a.config.MaxPromptChars,
		Timeout:        a.config.ExtractionTimeout,
	})
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("model", gemini.Model()).Msg("Created extractor")

	a.extractor = extract.NewCached(gemini, a.config.ExtractionCacheTTL)
	return a.extractor, nil
}

// Board returns the merge board. Without options the default instance is
// created lazily and reused; options produce a new instance layered on the
// default settings.
func (a *App) Board(opts ...eventmaster.Option) (eventmaster.Board, error) {
	if len(opts) > 0 {
		return a.newBoard(opts...)
	}

	a.mu.RLock()
	if a.board != nil {
		b := a.board
		a.mu.RUnlock()
		return b, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.board != nil {
		return a.board, nil
	}
	b, err := a.newBoard()
	if err != nil {
		return nil, err
	}
	a.board = b
	return b, nil
}

// newBoard builds a board on the configured state directory. The base
// extractor refuses to run so that read-only commands work without an API key.
func (a *App) newBoard(opts ...eventmaster.Option) (eventmaster.Board, error) {
	base := []eventmaster.Option{
		eventmaster.WithStateDir(a.config.StateDir),
		eventmaster.WithExtractor(extract.Func(unavailable)),
		eventmaster.WithParallelExtraction(a.config.ParallelExtraction),
		eventmaster.WithMetrics(a.metrics),
	}
	b, err := eventmaster.New(append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("state_dir", a.config.StateDir).Msg("Opened board")
	return b, nil
}

func unavailable(context.Context, string, events.Source) ([]events.CandidateEvent, error) {
	return nil, &errors.ConfigError{Component: "extractor", Message: "not configured for this command"}
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	ex := a.extractor
	a.mu.RUnlock()

	if cached, ok := ex.(*extract.Cached); ok {
		a.logger.Debug().Int("entries", cached.Len()).Msg("Dropping extraction cache")
		cached.Clear()
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithBoard sets a custom default board (useful for testing).
func WithBoard(b eventmaster.Board) Option {
	return func(a *App) error {
		a.board = b
		return nil
	}
}

// WithExtractor sets a custom extractor (useful for testing).
func WithExtractor(ex extract.Extractor) Option {
	return func(a *App) error {
		a.extractor = ex
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
