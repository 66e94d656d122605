// Package serve provides the HTTP API server command.
package serve

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/cmd/application"
	"github.com/agentstation/eventmaster/internal/server"
	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/errors"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the REST API server",
		Long: `Start the HTTP API for the merge board.

Features:
  - PDF upload and merge (POST /api/v1/merge)
  - Filtered and sorted event views with annotations
  - Merge progress over Server-Sent Events (/api/v1/status/stream)
  - iCalendar export (/api/v1/events.ics)
  - Optional API key authentication and CORS
  - Prometheus metrics (/metrics)`,
		Example: `  eventmaster serve
  eventmaster serve --port 3000 --cors-origins https://board.example.com
  SERVER_API_KEY=secret eventmaster serve --auth`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Location = app.Location()
			return runServer(cmd, app, cfg)
		},
	}

	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	cmd.Flags().Bool("auth", false, "Require an API key (read from SERVER_API_KEY)")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Authentication header name")

	cmd.Flags().Int("merge-rate-limit", defaults.MergeRateLimit, "Merge requests per minute per IP (0 to disable)")
	cmd.Flags().Int64("max-upload", defaults.MaxUploadBytes, "Maximum size of one uploaded PDF in bytes")
	cmd.Flags().Duration("merge-timeout", defaults.MergeTimeout, "Maximum duration of one merge run")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "View cache TTL")

	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout (0 keeps streams open)")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "Enable metrics endpoint")

	return cmd
}

// runServer starts the API server.
func runServer(cmd *cobra.Command, app application.Application, cfg server.Config) error {
	logger := app.Logger()

	ex, err := app.Extractor(cmd.Context())
	if err != nil {
		return err
	}
	board, err := app.Board(eventmaster.WithExtractor(ex))
	if err != nil {
		return err
	}

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("merge_rate_limit", cfg.MergeRateLimit).
		Int("events", board.Schedule().Len()).
		Msg("Starting API server")

	m := app.Metrics()
	if !cfg.MetricsEnabled {
		m = nil
	}
	srv, err := server.New(board, m, logger, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Start()

	httpServer := srv.HTTPServer(net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	return startWithGracefulShutdown(cmd, httpServer, srv, logger)
}

// parseConfig parses command flags into server configuration.
func parseConfig(cmd *cobra.Command) (server.Config, error) {
	cfg := server.DefaultConfig()
	flags := cmd.Flags()

	cfg.Port, _ = flags.GetInt("port")
	cfg.Host, _ = flags.GetString("host")
	cfg.PathPrefix, _ = flags.GetString("prefix")
	cfg.CORSEnabled, _ = flags.GetBool("cors")
	cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	cfg.AuthEnabled, _ = flags.GetBool("auth")
	cfg.AuthHeader, _ = flags.GetString("auth-header")
	cfg.MergeRateLimit, _ = flags.GetInt("merge-rate-limit")
	cfg.MaxUploadBytes, _ = flags.GetInt64("max-upload")
	cfg.MergeTimeout, _ = flags.GetDuration("merge-timeout")
	cfg.CacheTTL, _ = flags.GetDuration("cache-ttl")
	cfg.ReadTimeout, _ = flags.GetDuration("read-timeout")
	cfg.WriteTimeout, _ = flags.GetDuration("write-timeout")
	cfg.IdleTimeout, _ = flags.GetDuration("idle-timeout")
	cfg.MetricsEnabled, _ = flags.GetBool("metrics")

	// Environment overrides
	if envPort := os.Getenv("HTTP_PORT"); envPort != "" {
		port, err := parsePort(envPort)
		if err != nil {
			return server.Config{}, err
		}
		cfg.Port = port
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" {
		cfg.Host = envHost
	}

	if cfg.AuthEnabled {
		cfg.APIKey = os.Getenv("SERVER_API_KEY")
		if cfg.APIKey == "" {
			return server.Config{}, &errors.ConfigError{
				Component: "server",
				Message:   "--auth requires SERVER_API_KEY",
			}
		}
	}

	return cfg, nil
}

// parsePort parses and range-checks a port string.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, errors.NewValidationError("port", portStr, "not a number")
	}
	if port < 1 || port > 65535 {
		return 0, errors.NewValidationError("port", port, "out of range")
	}
	return port, nil
}

// startWithGracefulShutdown serves until the command context is cancelled,
// then drains connections.
func startWithGracefulShutdown(cmd *cobra.Command, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		fmt.Fprintf(cmd.ErrOrStderr(), "API server listening on %s\n", httpServer.Addr)
		fmt.Fprintln(cmd.ErrOrStderr(), "   Press Ctrl+C to stop")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-cmd.Context().Done():
		logger.Info().Msg("Shutdown signal received")
		fmt.Fprintln(cmd.ErrOrStderr(), "\nShutting down API server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		// stop the broadcaster first so open event streams return
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Dur("uptime", time.Since(srv.StartTime())).Msg("Server stopped gracefully")
		fmt.Fprintln(cmd.ErrOrStderr(), "API server stopped gracefully")
		return nil
	}
}
