// Package server provides the HTTP API for a merge board.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/cache"
	"github.com/agentstation/eventmaster/internal/ical"
	"github.com/agentstation/eventmaster/internal/metrics"
	"github.com/agentstation/eventmaster/internal/server/middleware"
	"github.com/agentstation/eventmaster/internal/server/sse"
	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/view"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	board          eventmaster.Board
	metrics        *metrics.Metrics
	views          *cache.Cache[[]view.Item]
	sseBroadcaster *sse.Broadcaster
	rateLimiter    *middleware.RateLimiter
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// New creates a server for board. A nil m disables the metrics endpoint
// and request metrics.
func New(board eventmaster.Board, m *metrics.Metrics, logger *zerolog.Logger, cfg Config) (*Server, error) {
	logger.Debug().Msg("Creating new server instance")

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/api/v1"
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		board:          board,
		metrics:        m,
		views:          cache.New[[]view.Item](cfg.CacheTTL, constants.CacheCleanupInterval),
		sseBroadcaster: sse.NewBroadcaster(logger),
		logger:         logger,
		config:         cfg,
		ctx:            ctx,
		cancel:         cancel,
		startTime:      time.Now(),
	}
	if cfg.MergeRateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.MergeRateLimit, logger)
	}

	s.connectHooks()
	logger.Debug().Msg("Server instance created successfully")
	return s, nil
}

// connectHooks forwards board changes to the stream and drops cached views.
func (s *Server) connectHooks() {
	s.board.OnStatus(func(status events.Status) {
		s.sseBroadcaster.Broadcast(sse.Event{Event: sse.EventStatus, Data: status})
	})

	s.board.OnMerged(func(_, schedule *events.Schedule) {
		s.views.Clear()
		s.sseBroadcaster.Broadcast(sse.Event{
			Event: sse.EventScheduleMerged,
			Data: map[string]any{
				"events":    schedule.Len(),
				"merged_at": schedule.MergedAt,
				"date":      schedule.DisplayDate(),
			},
		})
		s.logger.Debug().Int("events", schedule.Len()).Msg("Schedule merged event published")
	})

	s.board.OnAnnotated(func(id string, a annotations.Annotation) {
		s.views.Clear()
		s.sseBroadcaster.Broadcast(sse.Event{
			Event: sse.EventAnnotationChanged,
			Data:  map[string]any{"id": id, "annotation": a},
		})
	})

	s.board.OnReset(func() {
		s.views.Clear()
		s.sseBroadcaster.Broadcast(sse.Event{Event: sse.EventBoardReset, Data: map[string]any{}})
	})
}

// Start starts background services.
func (s *Server) Start() {
	s.logger.Debug().Msg("Starting background services")
	go s.sseBroadcaster.Run(s.ctx)
	if s.rateLimiter != nil {
		go s.rateLimiter.Run(s.ctx)
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server for the configured address and timeouts.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
}

// Shutdown stops background services.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()
	return nil
}

// SSEBroadcaster returns the SSE broadcaster.
func (s *Server) SSEBroadcaster() *sse.Broadcaster {
	return s.sseBroadcaster
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

func (s *Server) exporter() *ical.Exporter {
	return ical.New(s.config.Location)
}
