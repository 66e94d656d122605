package server

import (
	"net/http"

	"github.com/agentstation/eventmaster/internal/server/handlers"
	"github.com/agentstation/eventmaster/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.board,
		s.views,
		s.sseBroadcaster,
		s.exporter(),
		handlers.Limits{
			MaxUploadBytes: s.config.MaxUploadBytes,
			MergeTimeout:   s.config.MergeTimeout,
		},
		s.logger,
	)

	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Merge runs
	var merge http.Handler = http.HandlerFunc(h.HandleMerge)
	if s.rateLimiter != nil {
		merge = middleware.RateLimit(s.rateLimiter)(merge)
	}
	mux.Handle("POST "+prefix+"/merge", merge)
	mux.HandleFunc("GET "+prefix+"/status", h.HandleStatus)
	mux.HandleFunc("GET "+prefix+"/status/stream", h.HandleStatusStream)

	// Events and annotations
	mux.HandleFunc("GET "+prefix+"/events", h.HandleListEvents)
	mux.HandleFunc("GET "+prefix+"/events.ics", h.HandleExportICS)
	mux.HandleFunc("GET "+prefix+"/events/{id}", h.HandleGetEvent)
	mux.HandleFunc("PUT "+prefix+"/events/{id}/annotation", h.HandleAnnotate)
	mux.HandleFunc("POST "+prefix+"/events/{id}/pin", h.HandleTogglePin)
	mux.HandleFunc("POST "+prefix+"/events/{id}/complete", h.HandleToggleComplete)
	mux.HandleFunc("DELETE "+prefix+"/reset", h.HandleReset)

	// Preferences
	mux.HandleFunc("GET "+prefix+"/preferences", h.HandleGetPreferences)
	mux.HandleFunc("PUT "+prefix+"/preferences", h.HandleSetPreferences)

	if s.config.MetricsEnabled && s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// applyMiddleware wraps handler with the middleware chain. Request ids are
// assigned first so every later layer can log them.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	var observe middleware.ObserveFunc
	if s.metrics != nil {
		observe = s.metrics.ObserveRequest
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger, observe),
	)(handler)
}
