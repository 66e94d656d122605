package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/eventmaster/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "eventmaster-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	status := h.board.Status()
	response.OK(w, map[string]any{
		"status":      "ready",
		"uptime":      time.Since(h.startTime).Round(time.Second).String(),
		"events":      h.board.Schedule().Len(),
		"merge_step":  status.Step,
		"sse_clients": h.sse.ClientCount(),
		"cache":       h.views.GetStats(),
	})
}
