package handlers

import (
	"net/http"

	"github.com/agentstation/eventmaster/internal/server/response"
	"github.com/agentstation/eventmaster/internal/server/sse"
)

// HandleStatus handles GET /api/v1/status.
func (h *Handlers) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.board.Status())
}

// HandleStatusStream handles GET /api/v1/status/stream. The current status
// is sent right after connecting.
func (h *Handlers) HandleStatusStream(w http.ResponseWriter, r *http.Request) {
	h.sse.Serve(w, r, sse.Event{Event: sse.EventStatus, Data: h.board.Status()})
}
