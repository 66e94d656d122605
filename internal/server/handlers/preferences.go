package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/eventmaster/internal/server/response"
)

// HandleGetPreferences handles GET /api/v1/preferences.
func (h *Handlers) HandleGetPreferences(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.board.Preferences())
}

// HandleSetPreferences handles PUT /api/v1/preferences.
func (h *Handlers) HandleSetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs := h.board.Preferences()
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		response.BadRequest(w, "Invalid preferences body", err.Error())
		return
	}
	if err := h.board.SetPreferences(prefs); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, h.board.Preferences())
}
