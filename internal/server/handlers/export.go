package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/agentstation/eventmaster/internal/server/response"
	"github.com/agentstation/eventmaster/pkg/logging"
)

// HandleExportICS handles GET /api/v1/events.ics.
func (h *Handlers) HandleExportICS(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	skipped, err := h.exporter.Write(&buf, h.board.Schedule(), h.board.Annotations())
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Calendar export failed")
		response.InternalError(w, err)
		return
	}
	if skipped > 0 {
		logging.FromContext(r.Context()).Warn().Int("skipped", skipped).Msg("Events without readable date or time left out of calendar")
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="eventmaster.ics"`)
	w.Header().Set("X-Skipped-Events", strconv.Itoa(skipped))
	_, _ = w.Write(buf.Bytes())
}
