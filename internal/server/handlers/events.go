package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/agentstation/eventmaster/internal/server/response"
	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/view"
)

// HandleListEvents handles GET /api/v1/events?tab=&q=&sort=.
func (h *Handlers) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	key := cacheKey(q)
	if items, ok := h.views.Get(key); ok {
		response.OK(w, items)
		return
	}

	items := h.board.View(q)
	h.views.Set(key, items)
	response.OK(w, items)
}

// HandleGetEvent handles GET /api/v1/events/{id}.
func (h *Handlers) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	item, err := h.board.Item(r.PathValue("id"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, item)
}

// HandleAnnotate handles PUT /api/v1/events/{id}/annotation with a partial
// body of {completed?, pinned?, note?}.
func (h *Handlers) HandleAnnotate(w http.ResponseWriter, r *http.Request) {
	var patch annotations.Patch
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid annotation body", err.Error())
		return
	}

	a, err := h.board.Annotate(r.PathValue("id"), patch)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, a)
}

// HandleTogglePin handles POST /api/v1/events/{id}/pin.
func (h *Handlers) HandleTogglePin(w http.ResponseWriter, r *http.Request) {
	a, err := h.board.TogglePin(r.PathValue("id"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, a)
}

// HandleToggleComplete handles POST /api/v1/events/{id}/complete.
func (h *Handlers) HandleToggleComplete(w http.ResponseWriter, r *http.Request) {
	a, err := h.board.ToggleComplete(r.PathValue("id"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, a)
}

// HandleReset handles DELETE /api/v1/reset.
func (h *Handlers) HandleReset(w http.ResponseWriter, _ *http.Request) {
	if err := h.board.Reset(); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, h.board.Status())
}

// parseQuery reads the view query parameters.
func parseQuery(r *http.Request) (view.Query, error) {
	values := r.URL.Query()

	tab, err := view.ParseTab(values.Get("tab"))
	if err != nil {
		return view.Query{}, errors.WrapValidation("tab", err)
	}
	sort, err := view.ParseSort(values.Get("sort"))
	if err != nil {
		return view.Query{}, errors.WrapValidation("sort", err)
	}
	return view.Query{Tab: tab, Search: values.Get("q"), Sort: sort}, nil
}

func cacheKey(q view.Query) string {
	return strings.Join([]string{string(q.Tab), string(q.Sort), strings.ToLower(q.Search)}, "|")
}
