package handlers

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/server/response"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/logging"
)

// Multipart form fields of a merge upload.
const (
	FieldSeating = "seating"
	FieldMedia   = "media"
)

// MergeResult is the answer of a successful merge.
type MergeResult struct {
	Events   int          `json:"events"`
	MergedAt string       `json:"merged_at"`
	Date     string       `json:"date,omitempty"`
	Weekday  string       `json:"weekday,omitempty"`
	Stats    events.Stats `json:"stats"`
}

// HandleMerge handles POST /api/v1/merge with a multipart upload of the
// seating and media PDFs.
func (h *Handlers) HandleMerge(w http.ResponseWriter, r *http.Request) {
	if h.limits.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(h.limits.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			response.RequestTooLarge(w, err.Error())
			return
		}
		response.BadRequest(w, "Invalid multipart upload", err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	seating, err := formDocument(r, FieldSeating)
	if err != nil {
		response.BadRequest(w, "Missing seating document", err.Error())
		return
	}
	media, err := formDocument(r, FieldMedia)
	if err != nil {
		response.BadRequest(w, "Missing media document", err.Error())
		return
	}

	ctx := r.Context()
	if h.limits.MergeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.limits.MergeTimeout)
		defer cancel()
	}

	schedule, err := h.board.Merge(ctx, seating, media)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Merge failed")
		response.ErrorFromType(w, err)
		return
	}

	result := MergeResult{
		Events:   schedule.Len(),
		MergedAt: schedule.MergedAt.Format(time.RFC3339),
		Date:     schedule.DisplayDate(),
		Stats:    schedule.Stats,
	}
	if result.Date != "" {
		result.Weekday = events.Weekday(result.Date)
	}
	response.OK(w, result)
}

// formDocument reads one uploaded file.
func formDocument(r *http.Request, field string) (eventmaster.Document, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return eventmaster.Document{}, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return eventmaster.Document{}, err
	}
	return eventmaster.Document{Name: header.Filename, Data: data}, nil
}
