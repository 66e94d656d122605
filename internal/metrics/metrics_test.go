package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventmaster/internal/metrics"
	"github.com/agentstation/eventmaster/pkg/events"
)

func TestMetricsRecorded(t *testing.T) {
	m := metrics.New()

	m.MergeRun(metrics.OutcomeSuccess)
	m.MergeRun(metrics.OutcomeSuccess)
	m.MergeRun(metrics.OutcomeError)
	m.ExtractionFailed(events.SourceMedia)
	m.Candidates(events.SourceSeating, 7)
	m.Reconciled(events.Stats{DroppedSeating: 2, MatchedMedia: 3, Merged: 5})
	m.ObserveStage(events.StepMerging, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, http.StatusOK, time.Millisecond)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	series := make(map[string]int)
	values := make(map[string]float64)
	for _, mf := range families {
		series[mf.GetName()] = len(mf.GetMetric())
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[mf.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[mf.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, 2, series["eventmaster_merge_runs_total"])
	assert.Equal(t, 3.0, values["eventmaster_merge_runs_total"])
	assert.Equal(t, 1.0, values["eventmaster_extraction_failures_total"])
	assert.Equal(t, 7.0, values["eventmaster_candidates_total"])
	assert.Equal(t, 2.0, values["eventmaster_dropped_seating_total"])
	assert.Equal(t, 3.0, values["eventmaster_matched_media_total"])
	assert.Equal(t, 5.0, values["eventmaster_merged_events"])
	assert.Equal(t, 1, series["eventmaster_stage_duration_seconds"])
	assert.Equal(t, 1.0, values["eventmaster_http_requests_total"])
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.Candidates(events.SourceMedia, 4)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `eventmaster_candidates_total{source="media"} 4`)
	assert.Contains(t, string(body), "go_goroutines")
}
