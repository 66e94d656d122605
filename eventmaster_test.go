package eventmaster_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/metrics"
	"github.com/agentstation/eventmaster/internal/pipeline"
	"github.com/agentstation/eventmaster/internal/testhelper"
	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/view"
)

func newBoard(t *testing.T, opts ...eventmaster.Option) eventmaster.Board {
	t.Helper()
	base := []eventmaster.Option{
		eventmaster.WithTextReader(testhelper.PlainReader{}),
		eventmaster.WithExtractor(testhelper.Extractor(testhelper.DayFixture())),
	}
	b, err := eventmaster.New(append(base, opts...)...)
	require.NoError(t, err)
	return b
}

func mergeDay(t *testing.T, b eventmaster.Board) *events.Schedule {
	t.Helper()
	seating, media := testhelper.Documents()
	schedule, err := b.Merge(context.Background(), seating, media)
	require.NoError(t, err)
	return schedule
}

func TestNewRequiresExtractor(t *testing.T) {
	_, err := eventmaster.New()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestMerge(t *testing.T) {
	b := newBoard(t)
	assert.Equal(t, events.StepIdle, b.Status().Step)
	assert.Zero(t, b.Schedule().Len())

	schedule := mergeDay(t, b)
	require.Equal(t, 3, schedule.Len())
	assert.Equal(t, events.StepComplete, b.Status().Step)

	ids := make([]string, 0, 3)
	for _, e := range b.Events() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"evt-0", "evt-2", "evt-1"}, ids)

	first, err := b.Event("evt-0")
	require.NoError(t, err)
	assert.Equal(t, []string{"Beamer", "Flipchart"}, first.MediaItems)
	assert.Equal(t, "Acme", first.Client)

	prev, err := b.Previous("evt-2")
	require.NoError(t, err)
	assert.Equal(t, "evt-0", prev.ID)

	_, err = b.Previous("evt-0")
	assert.True(t, errors.IsNotFound(err))

	_, err = b.Event("evt-9")
	assert.True(t, errors.IsNotFound(err))
}

func TestPrevious(t *testing.T) {
	b := newBoard(t)

	_, err := b.Previous("evt-2")
	assert.True(t, errors.IsNotFound(err), "empty board")

	mergeDay(t, b)

	tests := []struct {
		name    string
		id      string
		want    string
		wantErr bool
	}{
		{name: "later event in same room", id: "evt-2", want: "evt-0"},
		{name: "first event in room", id: "evt-0", wantErr: true},
		{name: "only event in room", id: "evt-1", wantErr: true},
		{name: "unknown id", id: "evt-42", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, err := b.Previous(tt.id)
			if tt.wantErr {
				assert.True(t, errors.IsNotFound(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, prev.ID)
			assert.Equal(t, "Parlament", prev.Seating)
		})
	}
}

func TestMergeFailureKeepsSchedule(t *testing.T) {
	b := newBoard(t)
	mergeDay(t, b)

	var (
		mu    sync.Mutex
		steps []events.Step
	)
	b.OnStatus(func(s events.Status) {
		mu.Lock()
		defer mu.Unlock()
		steps = append(steps, s.Step)
	})

	_, media := testhelper.Documents()
	_, err := b.Merge(context.Background(), pipeline.Document{Name: "bad.pdf", Data: []byte("corrupt")}, media)
	require.Error(t, err)
	assert.True(t, errors.IsPipelineError(err))

	assert.Equal(t, 3, b.Schedule().Len())
	status := b.Status()
	assert.Equal(t, events.StepError, status.Step)
	assert.NotEmpty(t, status.Error)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []events.Step{events.StepExtractingText, events.StepError}, steps)
}

func TestViewAndWarnings(t *testing.T) {
	b := newBoard(t)
	mergeDay(t, b)

	items := b.View(view.Query{})
	require.Len(t, items, 3)
	assert.Equal(t, "evt-1", items[0].Event.ID)

	setup := b.View(view.Query{Tab: view.TabSetup})
	require.Len(t, setup, 1)
	assert.Equal(t, "evt-1", setup[0].Event.ID)

	item, err := b.Item("evt-2")
	require.NoError(t, err)
	require.Len(t, item.Warnings, 1)
	assert.Equal(t, "Parlament", item.Warnings[0].Previous)
	assert.Equal(t, "U-Form", item.Warnings[0].Current)
}

func TestAnnotations(t *testing.T) {
	b := newBoard(t)
	mergeDay(t, b)

	var annotated []string
	b.OnAnnotated(func(id string, _ annotations.Annotation) {
		annotated = append(annotated, id)
	})

	a, err := b.TogglePin("evt-2")
	require.NoError(t, err)
	assert.True(t, a.Pinned)

	a, err = b.ToggleComplete("evt-1")
	require.NoError(t, err)
	assert.True(t, a.Completed)

	a, err = b.SetNote("evt-0", "Schlüssel an der Rezeption")
	require.NoError(t, err)
	assert.Equal(t, "Schlüssel an der Rezeption", a.Note)

	done := false
	a, err = b.Annotate("evt-1", annotations.Patch{Completed: &done})
	require.NoError(t, err)
	assert.False(t, a.Completed)

	_, err = b.TogglePin("evt-9")
	assert.True(t, errors.IsNotFound(err))

	assert.Equal(t, []string{"evt-2", "evt-1", "evt-0", "evt-1"}, annotated)
	assert.True(t, b.Annotation("evt-2").Pinned)

	items := b.View(view.Query{Search: "rezeption"})
	require.Len(t, items, 1)
	assert.Equal(t, "evt-0", items[0].Event.ID)

	items = b.View(view.Query{})
	assert.Equal(t, "evt-2", items[0].Event.ID)
}

func TestReset(t *testing.T) {
	b := newBoard(t)
	mergeDay(t, b)
	_, err := b.TogglePin("evt-0")
	require.NoError(t, err)

	reset := false
	b.OnReset(func() { reset = true })

	require.NoError(t, b.Reset())
	assert.True(t, reset)
	assert.Zero(t, b.Schedule().Len())
	assert.NotNil(t, b.Schedule().Events)
	assert.Equal(t, events.StepIdle, b.Status().Step)
	assert.False(t, b.Annotation("evt-0").Pinned)
}

func TestStateDirPersistence(t *testing.T) {
	dir := t.TempDir()

	b := newBoard(t, eventmaster.WithStateDir(dir))
	mergeDay(t, b)
	_, err := b.TogglePin("evt-1")
	require.NoError(t, err)
	require.NoError(t, b.SetPreferences(annotations.Preferences{DarkMode: true, ViewMode: annotations.ViewTiles}))

	for _, name := range []string{constants.ScheduleFile, constants.AnnotationsFile, constants.PreferencesFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	reopened := newBoard(t, eventmaster.WithStateDir(dir))
	assert.Equal(t, 3, reopened.Schedule().Len())
	assert.Equal(t, events.StepComplete, reopened.Status().Step)
	assert.True(t, reopened.Annotation("evt-1").Pinned)
	assert.Equal(t, annotations.Preferences{DarkMode: true, ViewMode: annotations.ViewTiles}, reopened.Preferences())

	require.NoError(t, reopened.Reset())
	_, err = os.Stat(filepath.Join(dir, constants.ScheduleFile))
	assert.True(t, os.IsNotExist(err))
}

func TestSetPreferencesValidation(t *testing.T) {
	b := newBoard(t)
	assert.Equal(t, annotations.DefaultPreferences(), b.Preferences())

	err := b.SetPreferences(annotations.Preferences{ViewMode: "grid"})
	assert.True(t, errors.IsValidationError(err))

	require.NoError(t, b.SetPreferences(annotations.Preferences{DarkMode: true}))
	assert.Equal(t, annotations.ViewList, b.Preferences().ViewMode)
}

func TestMergedHookAndMetrics(t *testing.T) {
	m := metrics.New()
	b := newBoard(t, eventmaster.WithMetrics(m), eventmaster.WithParallelExtraction(true))

	var sizes []int
	b.OnMerged(func(old, new *events.Schedule) {
		sizes = append(sizes, old.Len(), new.Len())
	})

	mergeDay(t, b)
	mergeDay(t, b)
	assert.Equal(t, []int{0, 3, 3, 3}, sizes)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "eventmaster_merged_events" {
			found = true
			assert.InDelta(t, 3, f.GetMetric()[0].GetGauge().GetValue(), 0)
		}
	}
	assert.True(t, found)
}
