package reconciler_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/reconciler"
)

func seat(room, start string, opts ...func(*events.CandidateEvent)) events.CandidateEvent {
	c := events.CandidateEvent{Room: room, StartTime: start, Source: events.SourceSeating}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func media(room, start string, opts ...func(*events.CandidateEvent)) events.CandidateEvent {
	c := events.CandidateEvent{Room: room, StartTime: start, Source: events.SourceMedia}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func items(v ...string) func(*events.CandidateEvent) {
	return func(c *events.CandidateEvent) { c.MediaItems = v }
}

func seating(v string) func(*events.CandidateEvent) {
	return func(c *events.CandidateEvent) { c.Seating = v }
}

func merge(t *testing.T, s, m []events.CandidateEvent) []events.MergedEvent {
	t.Helper()
	r, err := reconciler.New()
	require.NoError(t, err)
	res, err := r.Merge(context.Background(), s, m)
	require.NoError(t, err)
	return res.Events
}

func TestMergeSingleMatch(t *testing.T) {
	s := []events.CandidateEvent{seat("A1", "09:00", func(c *events.CandidateEvent) {
		c.EndTime = "10:00"
		c.BookingName = "B1"
		c.Seating = "Theatre"
	})}
	m := []events.CandidateEvent{media("A1", "09:10", items("Beamer"), func(c *events.CandidateEvent) {
		c.Client = "Acme"
	})}

	got := merge(t, s, m)
	require.Len(t, got, 1)
	assert.Equal(t, "evt-0", got[0].ID)
	assert.Equal(t, []string{"Beamer"}, got[0].MediaItems)
	assert.Equal(t, "Acme", got[0].Client)
	assert.Equal(t, "Theatre", got[0].Seating)
	assert.Equal(t, "10:00", got[0].EndTime)
}

func TestMergeNoMatch(t *testing.T) {
	got := merge(t,
		[]events.CandidateEvent{seat("A1", "09:00")},
		[]events.CandidateEvent{media("B2", "09:00", items("Beamer"), func(c *events.CandidateEvent) { c.Client = "Acme" })},
	)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].MediaItems)
	assert.Empty(t, got[0].Client)
	assert.Empty(t, got[0].Contact)
}

func TestMergeDropsInvalidRooms(t *testing.T) {
	got := merge(t,
		[]events.CandidateEvent{
			seat("vor dem Raum A1", "09:00"),
			seat("A1", "11:00"),
			seat("", "12:00"),
			seat("B2", ""),
		},
		[]events.CandidateEvent{media("vor dem Raum A1", "09:00", items("Flipchart"))},
	)

	require.Len(t, got, 1)
	assert.Equal(t, "A1", got[0].Room)
	// ids index the filtered list
	assert.Equal(t, "evt-0", got[0].ID)
}

func TestMergeFanIn(t *testing.T) {
	got := merge(t,
		[]events.CandidateEvent{seat("Saal A1", "09:00", func(c *events.CandidateEvent) { c.IsSetupOrTech = false })},
		[]events.CandidateEvent{
			media("A1", "08:55", items("Beamer", "Mikrofon")),
			media("saal a1", "09:20", items("Mikrofon", "Flipchart"), func(c *events.CandidateEvent) {
				c.Client = "Acme"
				c.IsSetupOrTech = true
			}),
			media("A1", "09:30", items("Tisch"), func(c *events.CandidateEvent) {
				c.Client = "Other"
				c.Contact = "Frau Meier"
			}),
			media("A1", "10:00", items("Stuhlreihen")),
		},
	)

	require.Len(t, got, 1)
	e := got[0]
	assert.Equal(t, []string{"Beamer", "Mikrofon", "Flipchart", "Tisch"}, e.MediaItems)
	assert.Equal(t, "Acme", e.Client)
	assert.Equal(t, "Frau Meier", e.Contact)
	assert.True(t, e.IsSetupOrTech)
}

func TestMergeIgnoresUnmatchableMedia(t *testing.T) {
	got := merge(t,
		[]events.CandidateEvent{seat("A1", "09:00")},
		[]events.CandidateEvent{
			media("", "09:00", items("Beamer")),
			media("A1", "", items("Flipchart")),
		},
	)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].MediaItems)
}

func TestMergeSortAndLink(t *testing.T) {
	got := merge(t,
		[]events.CandidateEvent{
			seat("Room 10", "09:00", seating("Theatre")),
			seat("Room 2", "14:00", seating("Classroom")),
			seat("Room 2", "09:00", seating("Theatre")),
			seat("Room 10", "13:00", seating("Theatre")),
		},
		nil,
	)

	require.Len(t, got, 4)
	order := make([]string, len(got))
	for i, e := range got {
		order[i] = fmt.Sprintf("%s@%s", e.Room, e.StartTime)
	}
	assert.Equal(t, []string{"Room 2@09:00", "Room 2@14:00", "Room 10@09:00", "Room 10@13:00"}, order)

	assert.Equal(t, []string{"evt-2", "evt-1", "evt-0", "evt-3"},
		[]string{got[0].ID, got[1].ID, got[2].ID, got[3].ID})

	assert.Empty(t, got[0].PrevEventID)
	assert.Equal(t, "evt-2", got[1].PrevEventID)
	assert.Empty(t, got[2].PrevEventID)
	assert.Equal(t, "evt-0", got[3].PrevEventID)

	// adjacency correctness over the whole list
	for i := 1; i < len(got); i++ {
		if got[i].Room == got[i-1].Room {
			assert.Equal(t, got[i-1].ID, got[i].PrevEventID)
		} else {
			assert.Empty(t, got[i].PrevEventID)
		}
	}
}

func TestMergeSeatingChange(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
		want   bool
	}{
		{"changed", "Theatre", "Classroom", true},
		{"unchanged", "Theatre", "Theatre", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := merge(t,
				[]events.CandidateEvent{
					seat("A1", "13:00", seating(tt.second)),
					seat("A1", "09:00", seating(tt.first)),
				},
				nil,
			)
			require.Len(t, got, 2)
			schedule := &events.Schedule{Events: got}
			prev, ok := schedule.Previous(got[1])
			require.True(t, ok)
			assert.Equal(t, tt.want, events.SeatingChanged(got[1], prev))
		})
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	assert.Empty(t, merge(t, nil, nil))
	assert.Empty(t, merge(t, nil, []events.CandidateEvent{media("A1", "09:00")}))

	got := merge(t, []events.CandidateEvent{seat("A1", "09:00")}, nil)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].MediaItems)
}

func TestMergeDeterministic(t *testing.T) {
	s := []events.CandidateEvent{
		seat("B", "10:00"), seat("A", "10:00"), seat("A", "09:00"), seat("A", "09:00"),
	}
	first := merge(t, s, nil)
	second := merge(t, s, nil)
	assert.Equal(t, first, second)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	m := []events.CandidateEvent{
		media("A1", "09:00", items("Beamer", "Beamer")),
	}
	_ = merge(t, []events.CandidateEvent{seat("A1", "09:00")}, m)
	assert.Equal(t, []string{"Beamer", "Beamer"}, m[0].MediaItems)
}

func TestMergeStats(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	res, err := r.Merge(context.Background(),
		[]events.CandidateEvent{seat("A1", "09:00"), seat("in dem Raum", "09:00")},
		[]events.CandidateEvent{media("A1", "09:00"), media("C3", "09:00")},
	)
	require.NoError(t, err)

	stats := res.Metadata.Stats
	assert.Equal(t, 2, stats.SeatingCandidates)
	assert.Equal(t, 2, stats.MediaCandidates)
	assert.Equal(t, 1, stats.DroppedSeating)
	assert.Equal(t, 1, stats.MatchedMedia)
	assert.Equal(t, 1, stats.Merged)
	assert.Equal(t, 1, res.Schedule().Len())
}

func TestMergeCanceled(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Merge(ctx, nil, nil)
	assert.True(t, errors.IsPipelineError(err))
	assert.True(t, errors.IsCanceled(err))
}

func TestFilterSeatingIdempotent(t *testing.T) {
	in := []events.CandidateEvent{
		seat("vor dem Raum A1", "09:00"),
		seat("A1", "09:00"),
		seat("In dem Raum B", "10:00"),
		seat("B", "10:00"),
	}
	once := reconciler.FilterSeating(in)
	twice := reconciler.FilterSeating(once)
	assert.Equal(t, once, twice)
	assert.Len(t, once, 2)
}

func TestOptions(t *testing.T) {
	_, err := reconciler.New(reconciler.WithTolerance(0))
	assert.True(t, errors.IsValidationError(err))

	_, err = reconciler.New(reconciler.WithMatcher(nil))
	assert.True(t, errors.IsValidationError(err))

	_, err = reconciler.New(reconciler.WithIDPrefix(" "))
	assert.True(t, errors.IsValidationError(err))

	r, err := reconciler.New(
		reconciler.WithIDPrefix("row-"),
		reconciler.WithTolerance(100),
	)
	require.NoError(t, err)
	res, err := r.Merge(context.Background(),
		[]events.CandidateEvent{seat("A1", "09:00")},
		[]events.CandidateEvent{media("A1", "09:55", items("Beamer"))},
	)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "row-0", res.Events[0].ID)
	assert.Equal(t, []string{"Beamer"}, res.Events[0].MediaItems)
}

func TestWithMatcher(t *testing.T) {
	exactRoom := reconciler.MatcherFunc(func(s, m events.CandidateEvent) bool {
		return s.Room == m.Room
	})
	r, err := reconciler.New(reconciler.WithMatcher(exactRoom))
	require.NoError(t, err)

	res, err := r.Merge(context.Background(),
		[]events.CandidateEvent{seat("A1", "09:00")},
		[]events.CandidateEvent{media("A1", "18:00", items("Beamer")), media("Saal A1", "09:00", items("Tisch"))},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beamer"}, res.Events[0].MediaItems)
}
