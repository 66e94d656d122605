package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventmaster/pkg/events"
)

func TestSeatingChanged(t *testing.T) {
	tests := []struct {
		name string
		cur  string
		prev string
		want bool
	}{
		{"different arrangements", "Classroom", "Theatre", true},
		{"same arrangement", "Theatre", "Theatre", false},
		{"current empty", "", "Theatre", false},
		{"previous empty", "Theatre", "", false},
		{"case differs", "theatre", "Theatre", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := events.MergedEvent{ID: "evt-1", Seating: tt.cur}
			prev := events.MergedEvent{ID: "evt-0", Seating: tt.prev}
			assert.Equal(t, tt.want, events.SeatingChanged(cur, prev))
		})
	}
}

func TestWarnings(t *testing.T) {
	prev := events.MergedEvent{ID: "evt-0", Seating: "Theatre", BookingName: "4711 Vortrag"}
	cur := events.MergedEvent{ID: "evt-1", Seating: "Classroom", PrevEventID: "evt-0"}

	warnings := events.Warnings(cur, &prev)
	require.Len(t, warnings, 1)
	assert.Equal(t, events.WarningSeatingChange, warnings[0].Kind)
	assert.Equal(t, "Theatre", warnings[0].Previous)
	assert.Equal(t, "Classroom", warnings[0].Current)
	assert.Equal(t, "4711 Vortrag", warnings[0].PreviousBooking)
	assert.Equal(t, "Seating change: Theatre -> Classroom (previously 4711 Vortrag)", warnings[0].Message)

	unnamed := events.MergedEvent{ID: "evt-0", Seating: "Theatre"}
	warnings = events.Warnings(cur, &unnamed)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Seating change: Theatre -> Classroom", warnings[0].Message)

	assert.Empty(t, events.Warnings(cur, nil))
	same := events.MergedEvent{ID: "evt-2", Seating: "Theatre"}
	assert.Empty(t, events.Warnings(same, &prev))
}

func TestNewMergedEvent(t *testing.T) {
	c := events.CandidateEvent{
		Date:          "12.03.25",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Room:          "A1",
		BookingName:   "B1",
		Seating:       "Theatre",
		Pax:           40,
		Notes:         "none",
		Source:        events.SourceSeating,
		IsSetupOrTech: true,
	}

	e := events.NewMergedEvent("evt-0", c)
	assert.Equal(t, "evt-0", e.ID)
	assert.Equal(t, "A1", e.Room)
	assert.Equal(t, 40, e.Pax)
	assert.Empty(t, e.Notes)
	assert.NotNil(t, e.MediaItems)
	assert.Empty(t, e.MediaItems)
	assert.True(t, e.IsSetupOrTech)
	assert.False(t, e.HasPrevious())
	assert.Equal(t, "B1", e.Title())
}

func TestScheduleLookup(t *testing.T) {
	s := &events.Schedule{Events: []events.MergedEvent{
		{ID: "evt-1", Room: "A1", StartTime: "09:00", Date: "12.03.25"},
		{ID: "evt-0", Room: "A1", StartTime: "11:00", PrevEventID: "evt-1"},
	}}

	e, ok := s.Event("evt-0")
	require.True(t, ok)
	prev, ok := s.Previous(e)
	require.True(t, ok)
	assert.Equal(t, "evt-1", prev.ID)

	_, ok = s.Previous(prev)
	assert.False(t, ok)
	_, ok = s.Event("evt-9")
	assert.False(t, ok)

	assert.Equal(t, "12.03.25", s.DisplayDate())

	var empty *events.Schedule
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.DisplayDate())
}

func TestWeekday(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"12.03.25", "Mittwoch"},
		{"12.03.2025", "Mittwoch"},
		{"01.01.24", "Montag"},
		{"31.02.25", ""},
		{"2025-03-12", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, events.Weekday(tt.date))
		})
	}
}

func TestStatus(t *testing.T) {
	s := events.NewStatus(events.StepAnalyzingMedia)
	assert.Equal(t, events.StepAnalyzingMedia, s.Step)
	assert.NotEmpty(t, s.Message)
	assert.False(t, s.Step.Done())

	e := events.ErrorStatus(errors.New("boom"))
	assert.Equal(t, events.StepError, e.Step)
	assert.Equal(t, "boom", e.Error)
	assert.NotEmpty(t, e.Message)
	assert.True(t, e.Step.Done())
	assert.True(t, events.StepComplete.Done())
}
