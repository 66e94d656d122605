package normalize_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/eventmaster/pkg/normalize"
)

func TestTimeOrdinal(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"14:30", 1430, true},
		{"09:00", 900, true},
		{"9:05", 905, true},
		{" 08:15 ", 815, true},
		{"08.15", 815, true},
		{"10:00 Uhr", 1000, true},
		{"", 0, false},
		{"abends", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalize.TimeOrdinal(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimesMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same time", "09:00", "09:00", true},
		{"ten minutes later", "09:00", "09:10", true},
		{"forty nine apart", "09:00", "09:49", true},
		{"fifty apart", "09:00", "09:50", false},
		// ordinal distance 55 across the hour, although only 15 minutes
		{"hour boundary", "13:45", "14:00", false},
		{"unparsable", "09:00", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.TimesMatch(tt.a, tt.b))
			assert.Equal(t, tt.want, normalize.TimesMatch(tt.b, tt.a))
		})
	}
}

func TestIsInvalidRoom(t *testing.T) {
	assert.True(t, normalize.IsInvalidRoom("vor dem Raum A1"))
	assert.True(t, normalize.IsInvalidRoom("  In dem Raum  "))
	assert.False(t, normalize.IsInvalidRoom("Raum A1"))
	assert.False(t, normalize.IsInvalidRoom(""))
}

func TestRoomsMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"A1", "A1", true},
		{"A1", "Saal A1", true},
		{"saal a1", "A1", true},
		{"A1", "B2", false},
		{"", "A1", false},
		{"  ", "A1", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.RoomsMatch(tt.a, tt.b))
			// symmetric under the containment rule
			assert.Equal(t, normalize.RoomsMatch(tt.a, tt.b), normalize.RoomsMatch(tt.b, tt.a))
		})
	}
}

func TestComparerRooms(t *testing.T) {
	c := normalize.NewComparer()
	rooms := []string{"Room 10", "Room 2", "Room 1", "Foyer"}
	slices.SortStableFunc(rooms, c.Rooms)
	assert.Equal(t, []string{"Foyer", "Room 1", "Room 2", "Room 10"}, rooms)
}

func TestComparerTieBreaks(t *testing.T) {
	c := normalize.NewComparer()
	assert.Negative(t, c.RoomThenTime("A1", "10:00", "A1", "11:00"))
	assert.Negative(t, c.RoomThenTime("A1", "11:00", "B1", "09:00"))
	assert.Negative(t, c.TimeThenRoom("B1", "09:00", "A1", "11:00"))
	assert.Negative(t, c.TimeThenRoom("A1", "09:00", "B1", "09:00"))
	assert.Zero(t, c.TimeThenRoom("A1", "09:00", "A1", "09:00"))
}
