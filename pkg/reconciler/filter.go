package reconciler

import (
	"strings"

	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/normalize"
)

// filter drops seating rows that must never reach matching.
type filter struct{}

// newFilter creates a new filter
func newFilter() *filter {
	return &filter{}
}

// seating returns the valid seating rows, preserving order.
func (f *filter) seating(candidates []events.CandidateEvent) []events.CandidateEvent {
	kept := make([]events.CandidateEvent, 0, len(candidates))
	for _, c := range candidates {
		if f.valid(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

// valid reports whether c has a usable room and start time.
func (f *filter) valid(c events.CandidateEvent) bool {
	if strings.TrimSpace(c.Room) == "" || strings.TrimSpace(c.StartTime) == "" {
		return false
	}
	return !normalize.IsInvalidRoom(c.Room)
}

// FilterSeating removes seating rows with a context-phrase room or a
// missing room or start time. Applying it twice equals applying it once.
func FilterSeating(candidates []events.CandidateEvent) []events.CandidateEvent {
	return newFilter().seating(candidates)
}
