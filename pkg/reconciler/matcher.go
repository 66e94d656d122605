package reconciler

import (
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/normalize"
)

// Matcher decides whether a media record belongs to a seating record.
type Matcher interface {
	Match(seating, media events.CandidateEvent) bool
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(seating, media events.CandidateEvent) bool

// Match calls f.
func (f MatcherFunc) Match(seating, media events.CandidateEvent) bool {
	return f(seating, media)
}

// ProximityMatcher matches when either room label contains the other and
// the start time ordinals are less than Tolerance apart.
type ProximityMatcher struct {
	Tolerance int
}

// NewProximityMatcher creates a ProximityMatcher.
func NewProximityMatcher(tolerance int) *ProximityMatcher {
	return &ProximityMatcher{Tolerance: tolerance}
}

// Match implements Matcher.
func (p *ProximityMatcher) Match(seating, media events.CandidateEvent) bool {
	return normalize.RoomsMatch(seating.Room, media.Room) &&
		normalize.TimesWithin(seating.StartTime, media.StartTime, p.Tolerance)
}
