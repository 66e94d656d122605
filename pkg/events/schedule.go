package events

import "time"

// Schedule is the result of one merge run. A new run replaces it entirely.
type Schedule struct {
	Events   []MergedEvent `json:"events"`
	MergedAt time.Time     `json:"merged_at"`
	Stats    Stats         `json:"stats"`
}

// Stats summarizes how a merge run used its inputs.
type Stats struct {
	SeatingCandidates int `json:"seating_candidates"`
	MediaCandidates   int `json:"media_candidates"`
	DroppedSeating    int `json:"dropped_seating"`
	MatchedMedia      int `json:"matched_media"`
	Merged            int `json:"merged"`
}

// Len returns the number of merged events.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Events)
}

// Event returns the event with the given id.
func (s *Schedule) Event(id string) (MergedEvent, bool) {
	if s == nil {
		return MergedEvent{}, false
	}
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return MergedEvent{}, false
}

// Previous resolves the PrevEventID back reference of e.
func (s *Schedule) Previous(e MergedEvent) (MergedEvent, bool) {
	if !e.HasPrevious() {
		return MergedEvent{}, false
	}
	return s.Event(e.PrevEventID)
}

// DisplayDate returns the date of the first event, or empty.
func (s *Schedule) DisplayDate() string {
	if s.Len() == 0 {
		return ""
	}
	return s.Events[0].Date
}
