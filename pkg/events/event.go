// Package events defines the records that flow through a merge run: the
// candidate events extracted from each source document and the merged events
// produced by reconciliation.
package events

import "strings"

// Source identifies which document a candidate event was extracted from.
type Source string

// String returns the string representation of a Source.
func (s Source) String() string {
	return string(s)
}

// Document sources.
const (
	SourceSeating Source = "seating" // Booked-rooms list, authoritative for room and time
	SourceMedia   Source = "media"   // Media and equipment order list
)

// Sources lists every source in pipeline order.
var Sources = []Source{SourceSeating, SourceMedia}

// notesNone is the sentinel extractors emit for an empty notes field.
const notesNone = "none"

// CandidateEvent is one record extracted from a single source document.
// Room and StartTime are expected on every record; everything else may be
// empty. Client, Contact and MediaItems are only filled by the media source.
// Date is DD.MM.YY or DD.MM.YYYY, times are 24h HH:MM.
type CandidateEvent struct {
	Date          string   `json:"date,omitempty" yaml:"date,omitempty"`
	StartTime     string   `json:"start_time" yaml:"start_time"`
	EndTime       string   `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Room          string   `json:"room" yaml:"room"`
	BookingName   string   `json:"booking_name,omitempty" yaml:"booking_name,omitempty"`
	EventName     string   `json:"event_name,omitempty" yaml:"event_name,omitempty"`
	Seating       string   `json:"seating,omitempty" yaml:"seating,omitempty"`
	Pax           int      `json:"pax,omitempty" yaml:"pax,omitempty"`
	Notes         string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Source        Source   `json:"source" yaml:"source"`
	Client        string   `json:"client,omitempty" yaml:"client,omitempty"`
	Contact       string   `json:"contact,omitempty" yaml:"contact,omitempty"`
	MediaItems    []string `json:"media_items,omitempty" yaml:"media_items,omitempty"`
	IsSetupOrTech bool     `json:"is_setup_or_tech,omitempty" yaml:"is_setup_or_tech,omitempty"`
}

// NotesText returns the notes with the "none" sentinel mapped to empty.
func (c CandidateEvent) NotesText() string {
	return cleanNotes(c.Notes)
}

// MergedEvent is one seating booking combined with every media order that
// matched it. Fields are never modified after a merge run creates them.
type MergedEvent struct {
	ID            string   `json:"id" yaml:"id"`
	Date          string   `json:"date,omitempty" yaml:"date,omitempty"`
	StartTime     string   `json:"start_time" yaml:"start_time"`
	EndTime       string   `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Room          string   `json:"room" yaml:"room"`
	BookingName   string   `json:"booking_name,omitempty" yaml:"booking_name,omitempty"`
	EventName     string   `json:"event_name,omitempty" yaml:"event_name,omitempty"`
	Seating       string   `json:"seating,omitempty" yaml:"seating,omitempty"`
	Pax           int      `json:"pax,omitempty" yaml:"pax,omitempty"`
	Notes         string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Client        string   `json:"client,omitempty" yaml:"client,omitempty"`
	Contact       string   `json:"contact,omitempty" yaml:"contact,omitempty"`
	MediaItems    []string `json:"media_items" yaml:"media_items"`
	IsSetupOrTech bool     `json:"is_setup_or_tech" yaml:"is_setup_or_tech"`

	// PrevEventID references the record directly before this one in the same
	// room after sorting. Empty for the first booking of a room.
	PrevEventID string `json:"prev_event_id,omitempty" yaml:"prev_event_id,omitempty"`
}

// NewMergedEvent copies the authoritative seating fields of c.
func NewMergedEvent(id string, c CandidateEvent) MergedEvent {
	return MergedEvent{
		ID:            id,
		Date:          c.Date,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		Room:          c.Room,
		BookingName:   c.BookingName,
		EventName:     c.EventName,
		Seating:       c.Seating,
		Pax:           c.Pax,
		Notes:         c.NotesText(),
		MediaItems:    []string{},
		IsSetupOrTech: c.IsSetupOrTech,
	}
}

// HasPrevious reports whether the event follows another booking in its room.
func (e MergedEvent) HasPrevious() bool {
	return e.PrevEventID != ""
}

// Title returns the event name, falling back to the booking name.
func (e MergedEvent) Title() string {
	if e.EventName != "" {
		return e.EventName
	}
	return e.BookingName
}

func cleanNotes(notes string) string {
	trimmed := strings.TrimSpace(notes)
	if strings.EqualFold(trimmed, notesNone) {
		return ""
	}
	return trimmed
}
