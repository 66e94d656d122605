package events

import "fmt"

// WarningKind classifies a derived warning.
type WarningKind string

// Warning kinds.
const (
	WarningSeatingChange WarningKind = "seating_change"
)

// Warning is a display-only signal derived from a merged event and its
// predecessor. Warnings are never stored.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Message  string      `json:"message"`
	Previous string      `json:"previous,omitempty"`
	Current  string      `json:"current,omitempty"`

	// PreviousBooking names the booking the previous arrangement belongs to.
	PreviousBooking string `json:"previousBooking,omitempty"`
}

// SeatingChanged reports whether the arrangement differs from the previous
// booking in the same room. Both values must be set; no synonyms are folded.
func SeatingChanged(cur, prev MergedEvent) bool {
	return cur.Seating != "" && prev.Seating != "" && cur.Seating != prev.Seating
}

// Warnings computes the warnings for e given its predecessor, if any.
func Warnings(e MergedEvent, prev *MergedEvent) []Warning {
	if prev == nil {
		return nil
	}
	var out []Warning
	if SeatingChanged(e, *prev) {
		msg := fmt.Sprintf("Seating change: %s -> %s", prev.Seating, e.Seating)
		if prev.BookingName != "" {
			msg += fmt.Sprintf(" (previously %s)", prev.BookingName)
		}
		out = append(out, Warning{
			Kind:            WarningSeatingChange,
			Message:         msg,
			Previous:        prev.Seating,
			Current:         e.Seating,
			PreviousBooking: prev.BookingName,
		})
	}
	return out
}
