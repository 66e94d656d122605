package reconciler

import (
	"slices"

	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/normalize"
)

// sortByRoom orders events by room, then start time. Equal keys keep their
// input order.
func sortByRoom(merged []events.MergedEvent) {
	cmp := normalize.NewComparer()
	slices.SortStableFunc(merged, func(a, b events.MergedEvent) int {
		return cmp.RoomThenTime(a.Room, a.StartTime, b.Room, b.StartTime)
	})
}

// link points each event at its predecessor when both share a room label.
func link(merged []events.MergedEvent) {
	for i := 1; i < len(merged); i++ {
		if merged[i].Room == merged[i-1].Room {
			merged[i].PrevEventID = merged[i-1].ID
		}
	}
}
