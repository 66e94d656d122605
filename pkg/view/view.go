// Package view filters and orders a merged schedule for display. It is pure
// and re-entrant: every call recomputes from the events and the current
// annotation state.
package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/normalize"
)

// Tab selects which events are shown.
type Tab string

// Tabs.
const (
	TabAll   Tab = "all"
	TabSetup Tab = "setup"
)

// SortKey selects the last ordering tier.
type SortKey string

// Sort keys.
const (
	SortByTime SortKey = "time"
	SortByRoom SortKey = "room"
)

// Keywords of setup, teardown and technical briefing entries.
var (
	setupBookingKeywords = []string{"aufbau", "abbau"}
	setupMediaKeywords   = []string{"einweisung"}
)

// Query describes one view of the schedule.
type Query struct {
	Tab    Tab     `json:"tab"`
	Search string  `json:"search"`
	Sort   SortKey `json:"sort"`
}

// ParseTab parses a tab name. Empty means all.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case "", TabAll:
		return TabAll, nil
	case TabSetup:
		return TabSetup, nil
	}
	return "", fmt.Errorf("unknown tab %q (want all or setup)", s)
}

// ParseSort parses a sort key. Empty means time.
func ParseSort(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByTime:
		return SortByTime, nil
	case SortByRoom:
		return SortByRoom, nil
	}
	return "", fmt.Errorf("unknown sort %q (want time or room)", s)
}

// Item is one displayed event with its annotation and derived warnings.
type Item struct {
	Event      events.MergedEvent     `json:"event"`
	Annotation annotations.Annotation `json:"annotation"`
	Warnings   []events.Warning       `json:"warnings,omitempty"`
}

// Apply returns the events matching q, ordered pinned first, then open
// before completed, then by the selected key. The input is not modified.
func Apply(list []events.MergedEvent, q Query, state annotations.Reader) []events.MergedEvent {
	if state == nil {
		state = annotations.NewMemory()
	}

	out := make([]events.MergedEvent, 0, len(list))
	for _, e := range list {
		if q.Tab == TabSetup && !IsSetup(e) {
			continue
		}
		if !Matches(e, q.Search, state.Get(e.ID).Note) {
			continue
		}
		out = append(out, e)
	}

	cmp := normalize.NewComparer()
	slices.SortStableFunc(out, func(a, b events.MergedEvent) int {
		sa, sb := state.Get(a.ID), state.Get(b.ID)
		if sa.Pinned != sb.Pinned {
			if sa.Pinned {
				return -1
			}
			return 1
		}
		if sa.Completed != sb.Completed {
			if sb.Completed {
				return -1
			}
			return 1
		}
		if q.Sort == SortByRoom {
			return cmp.RoomThenTime(a.Room, a.StartTime, b.Room, b.StartTime)
		}
		return cmp.TimeThenRoom(a.Room, a.StartTime, b.Room, b.StartTime)
	})
	return out
}

// Items runs Apply and attaches annotations and warnings. Back references
// are resolved against the full schedule, not the filtered list.
func Items(schedule *events.Schedule, q Query, state annotations.Reader) []Item {
	if schedule == nil {
		return []Item{}
	}
	if state == nil {
		state = annotations.NewMemory()
	}

	list := Apply(schedule.Events, q, state)
	items := make([]Item, len(list))
	for i, e := range list {
		items[i] = NewItem(schedule, e, state)
	}
	return items
}

// NewItem builds the display item of one event. Completed events carry no
// warnings.
func NewItem(schedule *events.Schedule, e events.MergedEvent, state annotations.Reader) Item {
	item := Item{Event: e}
	if state != nil {
		item.Annotation = state.Get(e.ID)
	}
	if item.Annotation.Completed {
		return item
	}
	if prev, ok := schedule.Previous(e); ok {
		item.Warnings = events.Warnings(e, &prev)
	}
	return item
}

// IsSetup reports whether e belongs on the setup tab.
func IsSetup(e events.MergedEvent) bool {
	if e.IsSetupOrTech {
		return true
	}
	if containsAny(strings.ToLower(e.BookingName), setupBookingKeywords) {
		return true
	}
	for _, item := range e.MediaItems {
		if containsAny(strings.ToLower(item), setupMediaKeywords) {
			return true
		}
	}
	return false
}

// Matches reports whether search occurs, ignoring case, in the room, the
// booking name, a media item or the note. An empty search matches all.
func Matches(e events.MergedEvent, search, note string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	fields := append([]string{e.Room, e.BookingName, note}, e.MediaItems...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
