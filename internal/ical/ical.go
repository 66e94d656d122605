// Package ical exports a merged schedule as an iCalendar feed.
package ical

import (
	"fmt"
	"io"
	"strings"
	"time"

	goical "github.com/emersion/go-ical"

	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/view"
)

const productID = "-//agentstation//eventmaster//DE"

const emptyCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + productID + "\r\nEND:VCALENDAR\r\n"

// Exporter writes schedules as VCALENDAR documents.
type Exporter struct {
	loc *time.Location
	now func() time.Time
}

// New creates an Exporter interpreting dates and times in loc.
func New(loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.Local
	}
	return &Exporter{loc: loc, now: time.Now}
}

// Calendar builds the calendar for schedule. Events whose date or start
// time cannot be read are skipped and counted.
func (x *Exporter) Calendar(schedule *events.Schedule, state annotations.Reader) (*goical.Calendar, int) {
	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, productID)

	skipped := 0
	stamp := x.now().UTC()
	for _, e := range scheduleEvents(schedule) {
		start, end, ok := x.span(e)
		if !ok {
			skipped++
			continue
		}

		var note annotations.Annotation
		if state != nil {
			note = state.Get(e.ID)
		}

		ev := goical.NewEvent()
		ev.Props.SetText(goical.PropUID, uid(e))
		ev.Props.SetDateTime(goical.PropDateTimeStamp, stamp)
		ev.Props.SetDateTime(goical.PropDateTimeStart, start)
		ev.Props.SetDateTime(goical.PropDateTimeEnd, end)
		ev.Props.SetText(goical.PropSummary, e.Title())
		ev.Props.SetText(goical.PropLocation, e.Room)
		if desc := description(schedule, e, note); desc != "" {
			ev.Props.SetText(goical.PropDescription, desc)
		}
		if view.IsSetup(e) {
			ev.Props.SetText(goical.PropCategories, "SETUP")
		}
		if note.Completed {
			ev.Props.SetText(goical.PropStatus, "CONFIRMED")
		}
		cal.Children = append(cal.Children, ev.Component)
	}
	return cal, skipped
}

// Write encodes the calendar for schedule to w and returns how many events
// were skipped. A calendar without events is written as an empty VCALENDAR.
func (x *Exporter) Write(w io.Writer, schedule *events.Schedule, state annotations.Reader) (int, error) {
	cal, skipped := x.Calendar(schedule, state)
	if len(cal.Children) == 0 {
		// go-ical refuses to encode a calendar without components.
		if _, err := io.WriteString(w, emptyCalendar); err != nil {
			return skipped, fmt.Errorf("encoding calendar: %w", err)
		}
		return skipped, nil
	}
	if err := goical.NewEncoder(w).Encode(cal); err != nil {
		return skipped, fmt.Errorf("encoding calendar: %w", err)
	}
	return skipped, nil
}

// span resolves the start and end of e. A missing or earlier end time
// becomes one hour after the start.
func (x *Exporter) span(e events.MergedEvent) (time.Time, time.Time, bool) {
	day, ok := events.ParseDate(e.Date)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	start, ok := clock(day, e.StartTime, x.loc)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := clock(day, e.EndTime, x.loc)
	if !ok || !end.After(start) {
		end = start.Add(time.Hour)
	}
	return start, end, true
}

func clock(day time.Time, hhmm string, loc *time.Location) (time.Time, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), true
}

func uid(e events.MergedEvent) string {
	return fmt.Sprintf("%s-%s-%s@eventmaster", e.ID, strings.ReplaceAll(e.Date, ".", ""), strings.ReplaceAll(e.StartTime, ":", ""))
}

func description(schedule *events.Schedule, e events.MergedEvent, note annotations.Annotation) string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}

	add("Buchung", e.BookingName)
	add("Bestuhlung", e.Seating)
	if e.Pax > 0 {
		add("Pax", fmt.Sprint(e.Pax))
	}
	add("Medien", strings.Join(e.MediaItems, ", "))
	add("Kunde", e.Client)
	add("Kontakt", e.Contact)
	add("Hinweis", e.Notes)
	add("Notiz", note.Note)

	if prev, ok := schedule.Previous(e); ok && !note.Completed {
		for _, w := range events.Warnings(e, &prev) {
			lines = append(lines, w.Message)
		}
	}
	return strings.Join(lines, "\n")
}

func scheduleEvents(s *events.Schedule) []events.MergedEvent {
	if s == nil {
		return nil
	}
	return s.Events
}
