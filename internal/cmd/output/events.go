package output

import (
	"strconv"
	"strings"

	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/view"
)

// Items renders a board view as one row per event.
type Items []view.Item

// TableData implements Tabular.
func (items Items) TableData(wide bool) Data {
	data := Data{
		Headers:         []string{"ID", "Time", "Room", "Booking", "Pax", "Seating", "Media", "Flags"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
	if wide {
		data.Headers = append(data.Headers, "Client", "Contact", "Note", "Warnings")
		data.ColumnAlignment = append(data.ColumnAlignment, AlignLeft, AlignLeft, AlignLeft, AlignLeft)
	}

	for _, item := range items {
		e := item.Event
		row := []string{
			e.ID,
			timeRange(e),
			e.Room,
			e.Title(),
			pax(e.Pax),
			e.Seating,
			strings.Join(e.MediaItems, ", "),
			flags(item),
		}
		if wide {
			row = append(row, e.Client, e.Contact, item.Annotation.Note, warnings(item.Warnings))
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// Detail renders one event as property rows.
type Detail struct {
	Item     view.Item
	Previous *events.MergedEvent
}

// TableData implements Tabular.
func (d Detail) TableData(_ bool) Data {
	e := d.Item.Event
	date := e.Date
	if wd := events.Weekday(e.Date); wd != "" {
		date = wd + ", " + e.Date
	}

	rows := [][]string{
		{"ID", e.ID},
		{"Date", date},
		{"Time", timeRange(e)},
		{"Room", e.Room},
		{"Booking", e.BookingName},
		{"Event", e.EventName},
		{"Seating", e.Seating},
		{"Pax", pax(e.Pax)},
		{"Client", e.Client},
		{"Contact", e.Contact},
		{"Media", strings.Join(e.MediaItems, ", ")},
		{"Notes", e.Notes},
		{"Setup/Tech", yesNo(view.IsSetup(e))},
	}
	if d.Previous != nil {
		rows = append(rows, []string{"Previous", d.Previous.ID + " " + timeRange(*d.Previous) + " " + d.Previous.Title()})
	}
	rows = append(rows,
		[]string{"Pinned", yesNo(d.Item.Annotation.Pinned)},
		[]string{"Completed", yesNo(d.Item.Annotation.Completed)},
		[]string{"Note", d.Item.Annotation.Note},
	)
	if len(d.Item.Warnings) > 0 {
		rows = append(rows, []string{"Warnings", warnings(d.Item.Warnings)})
	}

	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

func timeRange(e events.MergedEvent) string {
	if e.EndTime == "" {
		return e.StartTime
	}
	return e.StartTime + "-" + e.EndTime
}

func pax(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func flags(item view.Item) string {
	var out []string
	if item.Annotation.Pinned {
		out = append(out, "pinned")
	}
	if item.Annotation.Completed {
		out = append(out, "done")
	}
	if view.IsSetup(item.Event) {
		out = append(out, "setup")
	}
	if len(item.Warnings) > 0 {
		out = append(out, "warning")
	}
	return strings.Join(out, ",")
}

func warnings(ws []events.Warning) string {
	msgs := make([]string, len(ws))
	for i, w := range ws {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
