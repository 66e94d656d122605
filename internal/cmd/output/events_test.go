package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/view"
)

func sampleItems() Items {
	return Items{
		{
			Event: events.MergedEvent{
				ID: "evt-0", Date: "12.03.2025", StartTime: "09:00", EndTime: "12:00",
				Room: "Saal 2", EventName: "Vorstand", Seating: "Parlament", Pax: 40,
				Client: "Acme", MediaItems: []string{"Beamer", "Flipchart"},
			},
			Annotation: annotations.Annotation{Pinned: true, Note: "Wasser"},
		},
		{
			Event: events.MergedEvent{
				ID: "evt-1", Date: "12.03.2025", StartTime: "14:00",
				Room: "Saal 2", BookingName: "Workshop", Seating: "U-Form", MediaItems: []string{},
				PrevEventID: "evt-0",
			},
			Warnings: []events.Warning{{Kind: events.WarningSeatingChange, Message: "Parlament -> U-Form"}},
		},
	}
}

func TestItemsTableData(t *testing.T) {
	data := sampleItems().TableData(false)
	require.Len(t, data.Headers, 8)
	require.Len(t, data.ColumnAlignment, 8)
	require.Len(t, data.Rows, 2)

	assert.Equal(t, []string{"evt-0", "09:00-12:00", "Saal 2", "Vorstand", "40", "Parlament", "Beamer, Flipchart", "pinned"}, data.Rows[0])
	assert.Equal(t, "14:00", data.Rows[1][1])
	assert.Equal(t, "Workshop", data.Rows[1][3])
	assert.Empty(t, data.Rows[1][4])
	assert.Equal(t, "warning", data.Rows[1][7])
}

func TestItemsTableDataWide(t *testing.T) {
	data := sampleItems().TableData(true)
	require.Len(t, data.Headers, 12)
	assert.Equal(t, "Acme", data.Rows[0][8])
	assert.Equal(t, "Wasser", data.Rows[0][10])
	assert.Equal(t, "Parlament -> U-Form", data.Rows[1][11])
}

func TestFlags(t *testing.T) {
	item := view.Item{
		Event:      events.MergedEvent{BookingName: "Auf-Abbau", IsSetupOrTech: true},
		Annotation: annotations.Annotation{Pinned: true, Completed: true},
	}
	assert.Equal(t, "pinned,done,setup", flags(item))
}

func TestDetailTableData(t *testing.T) {
	items := sampleItems()
	prev := items[0].Event
	data := Detail{Item: items[1], Previous: &prev}.TableData(false)

	rows := map[string]string{}
	for _, row := range data.Rows {
		rows[row[0]] = row[1]
	}
	assert.Equal(t, "Mittwoch, 12.03.2025", rows["Date"])
	assert.Equal(t, "evt-0 09:00-12:00 Vorstand", rows["Previous"])
	assert.Equal(t, "no", rows["Pinned"])
	assert.Equal(t, "Parlament -> U-Form", rows["Warnings"])
}

func TestItemsRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, sampleItems()))
	assert.Contains(t, buf.String(), "evt-1")
	assert.Contains(t, buf.String(), "Beamer, Flipchart")
}
