// Package testhelper provides fakes and fixtures shared by package tests.
package testhelper

import (
	"context"
	stderrors "errors"
	"io"
	"strings"

	"github.com/agentstation/eventmaster/internal/extract"
	"github.com/agentstation/eventmaster/internal/pipeline"
	"github.com/agentstation/eventmaster/pkg/events"
)

// PlainReader treats document bytes as already extracted text. Documents
// starting with "corrupt" fail like an unreadable PDF.
type PlainReader struct{}

// Text implements pdf.TextReader.
func (PlainReader) Text(_ context.Context, r io.ReaderAt, size int64) (string, error) {
	data, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(string(data), "corrupt") {
		return "", stderrors.New("not a PDF file")
	}
	return string(data), nil
}

// Fixture is a pair of candidate lists returned by Extractor.
type Fixture struct {
	Seating []events.CandidateEvent
	Media   []events.CandidateEvent
}

// Extractor returns the fixture lists per source, ignoring the text.
func Extractor(f Fixture) extract.Extractor {
	return extract.Func(func(_ context.Context, _ string, source events.Source) ([]events.CandidateEvent, error) {
		if source == events.SourceSeating {
			return f.Seating, nil
		}
		return f.Media, nil
	})
}

// DayFixture is a small venue day: two events in one room, one in another,
// a foyer row that gets filtered and two media orders.
func DayFixture() Fixture {
	return Fixture{
		Seating: []events.CandidateEvent{
			{Date: "12.03.2025", Room: "Saal 2", StartTime: "09:00", EndTime: "12:00", BookingName: "Vorstand", Seating: "Parlament", Pax: 20},
			{Date: "12.03.2025", Room: "Saal 10", StartTime: "08:00", EndTime: "09:00", BookingName: "Aufbau Messe", Seating: "Leer", IsSetupOrTech: true},
			{Date: "12.03.2025", Room: "Saal 2", StartTime: "14:00", EndTime: "17:00", BookingName: "Workshop", Seating: "U-Form", Pax: 12},
			{Date: "12.03.2025", Room: "vor dem Raum Saal 2", StartTime: "09:00", BookingName: "Kaffee"},
		},
		Media: []events.CandidateEvent{
			{Room: "2", StartTime: "09:15", MediaItems: []string{"Beamer", "Flipchart"}, Client: "Acme", Contact: "Frau Meier"},
			{Room: "Saal 2", StartTime: "14:00", MediaItems: []string{"Beamer"}},
		},
	}
}

// Documents returns two non-empty documents for PlainReader.
func Documents() (pipeline.Document, pipeline.Document) {
	return pipeline.Document{Name: "seating.pdf", Data: []byte("seating text")},
		pipeline.Document{Name: "media.pdf", Data: []byte("media text")}
}
