package extract

import (
	"fmt"

	"google.golang.org/genai"

	"github.com/agentstation/eventmaster/pkg/events"
)

const seatingPrompt = `Extract event data from this 'Gebuchte Räume' (Seating List) PDF text.
The text is messy OCR. Look for patterns like dates (DD.MM.YY), time ranges (HH:MM - HH:MM), rooms, seating types, pax, and event names.
Detect if the event is an "Auf-Abbau" (Setup/Teardown) or technical instruction and set isSetupOrTech to true.

Text Content:
%s`

const mediaPrompt = `Extract event data from this 'Gebuchte Artikel nach Anlass' (Media List) PDF text.
Identify the Date (usually at the top).
For each event entry, extract time, room, event name.
CRITICAL: Extract the list of media items/articles (like "Flipchart", "Beamer", "Mikrofon", "Stuhlreihen", "Tisch") listed under the event.
Extract Client (Kunde) and Contact (Kontakt vor Ort).

Text Content:
%s`

// Prompt builds the extraction prompt for source around text.
func Prompt(source events.Source, text string) (string, error) {
	switch source {
	case events.SourceSeating:
		return fmt.Sprintf(seatingPrompt, text), nil
	case events.SourceMedia:
		return fmt.Sprintf(mediaPrompt, text), nil
	}
	return "", fmt.Errorf("unknown source %q", source)
}

// Schema returns the response schema for source: an array of event objects.
func Schema(source events.Source) (*genai.Schema, error) {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}

	var item *genai.Schema
	switch source {
	case events.SourceSeating:
		item = &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date":          str("Format DD.MM.YYYY"),
				"startTime":     str("HH:MM"),
				"endTime":       str("HH:MM"),
				"room":          str(""),
				"bookingName":   str("Booking number and name"),
				"eventName":     str("Detailed event name/occasion"),
				"seating":       str(""),
				"pax":           {Type: genai.TypeNumber},
				"notes":         str(""),
				"isSetupOrTech": {Type: genai.TypeBoolean},
			},
			Required: []string{"date", "startTime", "endTime", "room", "bookingName"},
		}
	case events.SourceMedia:
		item = &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date":      str(""),
				"startTime": str(""),
				"endTime":   str(""),
				"room":      str(""),
				"eventName": str(""),
				"client":    str(""),
				"contact":   str(""),
				"mediaItems": {
					Type:        genai.TypeArray,
					Items:       str(""),
					Description: "List of equipment, furniture, or services",
				},
				"isSetupOrTech": {
					Type:        genai.TypeBoolean,
					Description: "True if this entry is purely for Setup/Teardown or Tech",
				},
			},
			Required: []string{"startTime", "room"},
		}
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}

	return &genai.Schema{Type: genai.TypeArray, Items: item}, nil
}
