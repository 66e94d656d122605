package extract

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
)

// record is the JSON shape the model returns.
type record struct {
	Date          string   `json:"date"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	Room          string   `json:"room"`
	BookingName   string   `json:"bookingName"`
	EventName     string   `json:"eventName"`
	Seating       string   `json:"seating"`
	Pax           pax      `json:"pax"`
	Notes         string   `json:"notes"`
	Client        string   `json:"client"`
	Contact       string   `json:"contact"`
	MediaItems    []string `json:"mediaItems"`
	IsSetupOrTech bool     `json:"isSetupOrTech"`
}

// pax accepts a JSON number, a numeric string or null.
type pax int

func (p *pax) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) {
		*p = 0
		return nil
	}
	*p = pax(f)
	return nil
}

// Decode parses a model response into candidate events stamped with source.
// An empty response is an empty list. Markdown code fences are tolerated.
func Decode(text string, source events.Source) ([]events.CandidateEvent, error) {
	body := stripFence(text)
	if body == "" {
		return []events.CandidateEvent{}, nil
	}

	var records []record
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		return nil, errors.NewParseError("json", "", "model response is not an event array", err)
	}

	out := make([]events.CandidateEvent, 0, len(records))
	for _, r := range records {
		out = append(out, events.CandidateEvent{
			Date:          strings.TrimSpace(r.Date),
			StartTime:     strings.TrimSpace(r.StartTime),
			EndTime:       strings.TrimSpace(r.EndTime),
			Room:          strings.TrimSpace(r.Room),
			BookingName:   strings.TrimSpace(r.BookingName),
			EventName:     strings.TrimSpace(r.EventName),
			Seating:       strings.TrimSpace(r.Seating),
			Pax:           int(r.Pax),
			Notes:         strings.TrimSpace(r.Notes),
			Source:        source,
			Client:        strings.TrimSpace(r.Client),
			Contact:       strings.TrimSpace(r.Contact),
			MediaItems:    r.MediaItems,
			IsSetupOrTech: r.IsSetupOrTech,
		})
	}
	return out, nil
}

func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
