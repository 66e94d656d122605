// Package extract turns the raw text of a seating or media document into
// candidate events through a structured LLM call.
package extract

import (
	"context"

	"github.com/agentstation/eventmaster/pkg/events"
)

// Extractor converts document text into candidate events for one source.
type Extractor interface {
	Extract(ctx context.Context, text string, source events.Source) ([]events.CandidateEvent, error)
}

// Func adapts a function to the Extractor interface.
type Func func(ctx context.Context, text string, source events.Source) ([]events.CandidateEvent, error)

// Extract calls f.
func (f Func) Extract(ctx context.Context, text string, source events.Source) ([]events.CandidateEvent, error) {
	return f(ctx, text, source)
}

// Truncate cuts text to at most limit runes. A non-positive limit keeps all.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}
