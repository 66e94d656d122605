package reconciler

import (
	"time"

	"github.com/agentstation/eventmaster/pkg/events"
)

// Result represents the outcome of a reconciliation.
type Result struct {
	// Events sorted by room then start time, with same-room back references
	Events []events.MergedEvent

	// Metadata
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Stats     events.Stats
}

// IsEmpty reports whether no event was produced.
func (r *Result) IsEmpty() bool {
	return len(r.Events) == 0
}

// Schedule converts the result into a schedule stamped with its end time.
func (r *Result) Schedule() *events.Schedule {
	return &events.Schedule{
		Events:   r.Events,
		MergedAt: r.Metadata.EndTime,
		Stats:    r.Metadata.Stats,
	}
}
