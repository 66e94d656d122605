package reconciler

import (
	"strconv"

	"github.com/agentstation/eventmaster/pkg/events"
)

func eventID(prefix string, index int) string {
	return prefix + strconv.Itoa(index)
}

// mergeGroup combines a seating record with its matched media records.
// Media items keep first-seen order with duplicates removed.
func mergeGroup(id string, s events.CandidateEvent, matches []events.CandidateEvent) events.MergedEvent {
	e := events.NewMergedEvent(id, s)

	seen := make(map[string]struct{})
	for _, m := range matches {
		for _, item := range m.MediaItems {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			e.MediaItems = append(e.MediaItems, item)
		}

		if e.Client == "" {
			e.Client = m.Client
		}
		if e.Contact == "" {
			e.Contact = m.Contact
		}
		e.IsSetupOrTech = e.IsSetupOrTech || m.IsSetupOrTech
	}

	return e
}
