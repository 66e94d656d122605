package extract

import (
	"context"

	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/logging"
)

// FailureFunc observes a swallowed extraction error.
type FailureFunc func(source events.Source, err error)

// FailClosed wraps an extractor so that every error becomes an empty list.
// Errors seen after ctx is done are still returned so the run can stop.
func FailClosed(next Extractor, onFailure FailureFunc) Extractor {
	return Func(func(ctx context.Context, text string, source events.Source) ([]events.CandidateEvent, error) {
		candidates, err := next.Extract(ctx, text, source)
		if err == nil {
			if candidates == nil {
				candidates = []events.CandidateEvent{}
			}
			return candidates, nil
		}

		if ctx.Err() != nil {
			return nil, err
		}

		logging.FromContext(ctx).Warn().
			Err(err).
			Str("source", source.String()).
			Msg("Extraction failed, continuing with no candidates")
		if onFailure != nil {
			onFailure(source, err)
		}
		return []events.CandidateEvent{}, nil
	})
}
