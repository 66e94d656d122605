// Package reconciler joins the seating list and the media list of one event
// day into a single merged schedule. Seating records are authoritative for
// room, time, arrangement and headcount; matching media orders contribute
// equipment, client and contact details.
package reconciler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/logging"
)

// Reconciler is the main interface for reconciling the two extracted lists.
type Reconciler interface {
	// Merge reconciles seating candidates against media candidates. Empty
	// inputs are valid and produce an empty schedule.
	Merge(ctx context.Context, seating, media []events.CandidateEvent) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	matcher  Matcher
	idPrefix string
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		matcher:  options.matcher,
		idPrefix: options.idPrefix,
	}, nil
}

// reconcileContext holds shared state for one merge.
type reconcileContext struct {
	filter    *filter
	logger    *zerolog.Logger
	startTime time.Time
	stats     events.Stats
}

// Merge performs reconciliation with a step-by-step flow.
func (r *reconciler) Merge(ctx context.Context, seating, media []events.CandidateEvent) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &errors.PipelineError{Stage: string(events.StepMerging), Err: errors.ErrCanceled}
	}

	// Step 1: Initialize context
	rctx := r.initialize(ctx, seating, media)

	// Step 2: Drop seating rows that cannot be matched
	valid := rctx.filter.seating(seating)
	rctx.stats.DroppedSeating = len(seating) - len(valid)
	if rctx.stats.DroppedSeating > 0 {
		rctx.logger.Debug().
			Int("dropped", rctx.stats.DroppedSeating).
			Msg("Dropped invalid seating rows")
	}

	// Step 3: Match and merge each seating record, ids follow input order
	merged, matchedMedia := r.mergeAll(rctx, valid, media)
	rctx.stats.MatchedMedia = matchedMedia

	// Step 4: Sort by room then start time
	sortByRoom(merged)

	// Step 5: Link same-room neighbours
	link(merged)

	rctx.stats.Merged = len(merged)
	rctx.logger.Info().
		Int("seating", rctx.stats.SeatingCandidates).
		Int("media", rctx.stats.MediaCandidates).
		Int("merged", rctx.stats.Merged).
		Int("matched_media", rctx.stats.MatchedMedia).
		Dur("duration", time.Since(rctx.startTime)).
		Msg("Reconciled schedule")

	return r.result(rctx, merged), nil
}

// initialize sets up the reconcile context.
func (r *reconciler) initialize(ctx context.Context, seating, media []events.CandidateEvent) *reconcileContext {
	return &reconcileContext{
		filter:    newFilter(),
		logger:    logging.FromContext(ctx),
		startTime: time.Now(),
		stats: events.Stats{
			SeatingCandidates: len(seating),
			MediaCandidates:   len(media),
		},
	}
}

// mergeAll builds one merged event per seating record and counts the media
// records that were used at least once.
func (r *reconciler) mergeAll(rctx *reconcileContext, seating, media []events.CandidateEvent) ([]events.MergedEvent, int) {
	merged := make([]events.MergedEvent, 0, len(seating))
	used := make(map[int]struct{})

	for i, s := range seating {
		var matches []events.CandidateEvent
		for j, m := range media {
			if r.matcher.Match(s, m) {
				matches = append(matches, m)
				used[j] = struct{}{}
			}
		}

		e := mergeGroup(eventID(r.idPrefix, i), s, matches)
		rctx.logger.Trace().
			Str("event_id", e.ID).
			Str("room", e.Room).
			Int("matches", len(matches)).
			Msg("Merged seating record")
		merged = append(merged, e)
	}

	return merged, len(used)
}

// result builds the final result.
func (r *reconciler) result(rctx *reconcileContext, merged []events.MergedEvent) *Result {
	end := time.Now()
	return &Result{
		Events: merged,
		Metadata: ResultMetadata{
			StartTime: rctx.startTime,
			EndTime:   end,
			Duration:  end.Sub(rctx.startTime),
			Stats:     rctx.stats,
		},
	}
}
