// Package eventmaster merges a venue's seating list and media order list into
// one annotated day schedule. A Board holds the current schedule and the
// user's annotations and persists both in a state directory.
package eventmaster

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/agentstation/eventmaster/internal/pipeline"
	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/logging"
	"github.com/agentstation/eventmaster/pkg/view"
)

// Document is one uploaded PDF.
type Document = pipeline.Document

// Board manages the merged schedule, the annotation store and event hooks.
type Board interface {
	// Merge runs the full pipeline and replaces the schedule on success.
	// On failure the previous schedule is kept.
	Merge(ctx context.Context, seating, media Document) (*events.Schedule, error)

	// Schedule returns the current schedule, which may be empty.
	Schedule() *events.Schedule

	// Events returns the merged events in room order.
	Events() []events.MergedEvent

	// Event returns one merged event.
	Event(id string) (events.MergedEvent, error)

	// Previous returns the event before id in the same room.
	Previous(id string) (events.MergedEvent, error)

	// Item returns one event with its annotation and warnings.
	Item(id string) (view.Item, error)

	// View filters and orders the schedule.
	View(q view.Query) []view.Item

	// Status returns the latest merge status.
	Status() events.Status

	// Annotation returns the annotation of id.
	Annotation(id string) annotations.Annotation

	// Annotations exposes the annotation state for read-only consumers.
	Annotations() annotations.Reader

	// TogglePin flips the pin of an event.
	TogglePin(id string) (annotations.Annotation, error)

	// ToggleComplete flips the completion of an event.
	ToggleComplete(id string) (annotations.Annotation, error)

	// SetNote replaces the note of an event.
	SetNote(id, note string) (annotations.Annotation, error)

	// Annotate applies a partial annotation update.
	Annotate(id string, patch annotations.Patch) (annotations.Annotation, error)

	// Reset clears the schedule and every annotation.
	Reset() error

	// Preferences returns the display preferences.
	Preferences() annotations.Preferences

	// SetPreferences stores new display preferences.
	SetPreferences(annotations.Preferences) error

	// OnStatus registers a callback for merge status transitions
	OnStatus(StatusHook)

	// OnMerged registers a callback for a replaced schedule
	OnMerged(MergedHook)

	// OnAnnotated registers a callback for annotation changes
	OnAnnotated(AnnotatedHook)

	// OnReset registers a callback for resets
	OnReset(ResetHook)
}

// board is the internal implementation of the Board interface
type board struct {
	mu       sync.RWMutex
	runMu    sync.Mutex
	schedule *events.Schedule
	status   events.Status
	prefs    annotations.Preferences

	config   *config
	notes    annotations.Store
	pipeline *pipeline.Pipeline
	storage  *storage

	// Event hooks
	hooks *hooks
}

// New creates a Board. An extractor must be configured with WithExtractor.
func New(opts ...Option) (Board, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	b := &board{
		config:   cfg,
		status:   events.NewStatus(events.StepIdle),
		prefs:    annotations.DefaultPreferences(),
		schedule: &events.Schedule{Events: []events.MergedEvent{}},
		storage:  newStorage(cfg.stateDir),
		hooks:    newHooks(),
	}

	if err := b.load(); err != nil {
		return nil, err
	}
	b.recordSize()

	pipelineOpts := append([]pipeline.Option{
		pipeline.WithExtractor(cfg.extractor),
		pipeline.WithParallel(cfg.parallel),
		pipeline.WithMetrics(cfg.metrics),
		pipeline.WithStatusHook(b.setStatus),
	}, cfg.pipelineOptions...)
	if b.pipeline, err = pipeline.New(pipelineOpts...); err != nil {
		return nil, err
	}

	return b, nil
}

// load restores the schedule, annotations and preferences from storage.
func (b *board) load() error {
	schedule, err := b.storage.loadSchedule()
	if err != nil {
		return err
	}
	if schedule != nil {
		b.schedule = schedule
		if schedule.Len() > 0 {
			b.status = events.NewStatus(events.StepComplete)
		}
	}

	switch {
	case b.config.store != nil:
		b.notes = b.config.store
	default:
		if b.notes, err = b.storage.openAnnotations(); err != nil {
			return err
		}
	}

	if b.prefs, err = b.storage.loadPreferences(); err != nil {
		return err
	}
	return nil
}

// Merge runs the full pipeline and replaces the schedule on success.
func (b *board) Merge(ctx context.Context, seating, media Document) (*events.Schedule, error) {
	b.runMu.Lock()
	defer b.runMu.Unlock()

	schedule, err := b.pipeline.Run(ctx, seating, media)
	if err != nil {
		return nil, err
	}

	if err := b.storage.saveSchedule(schedule); err != nil {
		b.setStatus(events.ErrorStatus(err))
		return nil, err
	}

	b.mu.Lock()
	old := b.schedule
	b.schedule = schedule
	b.mu.Unlock()
	b.recordSize()

	logging.FromContext(ctx).Info().
		Int("events", schedule.Len()).
		Int("replaced", old.Len()).
		Msg("Schedule replaced")
	b.hooks.triggerMerged(old, schedule)
	return schedule, nil
}

// Schedule returns the current schedule.
func (b *board) Schedule() *events.Schedule {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.schedule
}

// Events returns the merged events in room order.
func (b *board) Events() []events.MergedEvent {
	return slices.Clone(b.Schedule().Events)
}

// Event returns one merged event.
func (b *board) Event(id string) (events.MergedEvent, error) {
	e, ok := b.Schedule().Event(id)
	if !ok {
		return events.MergedEvent{}, errors.NewNotFoundError("event", id)
	}
	return e, nil
}

// Previous returns the event before id in the same room.
func (b *board) Previous(id string) (events.MergedEvent, error) {
	schedule := b.Schedule()
	e, ok := schedule.Event(id)
	if !ok {
		return events.MergedEvent{}, errors.NewNotFoundError("event", id)
	}
	prev, ok := schedule.Previous(e)
	if !ok {
		return events.MergedEvent{}, errors.NewNotFoundError("previous event", id)
	}
	return prev, nil
}

// Item returns one event with its annotation and warnings.
func (b *board) Item(id string) (view.Item, error) {
	schedule := b.Schedule()
	e, ok := schedule.Event(id)
	if !ok {
		return view.Item{}, errors.NewNotFoundError("event", id)
	}
	return view.NewItem(schedule, e, b.notes), nil
}

// View filters and orders the schedule.
func (b *board) View(q view.Query) []view.Item {
	return view.Items(b.Schedule(), q, b.notes)
}

// Status returns the latest merge status.
func (b *board) Status() events.Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

func (b *board) recordSize() {
	if b.config.metrics != nil {
		b.config.metrics.ScheduleSize(b.Schedule().Len())
	}
}

func (b *board) setStatus(s events.Status) {
	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
	b.hooks.triggerStatus(s)
}

// Annotation returns the annotation of id.
func (b *board) Annotation(id string) annotations.Annotation {
	return b.notes.Get(id)
}

// Annotations exposes the annotation state for read-only consumers.
func (b *board) Annotations() annotations.Reader {
	return b.notes
}

// TogglePin flips the pin of an event.
func (b *board) TogglePin(id string) (annotations.Annotation, error) {
	return b.annotate(id, b.notes.TogglePin)
}

// ToggleComplete flips the completion of an event.
func (b *board) ToggleComplete(id string) (annotations.Annotation, error) {
	return b.annotate(id, b.notes.ToggleComplete)
}

// SetNote replaces the note of an event.
func (b *board) SetNote(id, note string) (annotations.Annotation, error) {
	return b.annotate(id, func(id string) (annotations.Annotation, error) {
		return b.notes.SetNote(id, note)
	})
}

// Annotate applies a partial annotation update.
func (b *board) Annotate(id string, patch annotations.Patch) (annotations.Annotation, error) {
	return b.annotate(id, func(id string) (annotations.Annotation, error) {
		return b.notes.Apply(id, patch)
	})
}

// annotate applies fn to an event that exists in the current schedule.
func (b *board) annotate(id string, fn func(string) (annotations.Annotation, error)) (annotations.Annotation, error) {
	if _, err := b.Event(id); err != nil {
		return annotations.Annotation{}, err
	}
	a, err := fn(id)
	if err != nil {
		return a, err
	}
	b.hooks.triggerAnnotated(id, a)
	return a, nil
}

// Reset clears the schedule and every annotation.
func (b *board) Reset() error {
	b.runMu.Lock()
	defer b.runMu.Unlock()

	if err := b.notes.Clear(); err != nil {
		return err
	}
	empty := &events.Schedule{Events: []events.MergedEvent{}}
	if err := b.storage.removeSchedule(); err != nil {
		return err
	}

	b.mu.Lock()
	b.schedule = empty
	b.mu.Unlock()
	b.recordSize()

	b.setStatus(events.NewStatus(events.StepIdle))
	b.hooks.triggerReset()
	return nil
}

// Preferences returns the display preferences.
func (b *board) Preferences() annotations.Preferences {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.prefs
}

// SetPreferences stores new display preferences.
func (b *board) SetPreferences(p annotations.Preferences) error {
	if p.ViewMode == "" {
		p.ViewMode = annotations.ViewList
	}
	if _, err := annotations.ParseViewMode(string(p.ViewMode)); err != nil {
		return errors.WrapValidation("view_mode", err)
	}
	if err := b.storage.savePreferences(p); err != nil {
		return err
	}
	b.mu.Lock()
	b.prefs = p
	b.mu.Unlock()
	return nil
}

// OnStatus registers a callback for merge status transitions.
func (b *board) OnStatus(fn StatusHook) { b.hooks.OnStatus(fn) }

// OnMerged registers a callback for a replaced schedule.
func (b *board) OnMerged(fn MergedHook) { b.hooks.OnMerged(fn) }

// OnAnnotated registers a callback for annotation changes.
func (b *board) OnAnnotated(fn AnnotatedHook) { b.hooks.OnAnnotated(fn) }

// OnReset registers a callback for resets.
func (b *board) OnReset(fn ResetHook) { b.hooks.OnReset(fn) }
