// Package pipeline runs one merge: read both PDFs, extract candidates from
// each, reconcile. Every stage completes before the next starts and any
// stage failure aborts the run with a single error status.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/eventmaster/internal/extract"
	"github.com/agentstation/eventmaster/internal/metrics"
	"github.com/agentstation/eventmaster/internal/pdf"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/logging"
	"github.com/agentstation/eventmaster/pkg/reconciler"
)

// Document is one uploaded PDF.
type Document struct {
	Name string
	Data []byte
}

// Pipeline executes merge runs.
type Pipeline struct {
	reader     pdf.TextReader
	extractor  extract.Extractor
	reconciler reconciler.Reconciler
	metrics    *metrics.Metrics
	parallel   bool
	onStatus   []StatusFunc
}

// New creates a Pipeline. An extractor is required.
func New(opts ...Option) (*Pipeline, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.extractor == nil {
		return nil, &errors.ValidationError{Field: "extractor", Message: "required"}
	}
	if o.reconciler == nil {
		if o.reconciler, err = reconciler.New(); err != nil {
			return nil, err
		}
	}

	p := &Pipeline{
		reader:     o.reader,
		reconciler: o.reconciler,
		metrics:    o.metrics,
		parallel:   o.parallel,
		onStatus:   o.onStatus,
	}
	p.extractor = extract.FailClosed(o.extractor, p.extractionFailed)
	return p, nil
}

// Run merges the seating and media documents into a new schedule.
func (p *Pipeline) Run(ctx context.Context, seating, media Document) (*events.Schedule, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.FromContext(ctx)
	start := time.Now()

	logger.Info().
		Str("seating", seating.Name).
		Str("media", media.Name).
		Bool("parallel", p.parallel).
		Msg("Starting merge run")

	var (
		schedule *events.Schedule
		err      error
	)
	if p.parallel {
		schedule, err = p.runParallel(ctx, seating, media)
	} else {
		schedule, err = p.runSequential(ctx, seating, media)
	}

	if err != nil {
		p.status(events.ErrorStatus(err))
		p.recordRun(metrics.OutcomeError)
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Merge run failed")
		return nil, err
	}

	p.status(events.NewStatus(events.StepComplete))
	p.recordRun(metrics.OutcomeSuccess)
	logger.Info().
		Int("events", schedule.Len()).
		Dur("duration", time.Since(start)).
		Msg("Merge run complete")
	return schedule, nil
}

func (p *Pipeline) runSequential(ctx context.Context, seating, media Document) (*events.Schedule, error) {
	// Step 1: Read both documents
	p.status(events.NewStatus(events.StepExtractingText))
	var seatingText, mediaText string
	err := p.stage(ctx, events.StepExtractingText, func(ctx context.Context) error {
		var err error
		if seatingText, err = p.readText(ctx, events.SourceSeating, seating); err != nil {
			return err
		}
		mediaText, err = p.readText(ctx, events.SourceMedia, media)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Step 2: Extract seating candidates
	p.status(events.NewStatus(events.StepAnalyzingSeating))
	var seatingCandidates []events.CandidateEvent
	err = p.stage(ctx, events.StepAnalyzingSeating, func(ctx context.Context) error {
		var err error
		seatingCandidates, err = p.extract(ctx, seatingText, events.SourceSeating)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Step 3: Extract media candidates
	p.status(events.NewStatus(events.StepAnalyzingMedia))
	var mediaCandidates []events.CandidateEvent
	err = p.stage(ctx, events.StepAnalyzingMedia, func(ctx context.Context) error {
		var err error
		mediaCandidates, err = p.extract(ctx, mediaText, events.SourceMedia)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Step 4: Reconcile
	return p.merge(ctx, seatingCandidates, mediaCandidates)
}

func (p *Pipeline) runParallel(ctx context.Context, seating, media Document) (*events.Schedule, error) {
	p.status(events.NewStatus(events.StepExtractingText))

	var texts [2]string
	err := p.stage(ctx, events.StepExtractingText, func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		for i, doc := range []Document{seating, media} {
			g.Go(func() error {
				text, err := p.readText(gctx, events.Sources[i], doc)
				texts[i] = text
				return err
			})
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}

	p.status(events.NewStatus(events.StepAnalyzingSeating))
	p.status(events.NewStatus(events.StepAnalyzingMedia))

	var candidates [2][]events.CandidateEvent
	err = p.stage(ctx, events.StepAnalyzingMedia, func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		for i, source := range events.Sources {
			g.Go(func() error {
				list, err := p.extract(gctx, texts[i], source)
				candidates[i] = list
				return err
			})
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}

	return p.merge(ctx, candidates[0], candidates[1])
}

func (p *Pipeline) merge(ctx context.Context, seating, media []events.CandidateEvent) (*events.Schedule, error) {
	p.status(events.NewStatus(events.StepMerging))

	var result *reconciler.Result
	err := p.stage(ctx, events.StepMerging, func(ctx context.Context) error {
		var err error
		result, err = p.reconciler.Merge(ctx, seating, media)
		return err
	})
	if err != nil {
		return nil, err
	}

	if p.metrics != nil {
		p.metrics.Reconciled(result.Metadata.Stats)
	}
	return result.Schedule(), nil
}

// stage runs fn, timing it and wrapping any error as a PipelineError.
func (p *Pipeline) stage(ctx context.Context, step events.Step, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return errors.NewPipelineError(step.String(), err)
	}

	start := time.Now()
	err := fn(logging.WithStage(ctx, step.String()))
	if p.metrics != nil {
		p.metrics.ObserveStage(step, time.Since(start))
	}
	if err != nil {
		if errors.IsPipelineError(err) {
			return err
		}
		return errors.NewPipelineError(step.String(), err)
	}
	return nil
}

func (p *Pipeline) readText(ctx context.Context, source events.Source, doc Document) (string, error) {
	if len(doc.Data) == 0 {
		return "", errors.NewExtractionError(source.String(), "text",
			errors.NewValidationError("document", doc.Name, "is empty"))
	}
	text, err := pdf.Bytes(ctx, p.reader, doc.Data)
	if err != nil {
		return "", errors.NewExtractionError(source.String(), "text", err)
	}
	logging.FromContext(ctx).Debug().
		Str("source", source.String()).
		Str("document", doc.Name).
		Int("chars", len(text)).
		Msg("Read document text")
	return text, nil
}

func (p *Pipeline) extract(ctx context.Context, text string, source events.Source) ([]events.CandidateEvent, error) {
	candidates, err := p.extractor.Extract(logging.WithSource(ctx, source.String()), text, source)
	if err != nil {
		return nil, err
	}
	if p.metrics != nil {
		p.metrics.Candidates(source, len(candidates))
	}
	return candidates, nil
}

func (p *Pipeline) extractionFailed(source events.Source, _ error) {
	if p.metrics != nil {
		p.metrics.ExtractionFailed(source)
	}
}

func (p *Pipeline) status(s events.Status) {
	for _, fn := range p.onStatus {
		fn(s)
	}
}

func (p *Pipeline) recordRun(outcome string) {
	if p.metrics != nil {
		p.metrics.MergeRun(outcome)
	}
}
