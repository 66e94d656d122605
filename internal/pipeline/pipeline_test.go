package pipeline_test

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventmaster/internal/extract"
	"github.com/agentstation/eventmaster/internal/metrics"
	"github.com/agentstation/eventmaster/internal/pipeline"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
)

// plainReader treats the document bytes as its text.
type plainReader struct{}

func (plainReader) Text(_ context.Context, r io.ReaderAt, size int64) (string, error) {
	data, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(string(data), "corrupt") {
		return "", stderrors.New("not a PDF file")
	}
	return string(data), nil
}

// fixtureExtractor returns fixed candidates per source.
func fixtureExtractor(failMedia bool) extract.Extractor {
	return extract.Func(func(_ context.Context, text string, source events.Source) ([]events.CandidateEvent, error) {
		switch source {
		case events.SourceSeating:
			return []events.CandidateEvent{
				{Room: "A1", StartTime: "09:00", EndTime: "10:00", BookingName: "B1", Seating: "Theatre", Source: source},
				{Room: "vor dem Raum A1", StartTime: "09:00", Source: source},
			}, nil
		default:
			if failMedia {
				return nil, stderrors.New("malformed JSON")
			}
			return []events.CandidateEvent{
				{Room: "A1", StartTime: "09:10", MediaItems: []string{"Beamer"}, Client: "Acme", Source: source},
			}, nil
		}
	})
}

type recorder struct {
	mu    sync.Mutex
	steps []events.Step
}

func (r *recorder) hook(s events.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, s.Step)
}

func docs() (pipeline.Document, pipeline.Document) {
	return pipeline.Document{Name: "seating.pdf", Data: []byte("seating text")},
		pipeline.Document{Name: "media.pdf", Data: []byte("media text")}
}

func TestRunSequential(t *testing.T) {
	rec := &recorder{}
	m := metrics.New()
	p, err := pipeline.New(
		pipeline.WithTextReader(plainReader{}),
		pipeline.WithExtractor(fixtureExtractor(false)),
		pipeline.WithMetrics(m),
		pipeline.WithStatusHook(rec.hook),
	)
	require.NoError(t, err)

	seating, media := docs()
	schedule, err := p.Run(context.Background(), seating, media)
	require.NoError(t, err)
	require.Equal(t, 1, schedule.Len())

	e := schedule.Events[0]
	assert.Equal(t, "evt-0", e.ID)
	assert.Equal(t, []string{"Beamer"}, e.MediaItems)
	assert.Equal(t, "Acme", e.Client)
	assert.Equal(t, 1, schedule.Stats.DroppedSeating)

	assert.Equal(t, []events.Step{
		events.StepExtractingText,
		events.StepAnalyzingSeating,
		events.StepAnalyzingMedia,
		events.StepMerging,
		events.StepComplete,
	}, rec.steps)
}

func TestRunParallel(t *testing.T) {
	rec := &recorder{}
	p, err := pipeline.New(
		pipeline.WithTextReader(plainReader{}),
		pipeline.WithExtractor(fixtureExtractor(false)),
		pipeline.WithParallel(true),
		pipeline.WithStatusHook(rec.hook),
	)
	require.NoError(t, err)

	seating, media := docs()
	schedule, err := p.Run(context.Background(), seating, media)
	require.NoError(t, err)
	require.Equal(t, 1, schedule.Len())
	assert.Equal(t, []string{"Beamer"}, schedule.Events[0].MediaItems)
	assert.Equal(t, events.StepComplete, rec.steps[len(rec.steps)-1])
}

func TestRunExtractionFailureIsNotFatal(t *testing.T) {
	p, err := pipeline.New(
		pipeline.WithTextReader(plainReader{}),
		pipeline.WithExtractor(fixtureExtractor(true)),
	)
	require.NoError(t, err)

	seating, media := docs()
	schedule, err := p.Run(context.Background(), seating, media)
	require.NoError(t, err)
	require.Equal(t, 1, schedule.Len())
	assert.Empty(t, schedule.Events[0].MediaItems)
	assert.Empty(t, schedule.Events[0].Client)
}

func TestRunUnreadableDocumentAborts(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		rec := &recorder{}
		p, err := pipeline.New(
			pipeline.WithTextReader(plainReader{}),
			pipeline.WithExtractor(fixtureExtractor(false)),
			pipeline.WithParallel(parallel),
			pipeline.WithStatusHook(rec.hook),
		)
		require.NoError(t, err)

		seating, _ := docs()
		schedule, err := p.Run(context.Background(), seating, pipeline.Document{Name: "media.pdf", Data: []byte("corrupt")})
		assert.Nil(t, schedule)
		require.Error(t, err)
		assert.True(t, errors.IsPipelineError(err))
		assert.True(t, errors.IsExtractionError(err))

		var pipeErr *errors.PipelineError
		require.ErrorAs(t, err, &pipeErr)
		assert.Equal(t, string(events.StepExtractingText), pipeErr.Stage)
		assert.Equal(t, events.StepError, rec.steps[len(rec.steps)-1])
		assert.NotContains(t, rec.steps, events.StepComplete)
	}
}

func TestRunEmptyDocument(t *testing.T) {
	p, err := pipeline.New(
		pipeline.WithTextReader(plainReader{}),
		pipeline.WithExtractor(fixtureExtractor(false)),
	)
	require.NoError(t, err)

	_, media := docs()
	_, err = p.Run(context.Background(), pipeline.Document{Name: "empty.pdf"}, media)
	assert.True(t, errors.IsValidationError(err))
}

func TestRunCanceled(t *testing.T) {
	p, err := pipeline.New(pipeline.WithExtractor(fixtureExtractor(false)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	seating, media := docs()
	_, err = p.Run(ctx, seating, media)
	assert.True(t, errors.IsPipelineError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRequiresExtractor(t *testing.T) {
	_, err := pipeline.New()
	assert.True(t, errors.IsValidationError(err))

	_, err = pipeline.New(pipeline.WithExtractor(nil))
	assert.True(t, errors.IsValidationError(err))
}
