package eventmaster

import (
	"github.com/agentstation/eventmaster/internal/extract"
	"github.com/agentstation/eventmaster/internal/metrics"
	"github.com/agentstation/eventmaster/internal/pdf"
	"github.com/agentstation/eventmaster/internal/pipeline"
	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/reconciler"
)

// config holds Board settings.
type config struct {
	stateDir        string
	extractor       extract.Extractor
	parallel        bool
	metrics         *metrics.Metrics
	store           annotations.Store
	pipelineOptions []pipeline.Option
}

// Option is a function that configures a Board instance
type Option func(*config) error

func newConfig(opts ...Option) (*config, error) {
	c := &config{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.extractor == nil {
		return nil, &errors.ValidationError{Field: "extractor", Message: "required"}
	}
	return c, nil
}

// WithStateDir persists the schedule, annotations and preferences in dir.
// Without it everything lives in memory.
func WithStateDir(dir string) Option {
	return func(c *config) error {
		c.stateDir = dir
		return nil
	}
}

// WithExtractor configures the candidate event extractor
func WithExtractor(e extract.Extractor) Option {
	return func(c *config) error {
		if e == nil {
			return &errors.ValidationError{Field: "extractor", Message: "cannot be nil"}
		}
		c.extractor = e
		return nil
	}
}

// WithParallelExtraction configures whether both documents are processed concurrently
func WithParallelExtraction(enabled bool) Option {
	return func(c *config) error {
		c.parallel = enabled
		return nil
	}
}

// WithMetrics configures the metrics recorder
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}

// WithAnnotationStore replaces the state-dir annotation store
func WithAnnotationStore(s annotations.Store) Option {
	return func(c *config) error {
		c.store = s
		return nil
	}
}

// WithTextReader configures the PDF text reader
func WithTextReader(r pdf.TextReader) Option {
	return func(c *config) error {
		c.pipelineOptions = append(c.pipelineOptions, pipeline.WithTextReader(r))
		return nil
	}
}

// WithReconciler configures the reconciler
func WithReconciler(r reconciler.Reconciler) Option {
	return func(c *config) error {
		c.pipelineOptions = append(c.pipelineOptions, pipeline.WithReconciler(r))
		return nil
	}
}
