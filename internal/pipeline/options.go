package pipeline

import (
	"github.com/agentstation/eventmaster/internal/extract"
	"github.com/agentstation/eventmaster/internal/metrics"
	"github.com/agentstation/eventmaster/internal/pdf"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/reconciler"
)

// StatusFunc receives every status transition of a run.
type StatusFunc func(events.Status)

// options configures a pipeline.
type options struct {
	reader     pdf.TextReader
	extractor  extract.Extractor
	reconciler reconciler.Reconciler
	metrics    *metrics.Metrics
	parallel   bool
	onStatus   []StatusFunc
}

func defaultOptions() *options {
	return &options{
		reader: pdf.NewReader(),
	}
}

// Option is a function that configures a Pipeline.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithTextReader sets the PDF text reader.
func WithTextReader(r pdf.TextReader) Option {
	return func(o *options) error {
		if r == nil {
			return &errors.ValidationError{Field: "reader", Message: "cannot be nil"}
		}
		o.reader = r
		return nil
	}
}

// WithExtractor sets the extractor. It is wrapped so failures become empty
// candidate lists.
func WithExtractor(e extract.Extractor) Option {
	return func(o *options) error {
		if e == nil {
			return &errors.ValidationError{Field: "extractor", Message: "cannot be nil"}
		}
		o.extractor = e
		return nil
	}
}

// WithReconciler overrides the default reconciler.
func WithReconciler(r reconciler.Reconciler) Option {
	return func(o *options) error {
		if r == nil {
			return &errors.ValidationError{Field: "reconciler", Message: "cannot be nil"}
		}
		o.reconciler = r
		return nil
	}
}

// WithMetrics records run metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) error {
		o.metrics = m
		return nil
	}
}

// WithParallel runs both documents through text reading and extraction
// concurrently. Reconciliation still waits for both.
func WithParallel(enabled bool) Option {
	return func(o *options) error {
		o.parallel = enabled
		return nil
	}
}

// WithStatusHook adds a status observer.
func WithStatusHook(fn StatusFunc) Option {
	return func(o *options) error {
		if fn != nil {
			o.onStatus = append(o.onStatus, fn)
		}
		return nil
	}
}
