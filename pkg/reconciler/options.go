package reconciler

import (
	"strings"

	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/errors"
)

// options configures a reconciler.
type options struct {
	matcher  Matcher
	idPrefix string
}

func defaultOptions() *options {
	return &options{
		matcher:  NewProximityMatcher(constants.TimeTolerance),
		idPrefix: constants.EventIDPrefix,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithMatcher sets the seating/media matching rule.
func WithMatcher(matcher Matcher) Option {
	return func(o *options) error {
		if matcher == nil {
			return &errors.ValidationError{
				Field:   "matcher",
				Message: "cannot be nil",
			}
		}
		o.matcher = matcher
		return nil
	}
}

// WithTolerance sets the time ordinal tolerance of the proximity matcher.
func WithTolerance(tolerance int) Option {
	return func(o *options) error {
		if tolerance <= 0 {
			return &errors.ValidationError{
				Field:   "tolerance",
				Value:   tolerance,
				Message: "must be positive",
			}
		}
		o.matcher = NewProximityMatcher(tolerance)
		return nil
	}
}

// WithIDPrefix sets the prefix of generated event ids.
func WithIDPrefix(prefix string) Option {
	return func(o *options) error {
		if strings.TrimSpace(prefix) == "" {
			return &errors.ValidationError{
				Field:   "id_prefix",
				Message: "cannot be empty",
			}
		}
		o.idPrefix = prefix
		return nil
	}
}
