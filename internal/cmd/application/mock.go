package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/extract"
	"github.com/agentstation/eventmaster/internal/metrics"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	BoardFunc        func(opts ...eventmaster.Option) (eventmaster.Board, error)
	ExtractorFunc    func(ctx context.Context) (extract.Extractor, error)
	MetricsFunc      func() *metrics.Metrics
	LocationFunc     func() *time.Location
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Board returns a board using the mock function or nil.
func (m *Mock) Board(opts ...eventmaster.Option) (eventmaster.Board, error) {
	if m.BoardFunc != nil {
		return m.BoardFunc(opts...)
	}
	return nil, nil
}

// Extractor returns an extractor using the mock function or nil.
func (m *Mock) Extractor(ctx context.Context) (extract.Extractor, error) {
	if m.ExtractorFunc != nil {
		return m.ExtractorFunc(ctx)
	}
	return nil, nil
}

// Metrics returns metrics using the mock function or nil.
func (m *Mock) Metrics() *metrics.Metrics {
	if m.MetricsFunc != nil {
		return m.MetricsFunc()
	}
	return nil
}

// Location returns the location using the mock function or UTC.
func (m *Mock) Location() *time.Location {
	if m.LocationFunc != nil {
		return m.LocationFunc()
	}
	return time.UTC
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
