// Package metrics exposes Prometheus metrics for merge runs and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentstation/eventmaster/pkg/events"
)

const namespace = "eventmaster"

// Merge run outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds every collector on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	mergeRuns          *prometheus.CounterVec
	extractionFailures *prometheus.CounterVec
	candidates         *prometheus.CounterVec
	droppedSeating     prometheus.Counter
	matchedMedia       prometheus.Counter
	mergedEvents       prometheus.Gauge
	stageDuration      *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates and registers the collectors, including Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.mergeRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "merge_runs_total",
		Help:      "Merge runs by outcome",
	}, []string{"outcome"})
	m.extractionFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "extraction_failures_total",
		Help:      "Extractions that failed and were replaced by an empty list",
	}, []string{"source"})
	m.candidates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "candidates_total",
		Help:      "Candidate events extracted by source",
	}, []string{"source"})
	m.droppedSeating = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dropped_seating_total",
		Help:      "Seating rows dropped before matching",
	})
	m.matchedMedia = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matched_media_total",
		Help:      "Media rows matched to at least one seating row",
	})
	m.mergedEvents = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "merged_events",
		Help:      "Events in the current schedule",
	})
	m.stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Time spent in each merge stage",
		Buckets:   []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"stage"})
	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method and status",
	}, []string{"method", "status"})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	m.registry.MustRegister(
		m.mergeRuns, m.extractionFailures, m.candidates,
		m.droppedSeating, m.matchedMedia, m.mergedEvents,
		m.stageDuration, m.httpRequests, m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// MergeRun counts a finished run.
func (m *Metrics) MergeRun(outcome string) {
	m.mergeRuns.WithLabelValues(outcome).Inc()
}

// ExtractionFailed counts a swallowed extraction failure.
func (m *Metrics) ExtractionFailed(source events.Source) {
	m.extractionFailures.WithLabelValues(source.String()).Inc()
}

// Candidates counts extracted candidates.
func (m *Metrics) Candidates(source events.Source, n int) {
	m.candidates.WithLabelValues(source.String()).Add(float64(n))
}

// Reconciled records the statistics of a finished reconciliation.
func (m *Metrics) Reconciled(stats events.Stats) {
	m.droppedSeating.Add(float64(stats.DroppedSeating))
	m.matchedMedia.Add(float64(stats.MatchedMedia))
	m.mergedEvents.Set(float64(stats.Merged))
}

// ScheduleSize sets the current schedule size, e.g. after a reset.
func (m *Metrics) ScheduleSize(n int) {
	m.mergedEvents.Set(float64(n))
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(step events.Step, d time.Duration) {
	m.stageDuration.WithLabelValues(step.String()).Observe(d.Seconds())
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method).Observe(d.Seconds())
}
