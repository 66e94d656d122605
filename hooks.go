package eventmaster

import (
	"sync"

	"github.com/agentstation/eventmaster/pkg/annotations"
	"github.com/agentstation/eventmaster/pkg/events"
)

// Hook function types for board events
type (
	// StatusHook is called on every merge status transition
	StatusHook func(status events.Status)

	// MergedHook is called when a merge run replaced the schedule
	MergedHook func(old, new *events.Schedule)

	// AnnotatedHook is called when an annotation changed
	AnnotatedHook func(id string, annotation annotations.Annotation)

	// ResetHook is called after the board was reset
	ResetHook func()
)

// hooks manages event callbacks
type hooks struct {
	mu          sync.RWMutex
	onStatus    []StatusHook
	onMerged    []MergedHook
	onAnnotated []AnnotatedHook
	onReset     []ResetHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnStatus registers a callback for status transitions
func (h *hooks) OnStatus(fn StatusHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStatus = append(h.onStatus, fn)
}

// OnMerged registers a callback for replaced schedules
func (h *hooks) OnMerged(fn MergedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMerged = append(h.onMerged, fn)
}

// OnAnnotated registers a callback for annotation changes
func (h *hooks) OnAnnotated(fn AnnotatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAnnotated = append(h.onAnnotated, fn)
}

// OnReset registers a callback for resets
func (h *hooks) OnReset(fn ResetHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReset = append(h.onReset, fn)
}

func (h *hooks) triggerStatus(s events.Status) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onStatus {
		hook(s)
	}
}

func (h *hooks) triggerMerged(old, new *events.Schedule) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onMerged {
		hook(old, new)
	}
}

func (h *hooks) triggerAnnotated(id string, a annotations.Annotation) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onAnnotated {
		hook(id, a)
	}
}

func (h *hooks) triggerReset() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onReset {
		hook()
	}
}
