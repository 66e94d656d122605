// Package annotations keeps the per-event state a user adds on top of a merged
// schedule: completion, pin and a free-text note. Entries are keyed by event
// id and never touched by a merge run; ids from an older run simply stay
// orphaned until Clear.
package annotations

import (
	"maps"
	"sync"

	"github.com/agentstation/eventmaster/pkg/errors"
)

// Annotation is the user state of one event.
type Annotation struct {
	Completed bool   `json:"completed" yaml:"completed,omitempty"`
	Pinned    bool   `json:"pinned" yaml:"pinned,omitempty"`
	Note      string `json:"note" yaml:"note,omitempty"`
}

// IsZero reports whether the annotation carries no state.
func (a Annotation) IsZero() bool {
	return !a.Completed && !a.Pinned && a.Note == ""
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Completed *bool   `json:"completed,omitempty"`
	Pinned    *bool   `json:"pinned,omitempty"`
	Note      *string `json:"note,omitempty"`
}

// Reader gives read access to annotations.
type Reader interface {
	// Get returns the annotation for id, or the zero value.
	Get(id string) Annotation
}

// Store is a keyed annotation store. Every mutation is persisted before
// it returns.
type Store interface {
	Reader
	All() map[string]Annotation
	TogglePin(id string) (Annotation, error)
	ToggleComplete(id string) (Annotation, error)
	SetNote(id, note string) (Annotation, error)
	Apply(id string, patch Patch) (Annotation, error)
	Clear() error
}

// persistFunc writes a snapshot of all annotations.
type persistFunc func(map[string]Annotation) error

// store is the mutex-guarded map shared by the memory and file stores.
type store struct {
	mu      sync.RWMutex
	entries map[string]Annotation
	persist persistFunc
}

func newStore(entries map[string]Annotation, persist persistFunc) *store {
	if entries == nil {
		entries = make(map[string]Annotation)
	}
	return &store{entries: entries, persist: persist}
}

// Get implements Reader.
func (s *store) Get(id string) Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[id]
}

// All returns a copy of every stored annotation.
func (s *store) All() map[string]Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.entries)
}

// TogglePin flips the pinned flag.
func (s *store) TogglePin(id string) (Annotation, error) {
	return s.update(id, func(a *Annotation) { a.Pinned = !a.Pinned })
}

// ToggleComplete flips the completed flag.
func (s *store) ToggleComplete(id string) (Annotation, error) {
	return s.update(id, func(a *Annotation) { a.Completed = !a.Completed })
}

// SetNote replaces the note.
func (s *store) SetNote(id, note string) (Annotation, error) {
	return s.update(id, func(a *Annotation) { a.Note = note })
}

// Apply sets every non-nil field of patch.
func (s *store) Apply(id string, patch Patch) (Annotation, error) {
	return s.update(id, func(a *Annotation) {
		if patch.Completed != nil {
			a.Completed = *patch.Completed
		}
		if patch.Pinned != nil {
			a.Pinned = *patch.Pinned
		}
		if patch.Note != nil {
			a.Note = *patch.Note
		}
	})
}

// Clear removes all annotations.
func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.entries
	s.entries = make(map[string]Annotation)
	if err := s.save(); err != nil {
		s.entries = previous
		return err
	}
	return nil
}

func (s *store) update(id string, fn func(*Annotation)) (Annotation, error) {
	if id == "" {
		return Annotation{}, errors.NewValidationError("id", id, "cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, existed := s.entries[id]
	a := old
	fn(&a)
	if a.IsZero() {
		delete(s.entries, id)
	} else {
		s.entries[id] = a
	}

	if err := s.save(); err != nil {
		if existed {
			s.entries[id] = old
		} else {
			delete(s.entries, id)
		}
		return old, err
	}
	return a, nil
}

// save must be called with the lock held.
func (s *store) save() error {
	if s.persist == nil {
		return nil
	}
	return s.persist(s.entries)
}
