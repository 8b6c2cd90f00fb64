package compare

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// SavedSnapshot is an immutable capture of system state at a moment in
// time: the snapshot itself plus the detection results that were current
// when it was taken. All three are deep copies owned by the capture.
//
// SavedSnapshots are never modified after creation. Treat every field as
// read-only.
type SavedSnapshot struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Data      *snapshot.Snapshot `json:"data"`
	Cycles    snapshot.CycleSet  `json:"cycles"`

	// WFG is the wait-for adjacency from the detection result, or nil
	// when the capture was taken without one.
	WFG snapshot.WaitFor `json:"wfg,omitempty"`
}

// Capture creates a SavedSnapshot, deep-copying data, cycles, and wfg so
// the capture stays valid however the originals change afterwards.
func Capture(name string, data *snapshot.Snapshot, cycles snapshot.CycleSet, wfg snapshot.WaitFor) *SavedSnapshot {
	return &SavedSnapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Timestamp: time.Now().UTC(),
		Data:      data.Clone(),
		Cycles:    cycles.Clone(),
		WFG:       wfg.Clone(),
	}
}

// Store holds the captures of one comparison session, in capture order.
// It is an in-memory store by design: captures exist to compare states
// within a session and are discarded when the application exits.
//
// Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	saved []*SavedSnapshot
	byID  map[string]*SavedSnapshot
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]*SavedSnapshot)}
}

// Save captures the given state under a display name and records it.
// The returned capture is the stored one; treat it as read-only.
func (s *Store) Save(name string, data *snapshot.Snapshot, cycles snapshot.CycleSet, wfg snapshot.WaitFor) *SavedSnapshot {
	capture := Capture(name, data, cycles, wfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, capture)
	s.byID[capture.ID] = capture
	return capture
}

// Get returns the capture with the given id and true, or nil and false.
func (s *Store) Get(id string) (*SavedSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	capture, ok := s.byID[id]
	return capture, ok
}

// List returns all captures in capture order.
func (s *Store) List() []*SavedSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.saved)
}

// Delete removes the capture with the given id. It reports whether a
// capture was removed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	s.saved = slices.DeleteFunc(s.saved, func(c *SavedSnapshot) bool { return c.ID == id })
	return true
}

// Len returns the number of captures in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.saved)
}
