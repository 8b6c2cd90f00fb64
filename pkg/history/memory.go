package history

import (
	"context"
	"sync"
	"time"
)

// DefaultCapacity bounds a MemoryStore when no capacity is given.
const DefaultCapacity = 1000

// MemoryStore retains the most recent events in a fixed-size ring.
// It is safe for concurrent use. The zero value is not usable; call
// [NewMemoryStore].
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	events   []Event
	head     int // oldest element once the ring is full
	full     bool
}

// NewMemoryStore creates a store retaining up to capacity events.
// capacity <= 0 selects [DefaultCapacity].
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{capacity: capacity}
}

// Log records ev, evicting the oldest event once the ring is full.
func (s *MemoryStore) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.full {
		s.events = append(s.events, ev)
		if len(s.events) == s.capacity {
			s.full = true
		}
		return nil
	}
	s.events[s.head] = ev
	s.head = (s.head + 1) % s.capacity
	return nil
}

// Recent returns up to limit events, newest first.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ordered := s.ordered()
	if limit <= 0 || limit > len(ordered) {
		limit = len(ordered)
	}
	out := make([]Event, limit)
	for i := range out {
		out[i] = ordered[len(ordered)-1-i]
	}
	return out, nil
}

// ordered returns the retained events oldest first. Caller holds the
// lock.
func (s *MemoryStore) ordered() []Event {
	if !s.full {
		return s.events
	}
	out := make([]Event, 0, s.capacity)
	out = append(out, s.events[s.head:]...)
	out = append(out, s.events[:s.head]...)
	return out
}

// Stats aggregates over the retained events.
func (s *MemoryStore) Stats(context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	var total time.Duration
	for _, ev := range s.events {
		st.Events++
		if ev.Deadlocked() {
			st.Deadlocks++
		}
		st.TotalCycles += ev.Cycles
		total += ev.DetectionTime
	}
	if st.Events > 0 {
		st.AvgDetection = total / time.Duration(st.Events)
	}
	return st, nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}
