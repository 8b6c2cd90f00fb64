package server

import (
	"sync"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// liveState is the most recent snapshot from the live feed together with its
// detection result. The watcher goroutine is the only writer; handlers and
// the hub read it concurrently.
type liveState struct {
	mu      sync.RWMutex
	current *snapshot.Snapshot
	result  detect.Result
}

// set replaces the current state.
func (s *liveState) set(snap *snapshot.Snapshot, res detect.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
	s.result = res
}

// get returns the current state. ok is false before the first feed update.
func (s *liveState) get() (*snapshot.Snapshot, detect.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.result, s.current != nil
}
