// Package history records detection runs and answers questions about
// them: how many ran, how many found deadlocks, how long detection
// takes on average.
//
// [MemoryStore] is the default backend, a bounded in-process ring.
// [MongoStore] persists events to MongoDB for deployments that want
// history to survive restarts. Both satisfy [Store].
package history

import (
	"context"
	"time"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// Event summarizes one detection run.
type Event struct {
	Time          time.Time         `json:"time" bson:"time"`
	Processes     int               `json:"processes" bson:"processes"`
	Resources     int               `json:"resources" bson:"resources"`
	Cycles        int               `json:"cycles" bson:"cycles"`
	CycleSet      snapshot.CycleSet `json:"cycle_set,omitempty" bson:"cycle_set,omitempty"`
	Victims       []int             `json:"victims,omitempty" bson:"victims,omitempty"`
	DetectionTime time.Duration     `json:"detection_time" bson:"detection_time"`
	Recovered     bool              `json:"recovered" bson:"recovered"`
}

// NewEvent builds the event logged for one detection run over s.
// victims may be nil when no recovery was attempted.
func NewEvent(s *snapshot.Snapshot, cycles snapshot.CycleSet, victims []int, took time.Duration, recovered bool) Event {
	return Event{
		Time:          time.Now().UTC(),
		Processes:     len(s.Processes),
		Resources:     len(s.Resources),
		Cycles:        len(cycles),
		CycleSet:      cycles,
		Victims:       victims,
		DetectionTime: took,
		Recovered:     recovered,
	}
}

// Deadlocked reports whether the run found at least one cycle.
func (e Event) Deadlocked() bool {
	return e.Cycles > 0
}

// Stats aggregates over all recorded events.
type Stats struct {
	Events       int           `json:"events"`
	Deadlocks    int           `json:"deadlocks"`
	TotalCycles  int           `json:"total_cycles"`
	AvgDetection time.Duration `json:"avg_detection"`
}

// Store is a sink for detection events.
type Store interface {
	// Log records one event.
	Log(ctx context.Context, ev Event) error

	// Recent returns up to limit events, newest first. limit <= 0 means
	// all retained events.
	Recent(ctx context.Context, limit int) ([]Event, error)

	// Stats aggregates over the retained events.
	Stats(ctx context.Context) (Stats, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
