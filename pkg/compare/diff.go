package compare

import (
	"fmt"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// Kind classifies a difference for display. Added and removed double as
// the favorability indicator on the cycle-count entry: fewer cycles is an
// improvement and renders like a removal, more cycles like an addition.
type Kind string

const (
	KindAdded   Kind = "added"
	KindRemoved Kind = "removed"
	KindChanged Kind = "changed"
)

// Difference is one human-readable entry in a comparison result. Entries
// are rendered verbatim, in order.
type Difference struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Diff compares two captures and returns the ordered difference list:
//
//  1. One added entry per process present in b but not in a.
//  2. One removed entry per process present in a but not in b.
//  3. A cycle-count entry when the number of deadlock cycles changed,
//     carrying the old count, new count, and signed delta. Its kind
//     reflects favorability, not set membership: fewer cycles reports as
//     removed, more cycles as added.
//  4. A changed entry when the number of allocation keys differs.
//  5. A changed entry when the number of request keys differs.
//
// Identical captures produce an empty list, which callers render as "no
// significant differences". Diff reads both captures without modifying
// them and is idempotent.
//
// This is a cardinality diff: it reports how many entries each dimension
// gained or lost, not which individual values changed.
func Diff(a, b *SavedSnapshot) []Difference {
	var diffs []Difference

	aPIDs := pidSet(a.Data)
	bPIDs := pidSet(b.Data)

	for _, pid := range pids(b.Data) {
		if !aPIDs[pid] {
			diffs = append(diffs, Difference{
				Kind:    KindAdded,
				Message: fmt.Sprintf("Process %d added", pid),
			})
		}
	}
	for _, pid := range pids(a.Data) {
		if !bPIDs[pid] {
			diffs = append(diffs, Difference{
				Kind:    KindRemoved,
				Message: fmt.Sprintf("Process %d removed", pid),
			})
		}
	}

	if oldN, newN := len(a.Cycles), len(b.Cycles); oldN != newN {
		delta := newN - oldN
		kind := KindAdded
		if delta < 0 {
			kind = KindRemoved
		}
		diffs = append(diffs, Difference{
			Kind:    kind,
			Message: fmt.Sprintf("Deadlock cycles %d -> %d (%+d)", oldN, newN, delta),
		})
	}

	if oldN, newN := allocCount(a.Data), allocCount(b.Data); oldN != newN {
		diffs = append(diffs, Difference{
			Kind:    KindChanged,
			Message: fmt.Sprintf("Allocation entries %d -> %d", oldN, newN),
		})
	}
	if oldN, newN := requestCount(a.Data), requestCount(b.Data); oldN != newN {
		diffs = append(diffs, Difference{
			Kind:    KindChanged,
			Message: fmt.Sprintf("Request entries %d -> %d", oldN, newN),
		})
	}

	return diffs
}

func allocCount(s *snapshot.Snapshot) int {
	if s == nil {
		return 0
	}
	return len(s.Allocation)
}

func requestCount(s *snapshot.Snapshot) int {
	if s == nil {
		return 0
	}
	return len(s.Request)
}

func pids(s *snapshot.Snapshot) []int {
	if s == nil {
		return nil
	}
	return s.PIDs()
}

func pidSet(s *snapshot.Snapshot) map[int]bool {
	ids := pids(s)
	set := make(map[int]bool, len(ids))
	for _, pid := range ids {
		set[pid] = true
	}
	return set
}
