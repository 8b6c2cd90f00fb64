package detect

import (
	"maps"
	"slices"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// BuildWaitFor derives the wait-for adjacency from a snapshot.
//
// For every outstanding request a process has on a resource, every other
// process currently holding units of that resource becomes a wait-for
// target. Availability is deliberately ignored: a request on a resource
// with free units still produces edges, which keeps the view conservative.
// Processes with no blockers do not appear as sources, and a process never
// waits on itself.
func BuildWaitFor(s *snapshot.Snapshot) snapshot.WaitFor {
	blocked := make(map[int]map[int]bool)
	for _, rk := range s.RequestKeys() {
		if s.Request[rk] <= 0 {
			continue
		}
		for _, ak := range s.AllocationKeys() {
			if s.Allocation[ak] <= 0 || ak.RID != rk.RID || ak.PID == rk.PID {
				continue
			}
			if blocked[rk.PID] == nil {
				blocked[rk.PID] = make(map[int]bool)
			}
			blocked[rk.PID][ak.PID] = true
		}
	}

	w := make(snapshot.WaitFor, len(blocked))
	for pid, targets := range blocked {
		w[pid] = slices.Sorted(maps.Keys(targets))
	}
	return w
}
