package detect

import (
	"slices"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// ChooseVictims picks one victim per cycle: the lowest-numbered process in
// each. Cycles sharing their minimum contribute a single victim, and order
// follows the cycle list.
func ChooseVictims(cycles snapshot.CycleSet) []int {
	victims := []int{}
	seen := make(map[int]bool)
	for _, cycle := range cycles {
		if len(cycle) == 0 {
			continue
		}
		v := slices.Min(cycle)
		if !seen[v] {
			seen[v] = true
			victims = append(victims, v)
		}
	}
	return victims
}

// Preempt releases everything the victims hold and cancels their pending
// requests. The result is a deep copy and the input is left untouched.
// Entries are zeroed rather than deleted, so the key sets stay comparable
// across a recovery step.
func Preempt(s *snapshot.Snapshot, victims []int) *snapshot.Snapshot {
	out := s.Clone()
	if len(victims) == 0 {
		return out
	}

	preempted := make(map[int]bool, len(victims))
	for _, pid := range victims {
		preempted[pid] = true
	}
	for k := range out.Allocation {
		if preempted[k.PID] {
			out.Allocation[k] = 0
		}
	}
	for k := range out.Request {
		if preempted[k.PID] {
			out.Request[k] = 0
		}
	}
	return out
}
