package detect

import (
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// IsSafe runs the Banker's safety algorithm against a snapshot.
//
// Outstanding requests stand in for each process's remaining need. The
// available pool starts at total minus everything allocated. The scan
// repeatedly looks for a process whose need fits in the pool, pretends it
// runs to completion, and releases its holdings. The snapshot is safe when
// every process can finish this way; the returned sequence is the
// completion order found, nil when the state is unsafe.
//
// Processes are considered in declaration order, so the sequence is stable
// for a given snapshot even when several orders would work.
func IsSafe(s *snapshot.Snapshot) (bool, []int) {
	available := make(map[string]int, len(s.Resources))
	for rid, r := range s.Resources {
		available[rid] = r.Total
	}
	for k, n := range s.Allocation {
		available[k.RID] -= n
	}

	finished := make(map[int]bool, len(s.Processes))
	sequence := make([]int, 0, len(s.Processes))
	for progress := true; progress; {
		progress = false
		for _, p := range s.Processes {
			if finished[p.PID] || !canFinish(s, p.PID, available) {
				continue
			}
			for k, n := range s.Allocation {
				if k.PID == p.PID && n > 0 {
					available[k.RID] += n
				}
			}
			finished[p.PID] = true
			sequence = append(sequence, p.PID)
			progress = true
			break
		}
	}

	if len(sequence) != len(s.Processes) {
		return false, nil
	}
	return true, sequence
}

// canFinish reports whether pid's outstanding requests all fit in the
// available pool. Requests on undeclared resources are ignored.
func canFinish(s *snapshot.Snapshot, pid int, available map[string]int) bool {
	for rid := range s.Resources {
		if available[rid] < s.Request[snapshot.Key{PID: pid, RID: rid}] {
			return false
		}
	}
	return true
}
