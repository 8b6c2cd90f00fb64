package snapshot

import (
	"maps"
	"slices"
)

// WaitFor is a wait-for adjacency: each key pid waits on every pid in its
// target list. This is the `wfg` half of a detection result; it marshals as
// a JSON object with stringified pid keys ({"1": [2]}).
//
// A pid mapped to an empty list is a process known to the analysis that
// currently waits on nobody. That distinction matters to the wait-for view
// builder, which emits a node for every pid the adjacency mentions.
type WaitFor map[int][]int

// Sources returns the adjacency's source pids in ascending order.
func (w WaitFor) Sources() []int {
	return slices.Sorted(maps.Keys(w))
}

// PIDs returns every pid mentioned anywhere in the adjacency, as source or
// target, deduplicated and ascending.
func (w WaitFor) PIDs() []int {
	seen := make(map[int]bool, len(w))
	for src, targets := range w {
		seen[src] = true
		for _, t := range targets {
			seen[t] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Clone returns a deep copy of the adjacency.
func (w WaitFor) Clone() WaitFor {
	if w == nil {
		return nil
	}
	out := make(WaitFor, len(w))
	for src, targets := range w {
		out[src] = slices.Clone(targets)
	}
	return out
}

// CycleSet is a list of deadlock cycles, each an ordered list of the pids
// on the cycle. Cycles are computed by the detection service; everything
// in this repository that receives a CycleSet treats it as an annotation
// and never re-derives it.
type CycleSet [][]int

// PIDSet returns the set of pids appearing in any cycle. The wait-for view
// builder uses it to flag nodes as deadlocked.
func (c CycleSet) PIDSet() map[int]bool {
	set := make(map[int]bool)
	for _, cycle := range c {
		for _, pid := range cycle {
			set[pid] = true
		}
	}
	return set
}

// Clone returns a deep copy of the cycle set.
func (c CycleSet) Clone() CycleSet {
	if c == nil {
		return nil
	}
	out := make(CycleSet, len(c))
	for i, cycle := range c {
		out[i] = slices.Clone(cycle)
	}
	return out
}
