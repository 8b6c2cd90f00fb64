package detect

import (
	"slices"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// FindCycles searches the wait-for graph depth-first and returns the cycles
// it uncovers.
//
// Traversal order is fixed: roots and neighbors are visited in ascending pid
// order, so the same graph always yields the same cycle list. Each cycle is
// reported as the path suffix starting at the first revisited process, in
// wait-for order.
func FindCycles(w snapshot.WaitFor) snapshot.CycleSet {
	cycles := snapshot.CycleSet{}
	visited := make(map[int]bool)
	onStack := make(map[int]bool)

	var walk func(node int, path []int)
	walk = func(node int, path []int) {
		visited[node] = true
		onStack[node] = true
		targets := slices.Clone(w[node])
		slices.Sort(targets)
		for _, next := range targets {
			switch {
			case !visited[next]:
				walk(next, append(path, next))
			case onStack[next]:
				if i := slices.Index(path, next); i >= 0 {
					cycles = append(cycles, slices.Clone(path[i:]))
				}
			}
		}
		onStack[node] = false
	}

	for _, root := range w.Sources() {
		if !visited[root] {
			walk(root, []int{root})
		}
	}
	return cycles
}
