package graph

import (
	"fmt"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// WaitForLinkID returns the link id for a wait edge, "wfg_<src>_<target>".
func WaitForLinkID(src, target int) string {
	return fmt.Sprintf("wfg_%d_%d", src, target)
}

// BuildWFG builds the wait-for view from an authoritative adjacency, as
// returned by the detection service. Every pid the adjacency mentions,
// as source or target, becomes exactly one process node; each (src,
// target) pair becomes one wait-for edge. A pid mapped to an empty target
// list yields an isolated node.
//
// Each node's InCycle flag is set true iff its pid appears in any of the
// supplied cycles. Cycle membership is purely an annotation here; this
// builder never searches for cycles itself.
//
// Repeated targets in one adjacency list collapse to a single edge, since
// edge identity is the (src, target) pair.
func BuildWFG(w snapshot.WaitFor, cycles snapshot.CycleSet) *Graph {
	g := New()
	deadlocked := cycles.PIDSet()

	for _, pid := range w.PIDs() {
		flag := deadlocked[pid]
		// Error impossible: PIDs() is deduplicated and ids are non-empty.
		_ = g.AddNode(Node{
			ID:      ProcessNodeID(pid),
			Type:    NodeProcess,
			PID:     pid,
			InCycle: &flag,
		})
	}

	for _, src := range w.Sources() {
		for _, target := range w[src] {
			id := WaitForLinkID(src, target)
			if g.HasLink(id) {
				continue
			}
			_ = g.AddLink(Link{
				ID:     id,
				Source: ProcessNodeID(src),
				Target: ProcessNodeID(target),
				Type:   LinkWaitFor,
			})
		}
	}

	return g
}

// MarkCycles flags the process nodes whose pid appears in any of the given
// cycles. It decorates an already-built graph in place; the resource
// allocation builder itself never annotates cycle membership, so rendering
// paths that want deadlocked processes highlighted apply this afterwards.
func MarkCycles(g *Graph, cycles snapshot.CycleSet) {
	deadlocked := cycles.PIDSet()
	for _, n := range g.Nodes() {
		if n.Type != NodeProcess || !deadlocked[n.PID] {
			continue
		}
		flag := true
		n.InCycle = &flag
	}
}

// DeriveWFG approximates the wait-for view straight from a snapshot, for
// when no detection result is available. Every process entry becomes a
// node. For each pending request (pid, rid), every other process holding
// units of rid is a blocker, and one wait-for edge runs from the waiter to
// each blocker. A process never waits on itself: holding some units of a
// resource while requesting more produces no self-loop.
//
// This is a direct, non-transitive derivation that ignores resource totals
// and availability, so it can show a wait edge even when free units exist
// elsewhere. It is a visualization aid, not a substitute for the
// authoritative detector.
//
// Cycle membership is annotated from the supplied cycles exactly as in
// [BuildWFG]. The build fails when a request or allocation entry names a
// pid the snapshot does not declare.
func DeriveWFG(s *snapshot.Snapshot, cycles snapshot.CycleSet) (*Graph, error) {
	g := New()
	deadlocked := cycles.PIDSet()

	for _, p := range s.Processes {
		flag := deadlocked[p.PID]
		node := Node{
			ID:      ProcessNodeID(p.PID),
			Type:    NodeProcess,
			PID:     p.PID,
			Name:    p.Name,
			InCycle: &flag,
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("process %d: %w", p.PID, err)
		}
	}

	allocKeys := s.AllocationKeys()
	for _, reqKey := range s.RequestKeys() {
		if s.Request[reqKey] <= 0 {
			continue
		}
		for _, allocKey := range allocKeys {
			if s.Allocation[allocKey] <= 0 {
				continue
			}
			if allocKey.RID != reqKey.RID || allocKey.PID == reqKey.PID {
				continue
			}
			id := WaitForLinkID(reqKey.PID, allocKey.PID)
			if g.HasLink(id) {
				continue
			}
			link := Link{
				ID:     id,
				Source: ProcessNodeID(reqKey.PID),
				Target: ProcessNodeID(allocKey.PID),
				Type:   LinkWaitFor,
			}
			if err := g.AddLink(link); err != nil {
				return nil, fmt.Errorf("wait edge %d->%d: %w", reqKey.PID, allocKey.PID, err)
			}
		}
	}

	return g, nil
}
