package graph

import (
	"fmt"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// BuildRAG builds the resource-allocation view of a snapshot: one process
// node per process entry, one resource node per resource entry, an
// allocation edge P→R for every held unit count, and a request edge R→P
// for every pending request. Request edges run from the resource toward
// the blocked process, so arrows in the drawn graph point at whoever is
// waiting.
//
// Counts of zero produce no edge. Opaque fields on processes and resources
// are copied onto their nodes; the copies are independent of the input
// snapshot.
//
// The build fails, with no partial result, when the snapshot is
// inconsistent: duplicate pids, or an allocation/request entry naming a
// process or resource the snapshot does not declare.
func BuildRAG(s *snapshot.Snapshot) (*Graph, error) {
	g := New()

	for _, p := range s.Processes {
		node := Node{
			ID:    ProcessNodeID(p.PID),
			Type:  NodeProcess,
			PID:   p.PID,
			Name:  p.Name,
			Extra: p.Extra.Clone(),
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("process %d: %w", p.PID, err)
		}
	}

	for _, rid := range s.ResourceIDs() {
		r := s.Resources[rid]
		node := Node{
			ID:    ResourceNodeID(rid),
			Type:  NodeResource,
			RID:   rid,
			Total: r.Total,
			Extra: r.Extra.Clone(),
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("resource %s: %w", rid, err)
		}
	}

	for _, k := range s.AllocationKeys() {
		count := s.Allocation[k]
		if count <= 0 {
			continue
		}
		link := Link{
			ID:     "alloc_" + k.String(),
			Source: ProcessNodeID(k.PID),
			Target: ResourceNodeID(k.RID),
			Type:   LinkAllocation,
			Weight: count,
		}
		if err := g.AddLink(link); err != nil {
			return nil, fmt.Errorf("allocation %s: %w", k, err)
		}
	}

	for _, k := range s.RequestKeys() {
		need := s.Request[k]
		if need <= 0 {
			continue
		}
		link := Link{
			ID:     "req_" + k.String(),
			Source: ResourceNodeID(k.RID),
			Target: ProcessNodeID(k.PID),
			Type:   LinkRequest,
			Weight: need,
		}
		if err := g.AddLink(link); err != nil {
			return nil, fmt.Errorf("request %s: %w", k, err)
		}
	}

	return g, nil
}
