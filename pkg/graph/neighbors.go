package graph

import (
	"encoding/json"
	"slices"
)

// Neighborhood is the 1-hop surrounding of a focus node: the focus itself,
// every node sharing a link with it, and the ids of those links. It
// marshals as sorted id arrays:
//
//	{"nodes": ["P1", "R1"], "links": ["alloc_1_R1"]}
type Neighborhood struct {
	Nodes map[string]bool
	Links map[string]bool
}

// Neighbors computes the 1-hop neighborhood of focusID. It scans every
// link of the graph, selecting those with focusID as source or target; the
// node set is focusID plus every endpoint of a selected link, the link set
// is the selected link ids.
//
// A focusID absent from the graph is not an error: the result is the focus
// alone with no links, which renders as a bare highlighted node. The
// computation is pure and order-independent; there is no transitive
// closure.
func Neighbors(g *Graph, focusID string) Neighborhood {
	n := Neighborhood{
		Nodes: map[string]bool{focusID: true},
		Links: make(map[string]bool),
	}
	for _, l := range g.links {
		if l.Source != focusID && l.Target != focusID {
			continue
		}
		n.Links[l.ID] = true
		n.Nodes[l.Source] = true
		n.Nodes[l.Target] = true
	}
	return n
}

// NodeIDs returns the neighborhood's node ids in sorted order. The slice
// is never nil, so an empty neighborhood still marshals as an array.
func (n Neighborhood) NodeIDs() []string {
	return sortedIDs(n.Nodes)
}

// LinkIDs returns the neighborhood's link ids in sorted order, never nil.
func (n Neighborhood) LinkIDs() []string {
	return sortedIDs(n.Links)
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Contains reports whether the neighborhood includes the given node id.
func (n Neighborhood) Contains(nodeID string) bool { return n.Nodes[nodeID] }

// MarshalJSON encodes the id sets as sorted arrays.
func (n Neighborhood) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Nodes []string `json:"nodes"`
		Links []string `json:"links"`
	}{
		Nodes: n.NodeIDs(),
		Links: n.LinkIDs(),
	})
}

// UnmarshalJSON decodes the id arrays back into sets.
func (n *Neighborhood) UnmarshalJSON(data []byte) error {
	var doc struct {
		Nodes []string `json:"nodes"`
		Links []string `json:"links"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	n.Nodes = make(map[string]bool, len(doc.Nodes))
	for _, id := range doc.Nodes {
		n.Nodes[id] = true
	}
	n.Links = make(map[string]bool, len(doc.Links))
	for _, id := range doc.Links {
		n.Links[id] = true
	}
	return nil
}
