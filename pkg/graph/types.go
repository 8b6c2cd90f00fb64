package graph

import (
	"encoding/json"
	"maps"
	"strconv"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// =============================================================================
// Node and Link Types
// =============================================================================

// NodeType discriminates the two node families of the allocation view.
type NodeType string

const (
	// NodeProcess marks a process node ("P<pid>").
	NodeProcess NodeType = "process"
	// NodeResource marks a resource node ("R<rid>").
	NodeResource NodeType = "resource"
)

// LinkType discriminates the edge families across both views.
type LinkType string

const (
	// LinkAllocation is a held-units edge, process to resource.
	LinkAllocation LinkType = "allocation"
	// LinkRequest is a pending-request edge, resource to blocked process.
	LinkRequest LinkType = "request"
	// LinkWaitFor is a process-to-process wait edge in the wait-for view.
	LinkWaitFor LinkType = "wait-for"
)

// ProcessNodeID returns the node id for a process, "P<pid>".
func ProcessNodeID(pid int) string { return "P" + strconv.Itoa(pid) }

// ResourceNodeID returns the node id for a resource, "R<rid>".
func ResourceNodeID(rid string) string { return "R" + rid }

// Node is one vertex of a view graph. Typed fields cover everything the
// renderer keys off; opaque producer fields ride along in Extra and are
// flattened back into the JSON object on marshal, with typed fields winning
// on name collisions.
type Node struct {
	ID   string   // Unique within the graph ("P1", "R1")
	Type NodeType // process or resource

	// Process node fields.
	PID  int    // Process id
	Name string // Display name, may be empty

	// InCycle reports deadlock-cycle membership on wait-for view nodes.
	// It is nil on allocation-view nodes, where the flag has no meaning,
	// and explicitly true or false on every wait-for node.
	InCycle *bool

	// Resource node fields.
	RID   string // Resource id
	Total int    // Units that exist

	// Extra carries opaque fields copied from the snapshot entry.
	Extra snapshot.Metadata
}

// IsInCycle reports whether the node is flagged as part of a deadlock
// cycle. Nodes without the annotation report false.
func (n *Node) IsInCycle() bool { return n.InCycle != nil && *n.InCycle }

// Label returns the display name if set, otherwise the node id.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// MarshalJSON flattens Extra into the node object. Typed fields are written
// after the extras so they win when a producer field collides with one.
func (n Node) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Extra)+6)
	maps.Copy(m, n.Extra)
	m["id"] = n.ID
	m["type"] = n.Type
	switch n.Type {
	case NodeProcess:
		m["pid"] = n.PID
		if n.Name != "" {
			m["name"] = n.Name
		}
		if n.InCycle != nil {
			m["inCycle"] = *n.InCycle
		}
	case NodeResource:
		m["rid"] = n.RID
		m["total"] = n.Total
	}
	return json.Marshal(m)
}

// UnmarshalJSON fills the typed fields and collects unknown producer fields
// into Extra.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain struct {
		ID      string   `json:"id"`
		Type    NodeType `json:"type"`
		PID     int      `json:"pid"`
		Name    string   `json:"name"`
		InCycle *bool    `json:"inCycle"`
		RID     string   `json:"rid"`
		Total   int      `json:"total"`
	}
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range []string{"id", "type", "pid", "name", "inCycle", "rid", "total"} {
		delete(raw, k)
	}
	*n = Node{
		ID:      known.ID,
		Type:    known.Type,
		PID:     known.PID,
		Name:    known.Name,
		InCycle: known.InCycle,
		RID:     known.RID,
		Total:   known.Total,
	}
	if len(raw) > 0 {
		n.Extra = raw
	}
	return nil
}

// Link is one directed edge of a view graph. The id encodes the edge's
// meaning and stays stable across rebuilds of the same snapshot, which lets
// the renderer reconcile updates element by element.
type Link struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   LinkType `json:"type"`

	// Weight is the unit count on allocation and request edges. Wait-for
	// edges carry no weight and omit the field.
	Weight int `json:"weight,omitempty"`
}
