package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with
	// the same ID already exists. Node IDs are unique within a graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidLinkID is returned by [Graph.AddLink] when the link ID is
	// empty.
	ErrInvalidLinkID = errors.New("link ID must not be empty")

	// ErrDuplicateLinkID is returned by [Graph.AddLink] when a link with
	// the same ID already exists. Link IDs identify edges to the renderer,
	// so they must be unique.
	ErrDuplicateLinkID = errors.New("duplicate link ID")

	// ErrUnknownSourceNode is returned by [Graph.AddLink] when the Source
	// node does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddLink] when the Target
	// node does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrLinkDirection is returned by [Graph.AddLink] when the endpoint
	// node types do not match the link type: allocation runs process to
	// resource, request runs resource to process, wait-for connects two
	// processes.
	ErrLinkDirection = errors.New("link endpoints do not match link type")
)

// Graph is the node-link structure handed to the renderer. Nodes keep
// insertion order, links keep emission order, and both are addressable by
// their string ids.
//
// The zero value is not usable - use [New] to create a Graph. Graphs are
// built once and then read-only; they are not safe for concurrent
// mutation.
type Graph struct {
	nodes   []*Node
	links   []Link
	byID    map[string]*Node
	linkIDs map[string]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byID:    make(map[string]*Node),
		linkIDs: make(map[string]bool),
	}
}

// AddNode adds a node to the graph. Returns [ErrInvalidNodeID] if the ID
// is empty or [ErrDuplicateNodeID] if the ID is already taken.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.byID[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes = append(g.nodes, node)
	g.byID[node.ID] = node
	return nil
}

// AddLink adds a directed link between two existing nodes. Both endpoints
// must already be present and their node types must match the link type.
func (g *Graph) AddLink(l Link) error {
	if l.ID == "" {
		return ErrInvalidLinkID
	}
	if g.linkIDs[l.ID] {
		return ErrDuplicateLinkID
	}
	src, ok := g.byID[l.Source]
	if !ok {
		return ErrUnknownSourceNode
	}
	dst, ok := g.byID[l.Target]
	if !ok {
		return ErrUnknownTargetNode
	}
	if !directionValid(l.Type, src.Type, dst.Type) {
		return ErrLinkDirection
	}
	g.links = append(g.links, l)
	g.linkIDs[l.ID] = true
	return nil
}

func directionValid(lt LinkType, src, dst NodeType) bool {
	switch lt {
	case LinkAllocation:
		return src == NodeProcess && dst == NodeResource
	case LinkRequest:
		return src == NodeResource && dst == NodeProcess
	case LinkWaitFor:
		return src == NodeProcess && dst == NodeProcess
	default:
		return false
	}
}

// Node returns the node with the given ID and true, or nil and false if
// not found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// HasLink reports whether a link with the given ID exists.
func (g *Graph) HasLink(id string) bool { return g.linkIDs[id] }

// Nodes returns all nodes in insertion order. The slice contains pointers
// to the actual node structs; treat them as read-only.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Links returns a copy of all links in emission order.
func (g *Graph) Links() []Link { return slices.Clone(g.links) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links in the graph.
func (g *Graph) LinkCount() int { return len(g.links) }
