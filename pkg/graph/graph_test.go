package graph

import (
	"errors"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()

	if err := g.AddNode(Node{ID: "P1", Type: NodeProcess, PID: 1}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode(Node{ID: "", Type: NodeProcess}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty ID error = %v, want %v", err, ErrInvalidNodeID)
	}
	if err := g.AddNode(Node{ID: "P1", Type: NodeProcess}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate ID error = %v, want %v", err, ErrDuplicateNodeID)
	}
	if g.NodeCount() != 1 {
		t.Errorf("nodes = %d, want 1", g.NodeCount())
	}
}

func TestAddLink(t *testing.T) {
	newGraph := func(t *testing.T) *Graph {
		t.Helper()
		g := New()
		for _, n := range []Node{
			{ID: "P1", Type: NodeProcess, PID: 1},
			{ID: "P2", Type: NodeProcess, PID: 2},
			{ID: "R1", Type: NodeResource, RID: "1", Total: 1},
		} {
			if err := g.AddNode(n); err != nil {
				t.Fatalf("AddNode(%s): %v", n.ID, err)
			}
		}
		return g
	}

	tests := []struct {
		name string
		link Link
		want error
	}{
		{
			name: "ValidAllocation",
			link: Link{ID: "alloc_1_1", Source: "P1", Target: "R1", Type: LinkAllocation, Weight: 1},
		},
		{
			name: "ValidRequest",
			link: Link{ID: "req_2_1", Source: "R1", Target: "P2", Type: LinkRequest, Weight: 1},
		},
		{
			name: "ValidWaitFor",
			link: Link{ID: "wfg_1_2", Source: "P1", Target: "P2", Type: LinkWaitFor},
		},
		{
			name: "EmptyID",
			link: Link{Source: "P1", Target: "R1", Type: LinkAllocation},
			want: ErrInvalidLinkID,
		},
		{
			name: "UnknownSource",
			link: Link{ID: "x", Source: "P9", Target: "R1", Type: LinkAllocation},
			want: ErrUnknownSourceNode,
		},
		{
			name: "UnknownTarget",
			link: Link{ID: "x", Source: "P1", Target: "R9", Type: LinkAllocation},
			want: ErrUnknownTargetNode,
		},
		{
			name: "AllocationBackwards",
			link: Link{ID: "x", Source: "R1", Target: "P1", Type: LinkAllocation},
			want: ErrLinkDirection,
		},
		{
			name: "RequestBackwards",
			link: Link{ID: "x", Source: "P1", Target: "R1", Type: LinkRequest},
			want: ErrLinkDirection,
		},
		{
			name: "WaitForToResource",
			link: Link{ID: "x", Source: "P1", Target: "R1", Type: LinkWaitFor},
			want: ErrLinkDirection,
		},
		{
			name: "UnknownType",
			link: Link{ID: "x", Source: "P1", Target: "R1", Type: "mystery"},
			want: ErrLinkDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph(t)
			err := g.AddLink(tt.link)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("AddLink: %v", err)
				}
				if !g.HasLink(tt.link.ID) {
					t.Errorf("link %s not recorded", tt.link.ID)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAddLinkDuplicateID(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "P1", Type: NodeProcess, PID: 1})
	g.AddNode(Node{ID: "P2", Type: NodeProcess, PID: 2})

	l := Link{ID: "wfg_1_2", Source: "P1", Target: "P2", Type: LinkWaitFor}
	if err := g.AddLink(l); err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	if err := g.AddLink(l); !errors.Is(err, ErrDuplicateLinkID) {
		t.Errorf("duplicate link error = %v, want %v", err, ErrDuplicateLinkID)
	}
	if g.LinkCount() != 1 {
		t.Errorf("links = %d, want 1", g.LinkCount())
	}
}

func TestNodeLookup(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "P1", Type: NodeProcess, PID: 1, Name: "init"})

	n, ok := g.Node("P1")
	if !ok {
		t.Fatal("node P1 not found")
	}
	if n.Label() != "init" {
		t.Errorf("label = %q, want init", n.Label())
	}

	if _, ok := g.Node("P2"); ok {
		t.Error("unexpected node P2")
	}

	unnamed := Node{ID: "R1", Type: NodeResource}
	if unnamed.Label() != "R1" {
		t.Errorf("unnamed label = %q, want R1", unnamed.Label())
	}
}
