package graph

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// chainGraph builds P1 -alloc-> R1 -req-> P2 with an isolated P3.
func chainGraph(t *testing.T) *Graph {
	t.Helper()
	snap := &snapshot.Snapshot{
		Processes:  []snapshot.Process{{PID: 1}, {PID: 2}, {PID: 3}},
		Resources:  map[string]snapshot.Resource{"1": {Total: 1}},
		Allocation: map[snapshot.Key]int{{PID: 1, RID: "1"}: 1},
		Request:    map[snapshot.Key]int{{PID: 2, RID: "1"}: 1},
	}
	g, err := BuildRAG(snap)
	if err != nil {
		t.Fatalf("BuildRAG: %v", err)
	}
	return g
}

func TestNeighbors(t *testing.T) {
	g := chainGraph(t)

	tests := []struct {
		name      string
		focus     string
		wantNodes []string
		wantLinks []string
	}{
		{
			name:      "FocusWithOneEdge",
			focus:     "P1",
			wantNodes: []string{"P1", "R1"},
			wantLinks: []string{"alloc_1_1"},
		},
		{
			name:      "FocusInMiddle",
			focus:     "R1",
			wantNodes: []string{"P1", "P2", "R1"},
			wantLinks: []string{"alloc_1_1", "req_2_1"},
		},
		{
			name:      "IsolatedFocus",
			focus:     "P3",
			wantNodes: []string{"P3"},
			wantLinks: []string{},
		},
		{
			name:      "AbsentFocus",
			focus:     "P99",
			wantNodes: []string{"P99"},
			wantLinks: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Neighbors(g, tt.focus)
			if got := n.NodeIDs(); !reflect.DeepEqual(got, tt.wantNodes) {
				t.Errorf("nodes = %v, want %v", got, tt.wantNodes)
			}
			if got := n.LinkIDs(); !reflect.DeepEqual(got, tt.wantLinks) {
				t.Errorf("links = %v, want %v", got, tt.wantLinks)
			}
		})
	}
}

func TestNeighborsExcludesUnrelated(t *testing.T) {
	g := chainGraph(t)

	n := Neighbors(g, "P1")
	if n.Contains("P3") {
		t.Error("P3 is not connected to P1 but appears in the neighborhood")
	}
	if n.Contains("P2") {
		t.Error("P2 is two hops from P1 but appears in the neighborhood")
	}
}

func TestNeighborsIdempotent(t *testing.T) {
	g := chainGraph(t)

	a := Neighbors(g, "R1")
	b := Neighbors(g, "R1")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("two identical queries differ: %+v vs %+v", a, b)
	}
}

func TestNeighborhoodJSON(t *testing.T) {
	g := chainGraph(t)

	data, err := json.Marshal(Neighbors(g, "P1"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"nodes":["P1","R1"],"links":["alloc_1_1"]}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var decoded Neighborhood
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Contains("P1") || !decoded.Contains("R1") {
		t.Errorf("decoded neighborhood = %+v, want P1 and R1", decoded)
	}
}
