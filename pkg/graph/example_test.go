package graph_test

import (
	"fmt"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/graph"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

func ExampleBuildRAG() {
	snap := &snapshot.Snapshot{
		Processes: []snapshot.Process{
			{PID: 1, Name: "editor"},
			{PID: 2, Name: "indexer"},
		},
		Resources: map[string]snapshot.Resource{
			"disk": {Total: 1},
		},
		Allocation: map[snapshot.Key]int{
			{PID: 1, RID: "disk"}: 1,
		},
		Request: map[snapshot.Key]int{
			{PID: 2, RID: "disk"}: 1,
		},
	}

	g, err := graph.BuildRAG(snap)
	if err != nil {
		fmt.Println("build failed:", err)
		return
	}

	for _, l := range g.Links() {
		fmt.Printf("%s: %s -> %s\n", l.Type, l.Source, l.Target)
	}
	// Output:
	// allocation: P1 -> Rdisk
	// request: Rdisk -> P2
}

func ExampleBuildWFG() {
	wfg := snapshot.WaitFor{1: {2}, 2: {1}}
	cycles := snapshot.CycleSet{{1, 2}}

	g := graph.BuildWFG(wfg, cycles)

	for _, n := range g.Nodes() {
		fmt.Printf("%s inCycle=%v\n", n.ID, n.IsInCycle())
	}
	// Output:
	// P1 inCycle=true
	// P2 inCycle=true
}

func ExampleNeighbors() {
	snap := &snapshot.Snapshot{
		Processes:  []snapshot.Process{{PID: 1}, {PID: 2}, {PID: 3}},
		Resources:  map[string]snapshot.Resource{"disk": {Total: 1}},
		Allocation: map[snapshot.Key]int{{PID: 1, RID: "disk"}: 1},
		Request:    map[snapshot.Key]int{{PID: 2, RID: "disk"}: 1},
	}
	g, _ := graph.BuildRAG(snap)

	hood := graph.Neighbors(g, "P1")
	fmt.Println("nodes:", hood.NodeIDs())
	fmt.Println("links:", hood.LinkIDs())
	// Output:
	// nodes: [P1 Rdisk]
	// links: [alloc_1_disk]
}
