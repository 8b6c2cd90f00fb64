package detect_test

import (
	"context"
	"fmt"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// Two processes each hold one resource and wait for the other's.
func deadlockedPair() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Processes: []snapshot.Process{{PID: 1, Name: "writer"}, {PID: 2, Name: "reader"}},
		Resources: map[string]snapshot.Resource{"lockA": {Total: 1}, "lockB": {Total: 1}},
		Allocation: map[snapshot.Key]int{
			{PID: 1, RID: "lockA"}: 1,
			{PID: 2, RID: "lockB"}: 1,
		},
		Request: map[snapshot.Key]int{
			{PID: 1, RID: "lockB"}: 1,
			{PID: 2, RID: "lockA"}: 1,
		},
	}
}

func ExampleAnalyze() {
	res := detect.Analyze(context.Background(), deadlockedPair())

	fmt.Println(res.Message)
	fmt.Println(res.Cycles)
	// Output:
	// Found 1 cycle(s)
	// [[1 2]]
}

func ExampleRecover() {
	rec := detect.Recover(context.Background(), deadlockedPair())

	fmt.Println(rec.Message)
	fmt.Println(detect.Analyze(context.Background(), rec.NewSnapshot).Message)
	// Output:
	// Preempted processes: [1]
	// No cycles detected
}

func ExampleIsSafe() {
	snap := &snapshot.Snapshot{
		Processes:  []snapshot.Process{{PID: 1}, {PID: 2}},
		Resources:  map[string]snapshot.Resource{"db": {Total: 2}},
		Allocation: map[snapshot.Key]int{{PID: 1, RID: "db"}: 2},
		Request:    map[snapshot.Key]int{{PID: 2, RID: "db"}: 1},
	}

	safe, order := detect.IsSafe(snap)
	fmt.Println(safe, order)
	// Output: true [1 2]
}
