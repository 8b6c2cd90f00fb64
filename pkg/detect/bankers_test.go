package detect

import (
	"reflect"
	"testing"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

func TestIsSafe(t *testing.T) {
	tests := []struct {
		name     string
		snap     *snapshot.Snapshot
		wantSafe bool
		wantSeq  []int
	}{
		{
			name:     "Empty",
			snap:     &snapshot.Snapshot{},
			wantSafe: true,
			wantSeq:  []int{},
		},
		{
			name: "NoContention",
			snap: &snapshot.Snapshot{
				Processes: []snapshot.Process{{PID: 1}, {PID: 2}},
				Resources: map[string]snapshot.Resource{"R1": {Total: 2}},
			},
			wantSafe: true,
			wantSeq:  []int{1, 2},
		},
		{
			// The demo state has wait-for cycles but a spare unit of R1
			// lets process 2 finish first and unwind the rest.
			name:     "DemoIsSafeDespiteCycles",
			snap:     demoState(),
			wantSafe: true,
			wantSeq:  []int{2, 1, 3},
		},
		{
			name: "MutualHoldAndWait",
			snap: &snapshot.Snapshot{
				Processes: []snapshot.Process{{PID: 1}, {PID: 2}},
				Resources: map[string]snapshot.Resource{"R1": {Total: 2}},
				Allocation: map[snapshot.Key]int{
					key(1, "R1"): 1,
					key(2, "R1"): 1,
				},
				Request: map[snapshot.Key]int{
					key(1, "R1"): 1,
					key(2, "R1"): 1,
				},
			},
			wantSafe: false,
			wantSeq:  nil,
		},
		{
			name: "ReleaseUnblocksLaterProcess",
			snap: &snapshot.Snapshot{
				Processes: []snapshot.Process{{PID: 1}, {PID: 2}},
				Resources: map[string]snapshot.Resource{"R1": {Total: 2}},
				Allocation: map[snapshot.Key]int{
					key(1, "R1"): 2,
				},
				Request: map[snapshot.Key]int{
					key(2, "R1"): 2,
				},
			},
			wantSafe: true,
			wantSeq:  []int{1, 2},
		},
		{
			name: "RequestBeyondTotal",
			snap: &snapshot.Snapshot{
				Processes: []snapshot.Process{{PID: 1}},
				Resources: map[string]snapshot.Resource{"R1": {Total: 1}},
				Request: map[snapshot.Key]int{
					key(1, "R1"): 5,
				},
			},
			wantSafe: false,
			wantSeq:  nil,
		},
		{
			name: "RequestOnUndeclaredResourceIgnored",
			snap: &snapshot.Snapshot{
				Processes: []snapshot.Process{{PID: 1}},
				Resources: map[string]snapshot.Resource{"R1": {Total: 1}},
				Request: map[snapshot.Key]int{
					key(1, "ghost"): 99,
				},
			},
			wantSafe: true,
			wantSeq:  []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe, seq := IsSafe(tt.snap)
			if safe != tt.wantSafe {
				t.Errorf("IsSafe() safe = %v, want %v", safe, tt.wantSafe)
			}
			if !reflect.DeepEqual(seq, tt.wantSeq) {
				t.Errorf("IsSafe() sequence = %v, want %v", seq, tt.wantSeq)
			}
		})
	}
}

func TestIsSafeLeavesInputAlone(t *testing.T) {
	snap := demoState()
	want := snap.Clone()

	IsSafe(snap)

	if !reflect.DeepEqual(snap, want) {
		t.Error("IsSafe() modified its input snapshot")
	}
}

// Safety and detection answer different questions: the demo state carries
// wait-for cycles yet admits a safe completion order.
func TestSafeStateCanStillHaveCycles(t *testing.T) {
	snap := demoState()

	safe, _ := IsSafe(snap)
	if !safe {
		t.Fatal("IsSafe() = false, want true")
	}

	cycles := FindCycles(BuildWaitFor(snap))
	if len(cycles) == 0 {
		t.Fatal("FindCycles() found no cycles, want at least one")
	}
}
