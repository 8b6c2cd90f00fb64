package detect

import (
	"reflect"
	"testing"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

func TestChooseVictims(t *testing.T) {
	tests := []struct {
		name   string
		cycles snapshot.CycleSet
		want   []int
	}{
		{
			name:   "NoCycles",
			cycles: snapshot.CycleSet{},
			want:   []int{},
		},
		{
			name:   "LowestPIDPerCycle",
			cycles: snapshot.CycleSet{{4, 2, 7}, {9, 3}},
			want:   []int{2, 3},
		},
		{
			name:   "SharedMinimumCountsOnce",
			cycles: snapshot.CycleSet{{1, 2}, {1, 3}},
			want:   []int{1},
		},
		{
			name:   "EmptyCycleSkipped",
			cycles: snapshot.CycleSet{{}, {5, 6}},
			want:   []int{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChooseVictims(tt.cycles)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ChooseVictims() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreempt(t *testing.T) {
	snap := &snapshot.Snapshot{
		Processes: []snapshot.Process{{PID: 1}, {PID: 2}},
		Resources: map[string]snapshot.Resource{"R1": {Total: 1}, "R2": {Total: 1}},
		Allocation: map[snapshot.Key]int{
			key(1, "R1"): 1,
			key(2, "R2"): 1,
		},
		Request: map[snapshot.Key]int{
			key(1, "R2"): 1,
			key(2, "R1"): 1,
		},
	}
	orig := snap.Clone()

	got := Preempt(snap, []int{1})

	if !reflect.DeepEqual(snap, orig) {
		t.Fatal("Preempt() modified its input snapshot")
	}
	if got.Allocation[key(1, "R1")] != 0 {
		t.Errorf("victim allocation = %d, want 0", got.Allocation[key(1, "R1")])
	}
	if got.Request[key(1, "R2")] != 0 {
		t.Errorf("victim request = %d, want 0", got.Request[key(1, "R2")])
	}
	if got.Allocation[key(2, "R2")] != 1 {
		t.Errorf("survivor allocation = %d, want 1", got.Allocation[key(2, "R2")])
	}
	if got.Request[key(2, "R1")] != 1 {
		t.Errorf("survivor request = %d, want 1", got.Request[key(2, "R1")])
	}

	// Entries are zeroed, not deleted.
	if _, ok := got.Allocation[key(1, "R1")]; !ok {
		t.Error("victim allocation key was deleted, want zeroed entry")
	}
	if _, ok := got.Request[key(1, "R2")]; !ok {
		t.Error("victim request key was deleted, want zeroed entry")
	}
}

func TestPreemptNoVictimsReturnsCopy(t *testing.T) {
	snap := demoState()

	got := Preempt(snap, nil)
	if !reflect.DeepEqual(got, snap) {
		t.Fatal("Preempt() with no victims should equal the input")
	}

	got.Allocation[key(1, "R1")] = 99
	if snap.Allocation[key(1, "R1")] == 99 {
		t.Error("Preempt() result shares state with the input")
	}
}

// Preempting the chosen victims must leave a cycle-free wait-for graph.
func TestRecoveryBreaksDeadlock(t *testing.T) {
	snap := &snapshot.Snapshot{
		Processes: []snapshot.Process{{PID: 1}, {PID: 2}},
		Resources: map[string]snapshot.Resource{"R1": {Total: 1}, "R2": {Total: 1}},
		Allocation: map[snapshot.Key]int{
			key(1, "R1"): 1,
			key(2, "R2"): 1,
		},
		Request: map[snapshot.Key]int{
			key(1, "R2"): 1,
			key(2, "R1"): 1,
		},
	}

	cycles := FindCycles(BuildWaitFor(snap))
	if len(cycles) != 1 {
		t.Fatalf("FindCycles() found %d cycles, want 1", len(cycles))
	}

	victims := ChooseVictims(cycles)
	if want := []int{1}; !reflect.DeepEqual(victims, want) {
		t.Fatalf("ChooseVictims() = %v, want %v", victims, want)
	}

	after := Preempt(snap, victims)
	if remaining := FindCycles(BuildWaitFor(after)); len(remaining) != 0 {
		t.Errorf("cycles after preemption = %v, want none", remaining)
	}
}
