package detect

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

func TestAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("Clean", func(t *testing.T) {
		res := Analyze(ctx, &snapshot.Snapshot{
			Processes: []snapshot.Process{{PID: 1}},
			Resources: map[string]snapshot.Resource{"R1": {Total: 1}},
		})
		if res.HasDeadlock {
			t.Error("HasDeadlock = true, want false")
		}
		if res.Message != "No cycles detected" {
			t.Errorf("Message = %q, want %q", res.Message, "No cycles detected")
		}
		if len(res.Cycles) != 0 {
			t.Errorf("Cycles = %v, want none", res.Cycles)
		}
	})

	t.Run("Deadlocked", func(t *testing.T) {
		res := Analyze(ctx, demoState())
		if !res.HasDeadlock {
			t.Error("HasDeadlock = false, want true")
		}
		if res.Message != "Found 2 cycle(s)" {
			t.Errorf("Message = %q, want %q", res.Message, "Found 2 cycle(s)")
		}
		want := snapshot.WaitFor{1: {2, 3}, 2: {1}, 3: {1, 2}}
		if !reflect.DeepEqual(res.WFG, want) {
			t.Errorf("WFG = %v, want %v", res.WFG, want)
		}
	})
}

func TestResultJSONShape(t *testing.T) {
	res := Analyze(context.Background(), &snapshot.Snapshot{
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
	})

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{
		`"has_deadlock":true`,
		`"cycles":[[1,2]]`,
		`"wfg":{"1":[2],"2":[1]}`,
		`"message":"Found 1 cycle(s)"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("marshaled result missing %s:\n%s", want, data)
		}
	}
}

func TestResultJSONEmptyCollections(t *testing.T) {
	data, err := json.Marshal(Analyze(context.Background(), &snapshot.Snapshot{}))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{`"wfg":{}`, `"cycles":[]`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("marshaled result missing %s:\n%s", want, data)
		}
	}
}

func TestPredict(t *testing.T) {
	ctx := context.Background()

	t.Run("Safe", func(t *testing.T) {
		p := Predict(ctx, demoState())
		if !p.Safe {
			t.Error("Safe = false, want true")
		}
		if p.Message != "SAFE" {
			t.Errorf("Message = %q, want %q", p.Message, "SAFE")
		}
		if p.Details != "System is in a safe state" {
			t.Errorf("Details = %q, want %q", p.Details, "System is in a safe state")
		}
		if want := []int{2, 1, 3}; !reflect.DeepEqual(p.Sequence, want) {
			t.Errorf("Sequence = %v, want %v", p.Sequence, want)
		}
	})

	t.Run("Unsafe", func(t *testing.T) {
		p := Predict(ctx, &snapshot.Snapshot{
			Processes:  []snapshot.Process{{PID: 1}, {PID: 2}},
			Resources:  map[string]snapshot.Resource{"R1": {Total: 2}},
			Allocation: map[snapshot.Key]int{key(1, "R1"): 1, key(2, "R1"): 1},
			Request:    map[snapshot.Key]int{key(1, "R1"): 1, key(2, "R1"): 1},
		})
		if p.Safe {
			t.Error("Safe = true, want false")
		}
		if p.Message != "UNSAFE" {
			t.Errorf("Message = %q, want %q", p.Message, "UNSAFE")
		}
		if p.Details != "System may lead to deadlock" {
			t.Errorf("Details = %q, want %q", p.Details, "System may lead to deadlock")
		}
		if p.Sequence != nil {
			t.Errorf("Sequence = %v, want nil", p.Sequence)
		}
	})
}

func TestRecover(t *testing.T) {
	ctx := context.Background()

	t.Run("NothingToDo", func(t *testing.T) {
		snap := &snapshot.Snapshot{
			Processes: []snapshot.Process{{PID: 1}},
			Resources: map[string]snapshot.Resource{"R1": {Total: 1}},
		}
		rec := Recover(ctx, snap)
		if len(rec.Victims) != 0 {
			t.Errorf("Victims = %v, want none", rec.Victims)
		}
		if rec.Message != "No recovery needed" {
			t.Errorf("Message = %q, want %q", rec.Message, "No recovery needed")
		}
		if !reflect.DeepEqual(rec.NewSnapshot, snap) {
			t.Error("NewSnapshot should equal the input when nothing was preempted")
		}
	})

	t.Run("PreemptsAndReports", func(t *testing.T) {
		snap := demoState()
		orig := snap.Clone()

		rec := Recover(ctx, snap)
		if want := []int{1}; !reflect.DeepEqual(rec.Victims, want) {
			t.Errorf("Victims = %v, want %v", rec.Victims, want)
		}
		if rec.Message != "Preempted processes: [1]" {
			t.Errorf("Message = %q, want %q", rec.Message, "Preempted processes: [1]")
		}
		if rec.NewSnapshot.Allocation[key(1, "R1")] != 0 {
			t.Error("victim allocation not released in NewSnapshot")
		}
		if !reflect.DeepEqual(snap, orig) {
			t.Error("Recover() modified its input snapshot")
		}

		if after := Analyze(ctx, rec.NewSnapshot); after.HasDeadlock {
			t.Errorf("recovered state still deadlocked: %v", after.Cycles)
		}
	})
}
