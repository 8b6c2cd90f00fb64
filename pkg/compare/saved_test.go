package compare

import (
	"testing"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

func TestCaptureDeepCopies(t *testing.T) {
	live := &snapshot.Snapshot{
		Processes:  []snapshot.Process{{PID: 1, Name: "a"}},
		Resources:  map[string]snapshot.Resource{"A": {Total: 1}},
		Allocation: map[snapshot.Key]int{{PID: 1, RID: "A"}: 1},
	}
	cycles := snapshot.CycleSet{{1, 2}}
	wfg := snapshot.WaitFor{1: {2}}

	saved := Capture("baseline", live, cycles, wfg)

	// Mutate the live state the way a refresh tick would.
	live.Processes[0].Name = "renamed"
	live.Allocation[snapshot.Key{PID: 1, RID: "A"}] = 9
	cycles[0][0] = 99
	wfg[1][0] = 99

	if saved.Data.Processes[0].Name != "a" {
		t.Errorf("capture name = %q, want a", saved.Data.Processes[0].Name)
	}
	if saved.Data.Allocation[snapshot.Key{PID: 1, RID: "A"}] != 1 {
		t.Error("capture allocation tracked live mutation")
	}
	if saved.Cycles[0][0] != 1 {
		t.Error("capture cycles tracked live mutation")
	}
	if saved.WFG[1][0] != 2 {
		t.Error("capture wfg tracked live mutation")
	}
	if saved.ID == "" {
		t.Error("capture has no id")
	}
	if saved.Timestamp.IsZero() {
		t.Error("capture has no timestamp")
	}
}

func TestStore(t *testing.T) {
	store := NewStore()

	first := store.Save("first", snapWithPIDs(1), nil, nil)
	second := store.Save("second", snapWithPIDs(1, 2), nil, nil)

	if store.Len() != 2 {
		t.Fatalf("len = %d, want 2", store.Len())
	}
	if first.ID == second.ID {
		t.Error("captures share an id")
	}

	got, ok := store.Get(first.ID)
	if !ok {
		t.Fatal("first capture not found")
	}
	if got.Name != "first" {
		t.Errorf("name = %q, want first", got.Name)
	}

	list := store.List()
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Errorf("List() out of capture order: %+v", list)
	}

	if !store.Delete(first.ID) {
		t.Error("Delete returned false for existing capture")
	}
	if store.Delete(first.ID) {
		t.Error("Delete returned true for missing capture")
	}
	if _, ok := store.Get(first.ID); ok {
		t.Error("deleted capture still retrievable")
	}
	if store.Len() != 1 {
		t.Errorf("len = %d, want 1", store.Len())
	}
}
