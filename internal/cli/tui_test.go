package cli

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/scenario"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

func TestNewWatchModelClampsInterval(t *testing.T) {
	m := NewWatchModel("demo", scenario.Demo(), 0)
	if m.Interval != time.Second {
		t.Errorf("Interval = %v, want 1s", m.Interval)
	}

	m = NewWatchModel("demo", scenario.Demo(), 5*time.Second)
	if m.Interval != 5*time.Second {
		t.Errorf("Interval = %v, want 5s", m.Interval)
	}
}

func TestWatchModelQuitKeys(t *testing.T) {
	m := NewWatchModel("demo", scenario.Demo(), time.Second)

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	}
	for _, key := range keys {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("key %q should produce a command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q should quit, got %T", key.String(), cmd())
		}
	}
}

func TestWatchModelSnapshotUpdate(t *testing.T) {
	m := NewWatchModel("watch.json", scenario.CircularWait(4), time.Second)
	if !m.res.HasDeadlock {
		t.Fatal("circular wait fixture should start deadlocked")
	}

	// A process holding a resource nobody waits on. Cycle-free.
	calm := &snapshot.Snapshot{
		Processes:  []snapshot.Process{{PID: 1, Name: "holder"}},
		Resources:  map[string]snapshot.Resource{"R1": {Total: 1}},
		Allocation: map[snapshot.Key]int{{PID: 1, RID: "R1"}: 1},
	}

	next, _ := m.Update(snapshotMsg{snap: calm})
	updated, ok := next.(WatchModel)
	if !ok {
		t.Fatalf("Update returned %T, want WatchModel", next)
	}

	if updated.res.HasDeadlock {
		t.Error("deadlock flag should clear after the calm snapshot")
	}
	if len(updated.procRows) != 1 {
		t.Errorf("procRows = %d, want 1", len(updated.procRows))
	}
}

func TestWatchModelReloadError(t *testing.T) {
	m := NewWatchModel("watch.json", scenario.Demo(), time.Second)

	next, _ := m.Update(watchErrMsg{err: errors.New("unexpected end of JSON input")})
	updated := next.(WatchModel)

	if updated.readErr == nil {
		t.Fatal("readErr should be set after a failed reload")
	}
	if !strings.Contains(updated.View(), "reload failed") {
		t.Error("view should surface the reload failure")
	}

	// The next good snapshot clears the error banner.
	next, _ = updated.Update(snapshotMsg{snap: scenario.Demo()})
	updated = next.(WatchModel)
	if updated.readErr != nil {
		t.Error("readErr should clear after a successful reload")
	}
}

func TestWatchModelTickRearms(t *testing.T) {
	m := NewWatchModel("demo", scenario.Demo(), time.Second)

	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should re-arm the timer")
	}
}

func TestWatchModelView(t *testing.T) {
	m := NewWatchModel("circular.json", scenario.CircularWait(4), time.Second)

	view := m.View()
	for _, want := range []string{"Deadlock Watch", "circular.json", "DEADLOCK", "P0 → P1 → P2 → P3 → P0", "R3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}

	safe := &snapshot.Snapshot{
		Processes:  []snapshot.Process{{PID: 1, Name: "holder"}},
		Resources:  map[string]snapshot.Resource{"R1": {Total: 1}},
		Allocation: map[snapshot.Key]int{{PID: 1, RID: "R1"}: 1},
	}
	if view := NewWatchModel("safe.json", safe, time.Second).View(); !strings.Contains(view, "SAFE") {
		t.Error("view should show SAFE for a cycle-free snapshot")
	}
}

func TestBuildProcessRowsStates(t *testing.T) {
	snap := scenario.CircularWait(3)
	snap.Processes = append(snap.Processes, snapshot.Process{PID: 9, Name: "idle"})

	res := detect.Analyze(context.Background(), snap)
	rows := buildProcessRows(snap, res)

	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	for i := 0; i < 3; i++ {
		if rows[i].state != stateDeadlocked {
			t.Errorf("row %d state = %v, want deadlocked", i, rows[i].state)
		}
	}
	if rows[3].state != stateRunning {
		t.Errorf("idle row state = %v, want running", rows[3].state)
	}
	if rows[3].cells[2] != "—" || rows[3].cells[3] != "—" {
		t.Errorf("idle row should dash its holds and wants, got %v", rows[3].cells)
	}
}

func TestBuildProcessRowsWaiting(t *testing.T) {
	// P2 waits on P1, which holds R1 and requests nothing: a wait without
	// a cycle.
	snap := &snapshot.Snapshot{
		Processes: []snapshot.Process{
			{PID: 1, Name: "holder"},
			{PID: 2, Name: "waiter"},
		},
		Resources:  map[string]snapshot.Resource{"R1": {Total: 1}},
		Allocation: map[snapshot.Key]int{{PID: 1, RID: "R1"}: 1},
		Request:    map[snapshot.Key]int{{PID: 2, RID: "R1"}: 1},
	}

	res := detect.Analyze(context.Background(), snap)
	rows := buildProcessRows(snap, res)

	if rows[0].state != stateRunning {
		t.Errorf("holder state = %v, want running", rows[0].state)
	}
	if rows[1].state != stateWaiting {
		t.Errorf("waiter state = %v, want waiting", rows[1].state)
	}
	if rows[1].cells[3] != "R1×1" {
		t.Errorf("waiter wants = %q, want %q", rows[1].cells[3], "R1×1")
	}
}

func TestBuildResourceRows(t *testing.T) {
	rows := buildResourceRows(scenario.Demo())

	want := [][]string{
		{"R1", "3", "2", "1"},
		{"R2", "2", "2", "0"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestFmtCounts(t *testing.T) {
	snap := scenario.Demo()
	keys := snap.AllocationKeys()

	// P1 (pid 2) holds one unit each of R1 and R2.
	if got := fmtCounts(keys, snap.Allocation, 2); got != "R1×1, R2×1" {
		t.Errorf("fmtCounts(pid 2) = %q, want %q", got, "R1×1, R2×1")
	}
	if got := fmtCounts(keys, snap.Allocation, 99); got != "" {
		t.Errorf("fmtCounts(unknown pid) = %q, want empty", got)
	}
}

func TestFmtCountsSkipsZero(t *testing.T) {
	// P0 holds two units of R1 and an explicit zero of R2.
	snap := scenario.BankerUnsafe()

	if got := fmtCounts(snap.AllocationKeys(), snap.Allocation, 0); got != "R1×2" {
		t.Errorf("fmtCounts = %q, want %q", got, "R1×2")
	}
}
