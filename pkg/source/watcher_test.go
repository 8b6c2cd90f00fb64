package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

func singleProcess(pid int) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Processes: []snapshot.Process{{PID: pid}},
		Resources: map[string]snapshot.Resource{},
	}
}

// startWatcher writes an initial snapshot, creates a watcher with a short
// debounce and starts it. The returned channel receives every delivered
// snapshot.
func startWatcher(t *testing.T, path string) (*Watcher, <-chan *snapshot.Snapshot) {
	t.Helper()

	if err := Write(path, singleProcess(1)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.SetDebounce(10 * time.Millisecond)

	got := make(chan *snapshot.Snapshot, 4)
	w.OnChange(func(s *snapshot.Snapshot) { got <- s })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return w, got
}

func waitFor(t *testing.T, ch <-chan *snapshot.Snapshot) *snapshot.Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot delivered within 5s")
		return nil
	}
}

func TestNewWatcherInitialLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := Write(path, singleProcess(7)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if got := w.Snapshot().Processes[0].PID; got != 7 {
		t.Errorf("initial pid = %d, want 7", got)
	}
	if got := w.Path(); got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}
}

func TestNewWatcherMissingFile(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("NewWatcher on missing file succeeded, want error")
	}
}

func TestWatcherDeliversRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	w, got := startWatcher(t, path)

	updated := &snapshot.Snapshot{
		Processes: []snapshot.Process{{PID: 1}, {PID: 2}},
		Resources: map[string]snapshot.Resource{},
	}
	if err := Write(path, updated); err != nil {
		t.Fatalf("Write: %v", err)
	}

	s := waitFor(t, got)
	if len(s.Processes) != 2 {
		t.Errorf("delivered %d processes, want 2", len(s.Processes))
	}
	if got := len(w.Snapshot().Processes); got != 2 {
		t.Errorf("Snapshot() holds %d processes, want 2", got)
	}
}

func TestWatcherSurvivesRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	_, got := startWatcher(t, path)

	// Atomic save: write a sibling temp file, rename it over the target.
	tmp := filepath.Join(dir, "snap.json.tmp")
	if err := Write(tmp, singleProcess(9)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	s := waitFor(t, got)
	if s.Processes[0].PID != 9 {
		t.Errorf("delivered pid %d, want 9", s.Processes[0].PID)
	}
}

func TestWatcherSkipsBadRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	w, got := startWatcher(t, path)

	errCh := make(chan error, 1)
	w.OnError(func(err error) { errCh <- err })

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported for bad rewrite within 5s")
	}
	if pid := w.Snapshot().Processes[0].PID; pid != 1 {
		t.Errorf("snapshot changed after bad rewrite: pid %d, want 1", pid)
	}

	// A subsequent good write recovers.
	if err := Write(path, singleProcess(3)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	s := waitFor(t, got)
	if s.Processes[0].PID != 3 {
		t.Errorf("recovered pid %d, want 3", s.Processes[0].PID)
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	_, got := startWatcher(t, path)

	if err := Write(filepath.Join(dir, "other.json"), singleProcess(42)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	select {
	case s := <-got:
		t.Errorf("sibling write delivered snapshot %+v", s)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherReloadWithoutStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := Write(path, singleProcess(1)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	var delivered *snapshot.Snapshot
	w.OnChange(func(s *snapshot.Snapshot) { delivered = s })

	if err := Write(path, singleProcess(5)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	s, err := w.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if s.Processes[0].PID != 5 {
		t.Errorf("Reload returned pid %d, want 5", s.Processes[0].PID)
	}
	if delivered == nil || delivered.Processes[0].PID != 5 {
		t.Errorf("OnChange not invoked with reloaded snapshot: %+v", delivered)
	}
}
