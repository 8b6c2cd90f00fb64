// Package source loads and stores snapshot files and feeds live changes
// to interested consumers.
//
// Snapshots travel as plain JSON files in the wire format of
// [github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot]: a single
// object with "processes", "resources", "allocation" and "request"
// fields. [Load] and [Write] are the file-level entry points; [Decode]
// and [Encode] work against streams. [Watcher] tails one snapshot file
// with fsnotify and re-delivers the parsed snapshot whenever the file is
// rewritten, which drives the server's live push channel and the watch
// TUI.
package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// Decode reads one snapshot object from r.
//
// A malformed composite key in the allocation or request table fails the
// whole decode with a [snapshot.MalformedKeyError]; there is no partial
// result. Decode does not close r.
func Decode(r io.Reader) (*snapshot.Snapshot, error) {
	var s snapshot.Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// Load reads the snapshot file at path.
//
// Load returns the same decode errors as [Decode]; file errors are
// wrapped with the path for context.
func Load(path string) (*snapshot.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes s to w as indented JSON. The output round-trips through
// [Decode].
func Encode(w io.Writer, s *snapshot.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Write stores s as a snapshot file at path, replacing any existing
// file. This is a convenience wrapper around [Encode] for file-based
// output.
func Write(path string, s *snapshot.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Encode(f, s)
}
