// Package sysinfo probes the local system for live snapshot material.
//
// A [Reader] sits on top of a procfs mount. [Reader.Snapshot] turns the
// process table into a small demonstration snapshot with a single shared
// resource; [Reader.FileLocks] maps the kernel file lock table into a
// snapshot whose resources are locked files, which is where real
// circular waits show up.
//
// Probing is Linux-shaped by nature. On systems without a usable proc
// filesystem the probe degrades to [Empty] rather than failing: a live
// view with nothing in it is still a valid view.
package sysinfo

import (
	"context"
	"fmt"
	"sort"

	"github.com/prometheus/procfs"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// DefaultProcessLimit caps how many processes a demonstration snapshot
// includes when the caller does not ask for a specific count.
const DefaultProcessLimit = 5

// Reader reads process and lock information from a proc filesystem.
type Reader struct {
	fs    procfs.FS
	mount string
}

// NewReader opens the default proc mount.
func NewReader() (*Reader, error) {
	return NewReaderAt(procfs.DefaultMountPoint)
}

// NewReaderAt opens the proc filesystem mounted at mount. Tests point
// this at a fixture directory.
func NewReaderAt(mount string) (*Reader, error) {
	pfs, err := procfs.NewFS(mount)
	if err != nil {
		return nil, fmt.Errorf("procfs %s: %w", mount, err)
	}
	return &Reader{fs: pfs, mount: mount}, nil
}

// Empty returns the snapshot served when probing is unavailable. All
// collections are initialized so the JSON form is []/{} rather than
// null.
func Empty() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Processes:  []snapshot.Process{},
		Resources:  map[string]snapshot.Resource{},
		Allocation: map[snapshot.Key]int{},
		Request:    map[snapshot.Key]int{},
	}
}

// Processes enumerates up to limit live processes, sorted by pid. The
// name is the kernel comm value, or "P<pid>" when it cannot be read.
func (r *Reader) Processes(ctx context.Context, limit int) ([]snapshot.Process, error) {
	if limit <= 0 {
		limit = DefaultProcessLimit
	}
	procs, err := r.fs.AllProcs()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	sort.Sort(procs)

	out := make([]snapshot.Process, 0, limit)
	for _, p := range procs {
		if len(out) == limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, err := p.Comm()
		if err != nil || name == "" {
			name = fmt.Sprintf("P%d", p.PID)
		}
		out = append(out, snapshot.Process{PID: p.PID, Name: name})
	}
	return out, nil
}

// Snapshot builds a demonstration snapshot from the live process table:
// the first limit processes share a single resource "R" of five units,
// with every even-indexed process holding one unit and every third
// process requesting one. Zero-count entries are kept so the wire form
// lists each (process, resource) pair explicitly.
func (r *Reader) Snapshot(ctx context.Context, limit int) (*snapshot.Snapshot, error) {
	procs, err := r.Processes(ctx, limit)
	if err != nil {
		return nil, err
	}

	s := Empty()
	s.Processes = procs
	s.Resources["R"] = snapshot.Resource{Total: 5}
	for i, p := range procs {
		alloc := 0
		if i%2 == 0 {
			alloc = 1
		}
		req := 0
		if i%3 == 0 {
			req = 1
		}
		s.Allocation[snapshot.Key{PID: p.PID, RID: "R"}] = alloc
		s.Request[snapshot.Key{PID: p.PID, RID: "R"}] = req
	}
	return s, nil
}

// comm returns the comm value for pid, or ok=false when the process is
// gone or unreadable.
func (r *Reader) comm(pid int) (string, bool) {
	p, err := r.fs.Proc(pid)
	if err != nil {
		return "", false
	}
	name, err := p.Comm()
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}
