package sysinfo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// FileLock is one record from the kernel lock table (/proc/locks).
//
//	1: POSIX  ADVISORY  WRITE 1234 08:01:12345 0 EOF
type FileLock struct {
	ID   string // Ordinal of the lock table line, without the colon
	Type string // POSIX, FLOCK, OFDLCK, ...
	Mode string // READ or WRITE
	PID  int    // Holder pid
	File string // device:inode triple identifying the locked file
}

// ParseLocks reads lock records from the /proc/locks wire format.
//
// procfs has no lock-table API, so the line format is handled here:
// whitespace-separated fields, at least eight per record. Lines that do
// not fit are skipped; that includes the "->" continuation lines the
// kernel emits for blocked waiters, whose pid column holds the lock
// mode instead of a number.
func ParseLocks(r io.Reader) ([]FileLock, error) {
	var locks []FileLock
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		parts := strings.Fields(sc.Text())
		if len(parts) < 8 {
			continue
		}
		pid, err := strconv.Atoi(parts[4])
		if err != nil {
			continue
		}
		locks = append(locks, FileLock{
			ID:   strings.TrimSuffix(parts[0], ":"),
			Type: parts[1],
			Mode: parts[3],
			PID:  pid,
			File: parts[5],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lock table: %w", err)
	}
	return locks, nil
}

// FileLocks maps the kernel lock table into a snapshot.
//
// Each locked file becomes a single-unit resource "FILE_<dev:inode>".
// Every WRITE holder is allocated; WRITE holders beyond the first also
// request, and READ holders request whenever a writer exists on the
// same file. Files with only read locks contribute a resource and its
// holder processes but no edges.
//
// A missing lock table (non-Linux, restricted /proc) yields [Empty]
// rather than an error.
func (r *Reader) FileLocks(ctx context.Context) (*snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(r.mount, "locks"))
	if errors.Is(err, fs.ErrNotExist) {
		return Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open lock table: %w", err)
	}
	defer f.Close()

	locks, err := ParseLocks(f)
	if err != nil {
		return nil, err
	}
	return r.lockSnapshot(locks), nil
}

// lockSnapshot applies the lock-to-snapshot mapping. Processes are
// sorted by pid so the result is deterministic regardless of lock table
// order.
func (r *Reader) lockSnapshot(locks []FileLock) *snapshot.Snapshot {
	byFile := make(map[string][]FileLock)
	pidSet := make(map[int]bool)
	for _, l := range locks {
		byFile[l.File] = append(byFile[l.File], l)
		pidSet[l.PID] = true
	}

	pids := make([]int, 0, len(pidSet))
	for pid := range pidSet {
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	s := Empty()
	for _, pid := range pids {
		name, ok := r.comm(pid)
		if !ok {
			name = fmt.Sprintf("Process-%d", pid)
		}
		s.Processes = append(s.Processes, snapshot.Process{PID: pid, Name: name})
	}

	for file, fileLocks := range byFile {
		rid := "FILE_" + file
		s.Resources[rid] = snapshot.Resource{Total: 1}

		var writers, readers []FileLock
		for _, l := range fileLocks {
			switch l.Mode {
			case "WRITE":
				writers = append(writers, l)
			case "READ":
				readers = append(readers, l)
			}
		}

		for _, w := range writers {
			s.Allocation[snapshot.Key{PID: w.PID, RID: rid}] = 1
		}
		if len(writers) > 1 {
			for _, w := range writers[1:] {
				s.Request[snapshot.Key{PID: w.PID, RID: rid}] = 1
			}
		}
		if len(writers) > 0 {
			for _, rl := range readers {
				s.Request[snapshot.Key{PID: rl.PID, RID: rid}] = 1
			}
		}
	}
	return s
}
