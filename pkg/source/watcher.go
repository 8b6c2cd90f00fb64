package source

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// DefaultDebounce is how long a [Watcher] waits after the last file event
// before re-reading the file. Editors and atomic-save tools emit a short
// burst of events for one logical save; the debounce collapses each burst
// into a single reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher tails one snapshot file and re-delivers the parsed snapshot
// whenever the file is rewritten.
//
// The watcher holds the last successfully parsed snapshot. A rewrite
// that fails to parse is reported through [Watcher.OnError] callbacks
// and the previous snapshot stays current, so consumers never observe a
// half-written or malformed state.
type Watcher struct {
	path     string
	debounce time.Duration

	mu       sync.RWMutex
	current  *snapshot.Snapshot
	onChange []func(*snapshot.Snapshot)
	onError  []func(error)
}

// NewWatcher creates a watcher for the snapshot file at path and
// performs the initial load. The file must exist and parse.
func NewWatcher(path string) (*Watcher, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: path, debounce: DefaultDebounce, current: s}, nil
}

// SetDebounce overrides the reload debounce interval. Call it before
// [Watcher.Start].
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Snapshot returns the most recently parsed snapshot.
func (w *Watcher) Snapshot() *snapshot.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers fn to be called with every newly parsed snapshot.
// Callbacks run on the watcher goroutine and must not block.
func (w *Watcher) OnChange(fn func(*snapshot.Snapshot)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// OnError registers fn to be called when a reload fails.
func (w *Watcher) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = append(w.onError, fn)
}

// Reload forces an immediate re-read of the file and delivers the result
// to OnChange callbacks. On error the current snapshot is left as is.
func (w *Watcher) Reload() (*snapshot.Snapshot, error) {
	s, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	w.deliver(s)
	return s, nil
}

func (w *Watcher) deliver(s *snapshot.Snapshot) {
	w.mu.Lock()
	w.current = s
	callbacks := slices.Clone(w.onChange)
	w.mu.Unlock()
	for _, fn := range callbacks {
		fn(s)
	}
}

func (w *Watcher) fail(err error) {
	w.mu.RLock()
	callbacks := slices.Clone(w.onError)
	w.mu.RUnlock()
	for _, fn := range callbacks {
		fn(err)
	}
}

// Start begins watching for file changes until ctx is canceled. It
// returns once the file system watch is established; reloads happen on a
// background goroutine. Start may be called at most once.
//
// The watcher observes the file's directory rather than the file itself,
// so saves that replace the file (write to a temp file, rename over the
// target) keep being seen.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("snapshot watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return fmt.Errorf("snapshot watcher add %s: %w", dir, err)
	}

	base := filepath.Base(w.path)
	go func() {
		defer fw.Close()
		var (
			pending *time.Timer
			fire    <-chan time.Time
		)
		defer func() {
			if pending != nil {
				pending.Stop()
			}
		}()
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if pending == nil {
					pending = time.NewTimer(w.debounce)
				} else {
					if !pending.Stop() {
						// A timer that already fired leaves its tick in the
						// channel; drain it before Reset.
						select {
						case <-pending.C:
						default:
						}
					}
					pending.Reset(w.debounce)
				}
				fire = pending.C

			case <-fire:
				fire = nil
				if s, err := Load(w.path); err != nil {
					w.fail(err)
				} else {
					w.deliver(s)
				}

			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.fail(err)

			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
