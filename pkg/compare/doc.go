// Package compare captures point-in-time snapshots and reports how two
// captures differ.
//
// A [SavedSnapshot] is an immutable baseline: the snapshot data, its
// detected cycles, and its wait-for adjacency are deep-copied at capture
// time, so later updates to the live system state can never reach back
// into a saved baseline. Captures live in an in-memory [Store] for the
// duration of a session; they are deliberately not persisted.
//
// [Diff] produces the ordered, human-readable difference list shown when
// the user compares two captures: which processes appeared or vanished,
// whether the number of deadlock cycles moved, and whether the allocation
// and request tables grew or shrank. It is a structural diff over counts,
// not a value-level comparison of individual entries.
package compare
