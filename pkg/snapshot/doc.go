// Package snapshot defines the canonical description of a system state:
// the processes that exist, the resources they compete for, and the
// allocation and request tables connecting the two.
//
// # Overview
//
// A [Snapshot] is a point-in-time capture of process/resource state. It is
// the shared input of every derivation in this repository: the allocation
// view builder, the wait-for view builder, the safety and cycle analysis,
// and the snapshot differ all consume the same shape.
//
// Allocation and request tables are keyed by [Key], a typed (pid, resource
// id) pair. On the wire a key is encoded as "<pid>_<rid>" and split on the
// first underscore; [ParseKey] is the single validated constructor for that
// form and fails with [MalformedKeyError] instead of guessing. A count of
// zero under a key means "no edge" and is skipped by every consumer.
//
// # Wire Format
//
// Snapshots travel as JSON:
//
//	{
//	  "processes":  [{"pid": 1, "name": "worker"}],
//	  "resources":  {"R1": {"total": 2}},
//	  "allocation": {"1_R1": 1},
//	  "request":    {"2_R1": 1}
//	}
//
// Unknown fields on process and resource entries are preserved in their
// Extra tables and written back on marshal, so forward-compatible metadata
// survives a round trip.
//
// # Analysis Results
//
// [WaitFor] and [CycleSet] carry the output of the deadlock analysis: a
// pid adjacency ("who waits on whom") and the list of detected cycles.
// They are plain data. Nothing in this package traverses them.
package snapshot
