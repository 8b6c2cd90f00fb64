// Package detect implements deadlock analysis over resource snapshots.
//
// # Overview
//
// Three classic algorithms operate on a [snapshot.Snapshot]:
//
//   - Deadlock detection: derive the wait-for graph with [BuildWaitFor] and
//     search it for cycles with [FindCycles]. Every cycle is a set of
//     processes that can never make progress on their own.
//   - Deadlock avoidance: [IsSafe] runs the Banker's algorithm, treating the
//     snapshot's outstanding requests as each process's remaining need, and
//     reports whether some completion order satisfies every process.
//   - Deadlock recovery: [ChooseVictims] picks the lowest-numbered process
//     from each cycle and [Preempt] releases everything those victims hold.
//
// # Basic Usage
//
// The composite helpers bundle the algorithms into report values that
// serialize to the wire format served by the HTTP API:
//
//	res := detect.Analyze(ctx, snap)
//	if res.HasDeadlock {
//	    rec := detect.Recover(ctx, snap)
//	    snap = rec.NewSnapshot
//	}
//
// All functions treat their input as read-only. [Preempt] returns a deep
// copy; the snapshot passed in is never modified.
package detect
