// Package scenario builds canned resource snapshots for teaching and demos.
//
// # Overview
//
// Every scenario is a classic synchronization exercise expressed as a
// [snapshot.Snapshot]: dining philosophers, reader/writer lock inversion,
// a plain circular wait, an unsafe Banker's state, a provably safe state,
// and a producer/consumer lock-order deadlock.
//
// Scenarios are looked up by stable snake_case names so they can be served
// over HTTP and selected from the command line:
//
//	snap, err := scenario.ByName("dining_philosophers")
//
// [Catalog] lists the names in presentation order and [Describe] attaches a
// human-readable description to each.
package scenario
