// Package pkg provides the core libraries for deadlock analysis and
// visualization.
//
// # Overview
//
// Deadlock models a system of processes and shared resources as a snapshot,
// detects wait-for cycles, predicts safety with the Banker's algorithm, and
// renders the state as resource-allocation and wait-for graphs. The pkg
// directory is organized into three main areas:
//
//  1. Domain logic (snapshots, detection, graph building, comparison)
//  2. Infrastructure (caching, history, file watching, system probing)
//  3. Rendering (Graphviz-backed DOT/SVG/PNG output)
//
// # Architecture
//
// The typical data flow:
//
//	Snapshot file / built-in scenario / live system
//	         ↓
//	    [snapshot] package (model + validation)
//	         ↓
//	    [detect] package (wait-for derivation, cycles, Banker's, recovery)
//	         ↓
//	    [graph] package (resource-allocation and wait-for views)
//	         ↓
//	    [render] package (DOT → SVG/PNG via Graphviz)
//
// # Quick Start
//
// Detect deadlocks in a scenario and render the wait-for graph:
//
//	import (
//	    "context"
//	    "github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
//	    "github.com/dhananjayyy09/Deadlock-Prevention/pkg/graph"
//	    "github.com/dhananjayyy09/Deadlock-Prevention/pkg/render"
//	    "github.com/dhananjayyy09/Deadlock-Prevention/pkg/scenario"
//	)
//
//	snap := scenario.DiningPhilosophers(5)
//	res := detect.Analyze(context.Background(), snap)
//	g := graph.BuildWFG(res.WFG, res.Cycles)
//	svg, _ := render.Render(context.Background(), g, render.FormatSVG, render.Options{})
//
// # Main Packages
//
// [snapshot] - The system model: processes, resources, and the allocation and
// request tables keyed by (pid, resource id) pairs.
//
// [detect] - Wait-for graph derivation, depth-first cycle search, Banker's
// safety prediction, and victim-based recovery.
//
// [graph] - Node-link graph structures for the resource-allocation and
// wait-for views, with JSON serialization and neighborhood extraction.
//
// [compare] - Saved snapshot store and structural diffing between captures.
//
// [scenario] - Built-in textbook states: dining philosophers, reader-writer,
// circular waits, Banker's unsafe, and friends.
//
// [render] - DOT generation and Graphviz layout to SVG and PNG.
//
// [cache] - Artifact cache with file, Redis, and null backends, keyed by
// content hash.
//
// [history] - Detection event log with in-memory and MongoDB backends.
//
// [source] - Snapshot file loading, saving, and fsnotify-based watching.
//
// [sysinfo] - Live process and lock probing via procfs.
//
// [errors] - Error codes and input validation shared by the CLI and server.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/detect/...             # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include integration tests
//
// [snapshot]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot
// [detect]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect
// [graph]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/graph
// [compare]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/compare
// [scenario]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/scenario
// [render]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/render
// [cache]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/cache
// [history]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/history
// [source]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/source
// [sysinfo]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/sysinfo
// [errors]: https://pkg.go.dev/github.com/dhananjayyy09/Deadlock-Prevention/pkg/errors
package pkg
