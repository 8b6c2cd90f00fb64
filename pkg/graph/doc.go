// Package graph builds the node-link views a renderer draws: the
// resource-allocation view and the wait-for view.
//
// # Overview
//
// A [Graph] is a flat node-link structure with stable string ids. Process
// nodes are named "P<pid>", resource nodes "R<rid>", and every link id
// encodes its meaning ("alloc_1_R1", "req_2_R1", "wfg_1_2"), so a renderer
// can address any element across refreshes without positional bookkeeping.
//
// [BuildRAG] turns a snapshot into the bipartite allocation/request view.
// [BuildWFG] turns a detection result's wait-for adjacency into the
// process-only wait view, annotating each node with its cycle membership.
// [DeriveWFG] is the fallback that approximates the same view straight
// from a snapshot when no detection result is available.
//
// None of the builders analyze anything themselves: cycle membership is an
// annotation supplied by the caller, and layout is entirely the renderer's
// problem. Identical input always yields an identical graph.
//
// # Neighborhoods
//
// [Neighbors] computes the 1-hop neighborhood of a node as id sets. These
// drive the highlight/dim interaction: the renderer dims everything, then
// restores full opacity for exactly the returned node and link ids.
//
// # Construction Rules
//
// [Graph.AddNode] and [Graph.AddLink] enforce the structural invariants:
// unique node ids, unique link ids, link endpoints that resolve to nodes
// already present, and link types that match their endpoint types. The
// builders surface violations as errors instead of emitting a partial
// graph, because a silently dropped edge would misrepresent the system
// state being inspected.
//
// # Serialization
//
// Graphs marshal to the node-link JSON consumed by the browser renderer:
//
//	{
//	  "nodes": [{"id": "P1", "type": "process", "pid": 1}],
//	  "links": [{"id": "alloc_1_R1", "source": "P1", "target": "R1",
//	             "type": "allocation", "weight": 1}]
//	}
//
// Use [MarshalGraph], [WriteGraphFile], and [ReadGraphFile] for the common
// cases.
package graph
