// Package graph defines the knowledge-graph data model and the two leaf
// computations of the view-model engine: the degree index and the visibility
// selector.
//
// # Core Types
//
//   - [Graph]: serialization format for provider responses and snapshots
//   - [Node], [Edge], [Cluster]: structural types
//   - [Visibility]: a cluster filter applied to a graph
//
// # Data Model
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "auth", "type": "project"}, {"id": "login", "type": "task"}],
//	  "edges": [{"source": "auth", "target": "login"}]
//	}
//
// Node positions are not part of this package. The layout simulator owns
// coordinates and publishes them through a side table (see package layout);
// the engine only ever reads positions at draw time.
//
// # Degree Index
//
// [Degrees] counts undirected incident edges per node within a visible set,
// returning the per-node counts and the observed maximum (floored at 1):
//
//	degrees, maxDegree := graph.Degrees(vis.Edges, vis.Visible)
//
// Degree is filter-relative: restrict the edge list first. The one
// intentional exception is [GlobalDegrees], which the cluster label
// synthesizer uses to rank representatives over the whole graph.
//
// # Visibility Selector
//
// [SelectVisible] resolves an optional cluster filter into the exact set of
// drawable nodes: cluster members plus their one-hop external neighbors,
// with no second-hop expansion. Edges referencing unknown nodes are dropped
// silently; an unknown cluster ID yields an empty set. Both behaviors are
// part of the engine's no-throw, degrade-gracefully policy.
//
// # Concurrency
//
// All functions are pure and safe for concurrent use. Graph values are never
// mutated by this package.
package graph
