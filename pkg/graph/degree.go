package graph

// =============================================================================
// Degree Index
// =============================================================================

// Degrees counts incident edges per node, undirected, restricted to the
// visible ID set. Edges with either endpoint outside visible are ignored.
//
// The returned map contains entries only for nodes that have at least one
// counted edge; absent IDs have degree 0. The second return value is the
// maximum degree observed, floored at 1 so downstream size formulas never
// divide by zero.
//
// O(E) time, O(V) space, no side effects.
func Degrees(edges []Edge, visible map[string]bool) (map[string]int, int) {
	degrees := make(map[string]int, len(visible))
	maxDegree := 1

	for _, e := range edges {
		if !visible[e.Source] || !visible[e.Target] {
			continue
		}
		degrees[e.Source]++
		degrees[e.Target]++
		if degrees[e.Source] > maxDegree {
			maxDegree = degrees[e.Source]
		}
		if degrees[e.Target] > maxDegree {
			maxDegree = degrees[e.Target]
		}
	}

	return degrees, maxDegree
}

// GlobalDegrees counts incident edges per node over the whole graph, with no
// visibility filter. Edges referencing unknown node IDs still count; the
// cluster label synthesizer only ranks nodes it can resolve anyway.
func GlobalDegrees(edges []Edge) map[string]int {
	degrees := make(map[string]int, len(edges))
	for _, e := range edges {
		degrees[e.Source]++
		degrees[e.Target]++
	}
	return degrees
}
