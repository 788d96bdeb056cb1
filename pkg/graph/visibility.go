package graph

// =============================================================================
// Visibility Selector
// =============================================================================

// Visibility is the result of applying a cluster filter to a graph: the set
// of node IDs eligible for drawing, and the edges whose endpoints are both
// in that set.
type Visibility struct {
	// Visible is the set of drawable node IDs.
	Visible map[string]bool

	// Members is the subset of Visible belonging to the active cluster.
	// Equal to Visible when no cluster filter is active.
	Members map[string]bool

	// Edges is the filtered edge list. Every edge has both endpoints in
	// Visible; edges referencing unknown node IDs are silently dropped.
	Edges []Edge
}

// IsNeighbor reports whether id is visible only as cluster context: shown
// because it shares an edge with a cluster member, without being one.
func (v *Visibility) IsNeighbor(id string) bool {
	return v.Visible[id] && !v.Members[id]
}

// SelectVisible computes the visible node set for an optional cluster filter.
//
// With clusterID == "", every known node is visible and edges are filtered
// only against the node index (an edge referencing an unresolvable ID is
// dropped, not an error).
//
// With a cluster filter, the visible set is exactly the cluster's members
// unioned with their one-hop external neighbors. There is no second-hop
// expansion: neighbors are shown for context but not further contextualized.
// Because neighbors join the visible set, member↔neighbor edges survive the
// final both-endpoints filter alongside member-internal and neighbor-internal
// edges. An unknown clusterID yields an empty visible set.
func SelectVisible(g *Graph, clusterID string) Visibility {
	index := g.NodeIndex()

	if clusterID == "" {
		visible := make(map[string]bool, len(index))
		for id := range index {
			visible[id] = true
		}
		return Visibility{
			Visible: visible,
			Members: visible,
			Edges:   filterEdges(g.Edges, visible),
		}
	}

	members := make(map[string]bool)
	for i := range g.Nodes {
		if g.Nodes[i].Cluster == clusterID {
			members[g.Nodes[i].ID] = true
		}
	}

	visible := make(map[string]bool, len(members))
	for id := range members {
		visible[id] = true
	}
	for _, e := range g.Edges {
		for _, pair := range [2][2]string{{e.Source, e.Target}, {e.Target, e.Source}} {
			in, out := pair[0], pair[1]
			if members[in] && !members[out] {
				if _, known := index[out]; known {
					visible[out] = true
				}
			}
		}
	}

	return Visibility{
		Visible: visible,
		Members: members,
		Edges:   filterEdges(g.Edges, visible),
	}
}

// filterEdges keeps edges whose endpoints are both in the visible set.
func filterEdges(edges []Edge, visible map[string]bool) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if visible[e.Source] && visible[e.Target] {
			out = append(out, e)
		}
	}
	return out
}
