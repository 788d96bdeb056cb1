package view

import (
	"sort"

	"github.com/mkessler/graphlens/pkg/graph"
)

// =============================================================================
// Priority Weights - Single Source of Truth
// =============================================================================

// Draw-priority composition weights. Priority is an ascending draw-order key:
// low values draw first and end up underneath, high values draw last and end
// up on top.
const (
	BonusProject    = 1000
	BonusTask       = 50
	BonusPattern    = 30
	PenaltyNeighbor = 500
	BonusSearch     = 2000
)

// =============================================================================
// AnnotatedNode - Per-Rebuild Presentation Record
// =============================================================================

// AnnotatedNode is a node plus the presentation attributes computed for one
// view-model generation. All annotation fields are ephemeral: they are
// recomputed on every rebuild and must never be persisted or cached keyed by
// entity ID alone, because they depend on the active filter and search term.
type AnnotatedNode struct {
	graph.Node

	// Degree is the count of filtered edges incident to this node.
	// Filter-relative, not global.
	Degree int `json:"degree"`

	// IsProject marks project entities, which draw large and disclose early.
	IsProject bool `json:"is_project,omitempty"`

	// IsNeighbor marks nodes visible only as cluster context: present
	// because they share an edge with a member of the active cluster.
	// Always false when no cluster filter is active.
	IsNeighbor bool `json:"is_neighbor,omitempty"`

	// IsSearchMatch marks nodes matching the active search term.
	IsSearchMatch bool `json:"is_search_match,omitempty"`

	// Priority is the composed draw-order key. Ascending order; ties keep
	// input order (stable sort), not ID order.
	Priority int `json:"priority"`
}

// =============================================================================
// Model - The View-Model
// =============================================================================

// Filter is the pair of inputs that, together with the raw graph, determine
// a view-model generation.
type Filter struct {
	// Cluster restricts visibility to one cluster and its one-hop
	// neighbors. Empty means no cluster filter.
	Cluster string

	// Search is the free-text search term. Empty means no search.
	Search string

	// Types restricts the graph to the listed entity types before
	// visibility selection. Nil or empty means all types.
	Types []string
}

// Model is one immutable view-model generation: the annotated, draw-ordered
// node list and its companion aggregates. Build returns a fresh Model on
// every call; nothing is mutated in place afterwards.
type Model struct {
	// Nodes is sorted ascending by Priority (stable). Drawing in slice
	// order yields correct stacking: boosted nodes land on top.
	Nodes []AnnotatedNode

	// Edges is the filtered edge list; both endpoints of every edge are
	// present in Nodes.
	Edges []graph.Edge

	// MaxDegree is the maximum filtered degree observed, floored at 1.
	MaxDegree int

	// MatchCount is the number of nodes with IsSearchMatch set.
	MatchCount int

	// ClusterCount is the number of clusters in the source graph,
	// independent of the active filter. Exposed for UI chrome.
	ClusterCount int
}

// =============================================================================
// Composer
// =============================================================================

// Build assembles a complete view-model from a raw graph and the active
// filter state. A nil or empty graph yields an empty model with MaxDegree 1,
// never an error.
//
// The rebuild is a pure, synchronous computation: run it to completion before
// handing the result to a renderer so no frame ever observes a partially
// annotated generation.
func Build(g *graph.Graph, f Filter) *Model {
	if g.IsEmpty() {
		return &Model{Nodes: []AnnotatedNode{}, Edges: []graph.Edge{}, MaxDegree: 1}
	}

	working := g
	if len(f.Types) > 0 {
		working = restrictTypes(g, f.Types)
	}

	vis := graph.SelectVisible(working, f.Cluster)
	degrees, maxDegree := graph.Degrees(vis.Edges, vis.Visible)

	clusterActive := f.Cluster != ""
	nodes := make([]AnnotatedNode, 0, len(vis.Visible))
	matches := 0

	for i := range working.Nodes {
		n := &working.Nodes[i]
		if !vis.Visible[n.ID] {
			continue
		}

		a := AnnotatedNode{
			Node:          *n,
			Degree:        degrees[n.ID],
			IsProject:     n.IsProject(),
			IsNeighbor:    clusterActive && vis.IsNeighbor(n.ID),
			IsSearchMatch: Matches(n, f.Search),
		}
		a.Priority = composePriority(a)

		if a.IsSearchMatch {
			matches++
		}
		nodes = append(nodes, a)
	}

	// Stable: equal priorities keep input order.
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Priority < nodes[j].Priority })

	return &Model{
		Nodes:        nodes,
		Edges:        vis.Edges,
		MaxDegree:    maxDegree,
		MatchCount:   matches,
		ClusterCount: len(g.Clusters),
	}
}

// composePriority folds degree, category, context and search signals into a
// single draw-order key.
func composePriority(a AnnotatedNode) int {
	p := a.Degree

	switch {
	case a.IsProject:
		p += BonusProject
	case a.Type == graph.EntityTask:
		p += BonusTask
	case a.Type == graph.EntityPattern:
		p += BonusPattern
	}

	if a.IsNeighbor {
		p -= PenaltyNeighbor
	}
	if a.IsSearchMatch {
		p += BonusSearch
	}

	return p
}

// restrictTypes returns a shallow copy of g containing only nodes of the
// listed entity types. Edges are left untouched; the visibility selector
// drops edges with missing endpoints anyway.
func restrictTypes(g *graph.Graph, types []string) *graph.Graph {
	keep := make(map[string]bool, len(types))
	for _, t := range types {
		keep[t] = true
	}

	out := &graph.Graph{
		Edges:      g.Edges,
		Clusters:   g.Clusters,
		TotalNodes: g.TotalNodes,
		TotalEdges: g.TotalEdges,
	}
	for i := range g.Nodes {
		if keep[g.Nodes[i].Type] {
			out.Nodes = append(out.Nodes, g.Nodes[i])
		}
	}
	return out
}

// =============================================================================
// Summary - UI Chrome Fields
// =============================================================================

// Summary holds the read-only aggregates a surrounding UI shows next to the
// canvas. Recomputed from each generation, never cached across rebuilds.
type Summary struct {
	VisibleNodes int `json:"visible_nodes"`
	VisibleEdges int `json:"visible_edges"`
	MatchCount   int `json:"match_count"`
	ClusterCount int `json:"cluster_count"`
}

// Summarize derives the UI chrome fields from a model.
func (m *Model) Summarize() Summary {
	return Summary{
		VisibleNodes: len(m.Nodes),
		VisibleEdges: len(m.Edges),
		MatchCount:   m.MatchCount,
		ClusterCount: m.ClusterCount,
	}
}
