package graph

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Entity types known to the engine. The backend may introduce new types at any
// time; unknown types render with the default palette entry and no category
// bonus.
const (
	EntityTask     = "task"
	EntityProject  = "project"
	EntityPattern  = "pattern"
	EntityDocument = "document"
	EntitySource   = "source"
)

// MixedClusterLabel is the last-resort label for clusters with no usable
// member names and no dominant type.
const MixedClusterLabel = "Mixed"

// =============================================================================
// Graph - Knowledge Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for knowledge graphs as
// returned by the data provider. Used for API responses, caching, and
// snapshot storage.
//
// Graph values are treated as immutable by the engine: every view-model
// rebuild reads the graph and produces a fresh result without mutating it.
type Graph struct {
	Nodes      []Node    `json:"nodes" bson:"nodes"`
	Edges      []Edge    `json:"edges" bson:"edges"`
	Clusters   []Cluster `json:"clusters,omitempty" bson:"clusters,omitempty"`
	TotalNodes int       `json:"total_nodes,omitempty" bson:"total_nodes,omitempty"`
	TotalEdges int       `json:"total_edges,omitempty" bson:"total_edges,omitempty"`
}

// =============================================================================
// Node - Knowledge Graph Entity
// =============================================================================

// Node is a single entity in the knowledge graph.
//
// Position is deliberately absent: coordinates are owned by the layout
// simulator and live in a side table (layout.Positions) keyed by node ID.
// Presentation attributes (degree, flags, draw priority) are equally absent:
// they are ephemeral, recomputed on every view-model rebuild, and belong to
// view.AnnotatedNode.
type Node struct {
	ID      string         `json:"id" bson:"id"`
	Type    string         `json:"type" bson:"type"`                             // Entity type (task, project, pattern, ...)
	Name    string         `json:"name,omitempty" bson:"name,omitempty"`         // Display name (defaults to ID)
	Cluster string         `json:"cluster,omitempty" bson:"cluster,omitempty"`   // Owning cluster ID ("" = unassigned)
	Meta    map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`         // Arbitrary per-entity metadata
}

// IsProject reports whether the node is a project entity.
func (n *Node) IsProject() bool { return n.Type == EntityProject }

// DisplayName returns the name if set, otherwise the ID.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// =============================================================================
// Edge - Relationship
// =============================================================================

// Edge is an undirected relationship between two entities. Kind and Weight
// are opaque to the engine; they pass through to the renderer untouched.
type Edge struct {
	Source string  `json:"source" bson:"source"`
	Target string  `json:"target" bson:"target"`
	Kind   string  `json:"kind,omitempty" bson:"kind,omitempty"`
	Weight float64 `json:"weight,omitempty" bson:"weight,omitempty"`
}

// Touches reports whether the edge has id as either endpoint.
func (e Edge) Touches(id string) bool { return e.Source == id || e.Target == id }

// Other returns the endpoint opposite to id, or "" if id is not an endpoint.
func (e Edge) Other(id string) string {
	switch id {
	case e.Source:
		return e.Target
	case e.Target:
		return e.Source
	}
	return ""
}

// =============================================================================
// Cluster - Detected Community
// =============================================================================

// Cluster describes a detected community of related entities. The display
// label is derived (view.ClusterLabel), never stored.
type Cluster struct {
	ID           string `json:"id" bson:"id"`
	MemberCount  int    `json:"member_count,omitempty" bson:"member_count,omitempty"`
	DominantType string `json:"dominant_type,omitempty" bson:"dominant_type,omitempty"`
}

// =============================================================================
// Lookup Helpers
// =============================================================================

// NodeIndex builds an ID → node lookup over the graph's node list.
// Later duplicates win, matching the provider's last-write semantics.
func (g *Graph) NodeIndex() map[string]*Node {
	idx := make(map[string]*Node, len(g.Nodes))
	for i := range g.Nodes {
		idx[g.Nodes[i].ID] = &g.Nodes[i]
	}
	return idx
}

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool { return g == nil || len(g.Nodes) == 0 }

// =============================================================================
// Serialization
// =============================================================================

// Unmarshal deserializes JSON bytes into a Graph. A null or empty document
// decodes to an empty graph rather than an error, matching the engine's
// degrade-gracefully policy for missing data.
func Unmarshal(data []byte) (Graph, error) {
	if len(data) == 0 || string(data) == "null" {
		return Graph{}, nil
	}
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("unmarshal graph: %w", err)
	}
	return g, nil
}

// Marshal serializes a Graph to pretty-printed JSON bytes.
func Marshal(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}
