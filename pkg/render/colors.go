package render

import "github.com/mkessler/graphlens/pkg/graph"

// =============================================================================
// Palette - Single Source of Truth
// =============================================================================

// Canvas background and shared accents.
const (
	ColorBackground = "#10141c"
	ColorAccent     = "#f5c518" // Search match outline and halo
	ColorSelected   = "#ffffff"
	ColorHovered    = "#d0d8e8"
	ColorEdge       = "#5a6478"
	ColorLabel      = "#e8ecf4"
	ColorShadow     = "#000000"
	ColorFallback   = "#8a93a6" // Unknown entity types
)

// Opacity applied to context-only (neighbor) nodes so they visually recede.
const NeighborOpacity = 0.4

// entityColors maps entity types to their base category color.
var entityColors = map[string]string{
	graph.EntityTask:     "#4f8fea",
	graph.EntityProject:  "#b06ef5",
	graph.EntityPattern:  "#3fbf8f",
	graph.EntityDocument: "#e8834f",
	graph.EntitySource:   "#d95970",
}

// EntityColor returns the base category color for an entity type.
// Unknown types get the fallback grey.
func EntityColor(entityType string) string {
	if c, ok := entityColors[entityType]; ok {
		return c
	}
	return ColorFallback
}

// ClusterColor assigns a stable color to a cluster ID by hashing it into a
// fixed wheel. The DOT export outlines cluster members with it and the
// terminal explorer colors its cluster chip; node fills do not use it.
func ClusterColor(clusterID string) string {
	if clusterID == "" {
		return ColorFallback
	}
	var h uint32
	for _, r := range clusterID {
		h = h*31 + uint32(r)
	}
	return clusterWheel[h%uint32(len(clusterWheel))]
}

var clusterWheel = []string{
	"#6e8fd9", "#c97bc2", "#62b88a", "#d9a05e",
	"#8a7bd9", "#5eb8c9", "#c96e6e", "#a0c95e",
}
