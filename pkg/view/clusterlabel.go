package view

import (
	"sort"
	"strings"

	"github.com/mkessler/graphlens/pkg/graph"
)

// Maximum rune length of a member name inside a synthesized cluster label.
const clusterNameLimit = 15

// ClusterLabel derives a human-readable label for a cluster from its two
// highest-degree members.
//
// Ranking uses whole-graph degree, not the filter-relative degree of the
// current view: a cluster's best-known representatives should not change as
// the viewer filters. Member names longer than 15 runes are truncated with an
// ellipsis; the top two are joined with ", ".
//
// Fallbacks, in order: the cluster's dominant type with underscores replaced
// by spaces, then the literal "Mixed".
func ClusterLabel(c graph.Cluster, g *graph.Graph) string {
	degrees := graph.GlobalDegrees(g.Edges)

	var members []*graph.Node
	for i := range g.Nodes {
		if g.Nodes[i].Cluster == c.ID {
			members = append(members, &g.Nodes[i])
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		return degrees[members[i].ID] > degrees[members[j].ID]
	})

	var names []string
	for _, m := range members {
		if len(names) == 2 {
			break
		}
		name := strings.TrimSpace(m.DisplayName())
		if name == "" {
			continue
		}
		names = append(names, truncateName(name, clusterNameLimit))
	}

	if len(names) > 0 {
		return strings.Join(names, ", ")
	}
	if c.DominantType != "" {
		return strings.ReplaceAll(c.DominantType, "_", " ")
	}
	return graph.MixedClusterLabel
}

// truncateName shortens s to limit runes, appending an ellipsis when cut.
func truncateName(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
