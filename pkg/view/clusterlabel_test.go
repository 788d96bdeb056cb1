package view

import (
	"strings"
	"testing"

	"github.com/mkessler/graphlens/pkg/graph"
)

// star wires hub to n spokes so hub's global degree is n.
func star(hub string, spokes int) []graph.Edge {
	edges := make([]graph.Edge, 0, spokes)
	for i := 0; i < spokes; i++ {
		edges = append(edges, graph.Edge{Source: hub, Target: hub + "-spoke"})
	}
	return edges
}

func TestClusterLabelTopTwoByDegree(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "auth", Name: "Auth Service", Cluster: "c1"},
			{ID: "login", Name: "Login Flow", Cluster: "c1"},
			{ID: "x", Name: "X", Cluster: "c1"},
		},
	}
	g.Edges = append(g.Edges, star("auth", 5)...)
	g.Edges = append(g.Edges, star("login", 3)...)
	g.Edges = append(g.Edges, star("x", 1)...)

	got := ClusterLabel(graph.Cluster{ID: "c1"}, &g)
	if got != "Auth Service, Login Flow" {
		t.Errorf("ClusterLabel = %q, want %q", got, "Auth Service, Login Flow")
	}
}

func TestClusterLabelTruncatesLongNames(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Name: "An Extremely Long Member Name", Cluster: "c1"},
		},
	}
	got := ClusterLabel(graph.Cluster{ID: "c1"}, &g)

	if !strings.HasSuffix(got, "…") {
		t.Errorf("long name should be truncated with an ellipsis, got %q", got)
	}
	if runes := []rune(got); len(runes) != clusterNameLimit+1 {
		t.Errorf("truncated label has %d runes, want %d plus ellipsis", len(runes), clusterNameLimit)
	}
}

func TestClusterLabelSkipsBlankNames(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: " ", Cluster: "c1"},
			{ID: "b", Name: "Billing", Cluster: "c1"},
		},
	}
	got := ClusterLabel(graph.Cluster{ID: "c1"}, &g)
	if got != "Billing" {
		t.Errorf("ClusterLabel = %q, want blank member skipped", got)
	}
}

func TestClusterLabelDominantTypeFallback(t *testing.T) {
	g := graph.Graph{}
	got := ClusterLabel(graph.Cluster{ID: "c1", DominantType: "code_pattern"}, &g)
	if got != "code pattern" {
		t.Errorf("ClusterLabel = %q, want underscores replaced", got)
	}
}

func TestClusterLabelMixedFallback(t *testing.T) {
	g := graph.Graph{}
	got := ClusterLabel(graph.Cluster{ID: "c1"}, &g)
	if got != graph.MixedClusterLabel {
		t.Errorf("ClusterLabel = %q, want %q", got, graph.MixedClusterLabel)
	}
}
