package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mkessler/graphlens/pkg/graph"
	"github.com/mkessler/graphlens/pkg/view"
)

func testModel() *view.Model {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Type: graph.EntityTask, Name: "Alpha"},
			{ID: "b", Type: graph.EntityProject, Name: "Beta"},
			{ID: "c", Type: graph.EntityTask, Name: "Gamma"},
		},
		Edges: []graph.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
		},
	}
	return view.Build(&g, view.Filter{})
}

func gridPositions(ids ...string) PositionFunc {
	pos := make(map[string][2]float64, len(ids))
	for i, id := range ids {
		pos[id] = [2]float64{float64(i) * 100, float64(i) * 50}
	}
	return func(id string) (float64, float64, bool) {
		p, ok := pos[id]
		return p[0], p[1], ok
	}
}

func TestSVGCanvasDocument(t *testing.T) {
	cv := NewSVGCanvas(800, 600)
	cv.FillCircle(10, 20, 5, Fill{Color: "#ffffff", Opacity: 1})
	cv.FillText(`<script>`, 10, 40, 12, Fill{Color: "#ffffff", Opacity: 1})

	out := string(cv.Bytes())
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output is not a complete SVG document")
	}
	if !strings.Contains(out, `viewBox="0 0 800 600"`) {
		t.Error("missing viewBox")
	}
	if !strings.Contains(out, ColorBackground) {
		t.Error("missing background rect")
	}
	// Text content must be escaped.
	if strings.Contains(out, "<script>") {
		t.Error("text content not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("escaped text missing")
	}
}

func TestSVGCanvasBytesIdempotent(t *testing.T) {
	cv := NewSVGCanvas(100, 100)
	a := cv.Bytes()
	b := cv.Bytes()
	if string(a) != string(b) {
		t.Error("Bytes must not mutate the canvas")
	}
}

func TestSnapshotDrawsEdgesAndNodes(t *testing.T) {
	m := testModel()
	cv := NewSVGCanvas(400, 400)
	Snapshot(cv, m, Frame{Scale: 1}, gridPositions("a", "b", "c"))

	out := string(cv.Bytes())
	if got := strings.Count(out, "<line"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
	// One fill circle per node at minimum.
	if got := strings.Count(out, "<circle"); got < 3 {
		t.Errorf("circle count = %d, want at least 3", got)
	}
	// The project labels even at scale 1.
	if !strings.Contains(out, "Beta") {
		t.Error("project label missing from snapshot")
	}
}

func TestSnapshotSkipsUnplacedNodes(t *testing.T) {
	m := testModel()
	cv := NewSVGCanvas(400, 400)
	// Only a and b have positions; c and both of its edges involving it are
	// partially resolvable.
	Snapshot(cv, m, Frame{Scale: 1}, gridPositions("a", "b"))

	out := string(cv.Bytes())
	if got := strings.Count(out, "<line"); got != 1 {
		t.Errorf("line count = %d, want 1 (b-c has an unplaced endpoint)", got)
	}
	if strings.Contains(out, "Gamma") {
		t.Error("unplaced node must not draw")
	}
}

func TestDrawEdgeHighlight(t *testing.T) {
	cv := NewSVGCanvas(100, 100)
	pos := gridPositions("a", "b")
	e := graph.Edge{Source: "a", Target: "b"}

	DrawEdge(cv, e, Frame{Scale: 1}, pos)
	DrawEdge(cv, e, Frame{Scale: 1, Selected: "a"}, pos)

	out := string(cv.Bytes())
	if !strings.Contains(out, `stroke-width="0.60"`) {
		t.Error("base edge stroke missing")
	}
	if !strings.Contains(out, `stroke-width="1.60"`) {
		t.Error("highlighted edge stroke missing")
	}
}

func TestToDOT(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Type: graph.EntityTask, Name: "Alpha", Cluster: "c1"},
			{ID: "b", Type: graph.EntityTask, Cluster: "c1"},
			{ID: "n", Type: graph.EntityTask},
		},
		Edges: []graph.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "n"},
		},
	}
	m := view.Build(&g, view.Filter{Cluster: "c1"})

	dot := ToDOT(m)
	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("DOT output should be an undirected graph")
	}
	if !strings.Contains(dot, `"a" -- "b";`) {
		t.Error("member edge missing")
	}
	if !strings.Contains(dot, `label="Alpha"`) {
		t.Error("display name missing")
	}
	// The context neighbor renders dashed.
	if !strings.Contains(dot, `"n" [`) || !strings.Contains(dot, "dashed") {
		t.Error("neighbor node should render dashed")
	}
	// Cluster members carry the cluster outline color; the neighbor stays grey.
	if !strings.Contains(dot, fmt.Sprintf("color=%q", ClusterColor("c1"))) {
		t.Error("cluster outline color missing from member nodes")
	}
	if got := strings.Count(dot, fmt.Sprintf("color=%q", ClusterColor("c1"))); got != 2 {
		t.Errorf("cluster-colored nodes = %d, want 2", got)
	}
}
