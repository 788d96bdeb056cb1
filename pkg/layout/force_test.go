package layout

import (
	"math"
	"testing"

	"github.com/mkessler/graphlens/pkg/graph"
)

func testGraph() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
		},
		Edges: []graph.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
			{Source: "c", Target: "d"},
			{Source: "a", Target: "ghost"}, // unresolvable, must be dropped
		},
	}
}

// fastConfig keeps test runs short.
func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.WarmupTicks = 30
	cfg.CooldownTicks = 10
	return cfg
}

func TestWarmupPlacesEveryNode(t *testing.T) {
	g := testGraph()
	table := NewPositions()
	sim := New(g, table, fastConfig())
	sim.Warmup()

	if table.Len() != len(g.Nodes) {
		t.Fatalf("placed %d nodes, want %d", table.Len(), len(g.Nodes))
	}
	for _, n := range g.Nodes {
		x, y, ok := table.Get(n.ID)
		if !ok {
			t.Errorf("node %s has no position after warm-up", n.ID)
		}
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			t.Errorf("node %s position is not finite: (%f, %f)", n.ID, x, y)
		}
	}
}

func TestSeededLayoutDeterministic(t *testing.T) {
	run := func() map[string][2]float64 {
		g := testGraph()
		table := NewPositions()
		sim := New(g, table, fastConfig())
		sim.Warmup()

		out := make(map[string][2]float64)
		for _, n := range g.Nodes {
			x, y, _ := table.Get(n.ID)
			out[n.ID] = [2]float64{x, y}
		}
		return out
	}

	first, second := run(), run()
	for id, p1 := range first {
		if p2 := second[id]; p1 != p2 {
			t.Errorf("node %s diverged across identical runs: %v vs %v", id, p1, p2)
		}
	}
}

func TestSetGraphKeepsSurvivingPositions(t *testing.T) {
	g := testGraph()
	table := NewPositions()
	sim := New(g, table, fastConfig())
	sim.Warmup()

	ax, ay, _ := table.Get("a")

	// Swap in a graph that keeps a and adds a newcomer; a must not move on
	// the swap itself.
	sim.SetGraph(&graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "new"}},
	})

	gx, gy, ok := table.Get("a")
	if !ok || gx != ax || gy != ay {
		t.Error("surviving node should keep its position across SetGraph")
	}
	if _, _, ok := table.Get("new"); !ok {
		t.Error("new node should get an initial position")
	}

	// The swap reheats the simulation.
	if sim.Done() {
		t.Error("simulation should be hot again after SetGraph")
	}
}

func TestSimulationSettles(t *testing.T) {
	cfg := fastConfig()
	sim := New(testGraph(), NewPositions(), cfg)

	if sim.Done() {
		t.Fatal("fresh simulation should not be done")
	}
	for i := 0; i < cfg.WarmupTicks+cfg.CooldownTicks; i++ {
		sim.Tick()
	}
	if !sim.Done() {
		t.Error("simulation should settle after warm-up plus cooldown ticks")
	}
}

func TestConnectedNodesEndUpCloserThanStrangers(t *testing.T) {
	// Two components: a-b tightly linked, z isolated. After settling, the
	// linked pair should sit closer together than either sits to z.
	g := &graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "z"}},
		Edges: []graph.Edge{{Source: "a", Target: "b"}},
	}
	cfg := DefaultConfig()
	cfg.WarmupTicks = 300
	sim := New(g, NewPositions(), cfg)
	sim.Warmup()

	dist := func(p, q string) float64 {
		px, py, _ := sim.Positions().Get(p)
		qx, qy, _ := sim.Positions().Get(q)
		return math.Hypot(px-qx, py-qy)
	}
	if dist("a", "b") >= dist("a", "z") {
		t.Errorf("linked pair (%f) should be closer than strangers (%f)",
			dist("a", "b"), dist("a", "z"))
	}
}

func TestTickNoopWhenCold(t *testing.T) {
	sim := New(testGraph(), NewPositions(), fastConfig())

	// Burn the heat all the way past the working floor.
	for i := 0; i < 1000; i++ {
		sim.Tick()
	}

	x1, y1, _ := sim.Positions().Get("a")
	sim.Tick()
	x2, y2, _ := sim.Positions().Get("a")
	if x1 != x2 || y1 != y2 {
		t.Error("ticks after settling must not move nodes")
	}
}

func TestWithDefaults(t *testing.T) {
	var partial Config
	partial.Seed = 7

	cfg := partial.WithDefaults()
	if cfg.Seed != 7 {
		t.Errorf("explicit seed overridden: %d", cfg.Seed)
	}
	if cfg.Repulsion != DefaultConfig().Repulsion {
		t.Errorf("zero field not defaulted: %f", cfg.Repulsion)
	}
}

func TestEmptyGraph(t *testing.T) {
	sim := New(&graph.Graph{}, NewPositions(), fastConfig())
	sim.Warmup() // Must not panic or spin
	if sim.Positions().Len() != 0 {
		t.Error("empty graph should place nothing")
	}
}
