package layout

import (
	"math"
	"math/rand"

	"github.com/mkessler/graphlens/pkg/graph"
)

// =============================================================================
// Config - Named Simulation Parameters
// =============================================================================

// Config holds the named numeric parameters of the force simulation.
type Config struct {
	// Repulsion is the node-node repulsion strength (charge magnitude).
	Repulsion float64 `toml:"repulsion"`

	// LinkDistance is the target length of an edge spring.
	LinkDistance float64 `toml:"link_distance"`

	// CenterPull is the strength of the pull toward the frame center.
	CenterPull float64 `toml:"center_pull"`

	// CollisionRadius is the minimum separation enforced between nodes.
	CollisionRadius float64 `toml:"collision_radius"`

	// WarmupTicks is the number of synchronous ticks run before the first
	// frame is drawn.
	WarmupTicks int `toml:"warmup_ticks"`

	// CooldownTicks is the number of ticks run after warm-up at a decaying
	// rate before the simulation settles.
	CooldownTicks int `toml:"cooldown_ticks"`

	// PositionDecay is the per-tick decay of the simulation heat (alpha).
	PositionDecay float64 `toml:"position_decay"`

	// VelocityDecay is the per-tick velocity damping factor.
	VelocityDecay float64 `toml:"velocity_decay"`

	// Seed makes initial placement reproducible.
	Seed int64 `toml:"seed"`
}

// DefaultConfig returns the simulation parameters tuned for graphs in the
// hundreds-of-nodes range.
func DefaultConfig() Config {
	return Config{
		Repulsion:       120,
		LinkDistance:    60,
		CenterPull:      0.05,
		CollisionRadius: 18,
		WarmupTicks:     100,
		CooldownTicks:   200,
		PositionDecay:   0.0228,
		VelocityDecay:   0.4,
		Seed:            42,
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig, so a partial
// config file only overrides the parameters it names.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Repulsion == 0 {
		c.Repulsion = d.Repulsion
	}
	if c.LinkDistance == 0 {
		c.LinkDistance = d.LinkDistance
	}
	if c.CenterPull == 0 {
		c.CenterPull = d.CenterPull
	}
	if c.CollisionRadius == 0 {
		c.CollisionRadius = d.CollisionRadius
	}
	if c.WarmupTicks == 0 {
		c.WarmupTicks = d.WarmupTicks
	}
	if c.CooldownTicks == 0 {
		c.CooldownTicks = d.CooldownTicks
	}
	if c.PositionDecay == 0 {
		c.PositionDecay = d.PositionDecay
	}
	if c.VelocityDecay == 0 {
		c.VelocityDecay = d.VelocityDecay
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	return c
}

// =============================================================================
// Simulation - Tick-Driven Layout Actor
// =============================================================================

// Simulation is a force-directed layout process over a node/edge set. It is
// a cooperative, tick-driven actor: the host ticks it (synchronously during
// warm-up, then once per frame during cooldown) and the simulation mutates
// the shared position table. Renderers poll the table; they never tick.
//
// The simulation only reads graph structure. It never touches view-model
// annotations, and a view-model rebuild never resets positions - nodes keep
// their coordinates across filter and search changes.
type Simulation struct {
	cfg   Config
	nodes []string
	edges []graph.Edge
	table *Positions
	alpha float64
	ticks int
}

// alphaFloor is the heat level below which ticks become no-ops.
const alphaFloor = 0.001

// New creates a simulation over the given graph writing into table. Nodes
// already present in the table keep their positions; new nodes are placed on
// a seeded ring with jitter so the first ticks have non-degenerate geometry.
func New(g *graph.Graph, table *Positions, cfg Config) *Simulation {
	s := &Simulation{
		cfg:   cfg,
		table: table,
		alpha: 1.0,
	}
	s.SetGraph(g)
	return s
}

// SetGraph swaps the simulated structure, keeping positions of surviving
// nodes and reheating the simulation so new nodes settle in. Called on every
// data refresh.
func (s *Simulation) SetGraph(g *graph.Graph) {
	s.nodes = s.nodes[:0]
	s.edges = nil
	if g == nil {
		return
	}

	rng := rand.New(rand.NewSource(s.cfg.Seed))
	existing := s.table.snapshot()

	for i := range g.Nodes {
		id := g.Nodes[i].ID
		s.nodes = append(s.nodes, id)
		if _, ok := existing[id]; ok {
			continue
		}
		// Seeded ring placement with jitter.
		angle := rng.Float64() * 2 * math.Pi
		radius := 100 + rng.Float64()*100
		s.table.set(id, point{
			x: math.Cos(angle) * radius,
			y: math.Sin(angle) * radius,
		})
	}

	index := g.NodeIndex()
	for _, e := range g.Edges {
		if _, ok := index[e.Source]; !ok {
			continue
		}
		if _, ok := index[e.Target]; !ok {
			continue
		}
		s.edges = append(s.edges, e)
	}

	s.alpha = 1.0
	s.ticks = 0
}

// Warmup runs the configured number of synchronous ticks. The host calls
// this once before drawing the first frame so the initial layout is not a
// random cloud.
func (s *Simulation) Warmup() {
	for i := 0; i < s.cfg.WarmupTicks; i++ {
		s.Tick()
	}
}

// Done reports whether the simulation has settled: cooldown exhausted or
// heat below the working floor.
func (s *Simulation) Done() bool {
	return s.ticks >= s.cfg.WarmupTicks+s.cfg.CooldownTicks || s.alpha < alphaFloor
}

// Positions returns the shared position table.
func (s *Simulation) Positions() *Positions { return s.table }

// Tick advances the simulation one step: repulsion between all pairs, edge
// springs toward the target link distance, a pull toward the origin, and
// collision separation, followed by velocity damping and heat decay. The
// whole step computes against a snapshot and publishes per-node results, so
// concurrent readers never see a torn update.
func (s *Simulation) Tick() {
	if s.alpha < alphaFloor || len(s.nodes) == 0 {
		return
	}

	pts := s.table.snapshot()

	// Pairwise repulsion.
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := pts[s.nodes[i]], pts[s.nodes[j]]
			dx, dy, dist := delta(a, b)
			force := s.cfg.Repulsion / (dist * dist) * s.alpha
			a.vx -= dx / dist * force
			a.vy -= dy / dist * force
			b.vx += dx / dist * force
			b.vy += dy / dist * force
			pts[s.nodes[i]], pts[s.nodes[j]] = a, b
		}
	}

	// Edge springs.
	for _, e := range s.edges {
		a, b := pts[e.Source], pts[e.Target]
		dx, dy, dist := delta(a, b)
		stretch := (dist - s.cfg.LinkDistance) / dist * 0.1 * s.alpha
		a.vx += dx * stretch
		a.vy += dy * stretch
		b.vx -= dx * stretch
		b.vy -= dy * stretch
		pts[e.Source], pts[e.Target] = a, b
	}

	// Center pull and integration.
	for _, id := range s.nodes {
		p := pts[id]
		p.vx -= p.x * s.cfg.CenterPull * s.alpha
		p.vy -= p.y * s.cfg.CenterPull * s.alpha
		p.vx *= 1 - s.cfg.VelocityDecay
		p.vy *= 1 - s.cfg.VelocityDecay
		p.x += p.vx
		p.y += p.vy
		pts[id] = p
	}

	// Collision separation.
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := pts[s.nodes[i]], pts[s.nodes[j]]
			dx, dy, dist := delta(a, b)
			if dist >= s.cfg.CollisionRadius {
				continue
			}
			push := (s.cfg.CollisionRadius - dist) / 2
			a.x -= dx / dist * push
			a.y -= dy / dist * push
			b.x += dx / dist * push
			b.y += dy / dist * push
			pts[s.nodes[i]], pts[s.nodes[j]] = a, b
		}
	}

	for _, id := range s.nodes {
		s.table.set(id, pts[id])
	}

	s.alpha *= 1 - s.cfg.PositionDecay
	s.ticks++
}

// delta returns the displacement from a to b with a distance floor that
// keeps coincident nodes from producing infinite forces.
func delta(a, b point) (dx, dy, dist float64) {
	dx = b.x - a.x
	dy = b.y - a.y
	dist = math.Hypot(dx, dy)
	if dist < 1e-6 {
		dist = 1e-6
		dx = 1e-6
	}
	return dx, dy, dist
}
