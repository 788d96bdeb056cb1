package layout

import "sync"

// Positions is the side table of node coordinates, keyed by node ID. The
// simulator owns and writes it on its own tick schedule; everything else
// only reads. Keeping coordinates out of the immutable view-model records
// lets the simulator keep moving nodes between rebuilds.
type Positions struct {
	mu  sync.RWMutex
	pos map[string]point
}

type point struct {
	x, y   float64
	vx, vy float64
}

// NewPositions creates an empty position table.
func NewPositions() *Positions {
	return &Positions{pos: make(map[string]point)}
}

// Get returns the current coordinates of a node. ok is false while the
// simulator has not assigned the node a position yet; the renderer treats
// such nodes as temporarily non-drawable, not as an error.
//
// The signature matches render.PositionFunc, so hosts can pass Get directly
// into the drawing calls.
func (p *Positions) Get(id string) (x, y float64, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pt, ok := p.pos[id]
	return pt.x, pt.y, ok
}

// Len returns the number of placed nodes.
func (p *Positions) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.pos)
}

// set stores a node's position and velocity. Simulator-internal.
func (p *Positions) set(id string, pt point) {
	p.mu.Lock()
	p.pos[id] = pt
	p.mu.Unlock()
}

// snapshot copies the table for a simulation step. The simulator computes a
// whole tick against the copy and publishes results with set, so readers
// never observe a half-applied step.
func (p *Positions) snapshot() map[string]point {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]point, len(p.pos))
	for k, v := range p.pos {
		out[k] = v
	}
	return out
}
