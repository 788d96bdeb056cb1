// Package layout runs the force-directed layout simulation that assigns
// node coordinates over time.
//
// The simulator is a collaborator of the view-model engine, not part of it:
// it owns the (x, y) coordinates exclusively, publishing them through a
// [Positions] side table keyed by node ID. The engine and renderers only
// read the table, and tolerate nodes that have no position yet.
//
// A [Simulation] runs a warm-up burst of ticks before the first frame, then
// continues at a decaying rate until the heat (alpha) drops below a floor or
// the cooldown budget is exhausted:
//
//	table := layout.NewPositions()
//	sim := layout.New(g, table, layout.DefaultConfig())
//	sim.Warmup()
//	for !sim.Done() {
//	    sim.Tick() // once per frame
//	}
//
// Ticks publish whole steps; concurrent readers never observe a torn update.
package layout
