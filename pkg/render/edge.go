package render

import "github.com/mkessler/graphlens/pkg/graph"

// Edge stroke parameters.
const (
	edgeBaseOpacity      = 0.18
	edgeBaseWidth        = 0.6
	edgeHighlightOpacity = 0.8
	edgeHighlightWidth   = 1.6
)

// PositionFunc resolves a node ID to its current layout position. ok is
// false while the simulator has not assigned the node a position yet.
type PositionFunc func(id string) (x, y float64, ok bool)

// DrawEdge renders one relationship as a line between its endpoint
// positions. If either endpoint has no position yet, the edge is skipped for
// this frame - the simulator will assign one shortly, so this is not a fault.
//
// Edges touching the selected or hovered node draw wider and more opaque;
// everything else stays a thin, low-opacity background stroke.
func DrawEdge(cv Canvas, e graph.Edge, frame Frame, pos PositionFunc) {
	x1, y1, ok := pos(e.Source)
	if !ok {
		return
	}
	x2, y2, ok := pos(e.Target)
	if !ok {
		return
	}

	stroke := Stroke{Color: ColorEdge, Opacity: edgeBaseOpacity, Width: edgeBaseWidth}
	if highlighted(e, frame) {
		stroke.Opacity = edgeHighlightOpacity
		stroke.Width = edgeHighlightWidth
	}

	cv.Line(x1, y1, x2, y2, stroke)
}

func highlighted(e graph.Edge, frame Frame) bool {
	if frame.Selected != "" && e.Touches(frame.Selected) {
		return true
	}
	return frame.Hovered != "" && e.Touches(frame.Hovered)
}
