package render

import (
	"math"

	"github.com/mkessler/graphlens/pkg/view"
)

// =============================================================================
// Node Spec - Per-Frame Presentation Decision
// =============================================================================

// NodeSpec is the fully resolved drawing plan for one node in one frame:
// size, fill, outline, halo, and label. Computing the spec is pure; DrawNode
// applies it to a canvas.
type NodeSpec struct {
	Radius  float64
	Fill    Fill
	Outline *Stroke // nil when no outline is drawn
	Halo    bool    // Two-layer accent halo beneath the node (search match)

	Label       string // "" when no label is shown
	FontSize    float64
	LabelFill   Fill
	ShadowShift float64 // World-unit offset of the shadow text pass
}

// SpecFor resolves how a node draws at the current zoom scale and interaction
// state. maxDegree is the generation's maximum filtered degree, already
// floored at 1 by the degree index.
func SpecFor(n *view.AnnotatedNode, maxDegree int, frame Frame) NodeSpec {
	selected := n.ID == frame.Selected
	hovered := n.ID == frame.Hovered

	scale := combinedScale(n.Degree, maxDegree)
	spec := NodeSpec{
		Radius: radiusFor(n, selected, hovered, scale),
		Fill:   Fill{Color: EntityColor(n.Type), Opacity: 1.0},
	}

	// Context-only nodes recede unless something re-emphasizes them.
	if n.IsNeighbor && !selected && !hovered && !n.IsSearchMatch {
		spec.Fill.Opacity = NeighborOpacity
	}

	switch {
	case selected:
		spec.Outline = &Stroke{Color: ColorSelected, Opacity: 1.0, Width: 2}
	case hovered:
		spec.Outline = &Stroke{Color: ColorHovered, Opacity: 0.6, Width: 2}
	case n.IsSearchMatch:
		spec.Outline = &Stroke{Color: ColorAccent, Opacity: 1.0, Width: 2}
		spec.Halo = true
	}

	if ShowLabel(n, maxDegree, frame) {
		spec.Label = TruncateLabel(n.DisplayName(), frame.Scale)
		spec.FontSize = FontSize(frame.Scale)
		spec.ShadowShift = shadowOffsetPx / frame.Scale

		opacity := labelFullText
		if !selected && !hovered && !n.IsProject && !n.IsSearchMatch && !IsHub(n.Degree, maxDegree) {
			opacity = labelDimText
		}
		spec.LabelFill = Fill{Color: ColorLabel, Opacity: opacity}
	}

	return spec
}

// combinedScale blends linear and logarithmic degree normalization. The
// square root keeps small-degree nodes distinguishable; the log term stops
// hubs from dwarfing everything.
func combinedScale(degree, maxDegree int) float64 {
	if maxDegree < 1 {
		maxDegree = 1
	}
	degreeScale := math.Sqrt(float64(degree) / float64(maxDegree))

	logDegree := 0.0
	if degree > 0 {
		logDegree = math.Log2(float64(degree)+1) / math.Log2(float64(maxDegree)+1)
	}

	return (degreeScale + logDegree) / 2
}

// radiusFor picks the base radius by node state; the first matching state
// wins.
func radiusFor(n *view.AnnotatedNode, selected, hovered bool, scale float64) float64 {
	switch {
	case n.IsProject:
		return 14 + scale*10
	case selected:
		return math.Max(12, 6+scale*10)
	case hovered:
		return math.Max(10, 5+scale*9)
	case n.IsSearchMatch:
		return math.Max(10, 6+scale*10)
	case n.IsNeighbor:
		return 4 + scale*8
	default:
		return 5 + scale*12
	}
}

// =============================================================================
// Node Drawing
// =============================================================================

// DrawNode renders one node at (x, y) according to its per-frame spec.
// The host resolves the position from the layout side table first; a node
// without a position is simply not drawn this frame.
func DrawNode(cv Canvas, n *view.AnnotatedNode, maxDegree int, x, y float64, frame Frame) {
	spec := SpecFor(n, maxDegree, frame)

	if spec.Halo {
		cv.FillCircle(x, y, spec.Radius+6, Fill{Color: ColorAccent, Opacity: 0.12})
		cv.FillCircle(x, y, spec.Radius+3, Fill{Color: ColorAccent, Opacity: 0.25})
	}

	cv.FillCircle(x, y, spec.Radius, spec.Fill)

	if spec.Outline != nil {
		cv.StrokeCircle(x, y, spec.Radius, *spec.Outline)
	}

	if spec.Label != "" {
		ty := y + spec.Radius + spec.FontSize
		cv.FillText(spec.Label, x+spec.ShadowShift, ty+spec.ShadowShift, spec.FontSize,
			Fill{Color: ColorShadow, Opacity: 0.8 * spec.LabelFill.Opacity})
		cv.FillText(spec.Label, x, ty, spec.FontSize, spec.LabelFill)
	}
}
