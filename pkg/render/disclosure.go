package render

import (
	"math"

	"github.com/mkessler/graphlens/pkg/view"
)

// =============================================================================
// Progressive Disclosure - Label Visibility vs. Zoom
// =============================================================================

// Zoom thresholds at which each class of node becomes eligible to show its
// label. Evaluated top to bottom in ShowLabel; the first matching class wins.
const (
	zoomNeighborLabel = 4.0 // Context nodes label only when zoomed way in
	zoomProjectLabel  = 0.4
	zoomHubLabel      = 0.7
	zoomDegree5Label  = 1.2
	zoomDegree3Label  = 1.8
	zoomDegree1Label  = 2.5
	zoomAnyLabel      = 3.5
)

// Label sizing.
const (
	labelMaxRunes  = 40
	labelFontPx    = 12.0 // Constant on-screen size; divided by scale
	labelDimText   = 0.55 // Text opacity for non-priority labels
	labelFullText  = 1.0
	shadowOffsetPx = 1.0
)

// IsHub reports whether a node's filtered degree clears the zoom-independent
// hub threshold: more than max(3, 5% of the current maximum degree).
func IsHub(degree, maxDegree int) bool {
	threshold := math.Max(3, float64(maxDegree)*0.05)
	return float64(degree) > threshold
}

// ShowLabel decides whether a node's label is visible at the given zoom
// scale. maxDegree is the generation's maximum filtered degree (from
// view.Model). Classes are checked in priority order; the first that applies
// wins, and a node matching no rung shows no label.
func ShowLabel(n *view.AnnotatedNode, maxDegree int, frame Frame) bool {
	scale := frame.Scale

	switch {
	case n.ID == frame.Selected || n.ID == frame.Hovered || n.IsSearchMatch:
		return true
	case n.IsNeighbor:
		return scale >= zoomNeighborLabel
	case n.IsProject:
		return scale >= zoomProjectLabel
	case IsHub(n.Degree, maxDegree):
		return scale >= zoomHubLabel
	case n.Degree >= 5:
		return scale >= zoomDegree5Label
	case n.Degree >= 3:
		return scale >= zoomDegree3Label
	case n.Degree >= 1:
		return scale >= zoomDegree1Label
	default:
		return scale >= zoomAnyLabel
	}
}

// LabelLimit returns the maximum label length in runes for a zoom scale:
// more zoom, more room, capped at 40.
func LabelLimit(scale float64) int {
	limit := int(math.Floor(10 + scale*5))
	if limit > labelMaxRunes {
		return labelMaxRunes
	}
	return limit
}

// TruncateLabel shortens text to the zoom-dependent limit, appending an
// ellipsis when cut.
func TruncateLabel(text string, scale float64) string {
	limit := LabelLimit(scale)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}

// FontSize returns the world-unit font size that occupies a constant
// on-screen pixel size regardless of zoom.
func FontSize(scale float64) float64 {
	return labelFontPx / scale
}
