package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/mkessler/graphlens/pkg/view"
)

// =============================================================================
// SVG Sink
// =============================================================================

// SVGCanvas is a Canvas implementation that accumulates SVG elements. It
// backs the snapshot path: run the simulator for its warm-up ticks, draw one
// frame, export the bytes.
type SVGCanvas struct {
	buf    bytes.Buffer
	width  float64
	height float64
}

// NewSVGCanvas creates an SVG drawing surface with the given frame size.
func NewSVGCanvas(width, height float64) *SVGCanvas {
	c := &SVGCanvas{width: width, height: height}
	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&c.buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", ColorBackground)
	return c
}

// FillCircle writes a filled circle element.
func (c *SVGCanvas) FillCircle(x, y, r float64, fill Fill) {
	fmt.Fprintf(&c.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f"/>`+"\n",
		x, y, r, fill.Color, fill.Opacity)
}

// StrokeCircle writes a circle outline element.
func (c *SVGCanvas) StrokeCircle(x, y, r float64, stroke Stroke) {
	fmt.Fprintf(&c.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="%.2f"/>`+"\n",
		x, y, r, stroke.Color, stroke.Opacity, stroke.Width)
}

// Line writes a line element.
func (c *SVGCanvas) Line(x1, y1, x2, y2 float64, stroke Stroke) {
	fmt.Fprintf(&c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.2f" stroke-width="%.2f"/>`+"\n",
		x1, y1, x2, y2, stroke.Color, stroke.Opacity, stroke.Width)
}

// FillText writes a centered text element.
func (c *SVGCanvas) FillText(text string, x, y, size float64, fill Fill) {
	fmt.Fprintf(&c.buf, `  <text x="%.2f" y="%.2f" font-size="%.2f" font-family="sans-serif" text-anchor="middle" fill="%s" fill-opacity="%.2f">%s</text>`+"\n",
		x, y, size, fill.Color, fill.Opacity, html.EscapeString(text))
}

// Bytes finalizes the document and returns the SVG bytes.
func (c *SVGCanvas) Bytes() []byte {
	out := make([]byte, c.buf.Len(), c.buf.Len()+7)
	copy(out, c.buf.Bytes())
	return append(out, []byte("</svg>\n")...)
}

// Ensure SVGCanvas implements Canvas.
var _ Canvas = (*SVGCanvas)(nil)

// =============================================================================
// Snapshot - One Complete Frame
// =============================================================================

// Snapshot draws a full view-model generation onto a canvas: edges first,
// then nodes in their priority order so boosted nodes stack on top. Nodes or
// edges without an assigned position are skipped silently.
func Snapshot(cv Canvas, m *view.Model, frame Frame, pos PositionFunc) {
	for _, e := range m.Edges {
		DrawEdge(cv, e, frame, pos)
	}
	for i := range m.Nodes {
		n := &m.Nodes[i]
		x, y, ok := pos(n.ID)
		if !ok {
			continue
		}
		DrawNode(cv, n, m.MaxDegree, x, y, frame)
	}
}
