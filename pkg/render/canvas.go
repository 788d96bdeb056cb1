package render

// =============================================================================
// Canvas - 2D Drawing Primitive Surface
// =============================================================================

// Canvas is the minimal 2D drawing surface the engine draws against. Hosts
// adapt it to whatever backend they render with (an HTML canvas bridge, the
// SVG sink in this package, a test recorder).
//
// Coordinates are world units; the host applies the zoom transform. Opacity
// is in [0, 1] with 0 fully transparent.
type Canvas interface {
	// FillCircle draws a filled circle centered at (x, y).
	FillCircle(x, y, r float64, fill Fill)

	// StrokeCircle draws a circle outline centered at (x, y).
	StrokeCircle(x, y, r float64, stroke Stroke)

	// Line draws a straight segment between two points.
	Line(x1, y1, x2, y2 float64, stroke Stroke)

	// FillText draws text anchored at its center point (x, y) with the
	// given font size in world units.
	FillText(text string, x, y, size float64, fill Fill)
}

// Fill describes a solid fill.
type Fill struct {
	Color   string  // Hex color, e.g. "#4f8fea"
	Opacity float64 // 0..1
}

// Stroke describes an outline.
type Stroke struct {
	Color   string
	Opacity float64
	Width   float64 // Line width in world units
}

// Frame is the per-frame interaction state the host passes into every draw
// call of a generation.
type Frame struct {
	// Selected is the ID of the selected node ("" = none).
	Selected string

	// Hovered is the ID of the hovered node ("" = none).
	Hovered string

	// Scale is the global zoom level. 1.0 is the initial zoom; values
	// below 1 are zoomed out, above 1 zoomed in.
	Scale float64
}
