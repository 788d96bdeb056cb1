// Package render implements the per-frame render-priority and disclosure
// engine, plus the drawing sinks that consume it.
//
// # Per-Frame Decisions
//
// The rendering host calls [SpecFor] (or [DrawNode], which wraps it) once per
// visible node per animation frame with the current [Frame] state: selected
// and hovered IDs plus the global zoom scale. The spec resolves:
//
//   - Size: a blend of sqrt and log degree normalization drives the radius,
//     with state-dependent base sizes (projects largest, context neighbors
//     smallest).
//   - Color: the entity's category color; context-only neighbors recede at
//     reduced opacity unless selected, hovered or matched.
//   - Outline and halo: selected nodes get a solid bright outline, hovered a
//     semi-transparent one, search matches an accent outline over a soft
//     two-layer halo.
//   - Label: the progressive-disclosure ladder in [ShowLabel] decides
//     whether a label appears at this zoom; shown labels are truncated to a
//     zoom-dependent rune budget and rendered at constant on-screen size
//     with a one-pixel shadow pass.
//
// # Ordering Guarantee
//
// Specs are computed from an immutable view.Model generation; the host must
// only start a frame after view.Build has returned. Nodes draw in model
// order (ascending priority) so boosted nodes stack on top.
//
// # Sinks
//
// [Canvas] abstracts the 2D drawing surface. [SVGCanvas] is the built-in
// vector sink used for snapshots; [ToDOT]/[RenderPNG] export structural
// snapshots through Graphviz. Interactive hosts bridge Canvas to their own
// surface and read positions from the layout side table each frame,
// skipping nodes the simulator has not placed yet.
package render
