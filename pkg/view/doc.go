// Package view builds the annotated, draw-ordered view-model consumed by the
// rendering host.
//
// # Rebuild Lifecycle
//
// [Build] is the single entry point. It runs the visibility selector and the
// degree index, attaches per-node presentation attributes (degree, project /
// neighbor / search-match flags, draw priority), and returns the node list
// stably sorted ascending by priority. The whole view-model is recomputed
// whenever the raw graph, the cluster filter or the search term changes; each
// rebuild allocates a fresh [Model] and never mutates a previous one.
//
// # Draw Priority
//
// Priority composes four signals: filtered degree as the base, a category
// bonus (+1000 project, +50 task, +30 pattern), a -500 context penalty for
// cluster neighbors, and a +2000 boost for search matches. The value orders
// drawing only - ascending means drawn first, underneath.
//
// # Ephemeral Annotations
//
// Annotation fields live exclusively on [AnnotatedNode] and exist only within
// one generation. Anything caching a model must key on the full filter state
// (cluster, search, types), never on entity IDs alone.
package view
