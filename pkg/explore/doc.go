// Package explore manages an interactive exploration session: the mutable
// interaction state around the otherwise pure view-model engine.
//
// [State] receives the interaction events of the surrounding UI - node
// clicks, hovers, search input, cluster and entity-type filter changes - and
// decides which of them require a view-model rebuild. Graph, cluster filter,
// search term and type filter do; selection and hover do not, since they
// only affect per-frame drawing.
//
// Rebuilds run synchronously under the state lock, so every generation a
// renderer obtains from Model is complete. Generations are immutable and
// remain usable after being superseded.
package explore
