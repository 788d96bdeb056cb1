// Package metadata provides typed access to per-entity metadata bags.
//
// The data provider attaches loosely-typed key/value metadata to every node,
// with different fields per entity type. Rather than treating all metadata as
// a homogeneous map, [EntityMetadata] models the known fields of each variant
// explicitly and keeps a residual untyped bag (Extra) so unrecognized
// provider fields survive round trips.
package metadata
