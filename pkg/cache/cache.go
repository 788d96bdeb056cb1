// Package cache provides pluggable caching for graph data, view-models and
// rendered snapshots.
//
// Backends: file (CLI), redis (server deployments), null (disabled). Keys
// are produced by a [Keyer] so every consumer hashes the same inputs the
// same way.
//
// View-model keys deliberately include the full filter state (cluster,
// search term, entity types). Annotations like isNeighbor and draw priority
// are ephemeral per-rebuild values; caching them keyed by graph content
// alone would leak one filter's annotations into another's view.
package cache

import (
	"context"
	"time"
)

// Cache is the common interface over all cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keyer - Cache Key Construction
// =============================================================================

// GraphKeyOpts are the query bounds that shape a provider response.
type GraphKeyOpts struct {
	MaxNodes int      `json:"max_nodes"`
	MaxEdges int      `json:"max_edges"`
	Project  string   `json:"project,omitempty"`
	Types    []string `json:"types,omitempty"`
}

// ViewKeyOpts are the filter inputs of one view-model generation. All three
// must participate in the key: the same graph yields different annotated
// output under different filters.
type ViewKeyOpts struct {
	Cluster string   `json:"cluster,omitempty"`
	Search  string   `json:"search,omitempty"`
	Types   []string `json:"types,omitempty"`
}

// SnapshotKeyOpts are the render inputs of one snapshot artifact.
type SnapshotKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
	Seed   int64   `json:"seed"`
}

// Keyer builds cache keys for the three cacheable layers.
type Keyer interface {
	// GraphKey keys a raw provider response.
	GraphKey(source string, opts GraphKeyOpts) string

	// ViewKey keys a built view-model: graph content hash plus the full
	// filter state.
	ViewKey(graphHash string, opts ViewKeyOpts) string

	// SnapshotKey keys a rendered artifact: view-model hash plus render
	// options.
	SnapshotKey(viewHash string, opts SnapshotKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256 under a typed prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// GraphKey generates a key for provider response caching.
func (k *DefaultKeyer) GraphKey(source string, opts GraphKeyOpts) string {
	return hashKey("graph", source, opts)
}

// ViewKey generates a key for view-model caching.
func (k *DefaultKeyer) ViewKey(graphHash string, opts ViewKeyOpts) string {
	return hashKey("view", graphHash, opts)
}

// SnapshotKey generates a key for snapshot artifact caching.
func (k *DefaultKeyer) SnapshotKey(viewHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot", viewHash, opts)
}
