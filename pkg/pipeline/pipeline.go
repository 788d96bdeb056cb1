// Package pipeline provides the fetch → build → layout → render pipeline
// shared by the CLI, the TUI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: retrieve a bounded graph from the data provider (or cache)
//  2. Build: construct the annotated, draw-ordered view-model
//  3. Layout: run the force simulation's warm-up ticks
//  4. Render: draw one frame to SVG, PNG, DOT or JSON
//
// Centralizing this keeps every entry point's behavior identical: a snapshot
// rendered by the CLI is byte-for-byte what the server would have returned
// for the same inputs.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, cache, logger)
//	opts := pipeline.Options{
//	    Source:  "https://backend.local",
//	    Cluster: "c42",
//	    Format:  pipeline.FormatSVG,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifact
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkessler/graphlens/pkg/errors"
	"github.com/mkessler/graphlens/pkg/graph"
	"github.com/mkessler/graphlens/pkg/layout"
	"github.com/mkessler/graphlens/pkg/view"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI, and Server
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800.0

	// DefaultScale is the default zoom level for snapshots.
	DefaultScale = 1.0

	// DefaultCacheTTL is how long fetched graphs and rendered artifacts
	// stay cached.
	DefaultCacheTTL = 15 * time.Minute
)

// Output formats for snapshots.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options
	Source   string   `json:"source,omitempty"` // Provider base URL
	MaxNodes int      `json:"max_nodes,omitempty"`
	MaxEdges int      `json:"max_edges,omitempty"`
	Project  string   `json:"project,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"` // Bypass the graph cache

	// View-model options
	Cluster string   `json:"cluster,omitempty"`
	Search  string   `json:"search,omitempty"`
	Types   []string `json:"types,omitempty"`

	// Layout options
	Layout layout.Config `json:"layout,omitempty"`

	// Render options
	Format string  `json:"format,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Scale  float64 `json:"scale,omitempty"` // Zoom level of the snapshot frame

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the fetched raw graph.
	Graph graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Model is the built view-model generation.
	Model *view.Model

	// Positions is the layout table after warm-up.
	Positions *layout.Positions

	// Artifact is the rendered output in the requested format.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	MatchCount int
	FetchTime  time.Duration
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GraphHit    bool // Whether the graph came from cache
	ArtifactHit bool // Whether the rendered artifact came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Filter returns the view-model filter for these options.
func (o *Options) Filter() view.Filter {
	return view.Filter{Cluster: o.Cluster, Search: o.Search, Types: o.Types}
}
