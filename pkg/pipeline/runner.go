package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkessler/graphlens/pkg/cache"
	"github.com/mkessler/graphlens/pkg/errors"
	"github.com/mkessler/graphlens/pkg/graph"
	"github.com/mkessler/graphlens/pkg/layout"
	"github.com/mkessler/graphlens/pkg/observability"
	"github.com/mkessler/graphlens/pkg/render"
	"github.com/mkessler/graphlens/pkg/source"
	"github.com/mkessler/graphlens/pkg/view"
)

// Fetcher retrieves graphs from the data provider. *source.Client is the
// production implementation; tests substitute fixtures.
type Fetcher interface {
	Fetch(ctx context.Context, q source.Query) (graph.Graph, error)
}

// Runner executes the pipeline with caching.
type Runner struct {
	fetcher Fetcher
	cache   cache.Cache
	keyer   cache.Keyer
	logger  *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching; a nil
// logger discards output.
func NewRunner(fetcher Fetcher, c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		fetcher: fetcher,
		cache:   c,
		keyer:   cache.NewDefaultKeyer(),
		logger:  logger,
	}
}

// Execute runs the complete pipeline: fetch, build, layout warm-up, render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	g, hit, err := r.fetchGraph(ctx, &opts, result)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.CacheInfo.GraphHit = hit

	raw, err := graph.Marshal(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash graph")
	}
	result.GraphHash = cache.Hash(raw)

	// Build the view-model generation.
	buildStart := time.Now()
	result.Model = view.Build(&g, opts.Filter())
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = len(result.Model.Nodes)
	result.Stats.EdgeCount = len(result.Model.Edges)
	result.Stats.MatchCount = result.Model.MatchCount
	r.logger.Debug("view-model built",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"matches", result.Stats.MatchCount)

	// Warm up the layout so the snapshot is not a random cloud.
	layoutStart := time.Now()
	table := layout.NewPositions()
	sim := layout.New(&g, table, opts.Layout)
	sim.Warmup()
	result.Positions = table
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Engine().OnLayoutWarmup(ctx, len(g.Nodes), opts.Layout.WarmupTicks, result.Stats.LayoutTime)

	// Render.
	renderStart := time.Now()
	artifact, artifactHit, err := r.renderArtifact(ctx, opts, result)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.CacheInfo.ArtifactHit = artifactHit
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// fetchGraph retrieves the raw graph, consulting the cache unless Refresh is
// set.
func (r *Runner) fetchGraph(ctx context.Context, opts *Options, result *Result) (graph.Graph, bool, error) {
	key := r.keyer.GraphKey(opts.Source, cache.GraphKeyOpts{
		MaxNodes: opts.MaxNodes,
		MaxEdges: opts.MaxEdges,
		Project:  opts.Project,
		Types:    opts.Types,
	})

	if !opts.Refresh {
		if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "graph")
			g, err := graph.Unmarshal(data)
			if err == nil {
				return g, true, nil
			}
			// Corrupt entry: fall through to a fresh fetch.
		} else {
			observability.Cache().OnCacheMiss(ctx, "graph")
		}
	}

	fetchStart := time.Now()
	g, err := r.fetcher.Fetch(ctx, source.Query{
		MaxNodes: opts.MaxNodes,
		MaxEdges: opts.MaxEdges,
		Project:  opts.Project,
		Types:    opts.Types,
	})
	if err != nil {
		return graph.Graph{}, false, err
	}
	result.Stats.FetchTime = time.Since(fetchStart)

	if data, err := graph.Marshal(g); err == nil {
		if err := r.cache.Set(ctx, key, data, DefaultCacheTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}
	return g, false, nil
}

// renderArtifact draws one frame in the requested format, consulting the
// artifact cache. The cache key covers the graph hash, the full filter state
// and the render options - never the graph alone, since annotations are
// filter-relative.
func (r *Runner) renderArtifact(ctx context.Context, opts Options, result *Result) ([]byte, bool, error) {
	viewKey := r.keyer.ViewKey(result.GraphHash, cache.ViewKeyOpts{
		Cluster: opts.Cluster,
		Search:  opts.Search,
		Types:   opts.Types,
	})
	key := r.keyer.SnapshotKey(viewKey, cache.SnapshotKeyOpts{
		Format: opts.Format,
		Width:  opts.Width,
		Height: opts.Height,
		Scale:  opts.Scale,
		Seed:   opts.Layout.Seed,
	})

	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "snapshot")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "snapshot")

	observability.Engine().OnSnapshotStart(ctx, opts.Format)
	start := time.Now()
	artifact, err := r.render(ctx, opts, result)
	observability.Engine().OnSnapshotComplete(ctx, opts.Format, len(artifact), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.cache.Set(ctx, key, artifact, DefaultCacheTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "snapshot", len(artifact))
	}
	return artifact, false, nil
}

func (r *Runner) render(ctx context.Context, opts Options, result *Result) ([]byte, error) {
	frame := render.Frame{Scale: opts.Scale}

	switch opts.Format {
	case FormatSVG:
		cv := render.NewSVGCanvas(opts.Width, opts.Height)
		render.Snapshot(centered(cv, opts.Width, opts.Height), result.Model, frame, result.Positions.Get)
		return cv.Bytes(), nil

	case FormatDOT:
		return []byte(render.ToDOT(result.Model)), nil

	case FormatPNG:
		return render.RenderPNG(ctx, render.ToDOT(result.Model))

	case FormatJSON:
		return json.MarshalIndent(struct {
			Summary view.Summary        `json:"summary"`
			Nodes   []view.AnnotatedNode `json:"nodes"`
			Edges   []graph.Edge         `json:"edges"`
		}{result.Model.Summarize(), result.Model.Nodes, result.Model.Edges}, "", "  ")

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", opts.Format)
	}
}

// centered shifts the simulation's origin-centered coordinates into the
// middle of the output frame.
func centered(cv render.Canvas, width, height float64) render.Canvas {
	return &offsetCanvas{inner: cv, dx: width / 2, dy: height / 2}
}

type offsetCanvas struct {
	inner  render.Canvas
	dx, dy float64
}

func (c *offsetCanvas) FillCircle(x, y, r float64, fill render.Fill) {
	c.inner.FillCircle(x+c.dx, y+c.dy, r, fill)
}

func (c *offsetCanvas) StrokeCircle(x, y, r float64, stroke render.Stroke) {
	c.inner.StrokeCircle(x+c.dx, y+c.dy, r, stroke)
}

func (c *offsetCanvas) Line(x1, y1, x2, y2 float64, stroke render.Stroke) {
	c.inner.Line(x1+c.dx, y1+c.dy, x2+c.dx, y2+c.dy, stroke)
}

func (c *offsetCanvas) FillText(text string, x, y, size float64, fill render.Fill) {
	c.inner.FillText(text, x+c.dx, y+c.dy, size, fill)
}
