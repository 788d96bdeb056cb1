package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkessler/graphlens/pkg/errors"
	"github.com/mkessler/graphlens/pkg/graph"
	"github.com/mkessler/graphlens/pkg/pipeline"
	"github.com/mkessler/graphlens/pkg/source"
	"github.com/mkessler/graphlens/pkg/source/mongo"
)

// fileFetcher serves a graph from a local JSON export instead of the provider
// API. Query bounds are ignored; the file is taken as-is.
type fileFetcher struct {
	path string
}

func (f fileFetcher) Fetch(ctx context.Context, q source.Query) (graph.Graph, error) {
	return graph.ReadFile(f.path)
}

// snapshotRecord packages a pipeline result and the filter state that
// produced it for the snapshot store.
func snapshotRecord(opts pipeline.Options, result *pipeline.Result) mongo.Snapshot {
	return mongo.Snapshot{
		Cluster: opts.Cluster,
		Search:  opts.Search,
		Types:   opts.Types,
		Graph:   result.Graph,
		SVG:     result.Artifact,
	}
}

// newSnapshotCmd creates the snapshot command, which runs the full pipeline
// once and writes the rendered artifact to a file or stdout.
func newSnapshotCmd() *cobra.Command {
	var (
		configPath string
		sourceURL  string
		inputPath  string
		outPath    string

		cluster  string
		search   string
		types    []string
		project  string
		maxNodes int
		maxEdges int

		format  string
		width   float64
		height  float64
		scale   float64
		seed    int64

		refresh bool
		noCache bool
		persist bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a graph view to SVG, PNG, DOT or JSON",
		Long: `Snapshot fetches a graph (or reads a local export), builds the annotated
view-model for the given cluster, search and type filters, warms up the
force layout, and renders a single frame.

Examples:
  graphlens snapshot --source https://backend.local --out graph.svg
  graphlens snapshot --input export.json --cluster c42 --format png --out c42.png
  graphlens snapshot --source https://backend.local --search auth --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if sourceURL == "" {
				sourceURL = cfg.Source
			}

			var fetcher pipeline.Fetcher
			switch {
			case inputPath != "":
				fetcher = fileFetcher{path: inputPath}
			case sourceURL != "":
				fetcher = source.New(sourceURL)
			default:
				return errors.New(errors.ErrCodeInvalidInput,
					"no graph source: pass --source, --input, or set source in the config file")
			}

			c, err := openCache(ctx, cfg.Cache, noCache)
			if err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "open cache")
			}
			defer c.Close()

			layoutCfg := cfg.Layout.WithDefaults()
			if seed != 0 {
				layoutCfg.Seed = seed
			}

			opts := pipeline.Options{
				Source:   sourceURL,
				MaxNodes: maxNodes,
				MaxEdges: maxEdges,
				Project:  project,
				Refresh:  refresh,
				Cluster:  cluster,
				Search:   search,
				Types:    types,
				Layout:   layoutCfg,
				Format:   format,
				Width:    width,
				Height:   height,
				Scale:    scale,
				Logger:   logger,
			}

			prog := newProgress(logger)
			runner := pipeline.NewRunner(fetcher, c, logger)
			result, err := runner.Execute(ctx, opts)
			if err != nil {
				return err
			}

			logger.Debug("pipeline complete",
				"nodes", result.Stats.NodeCount,
				"edges", result.Stats.EdgeCount,
				"matches", result.Stats.MatchCount,
				"graph_cached", result.CacheInfo.GraphHit,
				"artifact_cached", result.CacheInfo.ArtifactHit)

			if persist {
				if cfg.Mongo.URI == "" {
					return errors.New(errors.ErrCodeInvalidConfig,
						"--save requires a [mongo] section in the config file")
				}
				store, err := mongo.NewStore(ctx, cfg.Mongo)
				if err != nil {
					return errors.Wrap(errors.ErrCodeStorage, err, "connect snapshot store")
				}
				defer store.Close(ctx)
				id, err := store.Save(ctx, snapshotRecord(opts, result))
				if err != nil {
					return errors.Wrap(errors.ErrCodeStorage, err, "save snapshot")
				}
				logger.Info("snapshot saved", "id", id)
			}

			if outPath == "" || outPath == "-" {
				if _, err := os.Stdout.Write(result.Artifact); err != nil {
					return err
				}
			} else {
				if err := os.WriteFile(outPath, result.Artifact, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
			}

			target := outPath
			if target == "" || target == "-" {
				target = "stdout"
			}
			prog.done(fmt.Sprintf("Rendered %s snapshot to %s", strings.ToUpper(format), target))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/graphlens/graphlens.toml)")
	cmd.Flags().StringVar(&sourceURL, "source", "", "data provider base URL")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "read graph from a local JSON export instead of fetching")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	cmd.Flags().StringVar(&cluster, "cluster", "", "restrict the view to one cluster and its neighbors")
	cmd.Flags().StringVar(&search, "search", "", "highlight nodes matching this term")
	cmd.Flags().StringSliceVar(&types, "types", nil, "restrict to entity types (task,project,pattern,document,source)")
	cmd.Flags().StringVar(&project, "project", "", "fetch only one project's subgraph")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "node budget for the fetch (0 = provider default)")
	cmd.Flags().IntVar(&maxEdges, "max-edges", 0, "edge budget for the fetch (0 = provider default)")

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: svg, png, dot, json")
	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "frame width in pixels")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "frame height in pixels")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "zoom level of the snapshot frame")
	cmd.Flags().Int64Var(&seed, "seed", 0, "layout seed (0 = config default)")

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the graph cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().BoolVar(&persist, "save", false, "persist the snapshot to the configured MongoDB store")

	return cmd
}
