package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mkessler/graphlens/pkg/errors"
	"github.com/mkessler/graphlens/pkg/graph"
	"github.com/mkessler/graphlens/pkg/source"
)

// newExploreCmd creates the explore command, which opens the interactive
// terminal explorer.
func newExploreCmd() *cobra.Command {
	var (
		configPath string
		sourceURL  string
		inputPath  string
		project    string
		maxNodes   int
		maxEdges   int
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore a graph interactively in the terminal",
		Long: `Explore opens an interactive terminal session over a graph. Nodes are
listed foreground-first by render priority; search, cluster and type
filters rebuild the view live, and zooming changes which labels disclose.

Keys:
  up/down, j/k   move the cursor (hovers the node under it)
  enter, space   select / deselect the cursor node
  /              type a search term, enter to apply, esc to clear
  c              cycle through cluster filters
  t              cycle through entity-type filters
  +/-            zoom in / out
  r              reset zoom
  q              quit`,
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

			var g graph.Graph
			switch {
			case inputPath != "":
				g, err = graph.ReadFile(inputPath)
				if err != nil {
					return err
				}
			case sourceURL != "":
				g, err = source.New(sourceURL).Fetch(ctx, source.Query{
					MaxNodes: maxNodes,
					MaxEdges: maxEdges,
					Project:  project,
				})
				if err != nil {
					return err
				}
			default:
				return errors.New(errors.ErrCodeInvalidInput,
					"no graph source: pass --source, --input, or set source in the config file")
			}

			logger.Debug("graph loaded", "nodes", len(g.Nodes), "edges", len(g.Edges))

			program := tea.NewProgram(newTUI(g, cfg.Layout.WithDefaults()), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/graphlens/graphlens.toml)")
	cmd.Flags().StringVar(&sourceURL, "source", "", "data provider base URL")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "read graph from a local JSON export instead of fetching")
	cmd.Flags().StringVar(&project, "project", "", "fetch only one project's subgraph")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "node budget for the fetch (0 = provider default)")
	cmd.Flags().IntVar(&maxEdges, "max-edges", 0, "edge budget for the fetch (0 = provider default)")

	return cmd
}
