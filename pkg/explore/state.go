package explore

import (
	"context"
	"sync"
	"time"

	"github.com/mkessler/graphlens/pkg/graph"
	"github.com/mkessler/graphlens/pkg/observability"
	"github.com/mkessler/graphlens/pkg/view"
)

// State owns the interaction inputs of an exploration session - selection,
// hover, search term, cluster filter, entity-type filter - and keeps the
// current view-model generation in sync with them.
//
// Every change to the graph, the cluster filter, the search term or the type
// filter triggers a full synchronous rebuild; the previous generation is
// replaced wholesale, never patched. Selection and hover are frame state,
// not rebuild inputs: they change how nodes draw, not which nodes exist, so
// toggling them is cheap.
//
// State is safe for concurrent use. Renderers grab the current generation
// once per frame with Model and draw it without further locking, since
// generations are immutable.
type State struct {
	mu sync.RWMutex

	graph    graph.Graph
	selected string
	hovered  string
	search   string
	cluster  string
	types    []string

	model *view.Model
}

// NewState creates a session around an initial (possibly empty) graph.
func NewState(g graph.Graph) *State {
	s := &State{graph: g}
	s.rebuild(context.Background())
	return s
}

// SetGraph replaces the raw graph, e.g. after a data refresh, and rebuilds.
func (s *State) SetGraph(ctx context.Context, g graph.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = g
	s.rebuild(ctx)
}

// SetSearch updates the search term and rebuilds if it changed.
func (s *State) SetSearch(ctx context.Context, term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.search == term {
		return
	}
	s.search = term
	s.rebuild(ctx)
}

// SetCluster updates the active cluster filter ("" clears it) and rebuilds
// if it changed.
func (s *State) SetCluster(ctx context.Context, clusterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cluster == clusterID {
		return
	}
	s.cluster = clusterID
	s.rebuild(ctx)
}

// SetTypes updates the entity-type filter (nil clears it) and rebuilds.
func (s *State) SetTypes(ctx context.Context, types []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = types
	s.rebuild(ctx)
}

// ToggleSelect selects id, or clears the selection if id was already
// selected. Returns the now-selected ID ("" when cleared). No rebuild:
// selection is frame state.
func (s *State) ToggleSelect(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == id {
		s.selected = ""
	} else {
		s.selected = id
	}
	return s.selected
}

// Hover updates the hovered node ID ("" when the pointer leaves all nodes).
func (s *State) Hover(id string) {
	s.mu.Lock()
	s.hovered = id
	s.mu.Unlock()
}

// Model returns the current view-model generation. The returned model is
// immutable; it stays valid after later rebuilds replace it.
func (s *State) Model() *view.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Frame returns the current frame interaction state: selected and hovered
// node IDs. The caller supplies the zoom scale.
func (s *State) Frame() (selected, hovered string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.hovered
}

// Filter returns the current rebuild inputs.
func (s *State) Filter() view.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Filter{Cluster: s.cluster, Search: s.search, Types: s.types}
}

// Graph returns the current raw graph.
func (s *State) Graph() graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// ClusterLabels synthesizes display labels for every cluster in the graph.
func (s *State) ClusterLabels() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	labels := make(map[string]string, len(s.graph.Clusters))
	for _, c := range s.graph.Clusters {
		labels[c.ID] = view.ClusterLabel(c, &s.graph)
	}
	return labels
}

// rebuild recomputes the view-model generation. Callers hold the write lock,
// so a renderer can never observe a partially built generation.
func (s *State) rebuild(ctx context.Context) {
	observability.Engine().OnRebuildStart(ctx, s.cluster, s.search)
	start := time.Now()

	s.model = view.Build(&s.graph, view.Filter{
		Cluster: s.cluster,
		Search:  s.search,
		Types:   s.types,
	})

	// A vanished selection (filtered out) is cleared so the renderer never
	// highlights an invisible node.
	if s.selected != "" && !s.visible(s.selected) {
		s.selected = ""
	}

	observability.Engine().OnRebuildComplete(ctx,
		len(s.model.Nodes), len(s.model.Edges), s.model.MatchCount, time.Since(start))
}

func (s *State) visible(id string) bool {
	for i := range s.model.Nodes {
		if s.model.Nodes[i].ID == id {
			return true
		}
	}
	return false
}
