package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkessler/graphlens/pkg/graph"
	"github.com/mkessler/graphlens/pkg/layout"
)

func tuiFixture() tuiModel {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "proj", Type: graph.EntityProject, Name: "Payments", Cluster: "c1"},
			{ID: "t1", Type: graph.EntityTask, Name: "Invoice API", Cluster: "c1",
				Meta: map[string]any{"status": "active", "due_date": "2026-09-12"}},
			{ID: "t2", Type: graph.EntityTask, Name: "Rounding fix"},
		},
		Edges: []graph.Edge{
			{Source: "proj", Target: "t1"},
			{Source: "t1", Target: "t2"},
		},
		Clusters: []graph.Cluster{{ID: "c1", MemberCount: 2}},
	}
	cfg := layout.DefaultConfig()
	cfg.WarmupTicks = 5
	cfg.CooldownTicks = 5
	return newTUI(g, cfg)
}

func key(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRowsForegroundFirst(t *testing.T) {
	m := tuiFixture()
	rows := m.rows()

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	// The project outranks both tasks, so it heads the list.
	if rows[0].ID != "proj" {
		t.Errorf("top row = %s, want proj", rows[0].ID)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Priority < rows[i].Priority {
			t.Fatal("rows should descend by priority")
		}
	}
}

func TestZoomKeysClamped(t *testing.T) {
	m := tuiFixture()

	for i := 0; i < 50; i++ {
		next, _ := m.Update(key("+"))
		m = next.(tuiModel)
	}
	if m.zoom > maxZoom {
		t.Errorf("zoom %f exceeds max %f", m.zoom, maxZoom)
	}

	for i := 0; i < 100; i++ {
		next, _ := m.Update(key("-"))
		m = next.(tuiModel)
	}
	if m.zoom < minZoom {
		t.Errorf("zoom %f below min %f", m.zoom, minZoom)
	}

	next, _ := m.Update(key("r"))
	m = next.(tuiModel)
	if m.zoom != 1.0 {
		t.Errorf("reset zoom = %f, want 1.0", m.zoom)
	}
}

func TestSearchFlow(t *testing.T) {
	m := tuiFixture()

	next, _ := m.Update(key("/"))
	m = next.(tuiModel)
	if !m.searching {
		t.Fatal("/ should enter search mode")
	}

	for _, r := range "invoice" {
		next, _ = m.Update(key(string(r)))
		m = next.(tuiModel)
	}
	next, _ = m.Update(key("enter"))
	m = next.(tuiModel)

	if m.searching {
		t.Error("enter should leave search mode")
	}
	if m.state.Model().MatchCount != 1 {
		t.Errorf("MatchCount = %d, want 1", m.state.Model().MatchCount)
	}

	next, _ = m.Update(key("esc"))
	m = next.(tuiModel)
	if m.state.Model().MatchCount != 0 {
		t.Error("esc should clear the search")
	}
}

func TestSelectionToggle(t *testing.T) {
	m := tuiFixture()

	next, _ := m.Update(key("enter"))
	m = next.(tuiModel)
	if selected, _ := m.state.Frame(); selected != "proj" {
		t.Errorf("selected = %q, want cursor node proj", selected)
	}

	next, _ = m.Update(key("enter"))
	m = next.(tuiModel)
	if selected, _ := m.state.Frame(); selected != "" {
		t.Error("second enter should deselect")
	}
}

func TestClusterCycle(t *testing.T) {
	m := tuiFixture()

	next, _ := m.Update(key("c"))
	m = next.(tuiModel)
	// c1 members plus the one-hop neighbor t2.
	if got := len(m.state.Model().Nodes); got != 3 {
		t.Errorf("cluster view nodes = %d, want 3", got)
	}
	if m.state.Filter().Cluster != "c1" {
		t.Errorf("cluster = %q, want c1", m.state.Filter().Cluster)
	}

	next, _ = m.Update(key("c"))
	m = next.(tuiModel)
	if m.state.Filter().Cluster != "" {
		t.Error("cycling past the last cluster should clear the filter")
	}
}

func TestRowMetadataShown(t *testing.T) {
	m := tuiFixture()
	out := m.View()
	if !strings.Contains(out, "[active due 2026-09-12]") {
		t.Errorf("typed metadata missing from rows:\n%s", out)
	}
}

func TestViewRendersWithoutSize(t *testing.T) {
	m := tuiFixture()
	out := m.View()
	if !strings.Contains(out, "graphlens") {
		t.Error("header missing")
	}
	if !strings.Contains(out, "3 nodes") {
		t.Errorf("summary missing from view:\n%s", out)
	}
}
