package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkessler/graphlens/pkg/explore"
	"github.com/mkessler/graphlens/pkg/graph"
	"github.com/mkessler/graphlens/pkg/graph/metadata"
	"github.com/mkessler/graphlens/pkg/layout"
	"github.com/mkessler/graphlens/pkg/render"
	"github.com/mkessler/graphlens/pkg/view"
)

// Zoom bounds and step for the terminal explorer.
const (
	minZoom  = 0.2
	maxZoom  = 5.0
	zoomStep = 1.25
)

// simTickInterval paces layout cooldown ticks while the simulation is hot.
const simTickInterval = 33 * time.Millisecond

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9aa5ce"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("#283457"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	neighborStyle = lipgloss.NewStyle().Faint(true)
	dimStyle      = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#565f89"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	searchStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0af68"))
)

// entityStyles colors list rows by entity type, mirroring the snapshot
// palette.
var entityStyles = map[string]lipgloss.Style{
	graph.EntityTask:     lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")),
	graph.EntityProject:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bb9af7")),
	graph.EntityPattern:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
	graph.EntityDocument: lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")),
	graph.EntitySource:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
}

// typeCycle is the order the t key steps through entity-type filters.
var typeCycle = [][]string{
	nil,
	{graph.EntityTask},
	{graph.EntityProject},
	{graph.EntityPattern},
	{graph.EntityDocument},
	{graph.EntitySource},
}

// simTickMsg advances the layout simulation one cooldown tick.
type simTickMsg struct{}

// tuiModel is the bubbletea model for the terminal explorer.
type tuiModel struct {
	state *explore.State
	sim   *layout.Simulation

	zoom   float64
	cursor int
	offset int

	searching bool
	input     string

	clusterIdx int // index into clusters, -1 = no filter
	clusters   []graph.Cluster
	labels     map[string]string
	typeIdx    int

	width  int
	height int
}

// newTUI builds the explorer over a loaded graph. The layout warm-up runs
// synchronously so the first frame already has settled geometry.
func newTUI(g graph.Graph, cfg layout.Config) tuiModel {
	state := explore.NewState(g)
	sim := layout.New(&g, layout.NewPositions(), cfg)
	sim.Warmup()

	return tuiModel{
		state:      state,
		sim:        sim,
		zoom:       1.0,
		clusterIdx: -1,
		clusters:   g.Clusters,
		labels:     state.ClusterLabels(),
	}
}

func (m tuiModel) Init() tea.Cmd {
	return simTick()
}

func simTick() tea.Cmd {
	return tea.Tick(simTickInterval, func(time.Time) tea.Msg { return simTickMsg{} })
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case simTickMsg:
		if m.sim.Done() {
			return m, nil
		}
		m.sim.Tick()
		return m, simTick()

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

// updateSearch handles keys while the search prompt is active.
func (m tuiModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.state.SetSearch(context.Background(), m.input)
		m.clampCursor()
	case tea.KeyEscape:
		m.searching = false
		m.input = ""
		m.state.SetSearch(context.Background(), "")
		m.clampCursor()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// updateKeys handles keys in normal mode.
func (m tuiModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)

	case "enter", " ":
		if n := m.cursorNode(); n != nil {
			m.state.ToggleSelect(n.ID)
		}

	case "/":
		m.searching = true
		m.input = ""

	case "esc":
		m.input = ""
		m.state.SetSearch(context.Background(), "")
		m.clampCursor()

	case "c":
		m.cycleCluster()

	case "t":
		m.typeIdx = (m.typeIdx + 1) % len(typeCycle)
		m.state.SetTypes(context.Background(), typeCycle[m.typeIdx])
		m.sim.SetGraph(m.visibleGraph())
		m.clampCursor()
		return m, simTick()

	case "+", "=":
		m.zoom = min(m.zoom*zoomStep, maxZoom)
	case "-", "_":
		m.zoom = max(m.zoom/zoomStep, minZoom)
	case "r":
		m.zoom = 1.0
	}
	return m, nil
}

// cycleCluster advances the cluster filter: all clusters in order, then back
// to unfiltered.
func (m *tuiModel) cycleCluster() {
	if len(m.clusters) == 0 {
		return
	}
	m.clusterIdx++
	if m.clusterIdx >= len(m.clusters) {
		m.clusterIdx = -1
	}

	id := ""
	if m.clusterIdx >= 0 {
		id = m.clusters[m.clusterIdx].ID
	}
	m.state.SetCluster(context.Background(), id)
	m.sim.SetGraph(m.visibleGraph())
	m.clampCursor()
}

// visibleGraph builds the subgraph the simulation should lay out: exactly
// the nodes and edges of the current view-model generation.
func (m *tuiModel) visibleGraph() *graph.Graph {
	model := m.state.Model()
	g := &graph.Graph{
		Nodes: make([]graph.Node, len(model.Nodes)),
		Edges: model.Edges,
	}
	for i := range model.Nodes {
		g.Nodes[i] = model.Nodes[i].Node
	}
	return g
}

// rows returns the node list foreground-first: the view-model sorts
// ascending by priority for painting, so the list walks it backwards.
func (m *tuiModel) rows() []*view.AnnotatedNode {
	model := m.state.Model()
	rows := make([]*view.AnnotatedNode, len(model.Nodes))
	for i := range model.Nodes {
		rows[i] = &model.Nodes[len(model.Nodes)-1-i]
	}
	return rows
}

func (m *tuiModel) cursorNode() *view.AnnotatedNode {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor]
}

func (m *tuiModel) moveCursor(d int) {
	rows := m.rows()
	if len(rows) == 0 {
		return
	}
	m.cursor += d
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	m.state.Hover(rows[m.cursor].ID)
	m.scrollToCursor()
}

func (m *tuiModel) clampCursor() {
	rows := m.rows()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(rows) > 0 {
		m.state.Hover(rows[m.cursor].ID)
	} else {
		m.state.Hover("")
	}
	m.scrollToCursor()
}

func (m *tuiModel) scrollToCursor() {
	visible := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight is the number of list rows that fit between header and footer.
func (m *tuiModel) listHeight() int {
	h := m.height - 5
	if h < 1 {
		return 10
	}
	return h
}

func (m tuiModel) View() string {
	model := m.state.Model()
	selected, hovered := m.state.Frame()
	frame := render.Frame{Selected: selected, Hovered: hovered, Scale: m.zoom}

	var b strings.Builder
	b.WriteString(m.viewHeader(model))
	b.WriteString("\n")

	rows := m.rows()
	visible := m.listHeight()
	end := m.offset + visible
	if end > len(rows) {
		end = len(rows)
	}

	for i := m.offset; i < end; i++ {
		b.WriteString(m.viewRow(rows[i], model, frame, i == m.cursor, rows[i].ID == selected))
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  no nodes match the current filters"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *tuiModel) viewHeader(model *view.Model) string {
	parts := []string{titleStyle.Render("graphlens")}

	if m.clusterIdx >= 0 && m.clusterIdx < len(m.clusters) {
		c := m.clusters[m.clusterIdx]
		chip := lipgloss.NewStyle().Foreground(lipgloss.Color(render.ClusterColor(c.ID))).Render("■")
		parts = append(parts, chip+" "+headerStyle.Render("cluster: ")+selectedStyle.Render(m.labels[c.ID]))
	}
	if m.typeIdx > 0 {
		parts = append(parts, headerStyle.Render("type: ")+selectedStyle.Render(strings.Join(typeCycle[m.typeIdx], ",")))
	}

	f := m.state.Filter()
	if m.searching {
		parts = append(parts, searchStyle.Render("/"+m.input+"▌"))
	} else if f.Search != "" {
		parts = append(parts, searchStyle.Render(fmt.Sprintf("/%s (%d matches)", f.Search, model.MatchCount)))
	}

	parts = append(parts, headerStyle.Render(fmt.Sprintf(
		"%d nodes · %d edges · zoom %.2fx", len(model.Nodes), len(model.Edges), m.zoom)))

	return strings.Join(parts, "  ")
}

// viewRow renders one node list row. Label disclosure follows the same rules
// as the graphical renderer: at the current zoom, a node whose label would
// not draw shows only its dimmed ID.
func (m *tuiModel) viewRow(n *view.AnnotatedNode, model *view.Model, frame render.Frame, atCursor, isSelected bool) string {
	marker := "  "
	if isSelected {
		marker = selectedStyle.Render("● ")
	}

	hub := " "
	if render.IsHub(n.Degree, model.MaxDegree) {
		hub = "◆"
	}

	var name string
	if render.ShowLabel(n, model.MaxDegree, frame) {
		name = render.TruncateLabel(n.DisplayName(), frame.Scale)
		style, ok := entityStyles[n.Type]
		if !ok {
			style = headerStyle
		}
		if n.IsSearchMatch {
			style = matchStyle
		}
		if n.IsNeighbor {
			style = neighborStyle
		}
		name = style.Render(name)
	} else {
		name = dimStyle.Render(n.ID)
	}

	x, y, placed := m.sim.Positions().Get(n.ID)
	pos := dimStyle.Render("        unplaced")
	if placed {
		pos = dimStyle.Render(fmt.Sprintf("(%6.0f,%6.0f)", x, y))
	}

	row := fmt.Sprintf("%s%s %-44s deg %-3d pri %-6d %s", marker, hub, name, n.Degree, n.Priority, pos)
	if tag := rowMeta(n); tag != "" {
		row += " " + tag
	}
	if atCursor {
		return cursorStyle.Render(row)
	}
	return row
}

// rowMeta renders the typed metadata fields worth a glance in the list:
// workflow status, due date, pattern confidence.
func rowMeta(n *view.AnnotatedNode) string {
	md := metadata.FromMap(n.Meta)
	var parts []string
	if md.Status != "" {
		parts = append(parts, md.Status)
	}
	if md.DueDate != "" {
		parts = append(parts, "due "+md.DueDate)
	}
	if md.Confidence > 0 {
		parts = append(parts, fmt.Sprintf("conf %.2f", md.Confidence))
	}
	if len(parts) == 0 {
		return ""
	}
	return dimStyle.Render("[" + strings.Join(parts, " ") + "]")
}

func (m *tuiModel) viewFooter() string {
	if m.searching {
		return helpStyle.Render("type to search · enter apply · esc clear")
	}
	return helpStyle.Render("j/k move · enter select · / search · c cluster · t type · +/- zoom · r reset · q quit")
}
