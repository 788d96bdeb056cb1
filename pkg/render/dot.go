package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mkessler/graphlens/pkg/view"
)

// =============================================================================
// DOT Export - Structural Snapshots via Graphviz
// =============================================================================

// ToDOT converts a view-model to Graphviz DOT format. This is the structural
// export path: no zoom, no disclosure, every visible node labeled. Useful for
// feeding external tooling or rendering a shareable PNG with RenderPNG.
//
// Context-only neighbor nodes render with dashed grey outlines to keep the
// cluster/context distinction visible in static output. Cluster members carry
// their cluster's wheel color as the node outline.
func ToDOT(m *view.Model) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=10];\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("\n")

	for i := range m.Nodes {
		n := &m.Nodes[i]
		attrs := []string{
			fmt.Sprintf("label=%q", n.DisplayName()),
			fmt.Sprintf("fillcolor=%q", EntityColor(n.Type)),
		}
		if n.IsNeighbor {
			attrs = append(attrs, "style=\"filled,dashed\"", "color=grey")
		} else if n.Cluster != "" {
			attrs = append(attrs, fmt.Sprintf("color=%q", ClusterColor(n.Cluster)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range m.Edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	gv := graphviz.New()
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render PNG: %w", err)
	}
	return buf.Bytes(), nil
}
