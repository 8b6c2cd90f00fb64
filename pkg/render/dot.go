package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/graph"
)

// Node and edge colors. In-cycle red overrides the type color.
const (
	processColor  = "#2563eb"
	resourceColor = "#10b981"
	cycleColor    = "#ef4444"
)

// ToDOT converts a graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
//
// Output follows the graph's insertion order, so the same graph always
// produces the same DOT text.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fontname=\"Helvetica\", fontsize=12, fontcolor=white];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links() {
		attrs := fmtLinkAttrs(l)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", l.Source, l.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.Source, l.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *graph.Node, detailed bool) string {
	label := n.Label()
	if !detailed {
		return label
	}

	var parts []string
	switch n.Type {
	case graph.NodeProcess:
		parts = append(parts, fmt.Sprintf("pid: %d", n.PID))
	case graph.NodeResource:
		parts = append(parts, fmt.Sprintf("total: %d", n.Total))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Extra)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Extra[k]))
	}

	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}

	shape, color := "ellipse", processColor
	if n.Type == graph.NodeResource {
		shape, color = "box", resourceColor
	}
	if n.IsInCycle() {
		color = cycleColor
	}

	attrs = append(attrs, "shape="+shape, fmt.Sprintf("fillcolor=%q", color))
	if n.IsInCycle() {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func fmtLinkAttrs(l graph.Link) []string {
	var attrs []string
	switch l.Type {
	case graph.LinkRequest:
		attrs = append(attrs, "style=dashed", fmt.Sprintf("color=%q", cycleColor))
	case graph.LinkWaitFor:
		attrs = append(attrs, "arrowhead=vee")
	}
	if l.Weight > 1 {
		attrs = append(attrs, fmt.Sprintf("label=\"%d\"", l.Weight))
	}
	return attrs
}
