// Package dot exports the commit graph in Graphviz DOT format and renders
// it through Graphviz as an alternate node-link view.
//
// Unlike the lane projection, this view lets Graphviz choose positions; it
// is useful for sanity-checking the DAG structure and for sharing a commit
// topology outside the tool.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/gitlanes/gitlanes/pkg/layout"
)

// ToDOT converts a computed layout to Graphviz DOT. Merge commits render as
// diamonds, ref-carrying commits get their branch labels appended, and
// edges follow the child -> parent direction.
func ToDOT(g layout.Graph, colors *layout.ColorTable) string {
	if colors == nil {
		colors = layout.ResolveColors(nil, nil)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph commits {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=10, width=0.3, fixedsize=false];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		c := n.Commit
		attrs := []string{
			fmt.Sprintf("label=%q", nodeLabel(n)),
			fmt.Sprintf("fillcolor=%q", colors.NodeFill(c)),
			"fontcolor=white",
		}
		if c.IsMerge() {
			attrs = append(attrs, "shape=diamond")
		}
		if c.IsHead {
			attrs = append(attrs, "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.Hash, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.FromHash, e.ToHash)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n layout.Node) string {
	c := n.Commit
	label := shortHash(c.Hash)
	if len(c.Branches) > 0 {
		label += "\n" + strings.Join(c.Branches, ", ")
	}
	if len(c.Tags) > 0 {
		label += "\n" + strings.Join(c.Tags, ", ")
	}
	return label
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
