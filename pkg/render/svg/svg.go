// Package svg renders a draw-command list as standalone SVG markup.
//
// The sink is intentionally dumb: it walks the DrawList in order and
// translates each command to one SVG element. Everything interesting
// (positions, colors, curve control points) was decided by the projection.
package svg

import (
	"bytes"
	"fmt"

	"github.com/gitlanes/gitlanes/pkg/render"
)

const background = "#ffffff"

// Render translates a DrawList to SVG bytes.
func Render(dl render.DrawList) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		dl.Width, dl.Height, dl.Width, dl.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", background)

	for _, e := range dl.Edges {
		writeEdge(&buf, e)
	}
	for _, n := range dl.Nodes {
		writeNode(&buf, n)
	}
	for _, l := range dl.Labels {
		writeLabel(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeEdge(buf *bytes.Buffer, e render.EdgeCommand) {
	if e.Curved {
		fmt.Fprintf(buf, `  <path d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
			e.X1, e.Y1, e.C1X, e.C1Y, e.C2X, e.C2Y, e.X2, e.Y2, e.Color)
		return
	}
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
		e.X1, e.Y1, e.X2, e.Y2, e.Color)
}

func writeNode(buf *bytes.Buffer, n render.NodeCommand) {
	if n.Ring {
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
			n.X, n.Y, n.Radius+3, n.Fill)
	}
	switch n.Shape {
	case render.ShapeDiamond:
		r := n.Radius
		fmt.Fprintf(buf, `  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" id="commit-%s"/>`+"\n",
			n.X, n.Y-r, n.X+r, n.Y, n.X, n.Y+r, n.X-r, n.Y, n.Fill, n.Hash)
	default:
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" id="commit-%s"/>`+"\n",
			n.X, n.Y, n.Radius, n.Fill, n.Hash)
	}
}

func writeLabel(buf *bytes.Buffer, l render.LabelCommand) {
	weight := "bold"
	if l.Tag {
		weight = "normal"
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="11" font-weight="%s">%s</text>`+"\n",
		l.X, l.Y, l.Color, weight, escape(l.Text))
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
