// Package render projects a computed commit-graph layout into concrete
// coordinates and an abstract draw-command list.
//
// The projection is a pure function over (layout, colors, zoom) and knows
// nothing about any drawing API. Sinks in the subpackages translate the
// DrawList to an actual surface: render/svg emits SVG markup, render/dot
// exports the graph through Graphviz. Keeping the split here means the
// engine can be re-targeted to any surface with a thin adapter.
package render

import (
	"github.com/gitlanes/gitlanes/pkg/layout"
)

// Geometry controls the coordinate projection. The zero value is unusable;
// use DefaultGeometry as a starting point.
type Geometry struct {
	BaseOffset  float64 // padding before the first lane and row
	LaneSpacing float64 // horizontal distance between lanes at zoom 1
	RowSpacing  float64 // vertical distance between rows at zoom 1
	NodeRadius  float64 // node radius at zoom 1
	LabelStep   float64 // vertical distance between stacked labels at zoom 1
}

// DefaultGeometry is the projection used when the caller supplies none.
var DefaultGeometry = Geometry{
	BaseOffset:  24,
	LaneSpacing: 28,
	RowSpacing:  36,
	NodeRadius:  6,
	LabelStep:   14,
}

// Shape selects the marker drawn for a commit node.
type Shape string

const (
	// ShapeCircle marks an ordinary commit.
	ShapeCircle Shape = "circle"
	// ShapeDiamond marks a merge commit (more than one parent).
	ShapeDiamond Shape = "diamond"
)

// NodeCommand draws one commit marker.
type NodeCommand struct {
	Hash   string  `json:"hash"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Fill   string  `json:"fill"`
	Shape  Shape   `json:"shape"`
	Ring   bool    `json:"ring"` // commit carries at least one ref
	Head   bool    `json:"head"`
}

// EdgeCommand draws one parent link: a line segment, or a cubic curve when
// the link crosses lanes.
type EdgeCommand struct {
	FromHash string  `json:"from_hash"`
	ToHash   string  `json:"to_hash"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	X2       float64 `json:"x2"`
	Y2       float64 `json:"y2"`
	Color    string  `json:"color"`
	Curved   bool    `json:"curved"`

	// Cubic control points, set when Curved.
	C1X      float64 `json:"c1x,omitempty"`
	C1Y      float64 `json:"c1y,omitempty"`
	C2X      float64 `json:"c2x,omitempty"`
	C2Y      float64 `json:"c2y,omitempty"`
}

// LabelCommand draws one ref label next to a commit.
type LabelCommand struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Tag   bool    `json:"tag"` // tag ref, drawn dimmer than branches
}

// DrawList is the renderer-agnostic output of one projection pass.
type DrawList struct {
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Nodes  []NodeCommand  `json:"nodes"`
	Edges  []EdgeCommand  `json:"edges"`
	Labels []LabelCommand `json:"labels"`
}

// Project converts lanes, rows and zoom into concrete coordinates.
//
// x = BaseOffset + column*LaneSpacing*zoom, y = BaseOffset + row*RowSpacing*zoom.
// The function performs no I/O, allocates only its output, and is safe to
// call on every interaction frame. Zoom is applied as given; clamping is
// the view state's job.
func Project(g layout.Graph, colors *layout.ColorTable, zoom float64, geo Geometry) DrawList {
	if geo == (Geometry{}) {
		geo = DefaultGeometry
	}
	if colors == nil {
		colors = layout.ResolveColors(nil, nil)
	}

	x := func(col float64) float64 { return geo.BaseOffset + col*geo.LaneSpacing*zoom }
	y := func(row float64) float64 { return geo.BaseOffset + row*geo.RowSpacing*zoom }

	dl := DrawList{
		Width:  x(float64(layout.MaxColumn(g.Nodes))) + geo.BaseOffset,
		Height: y(float64(len(g.Nodes)-1)) + geo.BaseOffset,
	}
	if len(g.Nodes) == 0 {
		dl.Width, dl.Height = 2*geo.BaseOffset, 2*geo.BaseOffset
	}

	// Edges first so sinks that paint in order keep nodes on top.
	for _, e := range g.Edges {
		cmd := EdgeCommand{
			FromHash: e.FromHash,
			ToHash:   e.ToHash,
			X1:       x(float64(e.FromColumn)),
			Y1:       y(float64(e.FromRow)),
			X2:       x(float64(e.ToColumn)),
			Y2:       y(float64(e.ToRow)),
			Color:    colors.NodeFill(g.Nodes[e.ToRow].Commit),
		}
		if e.Kind == layout.EdgeCurved {
			cmd.Curved = true
			cmd.C1X, cmd.C1Y = x(e.Control1.X), y(e.Control1.Y)
			cmd.C2X, cmd.C2Y = x(e.Control2.X), y(e.Control2.Y)
		}
		dl.Edges = append(dl.Edges, cmd)
	}

	for _, n := range g.Nodes {
		c := n.Commit
		cmd := NodeCommand{
			Hash:   c.Hash,
			X:      x(float64(n.Column)),
			Y:      y(float64(n.Row)),
			Radius: geo.NodeRadius * zoom,
			Fill:   colors.NodeFill(c),
			Shape:  ShapeCircle,
			Ring:   c.HasRefs(),
			Head:   c.IsHead,
		}
		if c.IsMerge() {
			cmd.Shape = ShapeDiamond
		}
		dl.Nodes = append(dl.Nodes, cmd)

		for _, lbl := range layout.StackLabels(c.Branches, c.Tags) {
			dl.Labels = append(dl.Labels, LabelCommand{
				Text:  lbl.Text,
				X:     cmd.X + (geo.NodeRadius+4)*zoom,
				Y:     cmd.Y - float64(lbl.Level)*geo.LabelStep*zoom,
				Color: colors.Color(lbl.Text),
				Tag:   lbl.Kind == layout.LabelTag,
			})
		}
	}

	return dl
}
