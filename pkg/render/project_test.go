package render

import (
	"testing"

	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/layout"
)

func forkGraph() layout.Graph {
	return layout.Compute([]commit.Commit{
		{Hash: "d", Parents: []string{"b", "c"}, IsHead: true, Branches: []string{"main"}},
		{Hash: "c", Parents: []string{"a"}, Branches: []string{"feature"}},
		{Hash: "b", Parents: []string{"a"}},
		{Hash: "a", Tags: []string{"v1.0"}},
	})
}

func TestProjectCoordinates(t *testing.T) {
	g := forkGraph()
	geo := Geometry{BaseOffset: 10, LaneSpacing: 20, RowSpacing: 30, NodeRadius: 5, LabelStep: 12}

	dl := Project(g, nil, 1.0, geo)

	if len(dl.Nodes) != 4 {
		t.Fatalf("expected 4 node commands, got %d", len(dl.Nodes))
	}

	// Row 1 (hash c) sits on lane 1: x = 10 + 1*20, y = 10 + 1*30.
	n := dl.Nodes[1]
	if n.Hash != "c" {
		t.Fatalf("node 1 = %q, want c", n.Hash)
	}
	if n.X != 30 || n.Y != 40 {
		t.Errorf("node c at (%v, %v), want (30, 40)", n.X, n.Y)
	}
}

func TestProjectZoomScalesSpacingFromBaseOffset(t *testing.T) {
	g := forkGraph()
	geo := Geometry{BaseOffset: 10, LaneSpacing: 20, RowSpacing: 30, NodeRadius: 5, LabelStep: 12}

	dl := Project(g, nil, 2.0, geo)

	// Zoom scales lane and row spacing but not the base offset:
	// x = 10 + 1*20*2, y = 10 + 1*30*2.
	n := dl.Nodes[1]
	if n.X != 50 || n.Y != 70 {
		t.Errorf("node c at zoom 2 at (%v, %v), want (50, 70)", n.X, n.Y)
	}
	if n.Radius != 10 {
		t.Errorf("radius at zoom 2 = %v, want 10", n.Radius)
	}
}

func TestProjectShapesAndRings(t *testing.T) {
	g := forkGraph()
	dl := Project(g, nil, 1.0, DefaultGeometry)

	byHash := make(map[string]NodeCommand)
	for _, n := range dl.Nodes {
		byHash[n.Hash] = n
	}

	if byHash["d"].Shape != ShapeDiamond {
		t.Errorf("merge commit d should be a diamond, got %q", byHash["d"].Shape)
	}
	if byHash["b"].Shape != ShapeCircle {
		t.Errorf("plain commit b should be a circle, got %q", byHash["b"].Shape)
	}
	if !byHash["d"].Ring || !byHash["a"].Ring {
		t.Error("commits with refs should carry a ring")
	}
	if byHash["b"].Ring {
		t.Error("commit b has no refs and should not carry a ring")
	}
	if !byHash["d"].Head {
		t.Error("commit d is HEAD")
	}
}

func TestProjectEdgesBeforeNodes(t *testing.T) {
	g := forkGraph()
	colors := layout.BranchColors(g.Commits(), nil)
	dl := Project(g, colors, 1.0, DefaultGeometry)

	if len(dl.Edges) != len(g.Edges) {
		t.Fatalf("expected %d edge commands, got %d", len(g.Edges), len(dl.Edges))
	}

	var curved, straight int
	for _, e := range dl.Edges {
		if e.Curved {
			curved++
			if e.C1X == 0 && e.C1Y == 0 && e.C2X == 0 && e.C2Y == 0 {
				t.Error("curved edge has unset control points")
			}
		} else {
			straight++
		}
	}
	if curved != 2 || straight != 2 {
		t.Errorf("curved/straight = %d/%d, want 2/2", curved, straight)
	}
}

func TestProjectLabelStack(t *testing.T) {
	g := layout.Compute([]commit.Commit{
		{Hash: "a", Branches: []string{"main", "dev"}, Tags: []string{"v1.0"}},
	})
	geo := Geometry{BaseOffset: 10, LaneSpacing: 20, RowSpacing: 30, NodeRadius: 5, LabelStep: 12}

	dl := Project(g, nil, 1.0, geo)
	if len(dl.Labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(dl.Labels))
	}

	// Levels climb upward: each label sits LabelStep higher than the last.
	if dl.Labels[0].Y-dl.Labels[1].Y != 12 {
		t.Errorf("label spacing = %v, want 12", dl.Labels[0].Y-dl.Labels[1].Y)
	}
	if !dl.Labels[2].Tag {
		t.Error("third label should be the tag")
	}
	if dl.Labels[0].Tag {
		t.Error("first label is a branch, not a tag")
	}
}

func TestProjectEmptyGraph(t *testing.T) {
	dl := Project(layout.Graph{}, nil, 1.0, DefaultGeometry)

	if len(dl.Nodes) != 0 || len(dl.Edges) != 0 || len(dl.Labels) != 0 {
		t.Errorf("empty graph should produce no commands, got %+v", dl)
	}
	if dl.Width <= 0 || dl.Height <= 0 {
		t.Errorf("empty canvas should keep positive dimensions, got %vx%v", dl.Width, dl.Height)
	}
}

func TestProjectZeroGeometryFallsBack(t *testing.T) {
	g := forkGraph()
	dl := Project(g, nil, 1.0, Geometry{})

	want := DefaultGeometry.BaseOffset
	if dl.Nodes[0].X != want {
		t.Errorf("lane 0 x = %v, want DefaultGeometry offset %v", dl.Nodes[0].X, want)
	}
}
