package svg

import (
	"strings"
	"testing"

	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/layout"
	"github.com/gitlanes/gitlanes/pkg/render"
)

func renderFixture(t *testing.T) string {
	t.Helper()
	g := layout.Compute([]commit.Commit{
		{Hash: "d", Parents: []string{"b", "c"}, IsHead: true, Branches: []string{"main"}},
		{Hash: "c", Parents: []string{"a"}, Branches: []string{"feature"}},
		{Hash: "b", Parents: []string{"a"}},
		{Hash: "a", Tags: []string{"v1.0"}},
	})
	colors := layout.BranchColors(g.Commits(), nil)
	dl := render.Project(g, colors, 1.0, render.DefaultGeometry)
	return string(Render(dl))
}

func TestRenderStructure(t *testing.T) {
	out := renderFixture(t)

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output should end with a closing svg tag")
	}

	checks := []struct{ name, substr string }{
		{"background rect", `<rect width="100%" height="100%"`},
		{"straight edge", "<line "},
		{"curved edge", "<path d=\"M "},
		{"circle node", `id="commit-b"`},
		{"diamond node", "<polygon "},
		{"branch label", ">main</text>"},
		{"tag label", ">v1.0</text>"},
	}
	for _, c := range checks {
		if !strings.Contains(out, c.substr) {
			t.Errorf("missing %s (%q)", c.name, c.substr)
		}
	}
}

func TestRenderRingForRefCommits(t *testing.T) {
	out := renderFixture(t)

	// Ring circles have no fill; two commits carry refs.
	if got := strings.Count(out, `fill="none" stroke=`); got < 2 {
		t.Errorf("expected at least 2 ring strokes, found %d", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	out := string(Render(render.DrawList{Width: 48, Height: 48}))
	if !strings.Contains(out, `viewBox="0 0 48.0 48.0"`) {
		t.Errorf("empty draw list should still produce a canvas, got:\n%s", out)
	}
}

func TestRenderEscapesLabels(t *testing.T) {
	dl := render.DrawList{
		Width: 10, Height: 10,
		Labels: []render.LabelCommand{{Text: `fix<&>"quotes`}},
	}
	out := string(Render(dl))

	if !strings.Contains(out, "fix&lt;&amp;&gt;&quot;quotes") {
		t.Errorf("label text should be XML-escaped, got:\n%s", out)
	}
}
