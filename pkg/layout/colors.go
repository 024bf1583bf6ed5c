package layout

import "github.com/gitlanes/gitlanes/pkg/commit"

// DefaultPalette is the fixed lane color cycle. Branch N (in first-seen
// order) receives entry N modulo the palette size. The first entry doubles
// as the default node fill for commits with no refs.
var DefaultPalette = []string{
	"#4e79a7", // blue
	"#f28e2b", // orange
	"#59a14f", // green
	"#e15759", // red
	"#b07aa1", // purple
	"#76b7b2", // teal
	"#edc948", // yellow
	"#ff9da7", // pink
}

// ColorTable maps branch names to palette colors. Assignment happens once
// per distinct branch name in first-seen order and is stable across
// repeated resolution of the same branch sequence.
type ColorTable struct {
	palette []string
	colors  map[string]string
	order   []string
}

// ResolveColors assigns palette colors to branch names in first-seen order.
// A nil or empty palette falls back to DefaultPalette. Duplicate names keep
// their original assignment.
func ResolveColors(branches []string, palette []string) *ColorTable {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	t := &ColorTable{
		palette: palette,
		colors:  make(map[string]string, len(branches)),
	}
	for _, b := range branches {
		if _, ok := t.colors[b]; ok {
			continue
		}
		t.colors[b] = palette[len(t.order)%len(palette)]
		t.order = append(t.order, b)
	}
	return t
}

// BranchColors walks a commit list and resolves colors for every branch
// name in the order the commits present them.
func BranchColors(commits []commit.Commit, palette []string) *ColorTable {
	var branches []string
	for _, c := range commits {
		branches = append(branches, c.Branches...)
	}
	return ResolveColors(branches, palette)
}

// Color returns the color assigned to a branch, or the default color when
// the branch was never seen.
func (t *ColorTable) Color(branch string) string {
	if c, ok := t.colors[branch]; ok {
		return c
	}
	return t.Default()
}

// Default returns the fallback fill color (first palette entry).
func (t *ColorTable) Default() string { return t.palette[0] }

// Branches returns the branch names in assignment order.
func (t *ColorTable) Branches() []string { return t.order }

// NodeFill picks the fill color for a commit: the color of its first branch
// ref, or the default when the commit carries no branch.
func (t *ColorTable) NodeFill(c commit.Commit) string {
	if len(c.Branches) > 0 {
		return t.Color(c.Branches[0])
	}
	return t.Default()
}

// LabelKind distinguishes the ref types stacked next to a commit.
type LabelKind string

const (
	LabelBranch LabelKind = "branch"
	LabelTag    LabelKind = "tag"
)

// Label is one ref name to draw next to a commit. Level counts upward from
// the node: level 0 sits closest, each further level one fixed spacing step
// higher.
type Label struct {
	Text  string    `json:"text" bson:"text"`
	Kind  LabelKind `json:"kind" bson:"kind"`
	Level int       `json:"level" bson:"level"`
}

// StackLabels computes the vertical label stack for one commit: branches
// first, then tags, each a level further up. Pure function of the two ref
// sets; layout state plays no part.
func StackLabels(branches, tags []string) []Label {
	if len(branches) == 0 && len(tags) == 0 {
		return nil
	}
	labels := make([]Label, 0, len(branches)+len(tags))
	level := 0
	for _, b := range branches {
		labels = append(labels, Label{Text: b, Kind: LabelBranch, Level: level})
		level++
	}
	for _, t := range tags {
		labels = append(labels, Label{Text: t, Kind: LabelTag, Level: level})
		level++
	}
	return labels
}
