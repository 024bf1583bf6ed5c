package layout

import "github.com/gitlanes/gitlanes/pkg/commit"

// Graph bundles the nodes and edges of one computed layout pass.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Compute runs the full layout over a raw commit list: normalize, assign
// lanes, build edges. It is the single entry point most callers need; the
// individual stages stay exported for tests and incremental callers.
func Compute(records []commit.Commit) Graph {
	commits := commit.Normalize(records)
	nodes := AssignLanes(commits)
	return Graph{Nodes: nodes, Edges: BuildEdges(nodes)}
}

// Commits returns the normalized commit list backing the layout, in row
// order.
func (g Graph) Commits() []commit.Commit {
	out := make([]commit.Commit, len(g.Nodes))
	for i, n := range g.Nodes {
		out[i] = n.Commit
	}
	return out
}

// Lanes returns the number of distinct lanes in use.
func (g Graph) Lanes() int { return MaxColumn(g.Nodes) + 1 }
