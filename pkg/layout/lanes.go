package layout

import "github.com/gitlanes/gitlanes/pkg/commit"

// Node is a positioned commit: the owning commit plus its lane assignment.
//
// Row is the commit's index in the input list (0 = newest); the engine never
// reorders. Column is the assigned lane, always >= 0. Rows form a bijection
// onto [0, n) for an input of n unique commits.
type Node struct {
	Commit commit.Commit `json:"commit" bson:"commit"`
	Column int           `json:"column" bson:"column"`
	Row    int           `json:"row" bson:"row"`
}

// AssignLanes places each commit on a lane.
//
// The walk runs oldest to newest so that a parent's lane exists before its
// children compete for it. The first child to reach a placed parent takes
// over the parent's lane (the branch line continues); every other child
// scans from column 0 for the first free lane. Merge commits follow only
// their first parent - the remaining parent links become curved edges and
// never influence the merge commit's own column.
//
// The occupancy table is local to one invocation: column index -> hash of
// the commit currently owning that lane. Lanes are never reclaimed within a
// pass; a short-lived branch keeps its column for the rest of the layout.
// This matches simple git-graph tools and keeps assignment deterministic.
//
// A parent hash absent from the list (dangling reference) simply takes no
// part in inheritance. Commits are expected to be pre-normalized via
// commit.Normalize; duplicates that survive anyway keep first-occurrence
// semantics because later rows cannot steal an owned lane. The empty list
// yields an empty result.
func AssignLanes(commits []commit.Commit) []Node {
	if len(commits) == 0 {
		return nil
	}

	nodes := make([]Node, len(commits))
	byHash := make(map[string]int, len(commits)) // hash -> row, processed so far
	var lanes []string                           // column -> owning hash

	// claim returns the first free column at or after 0.
	claim := func(hash string) int {
		for col, owner := range lanes {
			if owner == "" {
				lanes[col] = hash
				return col
			}
		}
		lanes = append(lanes, hash)
		return len(lanes) - 1
	}

	for row := len(commits) - 1; row >= 0; row-- {
		c := commits[row]
		col := -1

		// Inherit the first parent's lane if that parent has been placed
		// and still owns it (no sibling took it over yet).
		if len(c.Parents) > 0 {
			if prow, ok := byHash[c.Parents[0]]; ok {
				pcol := nodes[prow].Column
				if pcol < len(lanes) && lanes[pcol] == c.Parents[0] {
					lanes[pcol] = c.Hash
					col = pcol
				}
			}
		}
		if col < 0 {
			col = claim(c.Hash)
		}

		nodes[row] = Node{Commit: c, Column: col, Row: row}
		byHash[c.Hash] = row
	}

	return nodes
}

// MaxColumn returns the highest assigned column, or -1 for an empty layout.
func MaxColumn(nodes []Node) int {
	max := -1
	for _, n := range nodes {
		if n.Column > max {
			max = n.Column
		}
	}
	return max
}
