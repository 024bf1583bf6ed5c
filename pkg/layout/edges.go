package layout

// EdgeKind classifies how an edge is drawn.
type EdgeKind string

const (
	// EdgeStraight connects two commits in the same lane.
	EdgeStraight EdgeKind = "straight"
	// EdgeCurved connects commits across lanes (fork or merge link).
	EdgeCurved EdgeKind = "curved"
)

// Point is a coordinate in abstract layout space: X in columns, Y in rows.
// Fractional values are valid; curve control points sit half a row away
// from their endpoint.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Edge links a commit to one of its parents.
//
// The endpoint coordinates are copied from the two nodes when the edge is
// built and are not re-resolved later. A curved edge carries two cubic
// Bézier control points pinned horizontally to the endpoint columns and
// offset vertically by half the row spacing, which yields the familiar
// S-curve without the renderer knowing anything about the layout.
type Edge struct {
	FromHash   string   `json:"from_hash" bson:"from_hash"`
	ToHash     string   `json:"to_hash" bson:"to_hash"`
	FromColumn int      `json:"from_column" bson:"from_column"`
	ToColumn   int      `json:"to_column" bson:"to_column"`
	FromRow    int      `json:"from_row" bson:"from_row"`
	ToRow      int      `json:"to_row" bson:"to_row"`
	Kind       EdgeKind `json:"kind" bson:"kind"`

	// Control points in (column, row) space; only set for curved edges.
	Control1 Point `json:"control1,omitempty" bson:"control1,omitempty"`
	Control2 Point `json:"control2,omitempty" bson:"control2,omitempty"`
}

// BuildEdges derives the parent links for a computed layout.
//
// One edge is emitted per (commit, parent) pair where both endpoints exist
// in the node set; dangling parents produce nothing. Edges appear in
// ascending source-row order, parents in their declared order within a
// commit. No further ordering is guaranteed.
func BuildEdges(nodes []Node) []Edge {
	if len(nodes) == 0 {
		return nil
	}

	rows := make(map[string]int, len(nodes))
	for _, n := range nodes {
		rows[n.Commit.Hash] = n.Row
	}

	var edges []Edge
	for _, n := range nodes {
		for _, parent := range n.Commit.Parents {
			prow, ok := rows[parent]
			if !ok {
				continue // dangling parent, expected for windowed histories
			}
			p := nodes[prow]
			e := Edge{
				FromHash:   n.Commit.Hash,
				ToHash:     parent,
				FromColumn: n.Column,
				ToColumn:   p.Column,
				FromRow:    n.Row,
				ToRow:      p.Row,
				Kind:       EdgeStraight,
			}
			if n.Column != p.Column {
				e.Kind = EdgeCurved
				e.Control1 = Point{X: float64(n.Column), Y: float64(n.Row) + 0.5}
				e.Control2 = Point{X: float64(p.Column), Y: float64(p.Row) - 0.5}
			}
			edges = append(edges, e)
		}
	}
	return edges
}
