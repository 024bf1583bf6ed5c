// Package layout computes the lane/row layout of a commit graph.
//
// Given a commit list in a fixed caller-supplied order (newest first by
// convention), the package assigns each commit a column (lane) and keeps its
// row equal to its position in the input. Edges between commits and their
// resolvable parents are derived afterwards, classified as straight or
// curved, and branch names are mapped onto a stable color palette.
//
// All computations are pure and deterministic: running them twice on the
// same input produces identical output, and no state leaks between
// invocations. Imperfect input - duplicate hashes, dangling parent
// references, the empty list - degrades to a smaller valid layout instead
// of an error, because a visualization must never take down its host on bad
// backend data.
package layout
