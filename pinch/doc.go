// Package pinch implements the pinch graph: the undirected, bipartite-flavoured
// structure of vertices joined by black edges (blocks — ordered sets of
// equal-length aligned segments) and grey edges (adjacencies between
// consecutive segments on a sequence thread).
//
// Graph is represented as an arena of stable integer-keyed vertices and
// blocks rather than heap pointers, so that RemoveBlocks and vertex
// identification are cheap, tombstone-style operations. It is deliberately
// single-owner and unlocked: a Graph belongs to exactly one anneal.Pipeline
// for the lifetime of one annealing run, never shared across goroutines
// (see DESIGN.md).
//
// The two operations that matter most are Merge, which unifies two aligned
// pieces into shared blocks subject to an adjacency-locality constraint, and
// RemoveBlocks, which dissolves blocks back into independent singletons
// during de-annealing.
package pinch
