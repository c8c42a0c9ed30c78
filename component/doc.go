// Package component builds the adjacency-component index over a pinch
// graph: the partition of vertices into maximal grey-edge-connected groups,
// used both to enforce merge locality (via pinch.LocalityIndex) and later as
// the node set of the cactus graph overlay.
package component
