// Package cactus builds the cactus graph from a pinch graph's
// adjacency-component overlay: the 2-edge-connected decomposition that
// groups runs of synteny into chains, isolates bridges into links, and
// leaves the remaining net of connections at tangle nodes.
//
// The construction is the classic edge-based biconnected-components
// algorithm (an edge-stack DFS tracking discovery time and low-link value),
// applied to the component.Index overlay rather than to the pinch graph
// directly: a cactus node is an adjacency component, a cactus edge is a
// pinch block.
package cactus
