package cactus

import (
	"github.com/comparomics/cactuscore/component"
	"github.com/comparomics/cactuscore/pinch"
)

// Node is a cactus-graph node: one pinch adjacency component.
type Node = component.Component

// Edge is one cactus-graph edge: one pinch block, reprojected onto its two
// endpoint nodes.
type Edge struct {
	Block pinch.BlockID
	A, B  Node
}

// Chain is a maximal 2-edge-connected run of edges: a stretch of synteny
// that survives as a unit through the annealing round.
type Chain struct {
	ID    int
	Edges []Edge
	Nodes []Node
}

// Link is a bridge edge: removing it disconnects the cactus graph. Stem
// reports whether one endpoint is a leaf (a node of degree one within its
// connected piece). Build only marks such bridges: it does not fold them
// into chains, so a stem stays a Link and lies on no cycle.
type Link struct {
	Edge Edge
	Stem bool
}

// Tangle is a node that participates in more than one Chain or Link: the
// net where multiple runs of synteny and/or bridges meet.
type Tangle struct {
	Node Node
}

// Graph is the cactus graph built from one component overlay.
type Graph struct {
	Chains  []Chain
	Links   []Link
	Tangles []Tangle
}
