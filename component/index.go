package component

import "github.com/comparomics/cactuscore/pinch"

// Component identifies one adjacency component: a maximal set of pinch
// vertices connected through grey edges.
type Component int64

// Index is the adjacency-component partition of one pinch.Graph, built once
// per annealing round and kept up to date as merges happen via ObserveMerge.
// It is a union-find over vertex IDs, the same structure the wider example
// corpus uses for minimum-spanning-tree clustering, repurposed here to track
// grey-edge connectivity instead of edge weight.
//
// Index satisfies pinch.LocalityIndex structurally, so pinch.Merge can
// consult it without this package ever being imported by pinch.
type Index struct {
	parent  map[pinch.VertexID]pinch.VertexID
	rank    map[pinch.VertexID]int
	overlap int
}

// Build computes the adjacency-component partition of g. overlap mirrors
// anneal.Config.AdjacencyComponentOverlap: 0 requires an exact shared
// component for two vertices to be merge-compatible; any positive value
// disables the locality constraint entirely for this round (see DESIGN.md
// for why finer-grained overlap distances are out of scope here).
func Build(g *pinch.Graph, overlap int) *Index {
	ix := &Index{
		parent:  make(map[pinch.VertexID]pinch.VertexID),
		rank:    make(map[pinch.VertexID]int),
		overlap: overlap,
	}
	g.Vertices(func(v *pinch.Vertex) { ix.makeSet(v.ID) })
	g.Vertices(func(v *pinch.Vertex) {
		for nb := range v.GreyEdges {
			ix.union(v.ID, nb)
		}
	})
	return ix
}

func (ix *Index) makeSet(v pinch.VertexID) {
	if _, ok := ix.parent[v]; ok {
		return
	}
	ix.parent[v] = v
	ix.rank[v] = 0
}

func (ix *Index) find(v pinch.VertexID) pinch.VertexID {
	ix.makeSet(v)
	root := v
	for ix.parent[root] != root {
		root = ix.parent[root]
	}
	for ix.parent[v] != root {
		ix.parent[v], v = root, ix.parent[v]
	}
	return root
}

func (ix *Index) union(a, b pinch.VertexID) {
	ra, rb := ix.find(a), ix.find(b)
	if ra == rb {
		return
	}
	if ix.rank[ra] < ix.rank[rb] {
		ra, rb = rb, ra
	}
	ix.parent[rb] = ra
	if ix.rank[ra] == ix.rank[rb] {
		ix.rank[ra]++
	}
}

// Of returns the component containing v.
func (ix *Index) Of(v pinch.VertexID) Component { return Component(ix.find(v)) }

// WithinOverlap implements pinch.LocalityIndex.
func (ix *Index) WithinOverlap(a, b pinch.VertexID) bool {
	if ix.overlap > 0 {
		return true
	}
	return ix.Of(a) == ix.Of(b)
}

// ObserveMerge implements pinch.LocalityIndex by unioning the two vertices'
// components, keeping the index consistent as pinch.Merge proceeds.
func (ix *Index) ObserveMerge(keep, drop pinch.VertexID) { ix.union(keep, drop) }

// OverlayEdge is one block of g reprojected onto the adjacency-component
// graph: an edge between the components its two endpoint vertices belong to.
type OverlayEdge struct {
	Block pinch.BlockID
	A, B  Component
}

// Overlay reprojects every block of g onto the component partition,
// producing the multigraph cactus.Build consumes.
func (ix *Index) Overlay(g *pinch.Graph) []OverlayEdge {
	var edges []OverlayEdge
	g.Blocks(func(b *pinch.Block) {
		edges = append(edges, OverlayEdge{Block: b.ID, A: ix.Of(b.Five), B: ix.Of(b.Three)})
	})
	return edges
}
