package pinch

// RemoveBlocks dissolves the given blocks back into independent, unblocked
// ThreadSegments: this is the de-annealing counterpart to Merge. Each
// segment that belonged to a removed block becomes an unblocked run with no
// vertices of its own, and the block's own two vertices are torn down once
// nothing references them (see detachVertexIfOrphaned).
func (g *Graph) RemoveBlocks(ids []BlockID) error {
	for _, id := range ids {
		b, ok := g.blocks[id]
		if !ok {
			return ErrBlockNotFound
		}
		g.removeBlock(b)
	}
	return nil
}

func (g *Graph) removeBlock(b *Block) {
	for _, v := range [2]VertexID{b.Five, b.Three} {
		if vx, ok := g.vertices[v]; ok {
			delete(vx.BlackEdges, b.ID)
		}
	}
	for _, th := range g.threads {
		for _, s := range th.Segments {
			if s.Block != b.ID {
				continue
			}
			oldFive, oldThree := s.Five, s.Three
			s.Block = noBlock
			s.Five, s.Three = noVertex, noVertex
			s.Reversed = false
			g.detachVertexIfOrphaned(oldFive)
			g.detachVertexIfOrphaned(oldThree)
			g.reconnectNeighbours(s)
		}
	}
	delete(g.blocks, b.ID)
}

// detachVertexIfOrphaned removes v from the graph once it no longer
// terminates any black edge and is not a thread extremity; a vertex that
// still anchors a stub or another block's end is left alone.
func (g *Graph) detachVertexIfOrphaned(v VertexID) {
	vx, ok := g.vertices[v]
	if !ok {
		return
	}
	if len(vx.BlackEdges) > 0 || vx.Stub != nil {
		return
	}
	for _, th := range g.threads {
		if th.Left == v || th.Right == v {
			return
		}
	}
	for nb := range vx.GreyEdges {
		delete(g.vertices[nb].GreyEdges, v)
	}
	delete(g.vertices, v)
}

// RemoveTrivialGreyEdgeComponents deletes every vertex pair joined only by a
// single grey edge with no black edges at all and no stub attached: bare
// connective tissue left over once the blocks touching it have all been
// dissolved, carrying no information the flower hierarchy needs.
func (g *Graph) RemoveTrivialGreyEdgeComponents() {
	for id, v := range g.vertices {
		if len(v.BlackEdges) != 0 || v.Stub != nil {
			continue
		}
		if len(v.GreyEdges) != 1 {
			continue
		}
		var other VertexID
		for nb := range v.GreyEdges {
			other = nb
		}
		ov, ok := g.vertices[other]
		if !ok || len(ov.BlackEdges) != 0 || ov.Stub != nil || len(ov.GreyEdges) != 1 {
			continue
		}
		delete(g.vertices, other)
		delete(g.vertices, id)
	}
}

// LinkStubsToSink connects every currently-unattached stub vertex to a
// shared sink vertex, so the adjacency-component and cactus construction
// that follows sees one connected structure instead of a forest of free
// ends. UnlinkStubsFromSink reverses it before the next annealing round.
func (g *Graph) LinkStubsToSink() VertexID {
	if !g.sinkActive {
		g.sink = g.addVertex()
		g.sinkActive = true
	}
	for _, v := range g.vertices {
		if v.ID == g.sink || v.Stub == nil || v.Stub.Attached {
			continue
		}
		g.vertices[g.sink].GreyEdges[v.ID] = struct{}{}
		v.GreyEdges[g.sink] = struct{}{}
	}
	return g.sink
}

// UnlinkStubsFromSink removes the sink vertex created by LinkStubsToSink and
// every grey edge it introduced.
func (g *Graph) UnlinkStubsFromSink() {
	if !g.sinkActive {
		return
	}
	sink, ok := g.vertices[g.sink]
	if ok {
		for nb := range sink.GreyEdges {
			delete(g.vertices[nb].GreyEdges, g.sink)
		}
		delete(g.vertices, g.sink)
	}
	g.sinkActive = false
}
