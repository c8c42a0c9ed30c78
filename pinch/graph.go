package pinch

import "github.com/comparomics/cactuscore/piece"

// Construct builds a fresh Graph from a set of seed threads and any known
// adjacencies between their extremities. Each thread starts as a single
// ThreadSegment with no block (an unattached run), bounded by two vertices
// that either carry an inherited stub or are freshly allocated.
func Construct(threads []SeedThread, adjacencies []SeedAdjacency) (*Graph, error) {
	g := &Graph{
		vertices: make(map[VertexID]*Vertex),
		blocks:   make(map[BlockID]*Block),
		threads:  make(map[ThreadID]*Thread),
		byContig: make(map[piece.ContigID]ThreadID),
	}

	ends := make(map[piece.ContigID][2]VertexID, len(threads))

	for _, st := range threads {
		if st.Length <= 0 {
			return nil, ErrZeroLengthThread
		}
		left := g.addVertex()
		if st.LeftStub != nil {
			g.vertices[left].Stub = st.LeftStub
		}
		right := g.addVertex()
		if st.RightStub != nil {
			g.vertices[right].Stub = st.RightStub
		}

		tid := g.nextThread
		g.nextThread++

		seg := &ThreadSegment{Start: 1, End: st.Length, Block: noBlock, Five: noVertex, Three: noVertex}
		th := &Thread{ID: tid, Contig: st.Contig, Length: st.Length, Segments: []*ThreadSegment{seg}, Left: left, Right: right}
		g.threads[tid] = th
		g.byContig[st.Contig] = tid
		ends[st.Contig] = [2]VertexID{left, right}

		g.vertices[left].GreyEdges[right] = struct{}{}
		g.vertices[right].GreyEdges[left] = struct{}{}
	}

	for _, adj := range adjacencies {
		a, ok := ends[adj.ContigA]
		if !ok {
			return nil, ErrThreadNotFound
		}
		b, ok := ends[adj.ContigB]
		if !ok {
			return nil, ErrThreadNotFound
		}
		va := a[0]
		if adj.SideA {
			va = a[1]
		}
		vb := b[0]
		if adj.SideB {
			vb = b[1]
		}
		g.vertices[va].GreyEdges[vb] = struct{}{}
		g.vertices[vb].GreyEdges[va] = struct{}{}
	}

	return g, nil
}

// noBlock is the sentinel BlockID meaning "this ThreadSegment is not yet
// part of any block" — a run of sequence aligned to nothing.
const noBlock BlockID = -1

func (g *Graph) addVertex() VertexID {
	id := g.nextVertex
	g.nextVertex++
	g.vertices[id] = newVertex(id)
	return id
}

func (g *Graph) addBlock(five, three VertexID, length int64) *Block {
	id := g.nextBlock
	g.nextBlock++
	b := &Block{ID: id, Five: five, Three: three, Length: length}
	g.blocks[id] = b
	g.vertices[five].BlackEdges[id] = FivePrime
	g.vertices[three].BlackEdges[id] = ThreePrime
	return b
}

// Vertex returns the vertex with the given ID, or (nil, false) if absent.
func (g *Graph) Vertex(id VertexID) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// Block returns the block with the given ID, or (nil, false) if absent.
func (g *Graph) Block(id BlockID) (*Block, bool) {
	b, ok := g.blocks[id]
	return b, ok
}

// Thread returns the thread seeded for the given contig, or (nil, false) if
// no such thread was seeded.
func (g *Graph) Thread(contig piece.ContigID) (*Thread, bool) {
	tid, ok := g.byContig[contig]
	if !ok {
		return nil, false
	}
	return g.threads[tid], true
}

// VertexCount returns the number of live vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// BlockCount returns the number of live blocks.
func (g *Graph) BlockCount() int { return len(g.blocks) }

// Blocks calls fn once per live block, in unspecified order.
func (g *Graph) Blocks(fn func(*Block)) {
	for _, b := range g.blocks {
		fn(b)
	}
}

// Vertices calls fn once per live vertex, in unspecified order.
func (g *Graph) Vertices(fn func(*Vertex)) {
	for _, v := range g.vertices {
		fn(v)
	}
}

// identifyVertices merges drop into keep: every black edge and grey edge
// incident to drop is re-pointed at keep, then drop is deleted. Both vertices
// must be distinct and present; identifyVertices panics on programmer error
// (it is never called with attacker- or alignment-controlled IDs directly —
// callers resolve and validate IDs first).
func (g *Graph) identifyVertices(keep, drop VertexID) {
	if keep == drop {
		return
	}
	kv, ok := g.vertices[keep]
	if !ok {
		panic("pinch: identifyVertices: keep vertex absent")
	}
	dv, ok := g.vertices[drop]
	if !ok {
		panic("pinch: identifyVertices: drop vertex absent")
	}

	for bid, side := range dv.BlackEdges {
		b := g.blocks[bid]
		b.setEnd(side, keep)
		kv.BlackEdges[bid] = side
	}

	for nb := range dv.GreyEdges {
		if nb == keep {
			continue
		}
		delete(g.vertices[nb].GreyEdges, drop)
		g.vertices[nb].GreyEdges[keep] = struct{}{}
		kv.GreyEdges[nb] = struct{}{}
	}

	if dv.Stub != nil && kv.Stub == nil {
		kv.Stub = dv.Stub
	}

	delete(g.vertices, drop)
}
