package pinch

import (
	"sort"

	"github.com/comparomics/cactuscore/piece"
)

// LocalityIndex constrains which existing blocks are allowed to merge with
// one another. It is satisfied structurally by component.Index; pinch never
// imports component, so the two packages stay free of an import cycle.
type LocalityIndex interface {
	// WithinOverlap reports whether the adjacency components containing a
	// and b are close enough (per anneal.Config.AdjacencyComponentOverlap)
	// to permit identifying a with b.
	WithinOverlap(a, b VertexID) bool
	// ObserveMerge is called after a and b (a kept, b dropped) have been
	// identified, so the index can fold b's component membership into a's.
	ObserveMerge(keep, drop VertexID)
}

// freeLocality permits every merge. It is useful for the first annealing
// round, before any adjacency-component index has been built, and in tests
// that don't exercise the locality constraint.
type freeLocality struct{}

func (freeLocality) WithinOverlap(VertexID, VertexID) bool { return true }
func (freeLocality) ObserveMerge(VertexID, VertexID)       {}

// FreeLocality returns a LocalityIndex that imposes no constraint.
func FreeLocality() LocalityIndex { return freeLocality{} }

// Merge pinches pair.A against pair.B: every accepted base of the pair joins
// the two pieces' runs into shared blocks. Gap pairs are a no-op. Runs that
// already belong to different blocks are merged subject to locality; runs
// rejected by locality are left in their existing blocks, so one Merge call
// may accept part of a piece and reject the rest (the piece is carved into
// accepted sub-runs, matching the teacher-independent annealing contract).
//
// Merge returns ErrBlockSplitUnsupported if the alignment requires splitting
// an existing block at a position interior to it; see DESIGN.md.
func (g *Graph) Merge(pair piece.AlignedPair, locality LocalityIndex) error {
	if pair.Type != piece.Match {
		return nil
	}
	if pair.A.Length() != pair.B.Length() {
		return ErrLengthMismatch
	}
	if locality == nil {
		locality = FreeLocality()
	}

	threadA, ok := g.Thread(pair.A.Contig)
	if !ok {
		return ErrThreadNotFound
	}
	threadB, ok := g.Thread(pair.B.Contig)
	if !ok {
		return ErrThreadNotFound
	}

	loA, hiA := pair.A.ForwardCoords()
	loB, hiB := pair.B.ForwardCoords()

	if err := g.splitAt(threadA, loA-1); err != nil {
		return err
	}
	if err := g.splitAt(threadA, hiA); err != nil {
		return err
	}
	if err := g.splitAt(threadB, loB-1); err != nil {
		return err
	}
	if err := g.splitAt(threadB, hiB); err != nil {
		return err
	}

	runsA := g.runsCovering(threadA, loA, hiA)
	runsB := g.runsCovering(threadB, loB, hiB)

	// Boundary offsets measured from each piece's own 5' end, walking in
	// the piece's own direction; union them so both sides decompose into
	// a matched, equal-length sequence of sub-runs.
	offsA := pieceLocalOffsets(runsA, pair.A, loA, hiA)
	offsB := pieceLocalOffsets(runsB, pair.B, loB, hiB)
	union := mergeOffsets(offsA, offsB, pair.A.Length())

	for _, off := range union {
		if off == 0 || off == pair.A.Length() {
			continue
		}
		if err := g.splitAt(threadA, pieceLocalToAbs(pair.A, loA, hiA, off)); err != nil {
			return err
		}
		if err := g.splitAt(threadB, pieceLocalToAbs(pair.B, loB, hiB, off)); err != nil {
			return err
		}
	}

	runsA = g.runsCovering(threadA, loA, hiA)
	runsB = g.runsCovering(threadB, loB, hiB)
	if !pair.A.Forward() {
		reverseSegments(runsA)
	}
	if !pair.B.Forward() {
		reverseSegments(runsB)
	}
	if len(runsA) != len(runsB) {
		// Unequal piece-local decomposition would mean the offset union
		// above failed to reconcile both sides; this indicates a logic
		// defect rather than bad input, so surface it as an invariant.
		return ErrInvariant
	}

	relReversed := pair.A.Forward() != pair.B.Forward()

	for i := range runsA {
		ra, rb := runsA[i], runsB[i]
		segReversed := relReversed != (ra.Reversed != rb.Reversed)
		if err := g.mergeRuns(ra, rb, segReversed, locality); err != nil {
			return err
		}
	}
	return nil
}

// mergeRuns pinches two thread runs together. It dispatches on whether each
// side is already part of a block.
func (g *Graph) mergeRuns(ra, rb *ThreadSegment, segReversed bool, locality LocalityIndex) error {
	switch {
	case !ra.blocked() && !rb.blocked():
		g.newBlockFrom(ra, rb, segReversed)
	case ra.blocked() && !rb.blocked():
		g.extendBlock(ra, rb, segReversed)
	case !ra.blocked() && rb.blocked():
		g.extendBlock(rb, ra, segReversed)
	default:
		if ra.Block == rb.Block {
			return nil
		}
		return g.mergeBlocks(ra, rb, segReversed, locality)
	}
	return nil
}

func (g *Graph) newBlockFrom(ra, rb *ThreadSegment, segReversed bool) {
	five := g.boundaryVertex(ra, FivePrime)
	three := g.boundaryVertex(ra, ThreePrime)
	b := g.addBlock(five, three, ra.length())
	b.Segments = append(b.Segments, g.segmentFrom(ra, false), g.segmentFrom(rb, segReversed))
	attachRun(ra, b.ID, five, three, false)
	attachRun(rb, b.ID, five, three, segReversed)
	g.reconnectNeighbours(ra)
	g.reconnectNeighbours(rb)
}

func (g *Graph) extendBlock(blocked, free *ThreadSegment, segReversed bool) {
	b := g.blocks[blocked.Block]
	five, three := b.Five, b.Three
	reversed := segReversed
	b.Segments = append(b.Segments, g.segmentFrom(free, reversed))
	attachRun(free, b.ID, five, three, reversed)
	g.reconnectNeighbours(free)
}

func (g *Graph) mergeBlocks(ra, rb *ThreadSegment, segReversed bool, locality LocalityIndex) error {
	wantAligned := !segReversed
	keepFive, dropFive := ra.Five, rb.Five
	keepThree, dropThree := ra.Three, rb.Three
	if !wantAligned {
		dropFive, dropThree = dropThree, dropFive
	}

	if !locality.WithinOverlap(keepFive, dropFive) || !locality.WithinOverlap(keepThree, dropThree) {
		return nil
	}

	dropBlock := g.blocks[rb.Block]
	g.identifyVertices(keepFive, dropFive)
	locality.ObserveMerge(keepFive, dropFive)
	g.identifyVertices(keepThree, dropThree)
	locality.ObserveMerge(keepThree, dropThree)

	keepBlock := g.blocks[ra.Block]
	for _, seg := range dropBlock.Segments {
		if !wantAligned {
			seg.Reversed = !seg.Reversed
		}
		keepBlock.Segments = append(keepBlock.Segments, seg)
	}
	for _, th := range g.threads {
		for _, seg := range th.Segments {
			if seg.Block == dropBlock.ID {
				seg.Block = keepBlock.ID
				seg.Five, seg.Three = keepBlock.Five, keepBlock.Three
				if !wantAligned {
					seg.Reversed = !seg.Reversed
				}
			}
		}
	}
	delete(g.vertices[keepFive].BlackEdges, dropBlock.ID)
	delete(g.vertices[keepThree].BlackEdges, dropBlock.ID)
	delete(g.blocks, dropBlock.ID)
	return nil
}

// boundaryVertex returns the vertex that should bound run at the given side,
// reusing the thread's permanent extremity vertex when run touches it,
// otherwise allocating a fresh one.
func (g *Graph) boundaryVertex(run *ThreadSegment, side Side) VertexID {
	th := g.segmentThread(run)
	touchesStart := run.Start == 1
	touchesEnd := run.End == th.Length
	if side == FivePrime && touchesStart {
		return th.Left
	}
	if side == ThreePrime && touchesEnd {
		return th.Right
	}
	return g.addVertex()
}

func (g *Graph) segmentThread(run *ThreadSegment) *Thread {
	for _, th := range g.threads {
		for _, s := range th.Segments {
			if s == run {
				return th
			}
		}
	}
	return nil
}

func attachRun(run *ThreadSegment, block BlockID, five, three VertexID, reversed bool) {
	run.Block = block
	run.Reversed = reversed
	run.Five, run.Three = five, three
}

func (g *Graph) segmentFrom(run *ThreadSegment, reversed bool) Segment {
	th := g.segmentThread(run)
	p := piece.Piece{Contig: th.Contig, Start: run.Start, End: run.End}
	if reversed {
		p = p.Reverse()
	}
	idx := 0
	for i, s := range th.Segments {
		if s == run {
			idx = i
			break
		}
	}
	return Segment{P: p, Reversed: reversed, Thread: th.ID, Index: idx}
}

// reconnectNeighbours repairs the grey edges between run and its immediate
// thread neighbours after run's blocked/vertex state has changed. Unblocked
// neighbours contribute no vertex and so no edge.
func (g *Graph) reconnectNeighbours(run *ThreadSegment) {
	th := g.segmentThread(run)
	if th == nil {
		return
	}
	idx := -1
	for i, s := range th.Segments {
		if s == run {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	if idx > 0 {
		g.connectAdjacent(th.Segments[idx-1], run)
	}
	if idx+1 < len(th.Segments) {
		g.connectAdjacent(run, th.Segments[idx+1])
	}
}

func (g *Graph) connectAdjacent(left, right *ThreadSegment) {
	if !left.blocked() || !right.blocked() {
		return
	}
	lv := left.Three
	if left.Reversed {
		lv = left.Five
	}
	rv := right.Five
	if right.Reversed {
		rv = right.Three
	}
	g.vertices[lv].GreyEdges[rv] = struct{}{}
	g.vertices[rv].GreyEdges[lv] = struct{}{}
}

func reverseSegments(s []*ThreadSegment) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func pieceLocalOffsets(runs []*ThreadSegment, p piece.Piece, lo, hi int64) []int64 {
	offs := make([]int64, 0, len(runs)+1)
	if p.Forward() {
		for _, r := range runs {
			offs = append(offs, r.Start-lo)
		}
	} else {
		for i := len(runs) - 1; i >= 0; i-- {
			offs = append(offs, hi-runs[i].End)
		}
	}
	return offs
}

func pieceLocalToAbs(p piece.Piece, lo, hi, offset int64) int64 {
	if p.Forward() {
		return lo + offset - 1
	}
	return hi - offset
}

func mergeOffsets(a, b []int64, total int64) []int64 {
	set := make(map[int64]struct{}, len(a)+len(b)+2)
	set[0] = struct{}{}
	set[total] = struct{}{}
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := make([]int64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
