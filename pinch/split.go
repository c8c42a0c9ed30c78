package pinch

// splitAt ensures a ThreadSegment boundary exists at position k (a break
// between base k and base k+1). k == 0 or k == thread.Length are always
// already boundaries (the thread's own extremities) and are no-ops.
//
// Splitting an unblocked run is free: it simply divides one run of bare
// sequence into two. Splitting a run that already belongs to a block would
// require detaching part of that block, which this package does not
// implement; it returns ErrBlockSplitUnsupported instead (see DESIGN.md).
func (g *Graph) splitAt(th *Thread, k int64) error {
	if k <= 0 || k >= th.Length {
		return nil
	}
	for i, s := range th.Segments {
		if s.Start <= k+1 && k+1 <= s.End {
			if s.Start == k+1 {
				return nil
			}
			if s.blocked() {
				return ErrBlockSplitUnsupported
			}
			right := &ThreadSegment{Start: k + 1, End: s.End, Block: noBlock, Five: noVertex, Three: noVertex}
			s.End = k
			th.Segments = append(th.Segments, nil)
			copy(th.Segments[i+2:], th.Segments[i+1:])
			th.Segments[i+1] = right
			return nil
		}
	}
	return ErrInvariant
}

// runsCovering returns the ordered ThreadSegments exactly tiling [lo, hi].
// Callers must have already called splitAt at lo-1 and hi.
func (g *Graph) runsCovering(th *Thread, lo, hi int64) []*ThreadSegment {
	out := make([]*ThreadSegment, 0, 4)
	for _, s := range th.Segments {
		if s.Start >= lo && s.End <= hi {
			out = append(out, s)
		}
	}
	return out
}
