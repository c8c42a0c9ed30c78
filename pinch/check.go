package pinch

import "github.com/pkg/errors"

// CheckGraph verifies the structural invariants every pinch Graph must hold
// between operations: every block has exactly two distinct endpoint
// vertices, every segment's recorded length matches its block's length, and
// every vertex's black edges point back at blocks that agree it terminates
// them. It is meant for tests and for anneal.Pipeline's debug mode, not the
// hot path.
func (g *Graph) CheckGraph() error {
	for id, b := range g.blocks {
		if b.Five == b.Three {
			return errors.Wrapf(ErrInvariant, "block %d: five and three endpoints coincide", id)
		}
		if _, ok := g.vertices[b.Five]; !ok {
			return errors.Wrapf(ErrInvariant, "block %d: five endpoint %d missing", id, b.Five)
		}
		if _, ok := g.vertices[b.Three]; !ok {
			return errors.Wrapf(ErrInvariant, "block %d: three endpoint %d missing", id, b.Three)
		}
		for _, seg := range b.Segments {
			if seg.P.Length() != b.Length {
				return errors.Wrapf(ErrInvariant, "block %d: segment length %d != block length %d", id, seg.P.Length(), b.Length)
			}
		}
	}

	for vid, v := range g.vertices {
		for bid, side := range v.BlackEdges {
			b, ok := g.blocks[bid]
			if !ok {
				return errors.Wrapf(ErrInvariant, "vertex %d: dangling black edge to missing block %d", vid, bid)
			}
			if b.End(side) != vid {
				return errors.Wrapf(ErrInvariant, "vertex %d: block %d does not agree it terminates side %s", vid, bid, side)
			}
		}
		for nb := range v.GreyEdges {
			other, ok := g.vertices[nb]
			if !ok {
				return errors.Wrapf(ErrInvariant, "vertex %d: grey edge to missing vertex %d", vid, nb)
			}
			if _, back := other.GreyEdges[vid]; !back {
				return errors.Wrapf(ErrInvariant, "vertex %d: grey edge to %d is not reciprocated", vid, nb)
			}
		}
	}

	for tid, th := range g.threads {
		var cursor int64 = 1
		for i, s := range th.Segments {
			if s.Start != cursor {
				return errors.Wrapf(ErrInvariant, "thread %d: segment %d starts at %d, expected %d", tid, i, s.Start, cursor)
			}
			if s.End < s.Start {
				return errors.Wrapf(ErrInvariant, "thread %d: segment %d has end before start", tid, i)
			}
			cursor = s.End + 1
		}
		if cursor != th.Length+1 {
			return errors.Wrapf(ErrInvariant, "thread %d: segments cover %d bases, expected %d", tid, cursor-1, th.Length)
		}
	}

	return nil
}
