package filter

import (
	"github.com/comparomics/cactuscore/cactus"
	"github.com/comparomics/cactuscore/pinch"
)

// Config gathers the thresholds a block (and the chain it belongs to) must
// clear to survive an annealing round.
type Config struct {
	// MinimumBlockLength rejects blocks shorter than this many bases.
	MinimumBlockLength int64
	// MinimumDegree rejects blocks aligning fewer than this many segments.
	MinimumDegree int
	// MinimumChainLength rejects every block in a cactus chain whose
	// total base length (summed over its edges' blocks) falls short.
	MinimumChainLength int64
	// MinimumTreeCoverage rejects blocks whose degree, as a fraction of
	// totalThreads, falls short. A value of 0 disables the check.
	MinimumTreeCoverage float64
}

// Blocks returns the IDs of blocks in g that satisfy cfg, given the cactus
// graph built over g's current adjacency-component overlay and the total
// number of threads seeded into g (the denominator for tree coverage).
func Blocks(g *pinch.Graph, cg *cactus.Graph, totalThreads int, cfg Config) []pinch.BlockID {
	chainLength := chainLengths(g, cg)

	var kept []pinch.BlockID
	g.Blocks(func(b *pinch.Block) {
		if !passes(g, b, chainLength, totalThreads, cfg) {
			return
		}
		kept = append(kept, b.ID)
	})
	return kept
}

// BlocksToUndo returns the blocks of degree at least two that Blocks would
// not keep under cfg: the set difference between a degree-two-only filter
// and cfg. These are the blocks to pass to pinch.Graph.RemoveBlocks before
// materialising flowers for this round.
func BlocksToUndo(g *pinch.Graph, cg *cactus.Graph, totalThreads int, cfg Config) []pinch.BlockID {
	chainLength := chainLengths(g, cg)

	var undo []pinch.BlockID
	g.Blocks(func(b *pinch.Block) {
		if b.Degree() < 2 || passes(g, b, chainLength, totalThreads, cfg) {
			return
		}
		undo = append(undo, b.ID)
	})
	return undo
}

func passes(g *pinch.Graph, b *pinch.Block, chainLength map[pinch.BlockID]int64, totalThreads int, cfg Config) bool {
	if b.Length < cfg.MinimumBlockLength {
		return false
	}
	if b.Degree() < cfg.MinimumDegree {
		return false
	}
	if cl, ok := chainLength[b.ID]; ok && cl < cfg.MinimumChainLength {
		return false
	}
	if cfg.MinimumTreeCoverage > 0 && totalThreads > 0 {
		coverage := float64(b.Degree()) / float64(totalThreads)
		if coverage < cfg.MinimumTreeCoverage {
			return false
		}
	}
	return true
}

// chainLengths maps each block belonging to a multi-edge chain to that
// chain's total base length; blocks that are bridges or self-loops (and so
// belong to no multi-edge chain) are absent from the result, which callers
// treat as "no chain-length constraint applies".
func chainLengths(g *pinch.Graph, cg *cactus.Graph) map[pinch.BlockID]int64 {
	out := make(map[pinch.BlockID]int64)
	for _, ch := range cg.Chains {
		if len(ch.Edges) < 2 {
			continue
		}
		var total int64
		for _, e := range ch.Edges {
			if b, ok := g.Block(e.Block); ok {
				total += b.Length
			}
		}
		for _, e := range ch.Edges {
			out[e.Block] = total
		}
	}
	return out
}
