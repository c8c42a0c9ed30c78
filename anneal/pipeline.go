package anneal

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/comparomics/cactuscore/cactus"
	"github.com/comparomics/cactuscore/component"
	"github.com/comparomics/cactuscore/filter"
	"github.com/comparomics/cactuscore/flower"
	"github.com/comparomics/cactuscore/piece"
	"github.com/comparomics/cactuscore/pinch"
)

// Pipeline owns one pinch graph for the life of one annealing run.
type Pipeline struct {
	graph        *pinch.Graph
	cfg          Config
	log          zerolog.Logger
	source       AlignmentSource
	seqs         SequenceStore
	totalThreads int
}

// Run is the package's library entry point: it seeds a pinch graph from
// threads/adjacencies, drives one full annealing run against source, and
// returns the materialised root flower. It is a thin convenience wrapper
// around NewPipeline followed by Pipeline.Run, for callers that have no
// need to hold onto the Pipeline value itself (e.g. a one-shot CLI
// invocation, as opposed to a long-lived service that might inspect the
// pipeline between rounds).
func Run(ctx context.Context, threads []pinch.SeedThread, adjacencies []pinch.SeedAdjacency, source AlignmentSource, seqs SequenceStore, cfg Config, log zerolog.Logger) (*flower.Flower, error) {
	p, err := NewPipeline(threads, adjacencies, source, seqs, cfg, log)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx)
}

// NewPipeline seeds a pinch graph from threads/adjacencies and returns a
// Pipeline ready to Run against the given alignment source. seqs may be nil
// if cfg never needs to consult repeat-masking (i.e. AlignRepeatsAtRound is
// 0, admitting repeats from round zero); any round that needs to reject
// lowercase/N bases without a SequenceStore configured fails with
// ErrNoSequenceStore.
func NewPipeline(threads []pinch.SeedThread, adjacencies []pinch.SeedAdjacency, source AlignmentSource, seqs SequenceStore, cfg Config, log zerolog.Logger) (*Pipeline, error) {
	g, err := pinch.Construct(threads, adjacencies)
	if err != nil {
		return nil, errors.Wrap(err, "anneal: constructing pinch graph")
	}
	return &Pipeline{graph: g, cfg: cfg, log: log, source: source, seqs: seqs, totalThreads: len(threads)}, nil
}

// Run executes the full outer/inner annealing loop and returns the
// materialised root flower.
func (p *Pipeline) Run(ctx context.Context) (*flower.Flower, error) {
	alignments, err := p.drain(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "anneal: draining alignment source")
	}
	p.log.Info().Int("alignments", len(alignments)).Msg("loaded alignments")

	trim := p.cfg.Trim
	minBlockLength := p.cfg.MinimumBlockLength
	minChainLength := p.cfg.MinimumChainLength

	for round, thresholds := range p.cfg.AnnealingRounds {
		includeRepeats := round >= p.cfg.AlignRepeatsAtRound
		locality := component.Build(p.graph, p.cfg.AdjacencyComponentOverlap)
		accepted := 0
		for _, a := range alignments {
			for _, pair := range a.Pairs {
				if pair.Type != piece.Match {
					continue
				}
				if pair.Length() <= 2*trim {
					continue
				}
				trimmed := pair
				if trim > 0 {
					trimmed.A = pair.A.Trim(trim)
					trimmed.B = pair.B.Trim(trim)
					if trimmed.A.Length() <= 0 || trimmed.B.Length() <= 0 {
						continue
					}
				}
				if !includeRepeats {
					masked, err := p.isRepeatMasked(ctx, trimmed)
					if err != nil {
						return nil, errors.Wrapf(err, "anneal: round %d repeat check", round)
					}
					if masked {
						continue
					}
				}
				if err := p.graph.Merge(trimmed, locality); err != nil {
					if errors.Is(err, pinch.ErrBlockSplitUnsupported) {
						continue
					}
					return nil, errors.Wrapf(err, "anneal: round %d merge", round)
				}
				accepted++
			}
		}

		p.graph.RemoveTrivialGreyEdgeComponents()
		lastRound := round == len(p.cfg.AnnealingRounds)-1
		p.graph.LinkStubsToSink()

		ix := component.Build(p.graph, p.cfg.AdjacencyComponentOverlap)
		cg := cactus.Build(ix.Overlay(p.graph))
		cfg := filter.Config{
			MinimumBlockLength:  minBlockLength,
			MinimumDegree:       thresholds.MinimumDegree,
			MinimumChainLength:  minChainLength,
			MinimumTreeCoverage: p.cfg.MinimumTreeCoverage,
		}
		if thresholds.MinimumBlockLength > minBlockLength {
			cfg.MinimumBlockLength = thresholds.MinimumBlockLength
		}
		undo := filter.BlocksToUndo(p.graph, cg, p.totalThreads, cfg)
		if len(undo) > 0 {
			if err := p.graph.RemoveBlocks(undo); err != nil {
				return nil, errors.Wrapf(err, "anneal: round %d undo", round)
			}
		}

		if p.cfg.Debug {
			if err := p.graph.CheckGraph(); err != nil {
				return nil, errors.Wrapf(err, "anneal: round %d invariant check", round)
			}
		}

		p.log.Debug().
			Int("round", round).
			Int("accepted_pairs", accepted).
			Int("undone_blocks", len(undo)).
			Int64("trim", trim).
			Msg("annealing round complete")

		// attachEnds: the sink links only survive into the cactus that
		// materialisation sees on the last round (§4.1); every earlier
		// round unlinks them so the next round's component index starts
		// from the bare pinch graph again.
		if !lastRound {
			p.graph.UnlinkStubsFromSink()
		}

		trim += p.cfg.TrimChange
		minBlockLength += p.cfg.MinimumBlockLengthChange
		minChainLength += p.cfg.MinimumChainLengthChange
	}

	if err := p.deanneal(minBlockLength, minChainLength); err != nil {
		return nil, errors.Wrap(err, "anneal: de-annealing")
	}

	ix := component.Build(p.graph, p.cfg.AdjacencyComponentOverlap)
	cg := cactus.Build(ix.Overlay(p.graph))

	if p.cfg.Debug {
		if err := cactus.CheckTwoEdgeConnected(cg); err != nil {
			return nil, errors.Wrap(err, "anneal: cactus invariant check")
		}
	}

	// The final block set applies the last filter of the annealing
	// contract: min_degree drops to 0 (every surviving block, including
	// singletons) only when the caller has told us there is no further
	// recursive round against this flower's children; otherwise blocks
	// that still align fewer than two segments are excluded here. Tree
	// coverage is evaluated against the
	// pipeline's full seeded-thread count, not the in-round alignment
	// count.
	finalMinDegree := 2
	if p.cfg.TerminateRecursion {
		finalMinDegree = 0
	}
	surviving := filter.Blocks(p.graph, cg, p.totalThreads, filter.Config{
		MinimumDegree:       finalMinDegree,
		MinimumTreeCoverage: p.cfg.MinimumTreeCoverage,
	})

	f, err := flower.Construct("root", p.graph, ix, cg, surviving)
	if err != nil {
		return nil, errors.Wrap(err, "anneal: materialising flower")
	}
	if err := f.SetBuiltBlocksRecursive(); err != nil {
		return nil, errors.Wrap(err, "anneal: finalising flower")
	}
	return f, nil
}

// deanneal progressively removes the weakest surviving blocks, the
// strictest thresholds applied first, over cfg.DeannealingRounds passes.
func (p *Pipeline) deanneal(minBlockLength, minChainLength int64) error {
	step := minBlockLength
	if p.cfg.DeannealingRounds > 0 {
		step = minBlockLength / int64(p.cfg.DeannealingRounds)
	}
	threshold := minBlockLength
	for i := 0; i < p.cfg.DeannealingRounds; i++ {
		ix := component.Build(p.graph, p.cfg.AdjacencyComponentOverlap)
		cg := cactus.Build(ix.Overlay(p.graph))
		undo := filter.BlocksToUndo(p.graph, cg, 0, filter.Config{
			MinimumBlockLength: threshold,
			MinimumChainLength: minChainLength,
		})
		if len(undo) == 0 {
			break
		}
		if err := p.graph.RemoveBlocks(undo); err != nil {
			return err
		}
		p.graph.RemoveTrivialGreyEdgeComponents()
		threshold -= step
	}
	return nil
}

func (p *Pipeline) drain(ctx context.Context) ([]*piece.Alignment, error) {
	if err := p.source.Start(ctx); err != nil {
		return nil, err
	}
	var out []*piece.Alignment
	for {
		a, err := p.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if err := a.Validate(); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
}

// isRepeatMasked fetches the underlying sequence for both sides of pair and
// reports whether either contains a lowercase (soft-masked repeat) base or
// an N/n. Dashes are not bases the sequence store ever returns for a Match
// pair, so they need no special case here.
func (p *Pipeline) isRepeatMasked(ctx context.Context, pair piece.AlignedPair) (bool, error) {
	if p.seqs == nil {
		return false, ErrNoSequenceStore
	}
	lo, hi := pair.A.ForwardCoords()
	sa, err := p.seqs.GetString(ctx, pair.A.Contig, lo, hi-lo+1, pair.A.Forward())
	if err != nil {
		return false, err
	}
	if containsMaskedBase(sa) {
		return true, nil
	}
	lo, hi = pair.B.ForwardCoords()
	sb, err := p.seqs.GetString(ctx, pair.B.Contig, lo, hi-lo+1, pair.B.Forward())
	if err != nil {
		return false, err
	}
	return containsMaskedBase(sb), nil
}

func containsMaskedBase(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 'N' || c == 'n' || (c >= 'a' && c <= 'z') {
			return true
		}
	}
	return false
}
