package anneal_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/comparomics/cactuscore/anneal"
	"github.com/comparomics/cactuscore/cactus"
	"github.com/comparomics/cactuscore/component"
	"github.com/comparomics/cactuscore/filter"
	"github.com/comparomics/cactuscore/piece"
	"github.com/comparomics/cactuscore/pinch"
)

func TestPipeline_RunProducesTerminalFlower(t *testing.T) {
	threads := []pinch.SeedThread{
		{Contig: 1, Length: 20},
		{Contig: 2, Length: 20},
	}
	a, _ := piece.NewPiece(1, 1, 20)
	b, _ := piece.NewPiece(2, 1, 20)
	alignments := []*piece.Alignment{
		{Score: 1, Pairs: []piece.AlignedPair{{A: a, B: b, Type: piece.Match}}},
	}
	source := anneal.NewSliceAlignmentSource(alignments)

	cfg := anneal.DefaultConfig()
	cfg.AnnealingRounds = []anneal.RoundThresholds{{MinimumDegree: 1, MinimumBlockLength: 1}}
	cfg.MinimumBlockLength = 1
	cfg.DeannealingRounds = 1

	p, err := anneal.NewPipeline(threads, nil, source, nil, cfg, zerolog.Nop())
	require.NoError(t, err)

	f, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, f)
	require.True(t, f.BuiltBlocks())
	require.True(t, f.IsTerminal())
}

func TestPipeline_RejectsRepeatMaskedBases(t *testing.T) {
	threads := []pinch.SeedThread{
		{Contig: 1, Length: 5},
		{Contig: 2, Length: 5},
	}
	a, _ := piece.NewPiece(1, 1, 5)
	b, _ := piece.NewPiece(2, 1, 5)
	alignments := []*piece.Alignment{
		{Score: 1, Pairs: []piece.AlignedPair{{A: a, B: b, Type: piece.Match}}},
	}
	source := anneal.NewSliceAlignmentSource(alignments)
	store := anneal.NewMapSequenceStore(map[piece.ContigID]string{
		1: "aaaaa",
		2: "AAAAA",
	})

	cfg := anneal.DefaultConfig()
	cfg.AnnealingRounds = []anneal.RoundThresholds{{MinimumDegree: 1, MinimumBlockLength: 1}}
	cfg.MinimumBlockLength = 1
	cfg.DeannealingRounds = 1
	// Only one round runs (round index 0), and it is below
	// AlignRepeatsAtRound, so the masking check applies.
	cfg.AlignRepeatsAtRound = 1

	p, err := anneal.NewPipeline(threads, nil, source, store, cfg, zerolog.Nop())
	require.NoError(t, err)

	f, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Empty(t, f.Blocks(), "lowercase repeat-masked pair must not form a block")
}

func TestPipeline_RequiresSequenceStoreWhenMaskingRepeats(t *testing.T) {
	threads := []pinch.SeedThread{
		{Contig: 1, Length: 5},
		{Contig: 2, Length: 5},
	}
	a, _ := piece.NewPiece(1, 1, 5)
	b, _ := piece.NewPiece(2, 1, 5)
	alignments := []*piece.Alignment{
		{Score: 1, Pairs: []piece.AlignedPair{{A: a, B: b, Type: piece.Match}}},
	}
	source := anneal.NewSliceAlignmentSource(alignments)

	cfg := anneal.DefaultConfig()
	cfg.AnnealingRounds = []anneal.RoundThresholds{{MinimumDegree: 1, MinimumBlockLength: 1}}
	cfg.AlignRepeatsAtRound = 1

	p, err := anneal.NewPipeline(threads, nil, source, nil, cfg, zerolog.Nop())
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.ErrorIs(t, err, anneal.ErrNoSequenceStore)
}

func TestMapSequenceStore_ReverseComplement(t *testing.T) {
	store := anneal.NewMapSequenceStore(map[piece.ContigID]string{1: "ACGT"})
	fwd, err := store.GetString(context.Background(), 1, 1, 4, true)
	require.NoError(t, err)
	require.Equal(t, "ACGT", fwd)

	rev, err := store.GetString(context.Background(), 1, 1, 4, false)
	require.NoError(t, err)
	require.Equal(t, "ACGT", rev)
}

func TestMapSequenceStore_ReverseComplementPreservesCase(t *testing.T) {
	store := anneal.NewMapSequenceStore(map[piece.ContigID]string{1: "aaCC"})
	rev, err := store.GetString(context.Background(), 1, 1, 4, false)
	require.NoError(t, err)
	require.Equal(t, "GGtt", rev, "soft-masked bases must stay lowercase through the reverse complement")
}

func TestPipeline_RejectsRepeatMaskedBasesOnReverseStrand(t *testing.T) {
	threads := []pinch.SeedThread{
		{Contig: 1, Length: 5},
		{Contig: 2, Length: 5},
	}
	a, _ := piece.NewPiece(1, 1, 5)
	b, err := piece.NewPiece(2, 1, 5)
	require.NoError(t, err)
	b = b.Reverse()
	alignments := []*piece.Alignment{
		{Score: 1, Pairs: []piece.AlignedPair{{A: a, B: b, Type: piece.Match}}},
	}
	source := anneal.NewSliceAlignmentSource(alignments)
	store := anneal.NewMapSequenceStore(map[piece.ContigID]string{
		1: "AAAAA",
		// The forward-stored sequence is lower-case (soft-masked); its
		// reverse complement must still read as soft-masked once
		// reversed, since complementBase must preserve case.
		2: "ttttt",
	})

	cfg := anneal.DefaultConfig()
	cfg.AnnealingRounds = []anneal.RoundThresholds{{MinimumDegree: 1, MinimumBlockLength: 1}}
	cfg.MinimumBlockLength = 1
	cfg.DeannealingRounds = 1
	cfg.AlignRepeatsAtRound = 1

	p, err := anneal.NewPipeline(threads, nil, source, store, cfg, zerolog.Nop())
	require.NoError(t, err)

	f, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, f.Blocks(), "reverse-strand repeat-masked pair must not form a block")
}

func TestPipeline_FinalFilterAppliesMinimumTreeCoverage(t *testing.T) {
	threads := []pinch.SeedThread{
		{Contig: 1, Length: 10},
		{Contig: 2, Length: 10},
		{Contig: 3, Length: 10},
		{Contig: 4, Length: 10},
	}
	a, _ := piece.NewPiece(1, 1, 10)
	b, _ := piece.NewPiece(2, 1, 10)
	alignments := []*piece.Alignment{
		{Score: 1, Pairs: []piece.AlignedPair{{A: a, B: b, Type: piece.Match}}},
	}
	source := anneal.NewSliceAlignmentSource(alignments)

	cfg := anneal.DefaultConfig()
	cfg.AnnealingRounds = []anneal.RoundThresholds{{MinimumDegree: 1, MinimumBlockLength: 1}}
	cfg.MinimumBlockLength = 1
	cfg.DeannealingRounds = 1
	// Only 2 of the 4 seeded threads ever align: coverage is 2/4 = 0.5,
	// short of a 0.75 requirement, so the block must not survive. The
	// per-round filter applies the same coverage threshold and undoes it
	// first; the final selection would drop it as well.
	cfg.MinimumTreeCoverage = 0.75

	p, err := anneal.NewPipeline(threads, nil, source, nil, cfg, zerolog.Nop())
	require.NoError(t, err)

	f, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, f.Blocks(), "block below the tree-coverage threshold must not survive final selection")
}

// TestPipeline_TerminateRecursionFinalMinDegree exercises filter.Blocks
// directly at the same MinimumDegree values Pipeline.Run derives from
// Config.TerminateRecursion (0 when true, 2 when false), since every block
// Pipeline ever merges has degree >= 2 by construction (a merge always
// joins at least two segments; see pinch.Graph.Merge) - so the 0-vs-2
// distinction is never observable by running the full pipeline against
// real alignments. This confirms the threshold filter.Blocks would apply
// at each of the two derived values behaves as the final-selection step
// expects: degree 0 keeps everything degree 2 keeps, and for a merged
// block the two sets coincide.
func TestPipeline_TerminateRecursionFinalMinDegree(t *testing.T) {
	g, err := pinch.Construct([]pinch.SeedThread{{Contig: 1, Length: 10}, {Contig: 2, Length: 10}}, nil)
	require.NoError(t, err)
	a, _ := piece.NewPiece(1, 1, 10)
	b, _ := piece.NewPiece(2, 1, 10)
	require.NoError(t, g.Merge(piece.AlignedPair{A: a, B: b, Type: piece.Match}, nil))

	ix := component.Build(g, 0)
	cg := cactus.Build(ix.Overlay(g))

	keptAtZero := filter.Blocks(g, cg, 2, filter.Config{MinimumDegree: 0})
	keptAtTwo := filter.Blocks(g, cg, 2, filter.Config{MinimumDegree: 2})
	require.Len(t, keptAtZero, 1)
	require.Equal(t, keptAtZero, keptAtTwo, "every merged block already has degree >= 2")
}

func TestRun_IsEquivalentToNewPipelineThenRun(t *testing.T) {
	threads := []pinch.SeedThread{
		{Contig: 1, Length: 20},
		{Contig: 2, Length: 20},
	}
	a, _ := piece.NewPiece(1, 1, 20)
	b, _ := piece.NewPiece(2, 1, 20)
	newAlignments := func() []*piece.Alignment {
		return []*piece.Alignment{
			{Score: 1, Pairs: []piece.AlignedPair{{A: a, B: b, Type: piece.Match}}},
		}
	}

	cfg := anneal.DefaultConfig()
	cfg.AnnealingRounds = []anneal.RoundThresholds{{MinimumDegree: 1, MinimumBlockLength: 1}}
	cfg.MinimumBlockLength = 1
	cfg.DeannealingRounds = 1

	f, err := anneal.Run(context.Background(), threads, nil, anneal.NewSliceAlignmentSource(newAlignments()), nil, cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, f)
	require.True(t, f.BuiltBlocks())
	require.Len(t, f.Blocks(), 1)

	p, err := anneal.NewPipeline(threads, nil, anneal.NewSliceAlignmentSource(newAlignments()), nil, cfg, zerolog.Nop())
	require.NoError(t, err)
	viaPipeline, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, f.BuiltBlocks(), viaPipeline.BuiltBlocks())
	require.Len(t, viaPipeline.Blocks(), len(f.Blocks()))
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	doc := `
debug: true
annealing_rounds:
  - minimum_degree: 2
    minimum_block_length: 1
align_repeats_at_round: 1
trim: 2
trim_change: -1
minimum_tree_coverage: 0.5
minimum_block_length: 3
minimum_block_length_change: -1
minimum_chain_length: 10
minimum_chain_length_change: -2
deannealing_rounds: 4
adjacency_component_overlap: 0
`
	cfg, err := anneal.LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)
	require.True(t, cfg.Debug)
	require.Len(t, cfg.AnnealingRounds, 1)
	require.Equal(t, 2, cfg.AnnealingRounds[0].MinimumDegree)
	require.Equal(t, int64(2), cfg.Trim)
	require.Equal(t, int64(-1), cfg.TrimChange)
	require.Equal(t, 0.5, cfg.MinimumTreeCoverage)
	require.Equal(t, 4, cfg.DeannealingRounds)
}

func TestLoadConfig_RejectsMalformedYAML(t *testing.T) {
	_, err := anneal.LoadConfig(strings.NewReader("debug: [this is not a bool"))
	require.Error(t, err)
}

func TestNewPipelineWithOptions_AppliesConfigAndLogger(t *testing.T) {
	threads := []pinch.SeedThread{
		{Contig: 1, Length: 20},
		{Contig: 2, Length: 20},
	}
	a, _ := piece.NewPiece(1, 1, 20)
	b, _ := piece.NewPiece(2, 1, 20)
	alignments := []*piece.Alignment{
		{Score: 1, Pairs: []piece.AlignedPair{{A: a, B: b, Type: piece.Match}}},
	}
	source := anneal.NewSliceAlignmentSource(alignments)

	cfg := anneal.DefaultConfig()
	cfg.AnnealingRounds = []anneal.RoundThresholds{{MinimumDegree: 1, MinimumBlockLength: 1}}
	cfg.MinimumBlockLength = 1
	cfg.DeannealingRounds = 1

	p, err := anneal.NewPipelineWithOptions(threads, nil, source, nil,
		anneal.WithConfig(cfg),
		anneal.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)

	f, err := p.Run(context.Background())
	require.NoError(t, err)
	require.True(t, f.BuiltBlocks())
}
