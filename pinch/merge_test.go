package pinch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comparomics/cactuscore/piece"
	"github.com/comparomics/cactuscore/pinch"
)

func construct(t *testing.T, lengths map[piece.ContigID]int64) *pinch.Graph {
	t.Helper()
	threads := make([]pinch.SeedThread, 0, len(lengths))
	for c, l := range lengths {
		threads = append(threads, pinch.SeedThread{Contig: c, Length: l})
	}
	g, err := pinch.Construct(threads, nil)
	require.NoError(t, err)
	return g
}

func mustPair(t *testing.T, cA piece.ContigID, sA, eA int64, cB piece.ContigID, sB, eB int64) piece.AlignedPair {
	t.Helper()
	a, err := piece.NewPiece(cA, sA, eA)
	require.NoError(t, err)
	b, err := piece.NewPiece(cB, sB, eB)
	require.NoError(t, err)
	return piece.AlignedPair{A: a, B: b, Type: piece.Match}
}

func TestMerge_WholeContigCreatesOneBlock(t *testing.T) {
	g := construct(t, map[piece.ContigID]int64{1: 10, 2: 10})
	pair := mustPair(t, 1, 1, 10, 2, 1, 10)

	require.NoError(t, g.Merge(pair, nil))
	require.NoError(t, g.CheckGraph())
	require.Equal(t, 1, g.BlockCount())

	th1, ok := g.Thread(1)
	require.True(t, ok)
	require.Len(t, th1.Segments, 1)
	require.True(t, th1.Segments[0].Block >= 0)
}

func TestMerge_PartialOverlapSplitsRuns(t *testing.T) {
	g := construct(t, map[piece.ContigID]int64{1: 20, 2: 20})
	pair := mustPair(t, 1, 5, 14, 2, 1, 10)

	require.NoError(t, g.Merge(pair, nil))
	require.NoError(t, g.CheckGraph())

	th1, _ := g.Thread(1)
	require.Len(t, th1.Segments, 3)
	require.Equal(t, int64(5), th1.Segments[1].Start)
	require.Equal(t, int64(14), th1.Segments[1].End)
	require.True(t, th1.Segments[0].Block < 0)
	require.True(t, th1.Segments[1].Block >= 0)
	require.True(t, th1.Segments[2].Block < 0)
}

func TestMerge_ReversedOrientation(t *testing.T) {
	g := construct(t, map[piece.ContigID]int64{1: 10, 2: 10})
	b, err := piece.NewPiece(2, 1, 10)
	require.NoError(t, err)
	a, err := piece.NewPiece(1, 1, 10)
	require.NoError(t, err)
	pair := piece.AlignedPair{A: a, B: b.Reverse(), Type: piece.Match}

	require.NoError(t, g.Merge(pair, nil))
	require.NoError(t, g.CheckGraph())
	require.Equal(t, 1, g.BlockCount())
}

func TestMerge_ChainedMergesJoinBlocks(t *testing.T) {
	g := construct(t, map[piece.ContigID]int64{1: 10, 2: 10, 3: 10})
	require.NoError(t, g.Merge(mustPair(t, 1, 1, 10, 2, 1, 10), nil))
	require.NoError(t, g.Merge(mustPair(t, 2, 1, 10, 3, 1, 10), nil))
	require.NoError(t, g.CheckGraph())
	require.Equal(t, 1, g.BlockCount())

	var degree int
	g.Blocks(func(b *pinch.Block) { degree = b.Degree() })
	require.Equal(t, 3, degree)
}

func TestMerge_GapPairIsNoOp(t *testing.T) {
	g := construct(t, map[piece.ContigID]int64{1: 10, 2: 10})
	a, _ := piece.NewPiece(1, 1, 10)
	b, _ := piece.NewPiece(2, 1, 10)
	pair := piece.AlignedPair{A: a, B: b, Type: piece.Gap}

	require.NoError(t, g.Merge(pair, nil))
	require.Equal(t, 0, g.BlockCount())
}

func TestMerge_LengthMismatchRejected(t *testing.T) {
	g := construct(t, map[piece.ContigID]int64{1: 10, 2: 10})
	a, _ := piece.NewPiece(1, 1, 10)
	b, _ := piece.NewPiece(2, 1, 9)
	pair := piece.AlignedPair{A: a, B: b, Type: piece.Match}

	require.ErrorIs(t, g.Merge(pair, nil), pinch.ErrLengthMismatch)
}

type rejectAll struct{}

func (rejectAll) WithinOverlap(pinch.VertexID, pinch.VertexID) bool { return false }
func (rejectAll) ObserveMerge(pinch.VertexID, pinch.VertexID)       {}

func TestMerge_LocalityRejectionLeavesBlocksSeparate(t *testing.T) {
	g := construct(t, map[piece.ContigID]int64{1: 10, 2: 10, 3: 10, 4: 10})
	require.NoError(t, g.Merge(mustPair(t, 1, 1, 10, 2, 1, 10), nil))
	require.NoError(t, g.Merge(mustPair(t, 3, 1, 10, 4, 1, 10), nil))
	require.NoError(t, g.Merge(mustPair(t, 2, 1, 10, 3, 1, 10), rejectAll{}))
	require.NoError(t, g.CheckGraph())
	require.Equal(t, 2, g.BlockCount())
}

func TestRemoveBlocks_RoundTrips(t *testing.T) {
	g := construct(t, map[piece.ContigID]int64{1: 10, 2: 10})
	require.NoError(t, g.Merge(mustPair(t, 1, 1, 10, 2, 1, 10), nil))
	require.Equal(t, 1, g.BlockCount())

	var id pinch.BlockID
	g.Blocks(func(b *pinch.Block) { id = b.ID })
	require.NoError(t, g.RemoveBlocks([]pinch.BlockID{id}))
	require.NoError(t, g.CheckGraph())
	require.Equal(t, 0, g.BlockCount())

	th1, _ := g.Thread(1)
	require.Len(t, th1.Segments, 1)
	require.True(t, th1.Segments[0].Block < 0)
}
