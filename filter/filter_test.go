package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comparomics/cactuscore/cactus"
	"github.com/comparomics/cactuscore/component"
	"github.com/comparomics/cactuscore/filter"
	"github.com/comparomics/cactuscore/piece"
	"github.com/comparomics/cactuscore/pinch"
)

func TestBlocks_RejectsShortBlocks(t *testing.T) {
	g, err := pinch.Construct([]pinch.SeedThread{{Contig: 1, Length: 10}, {Contig: 2, Length: 10}}, nil)
	require.NoError(t, err)
	a, _ := piece.NewPiece(1, 1, 5)
	b, _ := piece.NewPiece(2, 1, 5)
	require.NoError(t, g.Merge(piece.AlignedPair{A: a, B: b, Type: piece.Match}, nil))

	ix := component.Build(g, 0)
	cg := cactus.Build(ix.Overlay(g))

	kept := filter.Blocks(g, cg, 2, filter.Config{MinimumBlockLength: 10})
	require.Empty(t, kept)

	undo := filter.BlocksToUndo(g, cg, 2, filter.Config{MinimumBlockLength: 10})
	require.Len(t, undo, 1)
}

func TestBlocks_AcceptsQualifyingBlocks(t *testing.T) {
	g, err := pinch.Construct([]pinch.SeedThread{{Contig: 1, Length: 10}, {Contig: 2, Length: 10}}, nil)
	require.NoError(t, err)
	a, _ := piece.NewPiece(1, 1, 10)
	b, _ := piece.NewPiece(2, 1, 10)
	require.NoError(t, g.Merge(piece.AlignedPair{A: a, B: b, Type: piece.Match}, nil))

	ix := component.Build(g, 0)
	cg := cactus.Build(ix.Overlay(g))

	kept := filter.Blocks(g, cg, 2, filter.Config{MinimumBlockLength: 5, MinimumDegree: 2})
	require.Len(t, kept, 1)
}
