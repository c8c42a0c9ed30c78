package cactus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comparomics/cactuscore/cactus"
	"github.com/comparomics/cactuscore/component"
)

func TestBuild_SimpleCycleIsOneChain(t *testing.T) {
	edges := []component.OverlayEdge{
		{Block: 1, A: 0, B: 1},
		{Block: 2, A: 1, B: 2},
		{Block: 3, A: 2, B: 0},
	}
	g := cactus.Build(edges)
	require.Len(t, g.Chains, 1)
	require.Len(t, g.Chains[0].Edges, 3)
	require.Empty(t, g.Links)
	require.NoError(t, cactus.CheckTwoEdgeConnected(g))
}

func TestBuild_BridgeIsALink(t *testing.T) {
	edges := []component.OverlayEdge{
		{Block: 1, A: 0, B: 1},
	}
	g := cactus.Build(edges)
	require.Empty(t, g.Chains)
	require.Len(t, g.Links, 1)
	require.True(t, g.Links[0].Stem)
}

func TestBuild_SelfLoopIsATrivialChain(t *testing.T) {
	edges := []component.OverlayEdge{
		{Block: 1, A: 0, B: 0},
	}
	g := cactus.Build(edges)
	require.Len(t, g.Chains, 1)
	require.Len(t, g.Chains[0].Edges, 1)
}

func TestBuild_TangleAtSharedNode(t *testing.T) {
	edges := []component.OverlayEdge{
		{Block: 1, A: 0, B: 1},
		{Block: 2, A: 1, B: 2},
		{Block: 3, A: 2, B: 0},
		{Block: 4, A: 0, B: 3},
	}
	g := cactus.Build(edges)
	require.Len(t, g.Chains, 1)
	require.Len(t, g.Links, 1)
	require.Len(t, g.Tangles, 1)
	require.Equal(t, component.Component(0), g.Tangles[0].Node)
}

func TestSortedChains_LongestFirst(t *testing.T) {
	edges := []component.OverlayEdge{
		{Block: 1, A: 0, B: 1},
		{Block: 2, A: 1, B: 0},
		{Block: 3, A: 2, B: 3},
		{Block: 4, A: 3, B: 4},
		{Block: 5, A: 4, B: 2},
	}
	g := cactus.Build(edges)
	sorted := cactus.SortedChains(g)
	require.Len(t, sorted, 2)
	require.GreaterOrEqual(t, len(sorted[0].Edges), len(sorted[1].Edges))
}
