package cactus

import "sort"

// SortedChains returns g's chains ordered longest-first by edge count;
// chains with equal edge counts keep their order in g.Chains. Block lengths
// are not consulted.
func SortedChains(g *Graph) []Chain {
	out := make([]Chain, len(g.Chains))
	copy(out, g.Chains)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Edges) > len(out[j].Edges)
	})
	return out
}
