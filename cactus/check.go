package cactus

import "github.com/pkg/errors"

// ErrNotTwoEdgeConnected indicates a Chain recorded by Build contains a
// node reachable by only one of its edges, violating the definition of a
// 2-edge-connected component.
var ErrNotTwoEdgeConnected = errors.New("cactus: chain is not two-edge-connected")

// CheckTwoEdgeConnected verifies every Chain in g has at least two edges
// touching each of its nodes (trivial one-node self-loop chains excepted).
func CheckTwoEdgeConnected(g *Graph) error {
	for _, ch := range g.Chains {
		if len(ch.Edges) == 1 && ch.Edges[0].A == ch.Edges[0].B {
			continue
		}
		touches := make(map[Node]int, len(ch.Nodes))
		for _, e := range ch.Edges {
			touches[e.A]++
			touches[e.B]++
		}
		for _, n := range ch.Nodes {
			if touches[n] < 2 {
				return errors.Wrapf(ErrNotTwoEdgeConnected, "chain %d: node %v touched %d times", ch.ID, n, touches[n])
			}
		}
	}
	return nil
}
