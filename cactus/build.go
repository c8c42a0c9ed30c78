package cactus

import "github.com/comparomics/cactuscore/component"

type adjEdge struct {
	idx   int
	other Node
}

// Build computes the cactus graph for the given component overlay.
func Build(edges []component.OverlayEdge) *Graph {
	g := &Graph{}
	nodeGroups := make(map[Node]int)

	all := make([]Edge, 0, len(edges))
	adj := make(map[Node][]adjEdge)
	for _, e := range edges {
		edge := Edge{Block: e.Block, A: e.A, B: e.B}
		if e.A == e.B {
			// A self-loop is trivially its own 2-edge-connected group:
			// treat it as a one-edge chain rather than running it
			// through the DFS below, which assumes simple adjacency.
			g.Chains = append(g.Chains, Chain{ID: len(g.Chains), Edges: []Edge{edge}, Nodes: []Node{e.A}})
			nodeGroups[e.A]++
			continue
		}
		idx := len(all)
		all = append(all, edge)
		adj[e.A] = append(adj[e.A], adjEdge{idx: idx, other: e.B})
		adj[e.B] = append(adj[e.B], adjEdge{idx: idx, other: e.A})
	}

	b := &biconn{adj: adj, all: all}
	b.disc = make(map[Node]int)
	b.low = make(map[Node]int)
	b.edgeVisited = make([]bool, len(all))

	for n := range adj {
		if _, seen := b.disc[n]; !seen {
			b.dfs(n, -1)
		}
	}

	for _, grp := range b.groups {
		if len(grp) > 1 {
			ch := Chain{ID: len(g.Chains)}
			for _, ei := range grp {
				ch.Edges = append(ch.Edges, all[ei])
			}
			ch.Nodes = chainNodes(ch.Edges)
			for _, n := range ch.Nodes {
				nodeGroups[n]++
			}
			g.Chains = append(g.Chains, ch)
			continue
		}
		e := all[grp[0]]
		stem := len(adj[e.A]) == 1 || len(adj[e.B]) == 1
		g.Links = append(g.Links, Link{Edge: e, Stem: stem})
		nodeGroups[e.A]++
		nodeGroups[e.B]++
	}

	for n, count := range nodeGroups {
		if count > 1 {
			g.Tangles = append(g.Tangles, Tangle{Node: n})
		}
	}

	return g
}

func chainNodes(edges []Edge) []Node {
	seen := make(map[Node]struct{}, len(edges)*2)
	var out []Node
	for _, e := range edges {
		for _, n := range [2]Node{e.A, e.B} {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
	}
	return out
}

// biconn implements the edge-stack biconnected-components DFS.
type biconn struct {
	adj         map[Node][]adjEdge
	all         []Edge
	disc, low   map[Node]int
	timer       int
	edgeVisited []bool
	stack       []int
	groups      [][]int
}

func (b *biconn) dfs(u Node, parentEdge int) {
	b.timer++
	b.disc[u] = b.timer
	b.low[u] = b.timer

	for _, ae := range b.adj[u] {
		if ae.idx == parentEdge {
			continue
		}
		if b.edgeVisited[ae.idx] {
			continue
		}
		b.edgeVisited[ae.idx] = true
		b.stack = append(b.stack, ae.idx)

		v := ae.other
		if _, seen := b.disc[v]; !seen {
			b.dfs(v, ae.idx)
			if b.low[v] < b.low[u] {
				b.low[u] = b.low[v]
			}
			if b.low[v] >= b.disc[u] {
				b.popGroup(ae.idx)
			}
		} else if b.disc[v] < b.low[u] {
			b.low[u] = b.disc[v]
		}
	}
}

func (b *biconn) popGroup(through int) {
	var grp []int
	for {
		n := len(b.stack) - 1
		e := b.stack[n]
		b.stack = b.stack[:n]
		grp = append(grp, e)
		if e == through {
			break
		}
	}
	b.groups = append(b.groups, grp)
}
