package graph

import (
	"context"

	"github.com/poiesic/clingraph/core"
)

// Expand performs a depth-bounded breadth-first traversal from each seed and
// returns one subgraph per seed, in seed order. Both edge directions are
// followed. At every visited node, topN bounds how many previously unvisited
// neighbors are taken, counted across outgoing then incoming adjacency in
// native order; topN <= 0 means unlimited. A seed absent from the snapshot
// yields an empty subgraph.
func (s *Snapshot) Expand(ctx context.Context, seeds []core.ID, depth, topN int) []*Subgraph {
	subgraphs := make([]*Subgraph, 0, len(seeds))
	for _, seed := range seeds {
		if ctx.Err() != nil {
			break
		}
		subgraphs = append(subgraphs, s.expandOne(seed, depth, topN))
	}
	return subgraphs
}

func (s *Snapshot) expandOne(seed core.ID, depth, topN int) *Subgraph {
	g := NewSubgraph()
	if !s.HasNode(seed) || depth < 0 {
		return g
	}

	visited := map[core.ID]bool{seed: true}
	frontier := []core.ID{seed}
	g.addNode(s.nodes[seed])

	for hop := 0; hop < depth && len(frontier) > 0; hop++ {
		var next []core.ID
		for _, id := range frontier {
			taken := 0
			for _, i := range s.out[id] {
				if topN > 0 && taken >= topN {
					break
				}
				to := s.edges[i].To
				if !visited[to] {
					visited[to] = true
					g.addNode(s.nodes[to])
					next = append(next, to)
					taken++
				}
			}
			for _, i := range s.in[id] {
				if topN > 0 && taken >= topN {
					break
				}
				from := s.edges[i].From
				if !visited[from] {
					visited[from] = true
					g.addNode(s.nodes[from])
					next = append(next, from)
					taken++
				}
			}
		}
		frontier = next
	}

	// Induce every snapshot edge whose endpoints both landed in the
	// subgraph, in the snapshot's native edge order.
	for _, rel := range s.edges {
		if visited[rel.From] && visited[rel.To] {
			g.addEdge(rel)
		}
	}
	return g
}
