package graph

import "github.com/poiesic/clingraph/core"

// Compose unions the given subgraphs into a single subgraph. Nodes and edges
// keep the position of their first appearance across the inputs; attributes
// of repeated nodes and edges follow the last input that contains them. Nil
// and empty inputs are skipped. When every input is empty the composition is
// rejected with core.ErrEmptyComposition.
func Compose(subgraphs []*Subgraph) (*Subgraph, error) {
	composed := NewSubgraph()
	for _, g := range subgraphs {
		if g.IsEmpty() {
			continue
		}
		for _, id := range g.order {
			composed.addNode(g.nodes[id])
		}
		for _, rel := range g.edges {
			composed.addEdge(rel)
		}
	}
	if composed.IsEmpty() {
		return nil, core.ErrEmptyComposition
	}
	return composed, nil
}
