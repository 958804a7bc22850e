package graph

import "github.com/poiesic/clingraph/core"

type edgeKey struct {
	from core.ID
	to   core.ID
	typ  core.ID
}

// Subgraph is a small mutable graph assembled per request, either by
// expansion from a snapshot or by composing other subgraphs. Node and edge
// order reflects first insertion.
type Subgraph struct {
	nodes    map[core.ID]core.Concept
	order    []core.ID
	edges    []core.Relationship
	edgeKeys map[edgeKey]int
}

// NewSubgraph creates an empty subgraph.
func NewSubgraph() *Subgraph {
	return &Subgraph{
		nodes:    make(map[core.ID]core.Concept),
		edgeKeys: make(map[edgeKey]int),
	}
}

// addNode inserts or overwrites a node. A node already present keeps its
// first-insertion position; its attributes are replaced (last write wins).
func (g *Subgraph) addNode(concept core.Concept) {
	if _, ok := g.nodes[concept.Id]; !ok {
		g.order = append(g.order, concept.Id)
	}
	g.nodes[concept.Id] = concept
}

// addEdge inserts an edge, deduplicating on (from, to, type). A duplicate
// keeps its first-insertion position; its attributes are replaced.
func (g *Subgraph) addEdge(rel core.Relationship) {
	k := edgeKey{from: rel.From, to: rel.To, typ: rel.Type}
	if i, ok := g.edgeKeys[k]; ok {
		g.edges[i] = rel
		return
	}
	g.edgeKeys[k] = len(g.edges)
	g.edges = append(g.edges, rel)
}

// IsEmpty reports whether the subgraph has neither nodes nor edges.
func (g *Subgraph) IsEmpty() bool {
	return g == nil || (len(g.order) == 0 && len(g.edges) == 0)
}

// Len returns the number of nodes.
func (g *Subgraph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

// NumEdges returns the number of edges.
func (g *Subgraph) NumEdges() int {
	if g == nil {
		return 0
	}
	return len(g.edges)
}

// HasNode reports whether the concept is present.
func (g *Subgraph) HasNode(id core.ID) bool {
	if g == nil {
		return false
	}
	_, ok := g.nodes[id]
	return ok
}

// Concept returns the concept stored for an identifier.
func (g *Subgraph) Concept(id core.ID) (core.Concept, bool) {
	if g == nil {
		return core.Concept{}, false
	}
	c, ok := g.nodes[id]
	return c, ok
}

// Nodes returns the concepts in insertion order. The slice is a copy.
func (g *Subgraph) Nodes() []core.Concept {
	if g == nil {
		return nil
	}
	nodes := make([]core.Concept, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns the relationships in insertion order. The slice is a copy.
func (g *Subgraph) Edges() []core.Relationship {
	if g == nil {
		return nil
	}
	edges := make([]core.Relationship, len(g.edges))
	copy(edges, g.edges)
	return edges
}
