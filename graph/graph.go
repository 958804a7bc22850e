package graph

import (
	"fmt"

	"github.com/poiesic/clingraph/core"
)

// Builder accumulates concepts and relationships and seals them into an
// immutable Snapshot. It is not safe for concurrent use; build the snapshot
// in one pass before serving begins.
type Builder struct {
	nodes map[core.ID]core.Concept
	order []core.ID
	edges []core.Relationship
	out   map[core.ID][]int
	in    map[core.ID][]int
}

// NewBuilder creates an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make(map[core.ID]core.Concept),
		out:   make(map[core.ID][]int),
		in:    make(map[core.ID][]int),
	}
}

// AddConcept adds a node. Re-adding an existing id replaces its attributes
// (last write wins) but keeps its original insertion position.
func (b *Builder) AddConcept(concept *core.Concept) error {
	if err := core.ValidateConcept(concept); err != nil {
		return err
	}
	if _, ok := b.nodes[concept.Id]; !ok {
		b.order = append(b.order, concept.Id)
	}
	b.nodes[concept.Id] = *concept
	return nil
}

// AddRelationship adds a directed typed edge. Both endpoints must already be
// present as nodes; edges are kept in insertion order, which becomes the
// snapshot's native adjacency order.
func (b *Builder) AddRelationship(rel *core.Relationship) error {
	if err := core.ValidateRelationship(rel); err != nil {
		return err
	}
	if _, ok := b.nodes[rel.From]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEndpoint, rel.From)
	}
	if _, ok := b.nodes[rel.To]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEndpoint, rel.To)
	}

	i := len(b.edges)
	b.edges = append(b.edges, *rel)
	b.out[rel.From] = append(b.out[rel.From], i)
	b.in[rel.To] = append(b.in[rel.To], i)
	return nil
}

// Build seals the builder into an immutable Snapshot. The builder must not
// be used afterwards.
func (b *Builder) Build() *Snapshot {
	return &Snapshot{
		nodes: b.nodes,
		order: b.order,
		edges: b.edges,
		out:   b.out,
		in:    b.in,
	}
}

// Snapshot is the immutable directed concept graph, built once at startup
// and shared read-only across concurrent requests. No method mutates it.
type Snapshot struct {
	nodes map[core.ID]core.Concept
	order []core.ID
	edges []core.Relationship
	out   map[core.ID][]int
	in    map[core.ID][]int
}

// Len returns the number of nodes.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// NumEdges returns the number of edges.
func (s *Snapshot) NumEdges() int {
	return len(s.edges)
}

// HasNode reports whether the concept is present in the graph.
func (s *Snapshot) HasNode(id core.ID) bool {
	_, ok := s.nodes[id]
	return ok
}

// Concept returns the concept stored for an identifier.
func (s *Snapshot) Concept(id core.ID) (core.Concept, bool) {
	c, ok := s.nodes[id]
	return c, ok
}
