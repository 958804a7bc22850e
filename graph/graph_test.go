package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/clingraph/core"
)

func concept(id core.ID, name string) *core.Concept {
	return &core.Concept{Id: id, Name: name}
}

func rel(from, to, typ core.ID) *core.Relationship {
	return &core.Relationship{From: from, To: to, Type: typ}
}

// buildClinical assembles the fixture used across the expansion tests:
//
//	123 (HIV) --[116680003 isa]--> 11111 (Virus disease)
//	456 (Pneumonia) --[116680003 isa]--> 22222 (Lung disease)
//	33333 (HIV screening) --[47429007 associated with]--> 123
//	11111 --[116680003 isa]--> 44444 (Infectious disease)
//
// 55555 (Body temperature) has no relationships.
func buildClinical(t *testing.T) *Snapshot {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, b.AddConcept(concept(123, "Human immunodeficiency virus infection")))
	require.NoError(t, b.AddConcept(concept(456, "Pneumonia")))
	require.NoError(t, b.AddConcept(concept(11111, "Virus disease")))
	require.NoError(t, b.AddConcept(concept(22222, "Lung disease")))
	require.NoError(t, b.AddConcept(concept(33333, "HIV screening")))
	require.NoError(t, b.AddConcept(concept(44444, "Infectious disease")))
	require.NoError(t, b.AddConcept(concept(55555, "Body temperature")))
	require.NoError(t, b.AddRelationship(rel(123, 11111, 116680003)))
	require.NoError(t, b.AddRelationship(rel(456, 22222, 116680003)))
	require.NoError(t, b.AddRelationship(rel(33333, 123, 47429007)))
	require.NoError(t, b.AddRelationship(rel(11111, 44444, 116680003)))
	return b.Build()
}

func nodeIds(g *Subgraph) []core.ID {
	ids := make([]core.ID, 0, g.Len())
	for _, c := range g.Nodes() {
		ids = append(ids, c.Id)
	}
	return ids
}

func TestBuilder(t *testing.T) {
	t.Run("rejects relationship with unknown endpoint", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.AddConcept(concept(1, "a")))

		err := b.AddRelationship(rel(1, 2, 3))
		assert.ErrorIs(t, err, ErrUnknownEndpoint)

		err = b.AddRelationship(rel(2, 1, 3))
		assert.ErrorIs(t, err, ErrUnknownEndpoint)
	})

	t.Run("rejects invalid concepts and relationships", func(t *testing.T) {
		b := NewBuilder()
		assert.ErrorIs(t, b.AddConcept(nil), core.ErrInvalidConcept)
		assert.ErrorIs(t, b.AddConcept(concept(0, "a")), core.ErrZeroID)
		assert.ErrorIs(t, b.AddConcept(concept(1, "")), core.ErrEmptyConceptName)
		require.NoError(t, b.AddConcept(concept(1, "a")))
		assert.ErrorIs(t, b.AddRelationship(rel(1, 1, 0)), core.ErrInvalidRelationship)
	})

	t.Run("re-adding a concept replaces attributes", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.AddConcept(&core.Concept{Id: 1, Name: "old", SemanticTypes: []string{"disorder"}}))
		require.NoError(t, b.AddConcept(concept(1, "new")))

		s := b.Build()
		assert.Equal(t, 1, s.Len())
		c, ok := s.Concept(1)
		require.True(t, ok)
		assert.Equal(t, "new", c.Name)
		assert.Empty(t, c.SemanticTypes)
	})
}

func TestSnapshotExpand(t *testing.T) {
	ctx := context.Background()

	t.Run("depth one follows both directions", func(t *testing.T) {
		s := buildClinical(t)

		subgraphs := s.Expand(ctx, []core.ID{123}, 1, 0)
		require.Len(t, subgraphs, 1)

		g := subgraphs[0]
		assert.ElementsMatch(t, []core.ID{123, 11111, 33333}, nodeIds(g))
		assert.Equal(t, 2, g.NumEdges())
	})

	t.Run("depth bounds the traversal", func(t *testing.T) {
		s := buildClinical(t)

		g := s.Expand(ctx, []core.ID{123}, 1, 0)[0]
		assert.False(t, g.HasNode(44444), "two hops away")

		g = s.Expand(ctx, []core.ID{123}, 2, 0)[0]
		assert.True(t, g.HasNode(44444))
	})

	t.Run("depth zero keeps only the seed", func(t *testing.T) {
		s := buildClinical(t)

		g := s.Expand(ctx, []core.ID{123}, 0, 0)[0]
		assert.Equal(t, []core.ID{123}, nodeIds(g))
		assert.Equal(t, 0, g.NumEdges())
	})

	t.Run("absent seed yields empty subgraph", func(t *testing.T) {
		s := buildClinical(t)

		subgraphs := s.Expand(ctx, []core.ID{999999}, 1, 0)
		require.Len(t, subgraphs, 1)
		assert.True(t, subgraphs[0].IsEmpty())
	})

	t.Run("topN caps neighbors per node per hop", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.AddConcept(concept(1, "hub")))
		for id := core.ID(10); id < 15; id++ {
			require.NoError(t, b.AddConcept(concept(id, "spoke")))
			require.NoError(t, b.AddRelationship(rel(1, id, 7)))
		}
		s := b.Build()

		g := s.Expand(ctx, []core.ID{1}, 1, 2)[0]
		assert.Equal(t, []core.ID{1, 10, 11}, nodeIds(g), "first two in native order")

		g = s.Expand(ctx, []core.ID{1}, 1, 0)[0]
		assert.Equal(t, 6, g.Len(), "zero means unlimited")
	})

	t.Run("expansion is deterministic", func(t *testing.T) {
		s := buildClinical(t)

		first := s.Expand(ctx, []core.ID{123, 456}, 2, 0)
		for i := 0; i < 5; i++ {
			again := s.Expand(ctx, []core.ID{123, 456}, 2, 0)
			require.Len(t, again, len(first))
			for j := range first {
				assert.Equal(t, nodeIds(first[j]), nodeIds(again[j]))
				assert.Equal(t, first[j].Edges(), again[j].Edges())
			}
		}
	})

	t.Run("canceled context stops expansion", func(t *testing.T) {
		s := buildClinical(t)
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		subgraphs := s.Expand(canceled, []core.ID{123, 456}, 1, 0)
		assert.Empty(t, subgraphs)
	})
}

func TestCompose(t *testing.T) {
	ctx := context.Background()

	t.Run("unions expansions of multiple seeds", func(t *testing.T) {
		s := buildClinical(t)

		subgraphs := s.Expand(ctx, []core.ID{123, 456}, 1, 0)
		composed, err := Compose(subgraphs)
		require.NoError(t, err)

		assert.ElementsMatch(t, []core.ID{123, 11111, 33333, 456, 22222}, nodeIds(composed))
		assert.Equal(t, 3, composed.NumEdges())
	})

	t.Run("edge-less seed survives as an isolated node", func(t *testing.T) {
		s := buildClinical(t)

		subgraphs := s.Expand(ctx, []core.ID{55555, 456}, 1, 0)
		composed, err := Compose(subgraphs)
		require.NoError(t, err)

		assert.ElementsMatch(t, []core.ID{55555, 456, 22222}, nodeIds(composed))
		assert.Equal(t, 1, composed.NumEdges())
		assert.True(t, composed.HasNode(55555))
	})

	t.Run("empty inputs are skipped", func(t *testing.T) {
		s := buildClinical(t)

		subgraphs := s.Expand(ctx, []core.ID{999999, 123}, 1, 0)
		composed, err := Compose(subgraphs)
		require.NoError(t, err)
		assert.Equal(t, 3, composed.Len())
	})

	t.Run("all empty inputs is an error", func(t *testing.T) {
		composed, err := Compose([]*Subgraph{NewSubgraph(), nil, NewSubgraph()})
		assert.ErrorIs(t, err, core.ErrEmptyComposition)
		assert.Nil(t, composed)
	})

	t.Run("duplicate edges collapse", func(t *testing.T) {
		s := buildClinical(t)

		one := s.Expand(ctx, []core.ID{123}, 1, 0)
		two := s.Expand(ctx, []core.ID{123}, 1, 0)
		composed, err := Compose(append(one, two...))
		require.NoError(t, err)
		assert.Equal(t, one[0].NumEdges(), composed.NumEdges())
	})

	t.Run("composition order does not change the node and edge sets", func(t *testing.T) {
		s := buildClinical(t)

		subgraphs := s.Expand(ctx, []core.ID{123, 456, 33333}, 1, 0)
		forward, err := Compose(subgraphs)
		require.NoError(t, err)

		reversed := []*Subgraph{subgraphs[2], subgraphs[1], subgraphs[0]}
		backward, err := Compose(reversed)
		require.NoError(t, err)

		assert.ElementsMatch(t, nodeIds(forward), nodeIds(backward))
		assert.ElementsMatch(t, forward.Edges(), backward.Edges())
	})
}

func TestSubgraphText(t *testing.T) {
	t.Run("renders one line per edge", func(t *testing.T) {
		g := NewSubgraph()
		g.addNode(core.Concept{Id: 123, Name: "Human immunodeficiency virus infection"})
		g.addNode(core.Concept{Id: 11111, Name: "Virus disease"})
		g.addEdge(core.Relationship{From: 123, To: 11111, Type: 116680003})

		lexicon := core.NewLexicon(map[core.ID]string{
			123:       "Human immunodeficiency virus infection",
			11111:     "Virus disease",
			116680003: "Is a",
		})

		expected := "Graph:\n" +
			"Human immunodeficiency virus infection --[Is a]--> Virus disease\n"
		assert.Equal(t, expected, g.Text(lexicon))
	})

	t.Run("unresolved identifiers render as raw decimals", func(t *testing.T) {
		g := NewSubgraph()
		g.addNode(core.Concept{Id: 123, Name: "HIV"})
		g.addNode(core.Concept{Id: 11111, Name: "Virus disease"})
		g.addEdge(core.Relationship{From: 123, To: 11111, Type: 99999})

		lexicon := core.NewLexicon(map[core.ID]string{
			123:   "HIV",
			11111: "Virus disease",
		})

		assert.Equal(t, "Graph:\nHIV --[99999]--> Virus disease\n", g.Text(lexicon))
	})

	t.Run("empty subgraph renders only the header", func(t *testing.T) {
		assert.Equal(t, "Graph:\n", NewSubgraph().Text(core.NewLexicon(nil)))
	})
}
