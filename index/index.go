package index

import (
	"fmt"
	"slices"

	"github.com/poiesic/clingraph/core"
)

// Match pairs a concept identifier with its similarity score.
type Match struct {
	Id    core.ID
	Score float32
}

// ConceptIndex maps concept identifiers to reference embeddings and answers
// nearest-neighbor queries by brute-force cosine scan. It is immutable once
// built.
type ConceptIndex struct {
	ids     []core.ID
	vectors [][]float32
	dim     int
}

// Builder accumulates reference vectors and seals them into a ConceptIndex.
type Builder struct {
	slot    map[core.ID]int
	ids     []core.ID
	vectors [][]float32
	dim     int
}

// NewBuilder creates an empty index builder.
func NewBuilder() *Builder {
	return &Builder{slot: make(map[core.ID]int)}
}

// Add registers a reference vector for a concept. The vector is copied and
// L2-normalized. The first vector fixes the index dimension; re-adding an
// existing id replaces its vector.
func (b *Builder) Add(id core.ID, vector []float32) error {
	if len(vector) == 0 {
		return fmt.Errorf("concept %d: %w", id, ErrEmptyVector)
	}
	if b.dim == 0 {
		b.dim = len(vector)
	} else if len(vector) != b.dim {
		return fmt.Errorf("concept %d: %w: got %d, index has %d", id, ErrDimensionMismatch, len(vector), b.dim)
	}

	normalized := Normalize(vector)
	if i, ok := b.slot[id]; ok {
		b.vectors[i] = normalized
		return nil
	}

	b.slot[id] = len(b.ids)
	b.ids = append(b.ids, id)
	b.vectors = append(b.vectors, normalized)
	return nil
}

// Build seals the builder into an immutable ConceptIndex. The builder must
// not be used afterwards.
func (b *Builder) Build() *ConceptIndex {
	return &ConceptIndex{
		ids:     b.ids,
		vectors: b.vectors,
		dim:     b.dim,
	}
}

// Len returns the number of reference vectors in the index.
func (x *ConceptIndex) Len() int {
	return len(x.ids)
}

// Dim returns the vector dimension the index was built with, or 0 when empty.
func (x *ConceptIndex) Dim() int {
	return x.dim
}

// Search returns the concepts whose reference embeddings score at least
// cutoff against the query vector, ordered by score descending (ties broken
// by ascending id for stability) and truncated to limit. limit <= 0 means
// unlimited. An empty result is "no match", not an error. A query whose
// dimension differs from the index's cannot match anything and returns nil.
//
// The query is normalized internally; callers may pass raw embedder output.
func (x *ConceptIndex) Search(vector []float32, cutoff float32, limit int) []Match {
	if len(x.ids) == 0 || len(vector) != x.dim {
		return nil
	}

	query := Normalize(vector)

	var matches []Match
	for i, ref := range x.vectors {
		score := dotProduct(query, ref)
		if score >= cutoff {
			matches = append(matches, Match{Id: x.ids[i], Score: score})
		}
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
