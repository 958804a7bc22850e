package storage

import (
	"context"

	"github.com/poiesic/clingraph/core"
)

// VocabularyRepository stores the ingested clinical vocabulary: concepts,
// relationships, and the embedding vector computed for each concept name.
// Implementations must be safe for concurrent use.
type VocabularyRepository interface {
	// AddConcepts stores one or more concepts. An existing concept with the
	// same id is overwritten.
	AddConcepts(ctx context.Context, concepts ...*core.Concept) error

	// AddRelationships stores one or more relationships. Endpoint existence
	// is not checked here; the graph builder enforces it at load time.
	AddRelationships(ctx context.Context, relationships ...*core.Relationship) error

	// GetConcept retrieves a single concept by id.
	// Returns ErrNotFound if the concept doesn't exist.
	GetConcept(ctx context.Context, id core.ID) (*core.Concept, error)

	// PutConceptVector stores the embedding vector for a concept.
	PutConceptVector(ctx context.Context, id core.ID, vector core.Vector) error

	// GetConceptVector retrieves the embedding vector for a concept.
	// Returns ErrNotFound if no vector has been stored.
	GetConceptVector(ctx context.Context, id core.ID) (core.Vector, error)

	// ConceptCount returns the number of stored concepts.
	ConceptCount(ctx context.Context) (int, error)

	// ForEachConcept calls fn for every stored concept, in ascending id
	// order. Iteration stops on the first error, which is returned.
	ForEachConcept(ctx context.Context, fn func(*core.Concept) error) error

	// ForEachRelationship calls fn for every stored relationship, in
	// ascending (from, to, type) order.
	ForEachRelationship(ctx context.Context, fn func(*core.Relationship) error) error

	// ForEachConceptVector calls fn for every stored concept vector, in
	// ascending concept id order.
	ForEachConceptVector(ctx context.Context, fn func(core.ID, core.Vector) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// EmbeddingCache memoizes embedding calls across ingestion runs, keyed by a
// content hash of the model name and the embedded text.
type EmbeddingCache interface {
	// GetCachedVector returns the cached vector for a key.
	// Returns ErrNotFound on a cache miss.
	GetCachedVector(ctx context.Context, key core.ID) (core.Vector, error)

	// PutCachedVector stores a vector under a key.
	PutCachedVector(ctx context.Context, key core.ID, vector core.Vector) error
}
