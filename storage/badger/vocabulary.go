package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/storage"
)

// VocabularyRepository implements storage.VocabularyRepository for BadgerDB.
type VocabularyRepository struct {
	backend *Backend
}

var _ storage.VocabularyRepository = (*VocabularyRepository)(nil)

// NewVocabularyRepository creates a new VocabularyRepository.
func NewVocabularyRepository(backend *Backend) (*VocabularyRepository, error) {
	return &VocabularyRepository{
		backend: backend,
	}, nil
}

// Close releases resources. VocabularyRepository has no resources of its own;
// the backend is closed separately.
func (r *VocabularyRepository) Close() error {
	return nil
}

// AddConcepts stores one or more concepts.
func (r *VocabularyRepository) AddConcepts(ctx context.Context, concepts ...*core.Concept) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, concept := range concepts {
			if err := core.ValidateConcept(concept); err != nil {
				return err
			}
			key := makeConceptKey(concept.Id)
			if err := tx.Set(key, storage.MarshalConcept(concept)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AddRelationships stores one or more relationships, deduplicated on their
// (from, to, type) triple.
func (r *VocabularyRepository) AddRelationships(ctx context.Context, relationships ...*core.Relationship) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, rel := range relationships {
			if err := core.ValidateRelationship(rel); err != nil {
				return err
			}
			key := makeRelationshipKey(rel)
			if err := tx.Set(key, storage.MarshalRelationship(rel)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetConcept retrieves a single concept by id.
func (r *VocabularyRepository) GetConcept(ctx context.Context, id core.ID) (*core.Concept, error) {
	var concept *core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		data, err := readValue(tx, makeConceptKey(id))
		if err != nil {
			return err
		}
		concept, err = storage.UnmarshalConcept(data)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return concept, nil
}

// PutConceptVector stores the embedding vector for a concept.
func (r *VocabularyRepository) PutConceptVector(ctx context.Context, id core.ID, vector core.Vector) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeConceptVectorKey(id), storage.MarshalVector(vector)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetConceptVector retrieves the embedding vector for a concept.
func (r *VocabularyRepository) GetConceptVector(ctx context.Context, id core.ID) (core.Vector, error) {
	var vector core.Vector
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		data, err := readValue(tx, makeConceptVectorKey(id))
		if err != nil {
			return err
		}
		vector, err = storage.UnmarshalVector(data)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// ConceptCount returns the number of stored concepts.
func (r *VocabularyRepository) ConceptCount(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(conceptPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// ForEachConcept calls fn for every stored concept in ascending id order.
func (r *VocabularyRepository) ForEachConcept(ctx context.Context, fn func(*core.Concept) error) error {
	return r.iterate(ctx, conceptPrefix, func(data []byte) error {
		concept, err := storage.UnmarshalConcept(data)
		if err != nil {
			return err
		}
		return fn(concept)
	})
}

// ForEachRelationship calls fn for every stored relationship in ascending
// (from, to, type) order.
func (r *VocabularyRepository) ForEachRelationship(ctx context.Context, fn func(*core.Relationship) error) error {
	return r.iterate(ctx, relationshipPrefix, func(data []byte) error {
		rel, err := storage.UnmarshalRelationship(data)
		if err != nil {
			return err
		}
		return fn(rel)
	})
}

// ForEachConceptVector calls fn for every stored concept vector in ascending
// concept id order.
func (r *VocabularyRepository) ForEachConceptVector(ctx context.Context, fn func(core.ID, core.Vector) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(conceptVectorPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			key := item.Key()
			id := idFromKey(key)
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			vector, err := storage.UnmarshalVector(data)
			if err != nil {
				return err
			}
			if err := fn(id, vector); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// iterate walks all values under a key prefix.
func (r *VocabularyRepository) iterate(ctx context.Context, prefix string, fn func([]byte) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := iter.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(data); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// readValue reads a value by key, mapping badger's missing-key error to
// storage.ErrNotFound.
func readValue(tx *badger.Txn, key []byte) ([]byte, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}
