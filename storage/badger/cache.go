package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/storage"
)

// EmbeddingCache implements storage.EmbeddingCache for BadgerDB. Cache
// entries share the vocabulary database but live under their own key prefix,
// so a cache can be carried across ingestion runs.
type EmbeddingCache struct {
	backend *Backend
}

var _ storage.EmbeddingCache = (*EmbeddingCache)(nil)

// NewEmbeddingCache creates a new EmbeddingCache.
func NewEmbeddingCache(backend *Backend) (*EmbeddingCache, error) {
	return &EmbeddingCache{
		backend: backend,
	}, nil
}

// GetCachedVector returns the cached vector for a key.
func (c *EmbeddingCache) GetCachedVector(ctx context.Context, key core.ID) (core.Vector, error) {
	var vector core.Vector
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		data, err := readValue(tx, makeEmbeddingCacheKey(key))
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

// PutCachedVector stores a vector under a key.
func (c *EmbeddingCache) PutCachedVector(ctx context.Context, key core.ID, vector core.Vector) error {
	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeEmbeddingCacheKey(key), storage.MarshalVector(vector)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
