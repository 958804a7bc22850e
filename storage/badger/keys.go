package badger

import (
	"encoding/binary"

	"github.com/poiesic/clingraph/core"
)

// Key prefixes for different data types
const (
	conceptPrefix        = "vocab:con"
	relationshipPrefix   = "vocab:rel"
	conceptVectorPrefix  = "vocab:vec"
	embeddingCachePrefix = "cache:emb"
)

// makeConceptKey generates a key for a concept by id. Ids are written in
// BigEndian order so prefix iteration visits concepts in ascending id order.
func makeConceptKey(id core.ID) []byte {
	return appendID([]byte(conceptPrefix+":"), id)
}

// makeRelationshipKey generates a key for a relationship from its
// (from, to, type) triple, which also deduplicates repeated edges.
func makeRelationshipKey(rel *core.Relationship) []byte {
	buf := appendID([]byte(relationshipPrefix+":"), rel.From)
	buf = appendID(buf, rel.To)
	return appendID(buf, rel.Type)
}

// makeConceptVectorKey generates a key for a concept's embedding vector.
func makeConceptVectorKey(id core.ID) []byte {
	return appendID([]byte(conceptVectorPrefix+":"), id)
}

// makeEmbeddingCacheKey generates a key for a cached embedding.
func makeEmbeddingCacheKey(key core.ID) []byte {
	return appendID([]byte(embeddingCachePrefix+":"), key)
}

func appendID(buf []byte, id core.ID) []byte {
	return binary.BigEndian.AppendUint64(buf, uint64(id))
}

// idFromKey recovers the trailing id from a prefixed key.
func idFromKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}
