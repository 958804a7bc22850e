package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Vocabulary concepts carry the stable identifiers assigned by the source
// terminology; embedding-cache entries use content-based hashes.
type ID uint64

// String renders the identifier in decimal form, which is also the fallback
// display name for concepts missing from the lexicon.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. It is used for
// embedding-cache keys so that re-ingesting a vocabulary skips unchanged names.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Concept is an entry in the controlled vocabulary and a node in the concept
// graph. SemanticTypes are fixed at construction time; once a graph snapshot
// is built, concepts are never mutated.
type Concept struct {
	Id            ID
	Name          string
	SemanticTypes []string
}

// Relationship is a directed, typed edge between two concepts. Type is itself
// a concept identifier resolvable through the same lexicon as the endpoints.
// Provenance carries open-ended auxiliary attributes (source file, release
// version) that do not participate in traversal.
type Relationship struct {
	From       ID
	To         ID
	Type       ID
	Group      int32
	Provenance map[string]string
}

// Vector is a reference embedding stored alongside a concept.
type Vector []float32

// ResolvedConcept pairs a concept identifier with the similarity score of the
// best match that produced it. SpanTokens records how many tokens the winning
// embedding covered; longer spans win score ties during ranking.
type ResolvedConcept struct {
	Id         ID
	Score      float32
	SpanTokens int
}
