package search

import "errors"

var (
	// ErrIndexRequired is returned when a Searcher is constructed without a
	// concept index.
	ErrIndexRequired = errors.New("concept index is required")

	// ErrGeneratorRequired is returned when a Searcher is constructed without
	// an embedding generator.
	ErrGeneratorRequired = errors.New("embedding generator is required")
)
