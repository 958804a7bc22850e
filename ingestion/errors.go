package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a Pipeline is constructed
	// without a vocabulary repository.
	ErrRepositoryRequired = errors.New("vocabulary repository is required")

	// ErrEmbedderRequired is returned when a Pipeline is constructed without
	// an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrMalformedLine is returned when a release file line does not have
	// the expected number of tab-separated fields.
	ErrMalformedLine = errors.New("malformed line")
)
