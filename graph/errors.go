package graph

import "errors"

var (
	// ErrUnknownEndpoint is returned when a relationship references a concept
	// that has not been added to the builder. Every edge's endpoints must be
	// present as nodes.
	ErrUnknownEndpoint = errors.New("relationship endpoint not in graph")
)
