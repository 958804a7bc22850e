package index

import "errors"

var (
	// ErrEmptyVector indicates a zero-length vector was supplied.
	ErrEmptyVector = errors.New("vector cannot be empty")

	// ErrDimensionMismatch indicates a vector's dimension differs from the
	// dimension the index was built with.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
