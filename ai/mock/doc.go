// Package mock provides test doubles for the ai package interfaces.
//
// MockEmbedder produces deterministic vectors derived from text hashes so
// tests get stable similarity orderings without an external embedding
// service, and supports behavior injection via public function fields.
package mock
