// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Request-level failures
var (
	// ErrEmbeddingFailure indicates that no embedding vector could be produced
	// for a non-empty phrase. An empty ranked result is NOT this error; callers
	// must treat an empty result set as "no match".
	ErrEmbeddingFailure = errors.New("no embedding produced for phrase")

	// ErrEmptyComposition indicates that composition received zero non-empty
	// subgraphs. This is a caller-input error: the supplied seeds had no
	// presence in the concept graph.
	ErrEmptyComposition = errors.New("no non-empty subgraphs to compose")
)

// Domain validation errors
var (
	// ErrInvalidConcept indicates a Concept failed validation.
	ErrInvalidConcept = errors.New("invalid concept")

	// ErrInvalidRelationship indicates a Relationship failed validation.
	ErrInvalidRelationship = errors.New("invalid relationship")

	// ErrZeroID indicates an identifier field holds the zero value.
	ErrZeroID = errors.New("identifier cannot be zero")

	// ErrEmptyConceptName indicates the concept Name field is empty.
	ErrEmptyConceptName = errors.New("concept name cannot be empty")
)
