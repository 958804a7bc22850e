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

import "fmt"

// ValidateConcept validates a Concept according to domain rules.
//
// Validation rules:
//   - Id must not be zero
//   - Name must not be empty
//
// NOT validated:
//   - SemanticTypes (a concept may carry zero tags)
func ValidateConcept(concept *Concept) error {
	if concept == nil {
		return fmt.Errorf("%w: concept is nil", ErrInvalidConcept)
	}

	if concept.Id == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrZeroID)
	}

	if concept.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrEmptyConceptName)
	}

	return nil
}

// ValidateRelationship validates a Relationship according to domain rules.
//
// Validation rules:
//   - From, To and Type must not be zero
//
// NOT validated:
//   - Type resolvability in the lexicon (unresolved types render with the
//     raw identifier as fallback, never fail)
//   - Provenance (optional, open-ended)
func ValidateRelationship(rel *Relationship) error {
	if rel == nil {
		return fmt.Errorf("%w: relationship is nil", ErrInvalidRelationship)
	}

	if rel.From == 0 || rel.To == 0 {
		return fmt.Errorf("%w: endpoint %w", ErrInvalidRelationship, ErrZeroID)
	}

	if rel.Type == 0 {
		return fmt.Errorf("%w: type %w", ErrInvalidRelationship, ErrZeroID)
	}

	return nil
}
