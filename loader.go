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


package clingraph

import (
	"context"
	"fmt"

	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/graph"
	"github.com/poiesic/clingraph/index"
	"github.com/poiesic/clingraph/storage"
)

// Vocabulary is the in-memory form of a loaded vocabulary: the immutable
// concept graph, the vector index over concept names, and the id-to-name
// lexicon. All three are read-only after loading.
type Vocabulary struct {
	Snapshot *graph.Snapshot
	Index    *index.ConceptIndex
	Lexicon  *core.Lexicon
}

// LoadVocabulary reads every concept, relationship and concept vector from
// the repository and builds the in-memory structures the engine serves from.
// Relationships referencing unknown concepts are skipped with a warning so a
// partially ingested store still loads.
func LoadVocabulary(ctx context.Context, repo storage.VocabularyRepository) (*Vocabulary, error) {
	logger := defaultLogger()

	graphBuilder := graph.NewBuilder()
	names := make(map[core.ID]string)

	err := repo.ForEachConcept(ctx, func(concept *core.Concept) error {
		names[concept.Id] = concept.Name
		return graphBuilder.AddConcept(concept)
	})
	if err != nil {
		return nil, fmt.Errorf("loading concepts: %w", err)
	}

	skipped := 0
	err = repo.ForEachRelationship(ctx, func(rel *core.Relationship) error {
		if addErr := graphBuilder.AddRelationship(rel); addErr != nil {
			logger.Warn("skipping relationship", "from", rel.From, "to", rel.To, "err", addErr)
			skipped++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading relationships: %w", err)
	}
	if skipped > 0 {
		logger.Warn("relationships skipped during load", "count", skipped)
	}

	indexBuilder := index.NewBuilder()
	err = repo.ForEachConceptVector(ctx, func(id core.ID, vector core.Vector) error {
		return indexBuilder.Add(id, vector)
	})
	if err != nil {
		return nil, fmt.Errorf("loading concept vectors: %w", err)
	}

	snapshot := graphBuilder.Build()
	conceptIndex := indexBuilder.Build()
	logger.Info("vocabulary loaded",
		"concepts", snapshot.Len(),
		"relationships", snapshot.NumEdges(),
		"vectors", conceptIndex.Len())

	return &Vocabulary{
		Snapshot: snapshot,
		Index:    conceptIndex,
		Lexicon:  core.NewLexicon(names),
	}, nil
}
