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


package reindex

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/poiesic/clingraph/ai"
	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/storage"
)

// Config holds configuration for a reindexing run.
type Config struct {
	// BatchSize is the number of concepts to embed in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of concepts)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed batches
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer recomputes the stored vector of every concept in a repository.
type Reindexer struct {
	repo     storage.VocabularyRepository
	embedder ai.Embedder
	config   *Config
	progress io.Writer
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(repo storage.VocabularyRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reindexer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Reindexer{
		repo:     repo,
		embedder: embedder,
		config:   config,
		progress: progress,
	}, nil
}

// Run re-embeds every concept name and overwrites its stored vector.
// Progress is reported to the configured writer.
func (r *Reindexer) Run(ctx context.Context) error {
	total, err := r.repo.ConceptCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count concepts: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "No concepts found in database (0 concepts)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reindexing of %d concepts (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	batch := make([]*core.Concept, 0, r.config.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.processBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		processed += len(batch)
		tracker.Update(processed)
		batch = batch[:0]
		return nil
	}

	err = r.repo.ForEachConcept(ctx, func(concept *core.Concept) error {
		batch = append(batch, concept)
		if len(batch) >= r.config.BatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	tracker.Finish()
	fmt.Fprintf(r.progress, "Reindexed %d concepts in %s\n", processed, tracker.Elapsed().Round(time.Millisecond))
	return nil
}

// processBatch embeds one batch of concept names and stores the vectors,
// retrying the embedding call with backoff.
func (r *Reindexer) processBatch(ctx context.Context, batch []*core.Concept) error {
	texts := make([]string, len(batch))
	for i, concept := range batch {
		texts[i] = strings.ToLower(concept.Name)
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embErr error
		vectors, embErr = r.embedder.EmbedTexts(ctx, texts)
		return embErr
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrEmbeddingFailure, err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("%w: got %d vectors for %d names", core.ErrEmbeddingFailure, len(vectors), len(batch))
	}

	for i, concept := range batch {
		if err := r.repo.PutConceptVector(ctx, concept.Id, vectors[i]); err != nil {
			return err
		}
	}
	return nil
}
