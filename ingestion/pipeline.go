package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/clingraph/ai"
	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/storage"
)

const (
	// DefaultBatchSize is the number of concept names embedded per call.
	DefaultBatchSize = 64
)

// Pipeline ingests vocabulary release files: it stores concepts with their
// semantic-type tags attached, stores relationships, and computes and stores
// an embedding vector for every concept name.
type Pipeline struct {
	repo      storage.VocabularyRepository
	embedder  ai.Embedder
	cache     storage.EmbeddingCache
	pool      *ants.Pool
	batchSize int
	model     string
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithCache sets an embedding cache. Names whose cache key already holds a
// vector are not re-embedded.
func WithCache(cache storage.EmbeddingCache) Option {
	return func(p *Pipeline) error {
		p.cache = cache
		return nil
	}
}

// WithBatchSize sets how many concept names are embedded per call.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithModelTag sets the embedding model name mixed into cache keys, so a
// model change invalidates the cache.
func WithModelTag(model string) Option {
	return func(p *Pipeline) error {
		p.model = model
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(repo storage.VocabularyRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repo:      repo,
		embedder:  embedder,
		pool:      pool,
		batchSize: DefaultBatchSize,
		logger:    slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.pool.Release()
			return nil, err
		}
	}
	return p, nil
}

// Release frees the pipeline's worker pool. The pipeline must not be used
// after Release.
func (p *Pipeline) Release() {
	p.pool.Release()
}

// Run parses and ingests a vocabulary release. semanticTypesPath may be
// empty, in which case concepts carry no semantic-type tags.
func (p *Pipeline) Run(ctx context.Context, conceptsPath, relationshipsPath, semanticTypesPath string) error {
	concepts, err := parseFile(conceptsPath, ParseConcepts)
	if err != nil {
		return fmt.Errorf("parsing concepts from %s: %w", conceptsPath, err)
	}

	relationships, err := parseFile(relationshipsPath, ParseRelationships)
	if err != nil {
		return fmt.Errorf("parsing relationships from %s: %w", relationshipsPath, err)
	}

	var tags map[core.ID][]string
	if semanticTypesPath != "" {
		tags, err = parseFile(semanticTypesPath, ParseSemanticTypes)
		if err != nil {
			return fmt.Errorf("parsing semantic types from %s: %w", semanticTypesPath, err)
		}
	}

	if err := p.IngestConcepts(ctx, concepts, tags); err != nil {
		return err
	}
	return p.IngestRelationships(ctx, relationships)
}

// IngestConcepts tags, stores and embeds the given concepts. Tags for ids
// not present among the concepts are ignored with a warning.
func (p *Pipeline) IngestConcepts(ctx context.Context, concepts []*core.Concept, tags map[core.ID][]string) error {
	known := make(map[core.ID]bool, len(concepts))
	for _, concept := range concepts {
		concept.SemanticTypes = tags[concept.Id]
		known[concept.Id] = true
	}
	for id := range tags {
		if !known[id] {
			p.logger.Warn("semantic types for unknown concept", "id", id)
		}
	}

	// Batches embed in parallel on the pool; each batch writes vectors for
	// its own concept ids, so completion order does not matter.
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for start := 0; start < len(concepts); start += p.batchSize {
		if err := ctx.Err(); err != nil {
			fail(err)
			break
		}
		end := min(start+p.batchSize, len(concepts))
		batch := concepts[start:end]

		if err := p.repo.AddConcepts(ctx, batch...); err != nil {
			fail(err)
			break
		}

		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.embedBatch(ctx, batch); err != nil {
				fail(err)
			}
		}); err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	p.logger.Info("concepts ingested", "count", len(concepts))
	return nil
}

// IngestRelationships stores the given relationships.
func (p *Pipeline) IngestRelationships(ctx context.Context, relationships []*core.Relationship) error {
	for start := 0; start < len(relationships); start += p.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+p.batchSize, len(relationships))
		if err := p.repo.AddRelationships(ctx, relationships[start:end]...); err != nil {
			return err
		}
	}

	p.logger.Info("relationships ingested", "count", len(relationships))
	return nil
}

// embedBatch computes and stores vectors for one batch of concepts, serving
// what it can from the cache and embedding the misses in a single call. It
// runs on pool workers, one batch per task.
func (p *Pipeline) embedBatch(ctx context.Context, batch []*core.Concept) error {
	var (
		missed []*core.Concept
		texts  []string
		cached int
	)
	for _, concept := range batch {
		text := strings.ToLower(concept.Name)
		if p.cache != nil {
			vector, err := p.cache.GetCachedVector(ctx, p.cacheKey(text))
			if err == nil {
				if err := p.repo.PutConceptVector(ctx, concept.Id, vector); err != nil {
					return err
				}
				cached++
				continue
			}
			if !errors.Is(err, storage.ErrNotFound) {
				return err
			}
		}
		missed = append(missed, concept)
		texts = append(texts, text)
	}
	if cached > 0 {
		p.logger.Debug("embedding cache hits", "count", cached)
	}
	if len(missed) == 0 {
		return nil
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrEmbeddingFailure, err)
	}
	if len(vectors) != len(missed) {
		return fmt.Errorf("%w: got %d vectors for %d names", core.ErrEmbeddingFailure, len(vectors), len(missed))
	}

	for i, concept := range missed {
		if err := p.repo.PutConceptVector(ctx, concept.Id, vectors[i]); err != nil {
			return err
		}
		if p.cache != nil {
			if err := p.cache.PutCachedVector(ctx, p.cacheKey(texts[i]), vectors[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// cacheKey hashes the model tag and the embedded text into a cache key.
func (p *Pipeline) cacheKey(text string) core.ID {
	return core.IDFromContent(p.model + "\x00" + text)
}

func parseFile[T any](path string, parse func(r io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return parse(f)
}
