package embed

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/clingraph/ai"
	"github.com/poiesic/clingraph/core"
)

// Embedding is one vector produced for a phrase, together with the number of
// tokens the embedded span covers.
type Embedding struct {
	Vector     []float32
	SpanTokens int
}

// Generator produces permutation embeddings for phrases. It is safe for
// concurrent use; per-permutation embedding calls run on a shared worker pool.
type Generator struct {
	embedder  ai.Embedder
	pool      *ants.Pool
	threshold int
	maxPerms  int
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator) error

// WithPoolSize sets the worker pool size for concurrent embedding calls.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(g *Generator) error {
		if size < 1 {
			size = 1
		}
		if g.pool != nil {
			g.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		g.pool = pool
		return nil
	}
}

// WithPermutationLimits overrides the exhaustive-enumeration threshold and
// the permutation cap applied above it.
func WithPermutationLimits(threshold, maxPermutations int) Option {
	return func(g *Generator) error {
		if threshold < 1 {
			threshold = 1
		}
		if maxPermutations < 1 {
			maxPermutations = 1
		}
		g.threshold = threshold
		g.maxPerms = maxPermutations
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// NewGenerator creates a permutation embedding generator.
func NewGenerator(embedder ai.Embedder, opts ...Option) (*Generator, error) {
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

	g := &Generator{
		embedder:  embedder,
		pool:      pool,
		threshold: DefaultPermutationThreshold,
		maxPerms:  DefaultMaxPermutations,
		logger:    slog.Default().With("component", "embed-generator"),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			g.pool.Release()
			return nil, err
		}
	}

	return g, nil
}

// Release frees the generator's worker pool. The generator must not be used
// after Release.
func (g *Generator) Release() {
	g.pool.Release()
}

// Generate tokenizes the phrase and embeds its token-order permutations.
// Results are returned in permutation order regardless of which embedding
// call finished first. Failed permutations are logged and skipped; the call
// fails with core.ErrEmbeddingFailure only when no vector at all could be
// produced, including for empty or whitespace-only phrases.
func (g *Generator) Generate(ctx context.Context, phrase string) ([]Embedding, error) {
	tokens := strings.Fields(strings.ToLower(phrase))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty phrase", core.ErrEmbeddingFailure)
	}

	limit := 0
	if len(tokens) > g.threshold {
		limit = g.maxPerms
	}
	perms := permute(tokens, limit)

	results := make([]*Embedding, len(perms))
	var wg sync.WaitGroup
	for i, perm := range perms {
		text := strings.Join(perm, " ")
		wg.Add(1)
		submitErr := g.pool.Submit(func() {
			defer wg.Done()
			vector, err := g.embedder.EmbedText(ctx, text)
			if err != nil {
				g.logger.Warn("embedding failed for permutation", "text", text, "err", err)
				return
			}
			if len(vector) == 0 {
				g.logger.Warn("embedder returned empty vector", "text", text)
				return
			}
			results[i] = &Embedding{Vector: vector, SpanTokens: len(perm)}
		})
		if submitErr != nil {
			wg.Done()
			g.logger.Warn("failed to submit embedding task", "err", submitErr)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embeddings := make([]Embedding, 0, len(results))
	for _, r := range results {
		if r != nil {
			embeddings = append(embeddings, *r)
		}
	}

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: %q", core.ErrEmbeddingFailure, phrase)
	}
	return embeddings, nil
}
