package search

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/embed"
	"github.com/poiesic/clingraph/index"
)

// Searcher resolves terms against a concept index. It is safe for concurrent
// use once constructed.
type Searcher struct {
	index     *index.ConceptIndex
	generator *embed.Generator
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a term resolver backed by the given index and
// embedding generator.
func NewSearcher(idx *index.ConceptIndex, generator *embed.Generator, opts ...Option) (*Searcher, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Searcher{
		index:     idx,
		generator: generator,
		logger:    slog.Default().With("component", "searcher"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Resolve maps each term to a ranked candidate list. Matches from all
// permutation queries of a term are merged, deduplicated by concept id
// keeping the highest score (ties go to the wider token span), sorted by
// score descending, and truncated to topK (topK <= 0 means unlimited).
// Terms with no match above the cutoff contribute no group; an empty result
// is not an error. Terms whose embedding fails are logged and skipped, but
// when every term fails the call returns core.ErrEmbeddingFailure.
func (s *Searcher) Resolve(ctx context.Context, terms []string, cutoff float32, topK int) ([][]core.ResolvedConcept, error) {
	groups := make([][]core.ResolvedConcept, 0, len(terms))
	failed := 0
	for _, term := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		group, err := s.resolveTerm(ctx, term, cutoff, topK)
		if err != nil {
			if errors.Is(err, core.ErrEmbeddingFailure) {
				s.logger.Warn("skipping term, embedding failed", "term", term, "err", err)
				failed++
				continue
			}
			return nil, err
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}

	if len(terms) > 0 && failed == len(terms) {
		return nil, core.ErrEmbeddingFailure
	}
	return groups, nil
}

func (s *Searcher) resolveTerm(ctx context.Context, term string, cutoff float32, topK int) ([]core.ResolvedConcept, error) {
	embeddings, err := s.generator.Generate(ctx, term)
	if err != nil {
		return nil, err
	}

	var candidates []core.ResolvedConcept
	for _, emb := range embeddings {
		for _, m := range s.index.Search(emb.Vector, cutoff, 0) {
			candidates = append(candidates, core.ResolvedConcept{
				Id:         m.Id,
				Score:      m.Score,
				SpanTokens: emb.SpanTokens,
			})
		}
	}
	return rankCandidates(candidates, topK), nil
}

// rankCandidates merges raw per-query candidates into a ranked group:
// duplicates of a concept id collapse to the highest score, a score tie
// keeps the wider token span, and the survivors sort by score descending,
// span descending, id ascending, truncated to topK (topK <= 0 unlimited).
func rankCandidates(candidates []core.ResolvedConcept, topK int) []core.ResolvedConcept {
	best := make(map[core.ID]core.ResolvedConcept, len(candidates))
	for _, c := range candidates {
		prev, seen := best[c.Id]
		if !seen || c.Score > prev.Score ||
			(c.Score == prev.Score && c.SpanTokens > prev.SpanTokens) {
			best[c.Id] = c
		}
	}

	group := make([]core.ResolvedConcept, 0, len(best))
	for _, rc := range best {
		group = append(group, rc)
	}
	slices.SortFunc(group, func(a, b core.ResolvedConcept) int {
		switch {
		case a.Score != b.Score:
			if a.Score > b.Score {
				return -1
			}
			return 1
		case a.SpanTokens != b.SpanTokens:
			return b.SpanTokens - a.SpanTokens
		case a.Id < b.Id:
			return -1
		case a.Id > b.Id:
			return 1
		default:
			return 0
		}
	})

	if topK > 0 && len(group) > topK {
		group = group[:topK]
	}
	return group
}
