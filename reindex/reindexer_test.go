package reindex

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/clingraph/ai/mock"
	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/storage"
	badgerstore "github.com/poiesic/clingraph/storage/badger"
)

func setupRepo(t *testing.T) storage.VocabularyRepository {
	t.Helper()
	repo, _, backend, err := badgerstore.NewMemoryVocabulary()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}
}

func TestNewReindexer(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	t.Run("requires a repository", func(t *testing.T) {
		_, err := NewReindexer(nil, embedder, nil, io.Discard)
		assert.ErrorIs(t, err, ErrRepositoryRequired)
	})

	t.Run("requires an embedder", func(t *testing.T) {
		_, err := NewReindexer(setupRepo(t), nil, nil, io.Discard)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}

func TestReindexerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites every stored vector", func(t *testing.T) {
		repo := setupRepo(t)
		ids := []core.ID{1, 2, 3}
		for _, id := range ids {
			require.NoError(t, repo.AddConcepts(ctx, &core.Concept{Id: id, Name: "concept"}))
			require.NoError(t, repo.PutConceptVector(ctx, id, core.Vector{0}))
		}

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{1, 2}
			}
			return vectors, nil
		}

		var out bytes.Buffer
		reindexer, err := NewReindexer(repo, embedder, testConfig(), &out)
		require.NoError(t, err)
		require.NoError(t, reindexer.Run(ctx))

		for _, id := range ids {
			vector, err := repo.GetConceptVector(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, core.Vector{1, 2}, vector)
		}
		assert.Contains(t, out.String(), "Reindexed 3 concepts")
	})

	t.Run("empty repository is a no-op", func(t *testing.T) {
		repo := setupRepo(t)
		reindexer, err := NewReindexer(repo, mock.NewMockEmbedder(), testConfig(), io.Discard)
		require.NoError(t, err)
		assert.NoError(t, reindexer.Run(ctx))
	})

	t.Run("transient embedding failures are retried", func(t *testing.T) {
		repo := setupRepo(t)
		require.NoError(t, repo.AddConcepts(ctx, &core.Concept{Id: 1, Name: "concept"}))

		calls := 0
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("transient")
			}
			return [][]float32{{1}}, nil
		}

		reindexer, err := NewReindexer(repo, embedder, testConfig(), io.Discard)
		require.NoError(t, err)
		require.NoError(t, reindexer.Run(ctx))
		assert.Equal(t, 2, calls)
	})

	t.Run("persistent failure propagates as embedding failure", func(t *testing.T) {
		repo := setupRepo(t)
		require.NoError(t, repo.AddConcepts(ctx, &core.Concept{Id: 1, Name: "concept"}))

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(_ context.Context, _ []string) ([][]float32, error) {
			return nil, errors.New("down")
		}

		reindexer, err := NewReindexer(repo, embedder, testConfig(), io.Discard)
		require.NoError(t, err)
		assert.ErrorIs(t, reindexer.Run(ctx), core.ErrEmbeddingFailure)
	})
}
