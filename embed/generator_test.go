package embed

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/clingraph/ai/mock"
	"github.com/poiesic/clingraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		g, err := NewGenerator(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer g.Release()
		assert.NotNil(t, g)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewGenerator(nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("with pool size", func(t *testing.T) {
		g, err := NewGenerator(mock.NewMockEmbedder(), WithPoolSize(2))
		require.NoError(t, err)
		defer g.Release()
	})
}

func TestGenerate_SingleToken(t *testing.T) {
	g, err := NewGenerator(mock.NewMockEmbedder())
	require.NoError(t, err)
	defer g.Release()

	embeddings, err := g.Generate(context.Background(), "dyspnea")
	require.NoError(t, err)
	require.Len(t, embeddings, 1)
	assert.Equal(t, 1, embeddings[0].SpanTokens)
	assert.NotEmpty(t, embeddings[0].Vector)
}

func TestGenerate_PermutationCount(t *testing.T) {
	g, err := NewGenerator(mock.NewMockEmbedder())
	require.NoError(t, err)
	defer g.Release()

	// Three tokens, below the threshold: exhaustive 3! = 6 permutations.
	embeddings, err := g.Generate(context.Background(), "acute chest pain")
	require.NoError(t, err)
	assert.Len(t, embeddings, 6)
	for _, e := range embeddings {
		assert.Equal(t, 3, e.SpanTokens)
	}
}

func TestGenerate_LongPhraseCapped(t *testing.T) {
	g, err := NewGenerator(mock.NewMockEmbedder())
	require.NoError(t, err)
	defer g.Release()

	// Five tokens would be 120 exhaustive permutations; the cap applies.
	embeddings, err := g.Generate(context.Background(), "chest pain shortness of breath")
	require.NoError(t, err)
	assert.Len(t, embeddings, DefaultMaxPermutations)
}

func TestGenerate_CustomLimits(t *testing.T) {
	g, err := NewGenerator(mock.NewMockEmbedder(), WithPermutationLimits(1, 2))
	require.NoError(t, err)
	defer g.Release()

	embeddings, err := g.Generate(context.Background(), "chest pain")
	require.NoError(t, err)
	assert.Len(t, embeddings, 2)
}

func TestGenerate_EmptyPhrase(t *testing.T) {
	g, err := NewGenerator(mock.NewMockEmbedder())
	require.NoError(t, err)
	defer g.Release()

	for _, phrase := range []string{"", "   ", "\t\n"} {
		_, err := g.Generate(context.Background(), phrase)
		assert.ErrorIs(t, err, core.ErrEmbeddingFailure, "phrase %q", phrase)
	}
}

func TestGenerate_AllPermutationsFail(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("model unavailable")
	}

	g, err := NewGenerator(embedder)
	require.NoError(t, err)
	defer g.Release()

	_, err = g.Generate(context.Background(), "chest pain")
	assert.ErrorIs(t, err, core.ErrEmbeddingFailure)
}

func TestGenerate_PartialFailureDegrades(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == "pain chest" {
			return nil, errors.New("model hiccup")
		}
		return []float32{1, 0, 0}, nil
	}

	g, err := NewGenerator(embedder)
	require.NoError(t, err)
	defer g.Release()

	embeddings, err := g.Generate(context.Background(), "chest pain")
	require.NoError(t, err)
	// One of the two permutations failed; the other survives.
	assert.Len(t, embeddings, 1)
}

func TestGenerate_DeterministicOrder(t *testing.T) {
	g, err := NewGenerator(mock.NewMockEmbedder(), WithPoolSize(4))
	require.NoError(t, err)
	defer g.Release()

	first, err := g.Generate(context.Background(), "acute chest pain")
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), "acute chest pain")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_CanceledContext(t *testing.T) {
	g, err := NewGenerator(mock.NewMockEmbedder())
	require.NoError(t, err)
	defer g.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = g.Generate(ctx, "chest pain")
	assert.ErrorIs(t, err, context.Canceled)
}
