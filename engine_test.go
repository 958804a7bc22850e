package clingraph

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/clingraph/ai/mock"
	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/ingestion"
	badgerstore "github.com/poiesic/clingraph/storage/badger"
)

// testVectors maps lower-cased texts (concept names and query phrases) onto
// an orthogonal basis so resolution scores are exact.
var testVectors = map[string][]float32{
	"human immunodeficiency virus infection": {1, 0, 0, 0, 0},
	"pneumonia":     {0, 1, 0, 0, 0},
	"virus disease": {0, 0, 1, 0, 0},
	"lung disease":  {0, 0, 0, 1, 0},
	"is a":          {0, 0, 0, 0, 1},
	"hiv":           {0.9, 0, 0.3, 0, 0},
}

func newTestEmbedder() *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, text string) ([]float32, error) {
		v, ok := testVectors[text]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", text)
		}
		return v, nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			v, err := embedder.EmbedTextFunc(ctx, text)
			if err != nil {
				return nil, err
			}
			vectors[i] = v
		}
		return vectors, nil
	}
	return embedder
}

// newTestEngine ingests a small vocabulary into in-memory badger, loads it,
// and wraps it in an engine:
//
//	86406008 (HIV infection)  --[116680003 Is a]--> 34014006 (Virus disease)
//	233604007 (Pneumonia)     --[116680003 Is a]--> 19829001 (Lung disease)
//	233604007 (Pneumonia)     --[424242 unnamed]--> 19829001 (Lung disease)
func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	ctx := context.Background()

	repo, cache, backend, err := badgerstore.NewMemoryVocabulary()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	embedder := newTestEmbedder()
	pipeline, err := ingestion.NewPipeline(repo, embedder, ingestion.WithCache(cache), ingestion.WithPoolSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	concepts := []*core.Concept{
		{Id: 86406008, Name: "Human immunodeficiency virus infection"},
		{Id: 233604007, Name: "Pneumonia"},
		{Id: 34014006, Name: "Virus disease"},
		{Id: 19829001, Name: "Lung disease"},
		{Id: 116680003, Name: "Is a"},
	}
	tags := map[core.ID][]string{86406008: {"disorder"}}
	require.NoError(t, pipeline.IngestConcepts(ctx, concepts, tags))
	require.NoError(t, pipeline.IngestRelationships(ctx, []*core.Relationship{
		{From: 86406008, To: 34014006, Type: 116680003},
		{From: 233604007, To: 19829001, Type: 116680003},
		{From: 233604007, To: 19829001, Type: 424242},
	}))

	vocabulary, err := LoadVocabulary(ctx, repo)
	require.NoError(t, err)

	if len(opts) == 0 {
		opts = []EngineOption{WithImageDir(t.TempDir())}
	}
	engine, err := NewEngine(vocabulary, embedder, opts...)
	require.NoError(t, err)
	t.Cleanup(engine.Close)
	return engine
}

func TestLoadVocabulary(t *testing.T) {
	engine := newTestEngine(t)

	assert.Equal(t, 5, engine.vocabulary.Snapshot.Len())
	assert.Equal(t, 3, engine.vocabulary.Snapshot.NumEdges())
	assert.Equal(t, 5, engine.vocabulary.Index.Len())
	assert.Equal(t, "Pneumonia", engine.vocabulary.Lexicon.DisplayName(233604007))

	concept, ok := engine.vocabulary.Snapshot.Concept(86406008)
	require.True(t, ok)
	assert.Equal(t, []string{"disorder"}, concept.SemanticTypes)
}

func TestResolveConcepts(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	t.Run("resolves each term to ranked candidates", func(t *testing.T) {
		resolution, err := engine.ResolveConcepts(ctx, "patient with hiv and pneumonia",
			[]string{"hiv", "pneumonia"}, DefaultSimilarityCutoff, DefaultTopK)
		require.NoError(t, err)

		require.Len(t, resolution.ConceptIds, 2)
		assert.Equal(t, core.ID(86406008), resolution.ConceptIds[0][0])
		assert.Equal(t, core.ID(233604007), resolution.ConceptIds[1][0])
		assert.Equal(t, "Human immunodeficiency virus infection", resolution.ConceptNames[0][0])
	})

	t.Run("falls back to the phrase when no terms given", func(t *testing.T) {
		resolution, err := engine.ResolveConcepts(ctx, "pneumonia", nil, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"pneumonia"}, resolution.Terms)
		require.Len(t, resolution.ConceptIds, 1)
		assert.Equal(t, core.ID(233604007), resolution.ConceptIds[0][0])
	})

	t.Run("repeated resolution is stable", func(t *testing.T) {
		first, err := engine.ResolveConcepts(ctx, "hiv", nil, 0, 0)
		require.NoError(t, err)
		second, err := engine.ResolveConcepts(ctx, "hiv", nil, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("unembeddable sole term fails", func(t *testing.T) {
		_, err := engine.ResolveConcepts(ctx, "zzz unknown", nil, 0, 0)
		assert.ErrorIs(t, err, core.ErrEmbeddingFailure)
	})
}

func TestExpandGraph(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	t.Run("expands and composes two seed groups", func(t *testing.T) {
		expansion, err := engine.ExpandGraph(ctx,
			[][]core.ID{{86406008}, {233604007}}, 1)
		require.NoError(t, err)

		assert.Equal(t, 4, expansion.Graph.Len())
		assert.Equal(t, 3, expansion.Graph.NumEdges())
		assert.Contains(t, expansion.Text, "Graph:\n")
		assert.Contains(t, expansion.Text,
			"Human immunodeficiency virus infection --[Is a]--> Virus disease\n")
		assert.Contains(t, expansion.Text, "Pneumonia --[Is a]--> Lung disease\n")

		assert.NotEmpty(t, expansion.ImagePath)
		assert.FileExists(t, expansion.ImagePath)
	})

	t.Run("unnamed relationship types render as raw identifiers", func(t *testing.T) {
		expansion, err := engine.ExpandGraph(ctx, [][]core.ID{{233604007}}, 1)
		require.NoError(t, err)
		assert.Contains(t, expansion.Text, "Pneumonia --[424242]--> Lung disease\n")
	})

	t.Run("edge-less seed survives composition as an isolated node", func(t *testing.T) {
		// 116680003 ("Is a") exists as a concept but never as an endpoint.
		expansion, err := engine.ExpandGraph(ctx,
			[][]core.ID{{116680003}, {233604007}}, 1)
		require.NoError(t, err)

		assert.Equal(t, 3, expansion.Graph.Len())
		assert.Equal(t, 2, expansion.Graph.NumEdges())
		assert.True(t, expansion.Graph.HasNode(116680003))
		assert.Contains(t, expansion.Text, "Pneumonia --[Is a]--> Lung disease\n")
	})

	t.Run("only unknown seeds is an empty composition", func(t *testing.T) {
		_, err := engine.ExpandGraph(ctx, [][]core.ID{{999999}}, 1)
		assert.ErrorIs(t, err, core.ErrEmptyComposition)
	})

	t.Run("rendering failure degrades to an empty image path", func(t *testing.T) {
		broken := newTestEngine(t, WithImageDir(filepath.Join(t.TempDir(), "missing")))

		expansion, err := broken.ExpandGraph(ctx, [][]core.ID{{86406008}}, 1)
		require.NoError(t, err)
		assert.Empty(t, expansion.ImagePath)
		assert.NotEmpty(t, expansion.Text)
	})
}
