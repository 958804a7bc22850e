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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/clingraph"
	"github.com/poiesic/clingraph/ai"
	"github.com/poiesic/clingraph/ai/openai"
	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/ingestion"
	"github.com/poiesic/clingraph/reindex"
	"github.com/poiesic/clingraph/storage/badger"
)

func main() {
	app := &cli.App{
		Name:   "clingraph",
		Usage:  "Clinical concept resolution and graph expansion engine",
		Flags:  globalFlags(),
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest vocabulary release files into the database",
				Action: ingestCommand,
				Flags: append(embeddingFlags(),
					&cli.StringFlag{
						Name:     "concepts",
						Usage:    "Path to the tab-separated concepts file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "relationships",
						Usage:    "Path to the tab-separated relationships file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "semantic-types",
						Usage: "Path to the tab-separated semantic types file",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of concept names to embed per call",
						Value: ingestion.DefaultBatchSize,
					},
				),
			},
			{
				Name:   "reindex",
				Usage:  "Recompute every stored concept vector with a new embedding model",
				Action: reindexCommand,
				Flags: append(embeddingFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of concepts to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N concepts",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:      "resolve",
				Usage:     "Resolve free-text terms to vocabulary concepts",
				ArgsUsage: "TERM [TERM...]",
				Action:    resolveCommand,
				Flags: append(embeddingFlags(),
					&cli.Float64Flag{
						Name:  "cutoff",
						Usage: "Minimum similarity score for a match",
						Value: float64(clingraph.DefaultSimilarityCutoff),
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Maximum candidates per term",
						Value: clingraph.DefaultTopK,
					},
				),
			},
			{
				Name:      "expand",
				Usage:     "Expand seed concepts through the relationship graph",
				ArgsUsage: "CONCEPT_ID [CONCEPT_ID...]",
				Action:    expandCommand,
				Flags: append(embeddingFlags(),
					&cli.IntFlag{
						Name:  "depth",
						Usage: "Number of relationship hops to follow",
						Value: clingraph.DefaultDepth,
					},
					&cli.StringFlag{
						Name:  "image-dir",
						Usage: "Directory for rendered graph images (default: temporary directory)",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "Set logging level (debug, info, warn, error)",
			Value:   "info",
		},
	}
}

func embeddingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:     "embedding-model",
			Usage:    "Embedding model name",
			Required: true,
		},
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, repo, err := openVocabulary(c)
	if err != nil {
		return err
	}
	defer backend.Close()
	defer repo.Close()

	embedder, err := newEmbedder(c)
	if err != nil {
		return err
	}

	cache, err := badger.NewEmbeddingCache(backend)
	if err != nil {
		return fmt.Errorf("failed to create embedding cache: %w", err)
	}

	pipeline, err := ingestion.NewPipeline(repo, embedder,
		ingestion.WithCache(cache),
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithModelTag(c.String("embedding-model")))
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	start := time.Now()
	if err := pipeline.Run(ctx, c.String("concepts"), c.String("relationships"), c.String("semantic-types")); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingestion finished in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, repo, err := openVocabulary(c)
	if err != nil {
		return err
	}
	defer backend.Close()
	defer repo.Close()

	embedder, err := newEmbedder(c)
	if err != nil {
		return err
	}

	config := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reindexer, err := reindex.NewReindexer(repo, embedder, config, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reindexer: %w", err)
	}

	if err := reindexer.Run(ctx); err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}
	return nil
}

func resolveCommand(c *cli.Context) error {
	ctx := context.Background()

	terms := c.Args().Slice()
	if len(terms) == 0 {
		return fmt.Errorf("at least one term is required")
	}

	engine, cleanup, err := openEngine(c)
	if err != nil {
		return err
	}
	defer cleanup()

	resolution, err := engine.ResolveConcepts(ctx, strings.Join(terms, " "), terms,
		float32(c.Float64("cutoff")), c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("resolution failed: %w", err)
	}

	if len(resolution.ConceptIds) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for i, ids := range resolution.ConceptIds {
		for j, id := range ids {
			fmt.Printf("%d\t%s\n", id, resolution.ConceptNames[i][j])
		}
	}
	return nil
}

func expandCommand(c *cli.Context) error {
	ctx := context.Background()

	args := c.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("at least one concept id is required")
	}
	seeds := make([]core.ID, 0, len(args))
	for _, arg := range args {
		var id uint64
		if _, err := fmt.Sscanf(arg, "%d", &id); err != nil {
			return fmt.Errorf("invalid concept id %q", arg)
		}
		seeds = append(seeds, core.ID(id))
	}

	var engineOpts []clingraph.EngineOption
	if dir := c.String("image-dir"); dir != "" {
		engineOpts = append(engineOpts, clingraph.WithImageDir(dir))
	}

	engine, cleanup, err := openEngine(c, engineOpts...)
	if err != nil {
		return err
	}
	defer cleanup()

	expansion, err := engine.ExpandGraph(ctx, [][]core.ID{seeds}, c.Int("depth"))
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	fmt.Print(expansion.Text)
	if expansion.ImagePath != "" {
		fmt.Fprintf(os.Stderr, "Image: %s\n", expansion.ImagePath)
	}
	return nil
}

// openVocabulary opens the badger backend and vocabulary repository named by
// the --db flag.
func openVocabulary(c *cli.Context) (*badger.Backend, *badger.VocabularyRepository, error) {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo, err := badger.NewVocabularyRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create repository: %w", err)
	}
	return backend, repo, nil
}

// openEngine loads the vocabulary from the database and wraps it in an
// engine. The returned cleanup closes everything in reverse order.
func openEngine(c *cli.Context, opts ...clingraph.EngineOption) (*clingraph.Engine, func(), error) {
	backend, repo, err := openVocabulary(c)
	if err != nil {
		return nil, nil, err
	}

	vocabulary, err := clingraph.LoadVocabulary(context.Background(), repo)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	embedder, err := newEmbedder(c)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, nil, err
	}

	engine, err := clingraph.NewEngine(vocabulary, embedder, opts...)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}

	cleanup := func() {
		engine.Close()
		repo.Close()
		backend.Close()
	}
	return engine, cleanup, nil
}

func newEmbedder(c *cli.Context) (ai.Embedder, error) {
	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid embedding configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return embedder, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
