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


// Package clingraph resolves free-text clinical terms to vocabulary concepts
// and expands them through the concept relationship graph. The engine serves
// from immutable in-memory structures loaded once from storage; concurrent
// requests share them without locking.
package clingraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/poiesic/clingraph/ai"
	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/embed"
	"github.com/poiesic/clingraph/graph"
	"github.com/poiesic/clingraph/render"
	"github.com/poiesic/clingraph/search"
)

// Defaults for resolution and expansion parameters.
const (
	DefaultSimilarityCutoff float32 = 0.6
	DefaultTopK                     = 3
	DefaultDepth                    = 1
)

// Resolution is the result of resolving a query's terms to concepts. Groups
// are parallel: ConceptIds[i] and ConceptNames[i] describe the candidates of
// the i-th term that produced any match.
type Resolution struct {
	Query        string
	Terms        []string
	ConceptIds   [][]core.ID
	ConceptNames [][]string
}

// Expansion is the result of expanding seed concepts through the graph.
// ImagePath is empty when rendering failed or was skipped; Text is always
// populated.
type Expansion struct {
	Graph     *graph.Subgraph
	Text      string
	ImagePath string
}

// Engine is the concept resolution and graph expansion facade. It is safe
// for concurrent use.
type Engine struct {
	vocabulary *Vocabulary
	generator  *embed.Generator
	searcher   *search.Searcher
	imageDir   string
	logger     *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine) error

// WithImageDir sets the directory rendered graph images are written to.
// Default is a fresh temporary directory.
func WithImageDir(dir string) EngineOption {
	return func(e *Engine) error {
		e.imageDir = dir
		return nil
	}
}

// WithEngineLogger sets a custom logger.
// Default is slog.Default().
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) error {
		if logger == nil {
			logger = defaultLogger()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an engine over a loaded vocabulary and an embedder.
func NewEngine(vocabulary *Vocabulary, embedder ai.Embedder, opts ...EngineOption) (*Engine, error) {
	generator, err := embed.NewGenerator(embedder)
	if err != nil {
		return nil, err
	}

	searcher, err := search.NewSearcher(vocabulary.Index, generator)
	if err != nil {
		generator.Release()
		return nil, err
	}

	e := &Engine{
		vocabulary: vocabulary,
		generator:  generator,
		searcher:   searcher,
		logger:     defaultLogger(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			generator.Release()
			return nil, err
		}
	}

	if e.imageDir == "" {
		dir, err := os.MkdirTemp("", "clingraph-")
		if err != nil {
			generator.Release()
			return nil, err
		}
		e.imageDir = dir
	}
	return e, nil
}

// Close releases the engine's resources.
func (e *Engine) Close() {
	e.generator.Release()
}

// ResolveConcepts resolves a query to concept candidates. When terms is
// empty the whole phrase is resolved as a single term. cutoff <= 0 and
// topK <= 0 fall back to the defaults.
func (e *Engine) ResolveConcepts(ctx context.Context, phrase string, terms []string, cutoff float32, topK int) (*Resolution, error) {
	if len(terms) == 0 {
		terms = []string{phrase}
	}
	if cutoff <= 0 {
		cutoff = DefaultSimilarityCutoff
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	groups, err := e.searcher.Resolve(ctx, terms, cutoff, topK)
	if err != nil {
		return nil, err
	}

	resolution := &Resolution{
		Query:        phrase,
		Terms:        terms,
		ConceptIds:   make([][]core.ID, 0, len(groups)),
		ConceptNames: make([][]string, 0, len(groups)),
	}
	for _, group := range groups {
		ids := make([]core.ID, len(group))
		names := make([]string, len(group))
		for i, rc := range group {
			ids[i] = rc.Id
			names[i] = e.vocabulary.Lexicon.DisplayName(rc.Id)
		}
		resolution.ConceptIds = append(resolution.ConceptIds, ids)
		resolution.ConceptNames = append(resolution.ConceptNames, names)
	}

	e.logger.Debug("resolved concepts", "query", phrase, "terms", len(terms), "groups", len(groups))
	return resolution, nil
}

// ExpandGraph expands the seed concept groups through the relationship graph
// and composes the per-seed neighborhoods into one subgraph. depth <= 0
// falls back to the default. Rendering failures degrade to an empty
// ImagePath; an empty composition is an error.
func (e *Engine) ExpandGraph(ctx context.Context, seedGroups [][]core.ID, depth int) (*Expansion, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}

	var seeds []core.ID
	for _, group := range seedGroups {
		seeds = append(seeds, group...)
	}

	subgraphs := e.vocabulary.Snapshot.Expand(ctx, seeds, depth, 0)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	composed, err := graph.Compose(subgraphs)
	if err != nil {
		return nil, err
	}

	expansion := &Expansion{
		Graph: composed,
		Text:  composed.Text(e.vocabulary.Lexicon),
	}

	imagePath := filepath.Join(e.imageDir, fmt.Sprintf("graph-%d.png", time.Now().UnixNano()))
	if err := render.Draw(composed, e.vocabulary.Lexicon, imagePath); err != nil {
		e.logger.Warn("graph image rendering failed", "path", imagePath, "err", err)
	} else {
		expansion.ImagePath = imagePath
	}

	e.logger.Debug("expanded graph",
		"seeds", len(seeds),
		"depth", depth,
		"nodes", composed.Len(),
		"edges", composed.NumEdges())
	return expansion, nil
}

func defaultLogger() *slog.Logger {
	return slog.Default().With("component", "clingraph")
}
