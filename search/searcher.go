// Copyright 2025 Ilias Haddad
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


package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
)

// SceneQuery is a multi-field scene lookup. Face terms hit the visual
// collection, free text the text collection, and transcript fragments the
// audio collection. At least one field must be set.
type SceneQuery struct {
	Faces      []string
	Text       string
	Transcript string

	// VideoID restricts results to one video when set.
	VideoID string
}

func (q SceneQuery) empty() bool {
	return len(q.Faces) == 0 && q.Text == "" && q.Transcript == ""
}

// Searcher finds scenes by embedding query fields and merging the per-field
// vector lookups.
type Searcher struct {
	vectors  storage.VectorStore
	provider ai.Provider
	logger   *slog.Logger
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
		s.logger = logger.With("component", "search")
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(vectors storage.VectorStore, provider ai.Provider, opts ...Option) (*Searcher, error) {
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	s := &Searcher{
		vectors:  vectors,
		provider: provider,
		logger:   slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindScenes searches for scenes matching the query.
// Returns up to maxHits scenes.
func (s *Searcher) FindScenes(ctx context.Context, query SceneQuery, maxHits int) ([]*core.Scene, error) {
	return s.FindScenesWithMonitor(ctx, query, maxHits, nil)
}

// FindScenesWithMonitor searches for scenes matching the query with
// monitoring. Fields are searched in priority order: face terms in listed
// order, then free text, then transcript. When the same scene surfaces for
// several fields, the first-listed field wins, so face hits outrank text
// hits for the final ordering.
func (s *Searcher) FindScenesWithMonitor(ctx context.Context, query SceneQuery, maxHits int, monitor SearchMonitor) ([]*core.Scene, error) {
	if query.empty() {
		return nil, ErrEmptyQuery
	}
	if maxHits <= 0 {
		return nil, ErrInvalidMaxHits
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	var filter map[string]string
	if query.VideoID != "" {
		filter = map[string]string{metaVideoID: query.VideoID}
	}

	var resultSets [][]*core.Candidate
	appendField := func(modality core.Modality, field, term string) error {
		candidates, err := s.findField(ctx, modality, term, maxHits, filter)
		if err != nil {
			return err
		}
		monitor.AfterFieldSearch(field, term, candidates)
		resultSets = append(resultSets, candidates)
		return nil
	}

	for _, face := range query.Faces {
		if err := appendField(core.ModalityVisual, "face", "faces: "+face); err != nil {
			return nil, err
		}
	}
	if query.Text != "" {
		if err := appendField(core.ModalityText, "text", query.Text); err != nil {
			return nil, err
		}
	}
	if query.Transcript != "" {
		if err := appendField(core.ModalityAudio, "transcript", "transcription: "+query.Transcript); err != nil {
			return nil, err
		}
	}

	scenes := MergeResults(resultSets...)
	if len(scenes) > maxHits {
		scenes = scenes[:maxHits]
	}

	monitor.Finish(scenes)
	return scenes, nil
}

func (s *Searcher) findField(ctx context.Context, modality core.Modality, term string, maxHits int, filter map[string]string) ([]*core.Candidate, error) {
	embeddings, err := s.provider.Embedder(modality).EmbedTexts(ctx, []string{term})
	if err != nil {
		s.logger.Error("error generating embedding for query term", "term", term, "err", err)
		return nil, err
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("expected 1 embedding for query term, got %d", len(embeddings))
	}

	candidates, err := s.vectors.Query(ctx, modality.Collection(), embeddings[0], maxHits, filter)
	if err != nil {
		s.logger.Error("error querying scene vectors", "collection", modality.Collection(), "err", err)
		return nil, err
	}
	return candidates, nil
}
