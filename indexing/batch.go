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


package indexing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/search"
	"github.com/IliasHad/edit-mind-sub003/storage"
)

const (
	// DefaultBatchSize is the number of scenes sent to the embedding
	// backend per call. The same size applies to every modality.
	DefaultBatchSize = 10

	// DefaultBatchTimeout bounds a single embedding call.
	DefaultBatchTimeout = 60 * time.Second

	// DefaultMaxRetries is the attempt budget for transient embedding faults.
	DefaultMaxRetries = 3

	// DefaultRetryBaseDelay is the initial backoff delay, doubled per retry.
	DefaultRetryBaseDelay = time.Second
)

// UnitFailure records a scene that could not be embedded after batch and
// individual fallback both failed.
type UnitFailure struct {
	SceneID string
	Err     error
}

// BatchResult summarizes one modality run.
type BatchResult struct {
	Embedded int
	Failed   []UnitFailure
}

// BatchProcessor generates embeddings for scenes in fixed-size batches and
// upserts them into the modality's vector collection.
type BatchProcessor struct {
	vectors        storage.VectorStore
	provider       ai.Provider
	batchSize      int
	batchTimeout   time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// NewBatchProcessor creates a batch processor with default batching and
// retry parameters. The pipeline adjusts them through its options.
func NewBatchProcessor(vectors storage.VectorStore, provider ai.Provider) (*BatchProcessor, error) {
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	return &BatchProcessor{
		vectors:        vectors,
		provider:       provider,
		batchSize:      DefaultBatchSize,
		batchTimeout:   DefaultBatchTimeout,
		maxRetries:     DefaultMaxRetries,
		retryBaseDelay: DefaultRetryBaseDelay,
		logger:         slog.Default().With("component", "batch_processor"),
	}, nil
}

// Embed generates one vector per scene for the modality and upserts the
// successful points. Batches are processed in submission order. A batch
// that fails after retries falls back to embedding its items one at a
// time, so the successful subset is still stored and only the faulty
// units appear in the result's Failed list. Failures in one batch never
// affect sibling batches.
func (bp *BatchProcessor) Embed(ctx context.Context, modality core.Modality, scenes []*core.Scene) (*BatchResult, error) {
	if err := core.ValidateModality(modality); err != nil {
		return nil, err
	}

	embedder := bp.provider.Embedder(modality)
	result := &BatchResult{}

	for start := 0; start < len(scenes); start += bp.batchSize {
		end := min(start+bp.batchSize, len(scenes))
		batch := scenes[start:end]

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		documents := make([]string, len(batch))
		for i, scene := range batch {
			documents[i] = modalityDocument(modality, scene)
		}

		vectors, err := bp.embedWithRetry(ctx, embedder, modality, documents)
		if err == nil {
			bp.upsertPoints(ctx, modality, batch, documents, vectors, result)
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		bp.logger.Warn("batch embedding failed, retrying items individually",
			"modality", modality.String(), "batchSize", len(batch), "error", err)

		// Individual fallback isolates the faulty unit.
		for i, scene := range batch {
			single, itemErr := bp.embedWithRetry(ctx, embedder, modality, documents[i:i+1])
			if itemErr != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				result.Failed = append(result.Failed, UnitFailure{SceneID: scene.ID, Err: itemErr})
				continue
			}
			bp.upsertPoints(ctx, modality, batch[i:i+1], documents[i:i+1], single, result)
		}
	}

	return result, nil
}

// embedWithRetry runs one embedding call under the batch timeout, retrying
// transient faults with exponential backoff. The returned vectors are
// normalized and validated against the modality's fixed dimension.
func (bp *BatchProcessor) embedWithRetry(ctx context.Context, embedder ai.Embedder, modality core.Modality, documents []string) ([][]float32, error) {
	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, bp.batchTimeout)
		defer cancel()

		out, err := embedder.EmbedTexts(callCtx, documents)
		if err != nil {
			return err
		}
		if len(out) != len(documents) {
			return ai.Permanent(fmt.Errorf("%w: expected %d, got %d",
				ErrEmbeddingCountMismatch, len(documents), len(out)))
		}
		for _, v := range out {
			if len(v) != modality.Dim() {
				return ai.Permanent(fmt.Errorf("%w: modality %s expects %d, got %d",
					ErrDimensionMismatch, modality.String(), modality.Dim(), len(v)))
			}
		}
		vectors = out
		return nil
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return nil, err
	}

	for i := range vectors {
		vectors[i] = NormalizeVector(vectors[i])
	}
	return vectors, nil
}

// upsertPoints stores the embedded batch. A storage failure marks every
// scene of the batch failed rather than aborting the whole run.
func (bp *BatchProcessor) upsertPoints(ctx context.Context, modality core.Modality, scenes []*core.Scene, documents []string, vectors [][]float32, result *BatchResult) {
	points := make([]*core.VectorPoint, len(scenes))
	for i, scene := range scenes {
		points[i] = search.SceneToPoint(scene, vectors[i], documents[i])
	}

	if err := bp.vectors.Upsert(ctx, modality.Collection(), points...); err != nil {
		bp.logger.Error("vector upsert failed",
			"modality", modality.String(), "count", len(points), "error", err)
		for _, scene := range scenes {
			result.Failed = append(result.Failed, UnitFailure{SceneID: scene.ID, Err: err})
		}
		return
	}
	result.Embedded += len(points)
}

// modalityDocument renders the text sent to the modality's embedding model.
// The text model sees the full scene document; the visual and audio models
// see only the fragments of the scene they can ground.
func modalityDocument(m core.Modality, scene *core.Scene) string {
	switch m {
	case core.ModalityVisual:
		parts := make([]string, 0, 5)
		if len(scene.Faces) > 0 {
			parts = append(parts, "faces: "+strings.Join(scene.Faces, ", "))
		}
		if len(scene.Objects) > 0 {
			parts = append(parts, "objects: "+strings.Join(scene.Objects, ", "))
		}
		if scene.ShotType != "" {
			parts = append(parts, "shot: "+scene.ShotType)
		}
		if scene.Camera != "" {
			parts = append(parts, "camera: "+scene.Camera)
		}
		if scene.Location != "" {
			parts = append(parts, "location: "+scene.Location)
		}
		return strings.Join(parts, "\n")
	case core.ModalityAudio:
		parts := make([]string, 0, 2)
		if scene.Transcription != "" {
			parts = append(parts, "transcription: "+scene.Transcription)
		}
		if len(scene.Emotions) > 0 {
			parts = append(parts, "emotions: "+strings.Join(scene.Emotions, ", "))
		}
		return strings.Join(parts, "\n")
	default:
		return scene.Document()
	}
}
