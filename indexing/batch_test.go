package indexing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/ai/mock"
	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBatch(t *testing.T) (*BatchProcessor, *badger.MemoryStores, *mock.Provider) {
	t.Helper()
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	provider := mock.NewProvider()
	bp, err := NewBatchProcessor(stores.Vectors, provider)
	require.NoError(t, err)
	bp.retryBaseDelay = time.Millisecond
	return bp, stores, provider
}

func makeScenes(n int) []*core.Scene {
	scenes := make([]*core.Scene, n)
	for i := range scenes {
		scenes[i] = &core.Scene{
			ID:            fmt.Sprintf("scene-%02d", i),
			VideoID:       "v1",
			StartTime:     float64(i) * 5,
			EndTime:       float64(i)*5 + 5,
			Text:          fmt.Sprintf("scene number %d", i),
			Transcription: fmt.Sprintf("dialogue %d", i),
		}
	}
	return scenes
}

func TestBatchProcessor_EmbedAll(t *testing.T) {
	bp, stores, _ := setupBatch(t)
	ctx := context.Background()
	scenes := makeScenes(12)

	result, err := bp.Embed(ctx, core.ModalityText, scenes)
	require.NoError(t, err)
	assert.Equal(t, 12, result.Embedded)
	assert.Empty(t, result.Failed)

	query := mock.DeterministicVector(scenes[0].Document(), core.ModalityText.Dim())
	candidates, err := stores.Vectors.Query(ctx, core.ModalityText.Collection(), query, 1, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "scene-00", candidates[0].ID)
	assert.Equal(t, "v1", candidates[0].Metadata["videoId"])
}

func TestBatchProcessor_PartialBatchSuccess(t *testing.T) {
	bp, _, provider := setupBatch(t)
	ctx := context.Background()
	scenes := makeScenes(10)
	scenes[3].Text = "poison pill"

	// The backend rejects any request whose input contains the poison
	// document, whether batched or alone.
	embedder := provider.Embedders[core.ModalityText]
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		for _, text := range texts {
			if strings.Contains(text, "poison") {
				return nil, ai.Permanent(errors.New("input rejected"))
			}
		}
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = mock.DeterministicVector(text, embedder.Dimension)
		}
		return out, nil
	}

	result, err := bp.Embed(ctx, core.ModalityText, scenes)
	require.NoError(t, err)
	assert.Equal(t, 9, result.Embedded, "healthy siblings of a failed batch still embed")
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "scene-03", result.Failed[0].SceneID)
}

func TestBatchProcessor_PermanentErrorSkipsRetries(t *testing.T) {
	bp, _, provider := setupBatch(t)
	bp.maxRetries = 5
	scenes := makeScenes(2)

	calls := 0
	embedder := provider.Embedders[core.ModalityText]
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		return nil, ai.Permanent(errors.New("unsupported input"))
	}

	result, err := bp.Embed(context.Background(), core.ModalityText, scenes)
	require.NoError(t, err)
	assert.Zero(t, result.Embedded)
	assert.Len(t, result.Failed, 2)
	// One batch attempt plus one per-item fallback attempt each.
	assert.Equal(t, 3, calls)
}

func TestBatchProcessor_TransientErrorRetried(t *testing.T) {
	bp, _, provider := setupBatch(t)
	scenes := makeScenes(2)

	calls := 0
	embedder := provider.Embedders[core.ModalityText]
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection reset")
		}
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = mock.DeterministicVector(text, embedder.Dimension)
		}
		return out, nil
	}

	result, err := bp.Embed(context.Background(), core.ModalityText, scenes)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Embedded)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 2, calls, "second attempt recovers the batch")
}

func TestBatchProcessor_WrongDimensionRejected(t *testing.T) {
	bp, _, provider := setupBatch(t)
	scenes := makeScenes(1)

	embedder := provider.Embedders[core.ModalityText]
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = make([]float32, 3) // wrong dimension
		}
		return out, nil
	}

	result, err := bp.Embed(context.Background(), core.ModalityText, scenes)
	require.NoError(t, err)
	assert.Zero(t, result.Embedded)
	require.Len(t, result.Failed, 1)
	assert.ErrorIs(t, result.Failed[0].Err, ErrDimensionMismatch)
}

func TestBatchProcessor_InvalidModality(t *testing.T) {
	bp, _, _ := setupBatch(t)

	_, err := bp.Embed(context.Background(), core.Modality(99), makeScenes(1))
	assert.ErrorIs(t, err, core.ErrInvalidModality)
}

func TestBatchProcessor_EmptyScenes(t *testing.T) {
	bp, _, _ := setupBatch(t)

	result, err := bp.Embed(context.Background(), core.ModalityText, nil)
	require.NoError(t, err)
	assert.Zero(t, result.Embedded)
	assert.Empty(t, result.Failed)
}
