package badger

import (
	"context"
	"testing"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupVectorStore(t *testing.T) storage.VectorStore {
	t.Helper()
	stores, err := NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })
	return stores.Vectors
}

func TestVectorStore_QueryOrdering(t *testing.T) {
	store := setupVectorStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "scenes_text",
		&core.VectorPoint{ID: "far", Vector: []float32{0, 1, 0}, Metadata: map[string]string{"videoId": "v1"}, Document: "far"},
		&core.VectorPoint{ID: "near", Vector: []float32{1, 0.1, 0}, Metadata: map[string]string{"videoId": "v1"}, Document: "near"},
		&core.VectorPoint{ID: "exact", Vector: []float32{1, 0, 0}, Metadata: map[string]string{"videoId": "v1"}, Document: "exact"},
	))

	candidates, err := store.Query(ctx, "scenes_text", []float32{1, 0, 0}, 10, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "exact", candidates[0].ID)
	assert.Equal(t, "near", candidates[1].ID)
	assert.Equal(t, "far", candidates[2].ID)
	assert.Greater(t, candidates[0].Score, candidates[1].Score)
}

func TestVectorStore_TieBrokenByRecency(t *testing.T) {
	store := setupVectorStore(t)
	ctx := context.Background()

	// Identical vectors, inserted in order: the later insertion wins the tie.
	require.NoError(t, store.Upsert(ctx, "scenes_text",
		&core.VectorPoint{ID: "older", Vector: []float32{1, 0}, Metadata: map[string]string{}, Document: "a"}))
	require.NoError(t, store.Upsert(ctx, "scenes_text",
		&core.VectorPoint{ID: "newer", Vector: []float32{1, 0}, Metadata: map[string]string{}, Document: "b"}))

	candidates, err := store.Query(ctx, "scenes_text", []float32{1, 0}, 10, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "newer", candidates[0].ID)
	assert.Equal(t, "older", candidates[1].ID)
}

func TestVectorStore_UpsertReplaces(t *testing.T) {
	store := setupVectorStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "scenes_text",
		&core.VectorPoint{ID: "p1", Vector: []float32{1, 0}, Metadata: map[string]string{}, Document: "old"}))
	require.NoError(t, store.Upsert(ctx, "scenes_text",
		&core.VectorPoint{ID: "p1", Vector: []float32{0, 1}, Metadata: map[string]string{}, Document: "new"}))

	candidates, err := store.Query(ctx, "scenes_text", []float32{0, 1}, 10, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 1, "upsert must replace, never duplicate")
	assert.Equal(t, "new", candidates[0].Document)
}

func TestVectorStore_MetadataFilter(t *testing.T) {
	store := setupVectorStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "scenes_text",
		&core.VectorPoint{ID: "a", Vector: []float32{1, 0}, Metadata: map[string]string{"videoId": "v1"}, Document: "a"},
		&core.VectorPoint{ID: "b", Vector: []float32{1, 0}, Metadata: map[string]string{"videoId": "v2"}, Document: "b"},
	))

	candidates, err := store.Query(ctx, "scenes_text", []float32{1, 0}, 10, map[string]string{"videoId": "v2"})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "b", candidates[0].ID)
}

func TestVectorStore_CollectionsAreIsolated(t *testing.T) {
	store := setupVectorStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, core.ModalityText.Collection(),
		&core.VectorPoint{ID: "t1", Vector: []float32{1, 0}, Metadata: map[string]string{}, Document: "t"}))

	candidates, err := store.Query(ctx, core.ModalityVisual.Collection(), []float32{1, 0}, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestVectorStore_InvalidQuery(t *testing.T) {
	store := setupVectorStore(t)
	ctx := context.Background()

	_, err := store.Query(ctx, "scenes_text", []float32{1}, 0, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	_, err = store.Query(ctx, "", []float32{1}, 5, nil)
	assert.ErrorIs(t, err, storage.ErrUnknownCollection)
}

func TestVectorStore_Delete(t *testing.T) {
	store := setupVectorStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "scenes_text",
		&core.VectorPoint{ID: "p1", Vector: []float32{1, 0}, Metadata: map[string]string{}, Document: "d"}))
	require.NoError(t, store.Delete(ctx, "scenes_text", "p1", "missing"))

	candidates, err := store.Query(ctx, "scenes_text", []float32{1, 0}, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
