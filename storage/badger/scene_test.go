package badger

import (
	"context"
	"testing"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSceneRepository(t *testing.T) storage.SceneRepository {
	t.Helper()
	stores, err := NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })
	return stores.Scenes
}

func testScene(id, videoID string, start, end float64) *core.Scene {
	return &core.Scene{
		ID:        id,
		VideoID:   videoID,
		StartTime: start,
		EndTime:   end,
		Faces:     []string{"Alice"},
		Objects:   []string{"desk"},
		ShotType:  "wide",
	}
}

func TestSceneRepository_AddAndGet(t *testing.T) {
	repo := setupSceneRepository(t)
	ctx := context.Background()

	added, err := repo.AddScenes(ctx, testScene("s1", "v1", 0, 4.5))
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.False(t, added[0].InsertedAt.IsZero())

	got, err := repo.GetScene(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "v1", got.VideoID)
	assert.Equal(t, []string{"Alice"}, got.Faces)
}

func TestSceneRepository_AddInvalid(t *testing.T) {
	repo := setupSceneRepository(t)

	_, err := repo.AddScenes(context.Background(), testScene("", "v1", 0, 1))
	assert.ErrorIs(t, err, core.ErrEmptySceneID)

	_, err = repo.AddScenes(context.Background(), testScene("s1", "v1", 5, 1))
	assert.ErrorIs(t, err, core.ErrInvalidTimeRange)

	// Negative start times would wrap in the per-video index encoding and
	// misorder playback; they are rejected at the door.
	_, err = repo.AddScenes(context.Background(), testScene("s1", "v1", -2, 1))
	assert.ErrorIs(t, err, core.ErrInvalidTimeRange)
}

func TestSceneRepository_GetSceneMissing(t *testing.T) {
	repo := setupSceneRepository(t)

	_, err := repo.GetScene(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSceneRepository_GetScenesSkipsMissing(t *testing.T) {
	repo := setupSceneRepository(t)
	ctx := context.Background()

	_, err := repo.AddScenes(ctx, testScene("s1", "v1", 0, 1))
	require.NoError(t, err)

	scenes, err := repo.GetScenes(ctx, "s1", "missing", "s1")
	require.NoError(t, err)
	require.Len(t, scenes, 2)
}

func TestSceneRepository_UpdatePreservesInsertedAt(t *testing.T) {
	repo := setupSceneRepository(t)
	ctx := context.Background()

	added, err := repo.AddScenes(ctx, testScene("s1", "v1", 0, 1))
	require.NoError(t, err)
	insertedAt := added[0].InsertedAt

	updated := testScene("s1", "v1", 0, 1)
	updated.Faces = []string{"Bob"}
	out, err := repo.UpdateScenes(ctx, updated)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, insertedAt, out[0].InsertedAt)
	assert.True(t, out[0].UpdatedAt.After(insertedAt) || out[0].UpdatedAt.Equal(insertedAt))

	got, err := repo.GetScene(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, got.Faces)
}

func TestSceneRepository_UpdateMissing(t *testing.T) {
	repo := setupSceneRepository(t)

	_, err := repo.UpdateScenes(context.Background(), testScene("missing", "v1", 0, 1))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSceneRepository_GetScenesByVideoOrdered(t *testing.T) {
	repo := setupSceneRepository(t)
	ctx := context.Background()

	// Inserted out of order on purpose.
	_, err := repo.AddScenes(ctx,
		testScene("s3", "v1", 20, 25),
		testScene("s1", "v1", 0, 5),
		testScene("s2", "v1", 10, 15),
		testScene("other", "v2", 0, 5),
	)
	require.NoError(t, err)

	scenes, err := repo.GetScenesByVideo(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, scenes, 3)
	assert.Equal(t, "s1", scenes[0].ID)
	assert.Equal(t, "s2", scenes[1].ID)
	assert.Equal(t, "s3", scenes[2].ID)
}
