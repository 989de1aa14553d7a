package badger

import (
	"context"
	"testing"
	"time"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJobRepository(t *testing.T) storage.JobRepository {
	t.Helper()
	stores, err := NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })
	return stores.Jobs
}

func TestJobRepository_EnqueueDefaults(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	job, err := repo.Enqueue(ctx, &core.Job{
		IntegrationID: "integration-1",
		Data:          map[string]string{"bucket": "videos"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, core.JobStateWaiting, job.State)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestJobRepository_EnqueueInvalid(t *testing.T) {
	repo := setupJobRepository(t)

	_, err := repo.Enqueue(context.Background(), &core.Job{})
	assert.ErrorIs(t, err, core.ErrEmptyIntegrationID)
}

func TestJobRepository_GetJobsNewestFirst(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	base := time.Now().UTC()
	first, err := repo.Enqueue(ctx, &core.Job{IntegrationID: "i1", CreatedAt: base})
	require.NoError(t, err)
	second, err := repo.Enqueue(ctx, &core.Job{IntegrationID: "i1", CreatedAt: base.Add(time.Second)})
	require.NoError(t, err)

	jobs, err := repo.GetJobs(ctx, []core.JobState{core.JobStateWaiting}, 0, 50, false)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID, "most recently created first")
	assert.Equal(t, first.ID, jobs[1].ID)
}

func TestJobRepository_GetJobsOffsetLimit(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	base := time.Now().UTC()
	var ids []string
	for i := range 5 {
		job, err := repo.Enqueue(ctx, &core.Job{
			IntegrationID: "i1",
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
		ids = append(ids, job.ID)
	}

	jobs, err := repo.GetJobs(ctx, []core.JobState{core.JobStateWaiting}, 1, 2, false)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, ids[3], jobs[0].ID)
	assert.Equal(t, ids[2], jobs[1].ID)
}

func TestJobRepository_GetJobsIncludeData(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	_, err := repo.Enqueue(ctx, &core.Job{IntegrationID: "i1", Data: map[string]string{"k": "v"}})
	require.NoError(t, err)

	jobs, err := repo.GetJobs(ctx, []core.JobState{core.JobStateWaiting}, 0, 50, false)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Nil(t, jobs[0].Data)

	jobs, err = repo.GetJobs(ctx, []core.JobState{core.JobStateWaiting}, 0, 50, true)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, map[string]string{"k": "v"}, jobs[0].Data)
}

func TestJobRepository_UpdateStateMovesBucket(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	job, err := repo.Enqueue(ctx, &core.Job{IntegrationID: "i1"})
	require.NoError(t, err)

	updated, err := repo.UpdateState(ctx, job.ID, core.JobStateActive)
	require.NoError(t, err)
	assert.Equal(t, core.JobStateActive, updated.State)

	waiting, err := repo.GetJobs(ctx, []core.JobState{core.JobStateWaiting}, 0, 50, false)
	require.NoError(t, err)
	assert.Empty(t, waiting)

	active, err := repo.GetJobs(ctx, []core.JobState{core.JobStateActive}, 0, 50, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, job.ID, active[0].ID)
}

func TestJobRepository_UpdateStateMissing(t *testing.T) {
	repo := setupJobRepository(t)

	_, err := repo.UpdateState(context.Background(), "missing", core.JobStateActive)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestJobRepository_UpdateDataMerges(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	job, err := repo.Enqueue(ctx, &core.Job{IntegrationID: "i1", Data: map[string]string{"a": "1"}})
	require.NoError(t, err)

	updated, err := repo.UpdateData(ctx, job.ID, map[string]string{"b": "2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, updated.Data)

	jobs, err := repo.GetJobs(ctx, []core.JobState{core.JobStateWaiting}, 0, 50, true)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "2", jobs[0].Data["b"])

	_, err = repo.UpdateData(ctx, "missing", map[string]string{"a": "1"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestJobRepository_GetJobsMultipleStates(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	a, err := repo.Enqueue(ctx, &core.Job{IntegrationID: "i1"})
	require.NoError(t, err)
	b, err := repo.Enqueue(ctx, &core.Job{IntegrationID: "i2"})
	require.NoError(t, err)
	_, err = repo.UpdateState(ctx, b.ID, core.JobStateFailed)
	require.NoError(t, err)

	jobs, err := repo.GetJobs(ctx, []core.JobState{core.JobStateFailed, core.JobStateWaiting}, 0, 50, false)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	// States are scanned in the order given.
	assert.Equal(t, b.ID, jobs[0].ID)
	assert.Equal(t, a.ID, jobs[1].ID)
}
