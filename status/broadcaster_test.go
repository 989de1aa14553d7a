package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IliasHad/edit-mind-sub003/ai/mock"
	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
	"github.com/IliasHad/edit-mind-sub003/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBroadcaster(t *testing.T, opts ...Option) (*Broadcaster, *mock.Provider) {
	t.Helper()
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	provider := mock.NewProvider()
	broadcaster, err := NewBroadcaster(stores.Jobs, provider, opts...)
	require.NoError(t, err)
	return broadcaster, provider
}

func TestBroadcaster_SampleHealthy(t *testing.T) {
	broadcaster, _ := setupBroadcaster(t)

	sample := broadcaster.Sample(context.Background())
	assert.True(t, sample.BackgroundJobsService)
	assert.True(t, sample.MLService)
	assert.False(t, sample.Timestamp.IsZero())
}

func TestBroadcaster_SampleDegradesOnProbeFailure(t *testing.T) {
	broadcaster, provider := setupBroadcaster(t)
	provider.Reachable = false

	sample := broadcaster.Sample(context.Background())
	assert.True(t, sample.BackgroundJobsService, "other probes are unaffected")
	assert.False(t, sample.MLService, "an unreachable backend degrades, never errors")
}

// brokenJobRepository fails every read.
type brokenJobRepository struct {
	storage.JobRepository
}

func (b *brokenJobRepository) GetJobs(ctx context.Context, states []core.JobState, offset, limit int, includeData bool) ([]*core.Job, error) {
	return nil, errors.New("store offline")
}

func TestBroadcaster_SampleDegradesOnJobStoreFailure(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	broadcaster, err := NewBroadcaster(&brokenJobRepository{JobRepository: stores.Jobs}, mock.NewProvider())
	require.NoError(t, err)

	sample := broadcaster.Sample(context.Background())
	assert.False(t, sample.BackgroundJobsService)
	assert.True(t, sample.MLService)
}

func TestBroadcaster_SubscribersReceiveSamples(t *testing.T) {
	broadcaster, _ := setupBroadcaster(t, WithInterval(10*time.Millisecond))

	samples, cancel := broadcaster.Subscribe()
	defer cancel()

	broadcaster.Start(context.Background())
	defer broadcaster.Stop()

	select {
	case sample := <-samples:
		assert.True(t, sample.MLService)
	case <-time.After(2 * time.Second):
		t.Fatal("no sample broadcast within deadline")
	}
}

func TestBroadcaster_ProbeFailureDoesNotStopLoop(t *testing.T) {
	broadcaster, provider := setupBroadcaster(t, WithInterval(10*time.Millisecond))
	provider.Reachable = false

	samples, cancel := broadcaster.Subscribe()
	defer cancel()

	broadcaster.Start(context.Background())
	defer broadcaster.Stop()

	for i := 0; i < 2; i++ {
		select {
		case sample := <-samples:
			assert.False(t, sample.MLService)
		case <-time.After(2 * time.Second):
			t.Fatalf("loop stalled after %d degraded samples", i)
		}
	}
}

func TestBroadcaster_NoReplayForLateSubscribers(t *testing.T) {
	broadcaster, _ := setupBroadcaster(t, WithInterval(time.Hour))

	broadcaster.Start(context.Background())
	defer broadcaster.Stop()

	// Subscribing after Start yields nothing until the next tick, which
	// with an hour-long interval never arrives in this test.
	samples, cancel := broadcaster.Subscribe()
	defer cancel()

	select {
	case sample := <-samples:
		t.Fatalf("unexpected replayed sample: %+v", sample)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcaster_StopIsIdempotent(t *testing.T) {
	broadcaster, _ := setupBroadcaster(t, WithInterval(10*time.Millisecond))

	broadcaster.Start(context.Background())
	broadcaster.Stop()
	broadcaster.Stop()
	broadcaster.Start(context.Background())
	broadcaster.Stop()
}

func TestNewBroadcaster_Validation(t *testing.T) {
	_, err := NewBroadcaster(nil, mock.NewProvider())
	assert.ErrorIs(t, err, ErrJobRepositoryRequired)

	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	_, err = NewBroadcaster(stores.Jobs, nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}
