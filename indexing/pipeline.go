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
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
)

// Pipeline orchestrates scene indexing. Each run persists the scenes,
// tracks a job through its lifecycle, and embeds every scene in all three
// modalities concurrently.
type Pipeline struct {
	sceneRepository storage.SceneRepository
	jobRepository   storage.JobRepository
	batch           *BatchProcessor
	pools           map[core.Modality]*ants.Pool
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size per modality queue.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pools
		for _, pool := range p.pools {
			pool.Release()
		}

		pools, err := newModalityPools(size)
		if err != nil {
			return err
		}
		p.pools = pools
		return nil
	}
}

// WithBatchSize sets the number of scenes per embedding call.
// Default is DefaultBatchSize. Applies to every modality.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be at least 1, got %d", size)
		}
		p.batch.batchSize = size
		return nil
	}
}

// WithBatchTimeout bounds a single embedding call.
// Default is DefaultBatchTimeout.
func WithBatchTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) error {
		if timeout <= 0 {
			return fmt.Errorf("batch timeout must be positive, got %s", timeout)
		}
		p.batch.batchTimeout = timeout
		return nil
	}
}

// WithRetry sets the attempt budget and base backoff delay for transient
// embedding faults. Defaults are DefaultMaxRetries and DefaultRetryBaseDelay.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxRetries < 1 {
			return ErrInvalidMaxAttempts
		}
		p.batch.maxRetries = maxRetries
		p.batch.retryBaseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "indexing")
		p.batch.logger = logger.With("component", "batch_processor")
		return nil
	}
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	sceneRepository storage.SceneRepository,
	jobRepository storage.JobRepository,
	vectors storage.VectorStore,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if sceneRepository == nil {
		return nil, ErrSceneRepositoryRequired
	}
	if jobRepository == nil {
		return nil, ErrJobRepositoryRequired
	}

	batch, err := NewBatchProcessor(vectors, provider)
	if err != nil {
		return nil, err
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pools, err := newModalityPools(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		sceneRepository: sceneRepository,
		jobRepository:   jobRepository,
		batch:           batch,
		pools:           pools,
		logger:          slog.Default().With("component", "indexing"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Index persists the scenes and embeds them in all three modalities,
// tracking the run as a job for the integration. Scenes without an ID
// receive a deterministic content-hash ID so re-indexing the same scene
// replaces its vectors instead of duplicating them.
//
// The call returns after every modality run finishes. The job ends
// completed when every modality run ran to completion, even if individual
// scenes failed; per-scene failure counts are recorded on the job. A
// modality run error fails the job.
func (p *Pipeline) Index(ctx context.Context, integrationID string, scenes []*core.Scene) (*core.Job, error) {
	if integrationID == "" {
		return nil, ErrEmptyIntegrationID
	}
	if len(scenes) == 0 {
		return nil, ErrNoScenes
	}

	for _, scene := range scenes {
		if scene.ID == "" {
			scene.ID = sceneContentID(scene)
		}
	}

	if _, err := p.sceneRepository.AddScenes(ctx, scenes...); err != nil {
		return nil, err
	}

	job, err := p.jobRepository.Enqueue(ctx, &core.Job{
		IntegrationID: integrationID,
		State:         core.JobStateWaiting,
		Data: map[string]string{
			"sceneCount": strconv.Itoa(len(scenes)),
		},
	})
	if err != nil {
		return nil, err
	}

	if job, err = p.jobRepository.UpdateState(ctx, job.ID, core.JobStateActive); err != nil {
		return nil, err
	}

	type modalityOutcome struct {
		modality core.Modality
		result   *BatchResult
		err      error
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes []modalityOutcome
	)

	for _, modality := range []core.Modality{core.ModalityText, core.ModalityVisual, core.ModalityAudio} {
		wg.Add(1)
		submitErr := p.pools[modality].Submit(func() {
			defer wg.Done()
			result, embedErr := p.batch.Embed(ctx, modality, scenes)
			mu.Lock()
			outcomes = append(outcomes, modalityOutcome{modality: modality, result: result, err: embedErr})
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			outcomes = append(outcomes, modalityOutcome{modality: modality, err: submitErr})
			mu.Unlock()
		}
	}
	wg.Wait()

	failedScenes := 0
	var runErr error
	for _, outcome := range outcomes {
		if outcome.err != nil {
			p.logger.Error("modality run failed",
				"jobId", job.ID, "modality", outcome.modality.String(), "error", outcome.err)
			runErr = outcome.err
			continue
		}
		failedScenes += len(outcome.result.Failed)
		for _, failure := range outcome.result.Failed {
			p.logger.Warn("scene embedding failed",
				"jobId", job.ID, "modality", outcome.modality.String(),
				"sceneId", failure.SceneID, "error", failure.Err)
		}
	}

	finalState := core.JobStateCompleted
	if runErr != nil {
		finalState = core.JobStateFailed
	}
	if failedScenes > 0 {
		if _, err := p.jobRepository.UpdateData(ctx, job.ID, map[string]string{
			"failedScenes": strconv.Itoa(failedScenes),
		}); err != nil {
			p.logger.Error("recording scene failures on job failed", "jobId", job.ID, "error", err)
		}
	}

	job, err = p.jobRepository.UpdateState(ctx, job.ID, finalState)
	if err != nil {
		return nil, err
	}
	if runErr != nil {
		return job, runErr
	}
	return job, nil
}

// Release releases the worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	for _, pool := range p.pools {
		pool.Release()
	}
}

func newModalityPools(size int) (map[core.Modality]*ants.Pool, error) {
	pools := make(map[core.Modality]*ants.Pool, 3)
	for _, modality := range []core.Modality{core.ModalityText, core.ModalityVisual, core.ModalityAudio} {
		pool, err := ants.NewPool(size)
		if err != nil {
			for _, created := range pools {
				created.Release()
			}
			return nil, err
		}
		pools[modality] = pool
	}
	return pools, nil
}

// sceneContentID derives a stable scene ID from the fields that identify
// a cut: the video, its time range, and the scene's text document.
func sceneContentID(scene *core.Scene) string {
	return core.ContentHash(fmt.Sprintf("%s|%f|%f|%s",
		scene.VideoID, scene.StartTime, scene.EndTime, scene.Document()))
}
